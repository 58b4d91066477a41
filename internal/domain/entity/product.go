package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. La cantidad en mano no se guarda:
// se calcula sumando los lotes (volumen * unidades por caja) del SKU.
type Product struct {
	SKU            string
	Name           string
	Brand          string
	Color          string          // opcional
	CostPrice      decimal.Decimal // precio de costo actual
	UnitsPerBox    int             // unidades por caja por defecto (0 = no informado)
	RepurchaseRule int             // cantidad mínima antes de marcar recompra (0 = sin regla)
	History        *PriceHistory
}

// PriceHistory registra el precio anterior y el mejor (menor) precio ya registrado.
type PriceHistory struct {
	LastEditDate  time.Time
	PreviousPrice decimal.Decimal
	BestPrice     decimal.Decimal
}

// BestPrice devuelve el mejor precio conocido; sin historial es el costo actual.
func (p Product) BestPrice() decimal.Decimal {
	if p.History != nil && p.History.BestPrice.GreaterThan(decimal.Zero) {
		return p.History.BestPrice
	}
	return p.CostPrice
}
