package entity

import (
	"strings"
	"time"
)

// StockLot cantidad de un producto guardada en una localización física.
// Se identifica por la tripla (SKU, localización, unidades por caja); ID lo asigna la API remota
// y está vacío en lotes aún no persistidos.
type StockLot struct {
	ID          string
	SKU         string
	Name        string // nombre del producto (desnormalizado para las vistas)
	Location    string
	UnitsPerBox int
	Volume      int // número de cajas
	Date        time.Time
}

// Quantity unidades totales del lote.
func (l StockLot) Quantity() int {
	return l.Volume * l.UnitsPerBox
}

// Persisted indica si el lote ya existe en la API remota.
func (l StockLot) Persisted() bool {
	return l.ID != ""
}

// SameKey compara la tripla (SKU, localización, unidades por caja) sin distinguir mayúsculas.
func (l StockLot) SameKey(sku, location string, unitsPerBox int) bool {
	return strings.EqualFold(l.SKU, sku) &&
		strings.EqualFold(l.Location, location) &&
		l.UnitsPerBox == unitsPerBox
}
