package dto

import (
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// FormatDate fecha dd/mm/aaaa; cero → "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FromLot mapea un lote.
func FromLot(l entity.StockLot) LotResponse {
	return LotResponse{
		ID:          l.ID,
		SKU:         l.SKU,
		Name:        l.Name,
		Location:    l.Location,
		UnitsPerBox: l.UnitsPerBox,
		Volume:      l.Volume,
		Quantity:    l.Quantity(),
		Date:        FormatDate(l.Date),
	}
}

// FromExit mapea un registro de salida.
func FromExit(e entity.OutboundRecord) ExitResponse {
	return ExitResponse{
		ID:          e.ID,
		SKU:         e.SKU,
		Name:        e.Name,
		Quantity:    e.Quantity,
		Date:        FormatDate(e.Date),
		ExitType:    e.ExitType,
		Store:       e.Store,
		Observation: e.Observation,
	}
}

// FromProduct mapea un producto con su cantidad calculada.
func FromProduct(p entity.Product, quantity int) ProductResponse {
	out := ProductResponse{
		SKU:            p.SKU,
		Name:           p.Name,
		Brand:          p.Brand,
		Color:          p.Color,
		CostPrice:      p.CostPrice,
		BestPrice:      p.BestPrice(),
		UnitsPerBox:    p.UnitsPerBox,
		RepurchaseRule: p.RepurchaseRule,
		Quantity:       quantity,
	}
	if p.History != nil {
		out.History = &PriceHistoryResponse{
			LastEditDate:  FormatDate(p.History.LastEditDate),
			PreviousPrice: p.History.PreviousPrice,
			BestPrice:     p.History.BestPrice,
		}
	}
	return out
}

// FromIdentity mapea la identidad de la sesión.
func FromIdentity(i entity.Identity) *IdentityResponse {
	return &IdentityResponse{ID: i.ID, Name: i.Name, Role: i.Role, IsAdmin: i.IsAdmin()}
}
