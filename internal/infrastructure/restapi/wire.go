package restapi

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// DateLayout formato de fecha de la API remota (dd/mm/aaaa, pt-BR).
const DateLayout = "02/01/2006"

var dateLayouts = []string{DateLayout, time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate interpreta una fecha de la API; acepta dd/mm/aaaa e ISO-8601. Vacía o ilegible = cero.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate serializa una fecha al formato de la API.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productWire struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CostPrice      decimal.Decimal `json:"costPrice"`
	Quantity       int             `json:"quantity"`
	Brand          string          `json:"brand"`
	UnitsPerBox    int             `json:"unitsPerBox,omitempty"`
	Color          string          `json:"color"`
	RepurchaseRule int             `json:"repurchaseRule"`
	History        *historyWire    `json:"history,omitempty"`
}

type historyWire struct {
	LastEditDate  string          `json:"lastEditDate"`
	PreviousPrice decimal.Decimal `json:"previousPrice"`
	BestPrice     decimal.Decimal `json:"bestPrice"`
}

func toProductWire(p entity.Product) productWire {
	w := productWire{
		SKU:            p.SKU,
		Name:           p.Name,
		CostPrice:      p.CostPrice,
		Brand:          p.Brand,
		UnitsPerBox:    p.UnitsPerBox,
		Color:          p.Color,
		RepurchaseRule: p.RepurchaseRule,
	}
	if p.History != nil {
		w.History = &historyWire{
			LastEditDate:  FormatDate(p.History.LastEditDate),
			PreviousPrice: p.History.PreviousPrice,
			BestPrice:     p.History.BestPrice,
		}
	}
	return w
}

func (w productWire) toEntity() entity.Product {
	p := entity.Product{
		SKU:            w.SKU,
		Name:           w.Name,
		Brand:          w.Brand,
		Color:          w.Color,
		CostPrice:      w.CostPrice,
		UnitsPerBox:    w.UnitsPerBox,
		RepurchaseRule: w.RepurchaseRule,
	}
	if w.History != nil {
		p.History = &entity.PriceHistory{
			LastEditDate:  ParseDate(w.History.LastEditDate),
			PreviousPrice: w.History.PreviousPrice,
			BestPrice:     w.History.BestPrice,
		}
	}
	return p
}

// ── Lotes por localización ────────────────────────────────────────────────────

type lotWire struct {
	ID          string `json:"id,omitempty"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	UnitsPerBox int    `json:"unitsPerBox"`
	Volume      int    `json:"volume"`
	Date        string `json:"date"`
}

func toLotWire(l entity.StockLot) lotWire {
	return lotWire{
		ID:          l.ID,
		SKU:         l.SKU,
		Name:        l.Name,
		Location:    l.Location,
		UnitsPerBox: l.UnitsPerBox,
		Volume:      l.Volume,
		Date:        FormatDate(l.Date),
	}
}

func (w lotWire) toEntity() entity.StockLot {
	return entity.StockLot{
		ID:          w.ID,
		SKU:         w.SKU,
		Name:        w.Name,
		Location:    w.Location,
		UnitsPerBox: w.UnitsPerBox,
		Volume:      w.Volume,
		Date:        ParseDate(w.Date),
	}
}

// ── Salidas ───────────────────────────────────────────────────────────────────

type exitWire struct {
	ID          string `json:"id,omitempty"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date"`
	ExitType    string `json:"exitType"`
	Store       string `json:"store,omitempty"`
	Observation string `json:"observation,omitempty"`
}

func toExitWire(e entity.OutboundRecord) exitWire {
	return exitWire{
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

func (w exitWire) toEntity() entity.OutboundRecord {
	return entity.OutboundRecord{
		ID:          w.ID,
		SKU:         w.SKU,
		Name:        w.Name,
		Quantity:    w.Quantity,
		Date:        ParseDate(w.Date),
		ExitType:    w.ExitType,
		Store:       w.Store,
		Observation: w.Observation,
	}
}

// ── Administración ────────────────────────────────────────────────────────────

type deletionRequestWire struct {
	ID            string `json:"id"`
	ProductSKU    string `json:"productSku"`
	Status        string `json:"status"`
	RequestedByID string `json:"requestedById"`
	CreatedAt     string `json:"create_at"`
}

func (w deletionRequestWire) toEntity() entity.DeletionRequest {
	return entity.DeletionRequest{
		ID:            w.ID,
		ProductSKU:    w.ProductSKU,
		Status:        w.Status,
		RequestedByID: w.RequestedByID,
		CreatedAt:     ParseDate(w.CreatedAt),
	}
}

type userWire struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"create_at"`
}

func (w userWire) toEntity() entity.User {
	return entity.User{ID: w.ID, Name: w.Name, Role: w.Role, CreatedAt: ParseDate(w.CreatedAt)}
}

type auditLogWire struct {
	ID         string  `json:"id"`
	ActionType string  `json:"actionType"`
	UserID     string  `json:"userId"`
	Details    *string `json:"details"`
	Timestamp  string  `json:"timestamp"`
}

func (w auditLogWire) toEntity() entity.AuditLog {
	l := entity.AuditLog{ID: w.ID, ActionType: w.ActionType, UserID: w.UserID, Timestamp: ParseDate(w.Timestamp)}
	if w.Details != nil {
		l.Details = *w.Details
	}
	return l
}
