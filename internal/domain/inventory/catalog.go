package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// StagnantAfterDays días sin movimiento a partir de los cuales un producto con stock se considera parado.
const StagnantAfterDays = 30

// Status clasificación de un producto en el dashboard. Prioridad: recompra > parado > ok.
type Status string

const (
	StatusOK         Status = "ok"
	StatusRepurchase Status = "repurchase"
	StatusStagnant   Status = "stagnant"
)

// Classification resultado de Classify.
type Classification struct {
	Status                Status
	CurrentQuantity       int
	DaysSinceLastMovement int // solo relevante para StatusStagnant
}

// FindProductBySKU busca por SKU exacto sin distinguir mayúsculas.
func FindProductBySKU(products []entity.Product, sku string) (entity.Product, bool) {
	for _, p := range products {
		if strings.EqualFold(p.SKU, sku) {
			return p, true
		}
	}
	return entity.Product{}, false
}

// CurrentQuantity suma volumen * unidades por caja de todos los lotes del SKU.
func CurrentQuantity(sku string, lots []entity.StockLot) int {
	total := 0
	for _, l := range lots {
		if strings.EqualFold(l.SKU, sku) {
			total += l.Quantity()
		}
	}
	return total
}

// NeedsRepurchase cantidad actual <= regla de recompra. Una regla en cero desactiva la señal.
func NeedsRepurchase(p entity.Product, currentQuantity int) bool {
	return p.RepurchaseRule > 0 && currentQuantity <= p.RepurchaseRule
}

// LastMovement fecha más reciente entre lotes y salidas del SKU.
func LastMovement(sku string, lots []entity.StockLot, exits []entity.OutboundRecord) (time.Time, bool) {
	var last time.Time
	found := false
	for _, l := range lots {
		if strings.EqualFold(l.SKU, sku) && !l.Date.IsZero() && (!found || l.Date.After(last)) {
			last, found = l.Date, true
		}
	}
	for _, e := range exits {
		if strings.EqualFold(e.SKU, sku) && !e.Date.IsZero() && (!found || e.Date.After(last)) {
			last, found = e.Date, true
		}
	}
	return last, found
}

// DaysBetween días transcurridos entre dos instantes, en valor absoluto y redondeados
// hacia arriba: un día y una hora cuentan como 2.
func DaysBetween(a, b time.Time) int {
	const day = 24 * time.Hour
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int((d + day - 1) / day)
}

// Classify clasifica el producto: recompra si la cantidad no supera la regla; si no, parado
// cuando tiene stock y su último movimiento tiene más de StagnantAfterDays días; si no, ok.
func Classify(p entity.Product, lots []entity.StockLot, exits []entity.OutboundRecord, now time.Time) Classification {
	qty := CurrentQuantity(p.SKU, lots)
	c := Classification{Status: StatusOK, CurrentQuantity: qty}

	if NeedsRepurchase(p, qty) {
		c.Status = StatusRepurchase
		return c
	}
	if qty > 0 {
		if last, ok := LastMovement(p.SKU, lots, exits); ok {
			days := DaysBetween(last, now)
			if days > StagnantAfterDays {
				c.Status = StatusStagnant
				c.DaysSinceLastMovement = days
			}
		}
	}
	return c
}
