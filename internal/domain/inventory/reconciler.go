// Package inventory contiene la lógica pura de lotes por localización: el motor de
// reconciliación (incluir, movimentar, dar salida) y los cálculos de catálogo.
// No hace I/O; el caso de uso de aplicación ejecuta los planes contra la API remota.
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// OpKind tipo de operación remota sobre un lote.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// LotOp operación a emitir contra la API remota. Para OpDelete solo importa Lot.ID.
type LotOp struct {
	Kind OpKind
	Lot  entity.StockLot
}

// Plan conjunto de lotes resultante y operaciones remotas en orden de emisión.
type Plan struct {
	Lots []entity.StockLot
	Ops  []LotOp
}

// ShipPlan plan de salida: el registro de salida se crea antes de la operación sobre el lote.
type ShipPlan struct {
	Plan
	Exit entity.OutboundRecord
}

// PlaceRequest inclusión de cajas recibidas de un SKU en una localización.
type PlaceRequest struct {
	SKU         string
	ProductName string
	Location    string
	UnitsPerBox int
	Containers  int
}

// TransferRequest movimiento de cajas de un lote existente a otra localización.
type TransferRequest struct {
	SourceID    string
	Destination string
	Containers  int
}

// ShipRequest salida de cajas de un lote.
type ShipRequest struct {
	SourceID    string
	ExitType    string
	Store       string
	Observation string
	Containers  int
}

// Place incluye cajas en una localización. Si ya existe un lote con la misma tripla
// (SKU, localización, unidades por caja) suma el volumen; si no, crea un lote nuevo con fecha de hoy.
// Rechaza con ErrLocationOccupied si la localización contiene otro SKU.
func Place(lots []entity.StockLot, req PlaceRequest, today time.Time) (Plan, error) {
	sku := strings.TrimSpace(req.SKU)
	location := strings.TrimSpace(req.Location)
	if sku == "" || location == "" || req.UnitsPerBox <= 0 || req.Containers <= 0 {
		return Plan{}, domain.ErrInvalidInput
	}
	if other, ok := occupant(lots, location, sku); ok {
		return Plan{}, fmt.Errorf("%w: %q ya contiene el SKU %s", domain.ErrLocationOccupied, location, other.SKU)
	}

	out := cloneLots(lots)
	if i := indexOfKey(out, sku, location, req.UnitsPerBox, -1); i >= 0 {
		out[i].Volume += req.Containers
		return Plan{Lots: out, Ops: []LotOp{{Kind: OpUpdate, Lot: out[i]}}}, nil
	}

	lot := entity.StockLot{
		SKU:         sku,
		Name:        req.ProductName,
		Location:    location,
		UnitsPerBox: req.UnitsPerBox,
		Volume:      req.Containers,
		Date:        DateOnly(today),
	}
	out = append(out, lot)
	return Plan{Lots: out, Ops: []LotOp{{Kind: OpCreate, Lot: lot}}}, nil
}

// Transfer mueve N cajas del lote origen al destino. El origen se actualiza (o se elimina si
// llega a cero) y el destino se suma a un lote existente con la misma tripla o se crea.
// Las operaciones quedan en orden origen → destino.
func Transfer(lots []entity.StockLot, req TransferRequest, today time.Time) (Plan, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" || req.Containers <= 0 {
		return Plan{}, domain.ErrInvalidInput
	}
	si := indexOfID(lots, req.SourceID)
	if si < 0 {
		return Plan{}, domain.ErrNotFound
	}
	src := lots[si]
	if req.Containers > src.Volume {
		return Plan{}, fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, req.Containers, src.Volume)
	}
	if strings.EqualFold(src.Location, destination) {
		return Plan{}, fmt.Errorf("%w: el destino es la misma localización", domain.ErrInvalidInput)
	}
	if other, ok := occupant(lots, destination, src.SKU); ok {
		return Plan{}, fmt.Errorf("%w: %q ya contiene el SKU %s", domain.ErrLocationOccupied, destination, other.SKU)
	}

	out := cloneLots(lots)
	out[si].Volume -= req.Containers

	ops := make([]LotOp, 0, 2)
	if out[si].Volume > 0 {
		ops = append(ops, LotOp{Kind: OpUpdate, Lot: out[si]})
	} else {
		ops = append(ops, LotOp{Kind: OpDelete, Lot: out[si]})
	}

	if di := indexOfKey(out, src.SKU, destination, src.UnitsPerBox, si); di >= 0 {
		out[di].Volume += req.Containers
		ops = append(ops, LotOp{Kind: OpUpdate, Lot: out[di]})
	} else {
		lot := entity.StockLot{
			SKU:         src.SKU,
			Name:        src.Name,
			Location:    destination,
			UnitsPerBox: src.UnitsPerBox,
			Volume:      req.Containers,
			Date:        DateOnly(today),
		}
		out = append(out, lot)
		ops = append(ops, LotOp{Kind: OpCreate, Lot: lot})
	}

	return Plan{Lots: dropEmpty(out), Ops: ops}, nil
}

// Ship retira N cajas de un lote y arma el registro de salida (cantidad = N * unidades por caja).
func Ship(lots []entity.StockLot, req ShipRequest, today time.Time) (ShipPlan, error) {
	store := strings.TrimSpace(req.Store)
	switch req.ExitType {
	case entity.ExitTypeDispatch:
		store = ""
	case entity.ExitTypeFull:
		if store == "" {
			return ShipPlan{}, domain.ErrStoreRequired
		}
		if !entity.ValidStore(store) {
			return ShipPlan{}, fmt.Errorf("%w: tienda desconocida %q", domain.ErrInvalidInput, store)
		}
	default:
		return ShipPlan{}, fmt.Errorf("%w: tipo de salida %q", domain.ErrInvalidInput, req.ExitType)
	}
	if req.Containers <= 0 {
		return ShipPlan{}, domain.ErrInvalidInput
	}
	si := indexOfID(lots, req.SourceID)
	if si < 0 {
		return ShipPlan{}, domain.ErrNotFound
	}
	src := lots[si]
	if req.Containers > src.Volume {
		return ShipPlan{}, fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, req.Containers, src.Volume)
	}

	exit := entity.OutboundRecord{
		SKU:         src.SKU,
		Name:        src.Name,
		Quantity:    req.Containers * src.UnitsPerBox,
		Date:        DateOnly(today),
		ExitType:    req.ExitType,
		Store:       store,
		Observation: strings.TrimSpace(req.Observation),
	}

	out := cloneLots(lots)
	out[si].Volume -= req.Containers
	op := LotOp{Kind: OpUpdate, Lot: out[si]}
	if out[si].Volume == 0 {
		op.Kind = OpDelete
	}
	return ShipPlan{
		Plan: Plan{Lots: dropEmpty(out), Ops: []LotOp{op}},
		Exit: exit,
	}, nil
}

// OccupiedLocations conjunto de localizaciones referenciadas por algún lote.
func OccupiedLocations(lots []entity.StockLot) map[string]bool {
	set := make(map[string]bool, len(lots))
	for _, l := range lots {
		set[strings.ToLower(l.Location)] = true
	}
	return set
}

// IsOccupied indica si algún lote referencia la localización.
func IsOccupied(lots []entity.StockLot, location string) bool {
	for _, l := range lots {
		if strings.EqualFold(l.Location, location) {
			return true
		}
	}
	return false
}

// DateOnly trunca t al inicio del día (las fechas de movimiento tienen resolución de día).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// occupant devuelve un lote de la localización cuyo SKU difiere de sku.
func occupant(lots []entity.StockLot, location, sku string) (entity.StockLot, bool) {
	for _, l := range lots {
		if strings.EqualFold(l.Location, location) && !strings.EqualFold(l.SKU, sku) {
			return l, true
		}
	}
	return entity.StockLot{}, false
}

func indexOfKey(lots []entity.StockLot, sku, location string, unitsPerBox, skip int) int {
	for i, l := range lots {
		if i != skip && l.SameKey(sku, location, unitsPerBox) {
			return i
		}
	}
	return -1
}

func indexOfID(lots []entity.StockLot, id string) int {
	if id == "" {
		return -1
	}
	for i, l := range lots {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func cloneLots(lots []entity.StockLot) []entity.StockLot {
	out := make([]entity.StockLot, len(lots), len(lots)+1)
	copy(out, lots)
	return out
}

func dropEmpty(lots []entity.StockLot) []entity.StockLot {
	out := lots[:0]
	for _, l := range lots {
		if l.Volume > 0 {
			out = append(out, l)
		}
	}
	return out
}
