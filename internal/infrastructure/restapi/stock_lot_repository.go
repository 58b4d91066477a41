package restapi

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepository)(nil)

// StockLotRepository implementa repository.StockLotRepository sobre /locations y /location.
type StockLotRepository struct {
	c *Client
}

// NewStockLotRepository construye el repositorio.
func NewStockLotRepository(c *Client) *StockLotRepository {
	return &StockLotRepository{c: c}
}

// List GET /locations.
func (r *StockLotRepository) List(ctx context.Context) ([]entity.StockLot, error) {
	var rows []lotWire
	if err := r.c.get(ctx, "/locations", &rows); err != nil {
		return nil, err
	}
	out := make([]entity.StockLot, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// Create POST /location. El ID lo asigna el servidor.
func (r *StockLotRepository) Create(ctx context.Context, lot entity.StockLot) error {
	w := toLotWire(lot)
	w.ID = ""
	return r.c.post(ctx, "/location", w, nil)
}

// Update PUT /location/{id} con el lote completo.
func (r *StockLotRepository) Update(ctx context.Context, lot entity.StockLot) error {
	return r.c.put(ctx, "/location/"+pathEscape(lot.ID), toLotWire(lot), nil)
}

// Delete DELETE /location/{id}.
func (r *StockLotRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, "/location/"+pathEscape(id))
}
