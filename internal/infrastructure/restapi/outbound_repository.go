package restapi

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.OutboundRepository = (*OutboundRepository)(nil)

// OutboundRepository registros de salida (/exits, /exit).
type OutboundRepository struct {
	c *Client
}

// NewOutboundRepository construye el repositorio.
func NewOutboundRepository(c *Client) *OutboundRepository {
	return &OutboundRepository{c: c}
}

// List GET /exits.
func (r *OutboundRepository) List(ctx context.Context) ([]entity.OutboundRecord, error) {
	var rows []exitWire
	if err := r.c.get(ctx, "/exits", &rows); err != nil {
		return nil, err
	}
	out := make([]entity.OutboundRecord, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// Create POST /exit.
func (r *OutboundRepository) Create(ctx context.Context, record entity.OutboundRecord) (entity.OutboundRecord, error) {
	w := toExitWire(record)
	w.ID = ""
	var created exitWire
	if err := r.c.post(ctx, "/exit", w, &created); err != nil {
		return entity.OutboundRecord{}, err
	}
	if created.ID == "" {
		return record, nil
	}
	return created.toEntity(), nil
}

// UpdateObservation PUT /exit/{id}/observation.
func (r *OutboundRepository) UpdateObservation(ctx context.Context, id, observation string) (entity.OutboundRecord, error) {
	var updated exitWire
	body := map[string]string{"observation": observation}
	if err := r.c.put(ctx, "/exit/"+pathEscape(id)+"/observation", body, &updated); err != nil {
		return entity.OutboundRecord{}, err
	}
	return updated.toEntity(), nil
}
