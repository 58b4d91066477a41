package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// OutboundRepository registros de salida. Son inmutables salvo la observación; nunca se eliminan.
type OutboundRepository interface {
	List(ctx context.Context) ([]entity.OutboundRecord, error)
	Create(ctx context.Context, record entity.OutboundRecord) (entity.OutboundRecord, error)
	UpdateObservation(ctx context.Context, id, observation string) (entity.OutboundRecord, error)
}
