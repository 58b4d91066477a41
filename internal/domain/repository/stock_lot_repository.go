package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// StockLotRepository define el puerto hacia los lotes por localización (/locations).
type StockLotRepository interface {
	List(ctx context.Context) ([]entity.StockLot, error)
	Create(ctx context.Context, lot entity.StockLot) error
	Update(ctx context.Context, lot entity.StockLot) error
	Delete(ctx context.Context, id string) error
}
