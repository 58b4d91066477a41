package repository

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// ProductRepository define el puerto hacia el catálogo de productos en la API remota.
// El SKU es la clave; la unicidad la valida el servidor.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	Create(ctx context.Context, product entity.Product) (entity.Product, error)
	Update(ctx context.Context, product entity.Product) (entity.Product, error)
	Delete(ctx context.Context, sku string) error
	// RequestDeletion registra una solicitud de eliminación para aprobación de un ADMIN.
	RequestDeletion(ctx context.Context, sku string) error
}
