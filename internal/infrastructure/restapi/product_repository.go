package restapi

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementa repository.ProductRepository sobre /products y /product.
type ProductRepository struct {
	c *Client
}

// NewProductRepository construye el repositorio.
func NewProductRepository(c *Client) *ProductRepository {
	return &ProductRepository{c: c}
}

// List GET /products.
func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	var rows []productWire
	if err := r.c.get(ctx, "/products", &rows); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// Create POST /product. La cantidad inicial siempre es cero: se deriva de los lotes.
func (r *ProductRepository) Create(ctx context.Context, product entity.Product) (entity.Product, error) {
	var created productWire
	if err := r.c.post(ctx, "/product", toProductWire(product), &created); err != nil {
		return entity.Product{}, err
	}
	if created.SKU == "" {
		return product, nil
	}
	return created.toEntity(), nil
}

// Update PUT /product/{sku}.
func (r *ProductRepository) Update(ctx context.Context, product entity.Product) (entity.Product, error) {
	var updated productWire
	if err := r.c.put(ctx, "/product/"+pathEscape(product.SKU), toProductWire(product), &updated); err != nil {
		return entity.Product{}, err
	}
	if updated.SKU == "" {
		return product, nil
	}
	return updated.toEntity(), nil
}

// Delete DELETE /product/{sku} (solo ADMIN; el servidor lo verifica).
func (r *ProductRepository) Delete(ctx context.Context, sku string) error {
	return r.c.delete(ctx, "/product/"+pathEscape(sku))
}

// RequestDeletion POST /product/request-deletion/{sku}.
func (r *ProductRepository) RequestDeletion(ctx context.Context, sku string) error {
	return r.c.post(ctx, "/product/request-deletion/"+pathEscape(sku), nil, nil)
}
