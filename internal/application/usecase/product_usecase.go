package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/ports"
	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/inventory"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
	"github.com/jhoicas/Inventario-console/pkg/search"
)

// ProductUseCase casos de uso del catálogo. La cantidad en mano se calcula de los lotes.
type ProductUseCase struct {
	repo  repository.ProductRepository
	store *state.Store
	log   *logger.Logger
	now   func() time.Time
	gate  state.Gate
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, store *state.Store, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, store: store, log: log.Named("products"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

// List productos filtrados por nombre, marca o SKU, paginados.
func (uc *ProductUseCase) List(q dto.ListQuery) dto.Page[dto.ProductResponse] {
	return dto.Paginate(uc.filtered(q), q.Page, q.PageSize)
}

// Get producto por SKU (sin distinguir mayúsculas).
func (uc *ProductUseCase) Get(sku string) (*dto.ProductResponse, error) {
	p, ok := inventory.FindProductBySKU(uc.store.Products(), sku)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.FromProduct(p, inventory.CurrentQuantity(p.SKU, uc.store.Lots()))
	return &resp, nil
}

// Create da de alta un producto. El historial arranca con precio anterior y mejor precio
// iguales al costo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	release, err := uc.gate.Enter()
	if err != nil {
		return nil, err
	}
	defer release()

	in.SKU = strings.TrimSpace(in.SKU)
	if _, exists := inventory.FindProductBySKU(uc.store.Products(), in.SKU); exists {
		return nil, fmt.Errorf("%w: el SKU %s ya existe", domain.ErrDuplicate, in.SKU)
	}
	if err := validateProduct(in.SKU, in.Name, in.Brand, in.CostPrice); err != nil {
		return nil, err
	}

	product := entity.Product{
		SKU:            in.SKU,
		Name:           strings.TrimSpace(in.Name),
		Brand:          strings.TrimSpace(in.Brand),
		Color:          strings.TrimSpace(in.Color),
		CostPrice:      in.CostPrice,
		UnitsPerBox:    in.UnitsPerBox,
		RepurchaseRule: in.RepurchaseRule,
		History: &entity.PriceHistory{
			LastEditDate:  inventory.DateOnly(uc.now()),
			PreviousPrice: in.CostPrice,
			BestPrice:     in.CostPrice,
		},
	}
	created, err := uc.repo.Create(ctx, product)
	if err != nil {
		uc.log.Error().Err(err).Str("sku", product.SKU).Msg("crear producto")
		return nil, err
	}
	uc.store.PutProduct(created)
	uc.log.Info().Str("sku", created.SKU).Msg("producto creado")

	resp := dto.FromProduct(created, inventory.CurrentQuantity(created.SKU, uc.store.Lots()))
	return &resp, nil
}

// Clone crea un producto nuevo a partir de uno existente; los campos vacíos de in se
// completan con los del origen. El SKU nuevo es obligatorio.
func (uc *ProductUseCase) Clone(ctx context.Context, sourceSKU string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	src, ok := inventory.FindProductBySKU(uc.store.Products(), sourceSKU)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		in.Name = src.Name
	}
	if strings.TrimSpace(in.Brand) == "" {
		in.Brand = src.Brand
	}
	if strings.TrimSpace(in.Color) == "" {
		in.Color = src.Color
	}
	if in.CostPrice.IsZero() {
		in.CostPrice = src.CostPrice
	}
	if in.UnitsPerBox == 0 {
		in.UnitsPerBox = src.UnitsPerBox
	}
	if in.RepurchaseRule == 0 {
		in.RepurchaseRule = src.RepurchaseRule
	}
	return uc.Create(ctx, in)
}

// Update edita un producto. El historial guarda el costo anterior y el menor precio
// entre el mejor registrado (o el costo anterior) y el nuevo costo.
func (uc *ProductUseCase) Update(ctx context.Context, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	release, err := uc.gate.Enter()
	if err != nil {
		return nil, err
	}
	defer release()

	original, ok := inventory.FindProductBySKU(uc.store.Products(), sku)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if err := validateProduct(original.SKU, in.Name, in.Brand, in.CostPrice); err != nil {
		return nil, err
	}

	best := original.CostPrice
	if original.History != nil && original.History.BestPrice.GreaterThan(decimal.Zero) {
		best = original.History.BestPrice
	}
	updated := entity.Product{
		SKU:            original.SKU,
		Name:           strings.TrimSpace(in.Name),
		Brand:          strings.TrimSpace(in.Brand),
		Color:          strings.TrimSpace(in.Color),
		CostPrice:      in.CostPrice,
		UnitsPerBox:    in.UnitsPerBox,
		RepurchaseRule: in.RepurchaseRule,
		History: &entity.PriceHistory{
			LastEditDate:  inventory.DateOnly(uc.now()),
			PreviousPrice: original.CostPrice,
			BestPrice:     decimal.Min(best, in.CostPrice),
		},
	}
	saved, err := uc.repo.Update(ctx, updated)
	if err != nil {
		uc.log.Error().Err(err).Str("sku", updated.SKU).Msg("editar producto")
		return nil, err
	}
	uc.store.PutProduct(saved)
	uc.log.Info().Str("sku", saved.SKU).Str("cost_price", saved.CostPrice.String()).Msg("producto editado")

	resp := dto.FromProduct(saved, inventory.CurrentQuantity(saved.SKU, uc.store.Lots()))
	return &resp, nil
}

// Delete elimina un producto. Solo ADMIN; un USUARIO debe usar RequestDeletion.
func (uc *ProductUseCase) Delete(ctx context.Context, who entity.Identity, sku string) error {
	if !who.IsAdmin() {
		return fmt.Errorf("%w: solo ADMIN elimina productos, use la solicitud de eliminación", domain.ErrForbidden)
	}
	p, ok := inventory.FindProductBySKU(uc.store.Products(), sku)
	if !ok {
		return domain.ErrProductNotFound
	}
	if err := uc.repo.Delete(ctx, p.SKU); err != nil {
		uc.log.Error().Err(err).Str("sku", p.SKU).Msg("eliminar producto")
		return err
	}
	uc.store.RemoveProduct(p.SKU)
	uc.log.Info().Str("sku", p.SKU).Str("user_id", who.ID).Msg("producto eliminado")
	return nil
}

// RequestDeletion registra una solicitud de eliminación para que la apruebe un ADMIN.
func (uc *ProductUseCase) RequestDeletion(ctx context.Context, sku string) error {
	p, ok := inventory.FindProductBySKU(uc.store.Products(), sku)
	if !ok {
		return domain.ErrProductNotFound
	}
	if err := uc.repo.RequestDeletion(ctx, p.SKU); err != nil {
		uc.log.Error().Err(err).Str("sku", p.SKU).Msg("solicitar eliminación")
		return err
	}
	return nil
}

// Records filas de la exportación del inventario.
func (uc *ProductUseCase) Records(q dto.ListQuery) []ports.Record {
	products := uc.filtered(q)
	out := make([]ports.Record, 0, len(products))
	for _, p := range products {
		color := p.Color
		if color == "" {
			color = "-"
		}
		var best, bestDate any
		if p.History != nil {
			best = p.History.BestPrice
			if p.History.LastEditDate != "" {
				bestDate = p.History.LastEditDate
			}
		}
		out = append(out, ports.Record{
			{Key: "SKU", Value: p.SKU},
			{Key: "Nome do Produto", Value: p.Name},
			{Key: "Cor", Value: color},
			{Key: "Preço de Custo", Value: p.CostPrice},
			{Key: "Quantidade", Value: p.Quantity},
			{Key: "Marca", Value: p.Brand},
			{Key: "Melhor Preço", Value: best},
			{Key: "Data (Melhor Preço)", Value: bestDate},
		})
	}
	return out
}

func (uc *ProductUseCase) filtered(q dto.ListQuery) []dto.ProductResponse {
	lots := uc.store.Lots()
	products := search.Filter(uc.store.Products(), q.Search, func(p entity.Product) []string {
		return []string{p.Name, p.Brand, p.SKU}
	})
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromProduct(p, inventory.CurrentQuantity(p.SKU, lots)))
	}
	return out
}

func validateProduct(sku, name, brand string, cost decimal.Decimal) error {
	if strings.TrimSpace(sku) == "" || strings.TrimSpace(name) == "" || strings.TrimSpace(brand) == "" {
		return fmt.Errorf("%w: SKU, nombre y marca son obligatorios", domain.ErrInvalidInput)
	}
	if !cost.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el precio de costo debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}
