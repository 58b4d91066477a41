package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository/repositorytest"
)

var today = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return today }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	admin   = entity.Identity{ID: "u-1", Name: "Ana", Role: entity.RoleAdmin}
	usuario = entity.Identity{ID: "u-2", Name: "Rui", Role: entity.RoleUsuario}
)

// seededBackend catálogo con dos productos, tres lotes, dos salidas y cuatro etiquetas.
func seededBackend() *repositorytest.Backend {
	b := repositorytest.NewBackend()
	b.ProductsData = []entity.Product{
		{
			SKU: "BRC-01", Name: "Brinco Dourado", Brand: "Kualie", Color: "Dourado",
			CostPrice: dec("10"), RepurchaseRule: 20,
			History: &entity.PriceHistory{LastEditDate: today.AddDate(0, -1, 0), PreviousPrice: dec("11"), BestPrice: dec("8")},
		},
		{SKU: "COL-02", Name: "Colar Prata", Brand: "Bijux", CostPrice: dec("25.50")},
	}
	b.LotsData = []entity.StockLot{
		{ID: "L1", SKU: "BRC-01", Name: "Brinco Dourado", Location: "A-01", UnitsPerBox: 10, Volume: 1, Date: today},
		{ID: "L2", SKU: "COL-02", Name: "Colar Prata", Location: "B-01", UnitsPerBox: 6, Volume: 4, Date: today},
		{ID: "L3", SKU: "COL-02", Name: "Colar Prata", Location: "B-02", UnitsPerBox: 6, Volume: 1, Date: today},
	}
	b.ExitsData = []entity.OutboundRecord{
		{ID: "E1", SKU: "BRC-01", Name: "Brinco Dourado", Quantity: 30, Date: today, ExitType: entity.ExitTypeDispatch, Observation: "cliente balcão"},
		{ID: "E2", SKU: "COL-02", Name: "Colar Prata", Quantity: 12, Date: today, ExitType: entity.ExitTypeFull, Store: entity.StoreShopee},
	}
	b.MasterData = []string{"A-01", "B-01", "B-02", "C-01"}
	return b
}

func loadedStore(t *testing.T, b *repositorytest.Backend) *state.Store {
	t.Helper()
	s := state.NewStore(state.Repositories{
		Products: b, Lots: b.Lots(), MasterLocations: b.Masters(), Exits: b.Exits(),
	}, nil)
	require.NoError(t, s.Load(context.Background()))
	b.ResetCalls()
	return s
}
