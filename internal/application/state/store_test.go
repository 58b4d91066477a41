package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/state"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository/repositorytest"
)

func newStore(b *repositorytest.Backend) *state.Store {
	return state.NewStore(state.Repositories{
		Products:        b,
		Lots:            b.Lots(),
		MasterLocations: b.Masters(),
		Exits:           b.Exits(),
	}, nil)
}

func seeded() *repositorytest.Backend {
	b := repositorytest.NewBackend()
	b.ProductsData = []entity.Product{{SKU: "X", Name: "Brinco"}}
	b.LotsData = []entity.StockLot{{ID: "1", SKU: "X", Location: "A-01", UnitsPerBox: 10, Volume: 2}}
	b.MasterData = []string{"B-01", "A-01"}
	b.ExitsData = []entity.OutboundRecord{{ID: "e1", SKU: "X", Quantity: 10}}
	return b
}

func TestStore_LoadTraeTodoYOrdenaLaListaMaestra(t *testing.T) {
	b := seeded()
	s := newStore(b)
	assert.False(t, s.Loaded())

	require.NoError(t, s.Load(context.Background()))

	snap := s.Snapshot()
	assert.True(t, s.Loaded())
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Lots, 1)
	assert.Len(t, snap.Exits, 1)
	assert.Equal(t, []string{"A-01", "B-01"}, snap.MasterLocations)
	assert.False(t, snap.LoadedAt.IsZero())
	assert.ElementsMatch(t, []string{"products.list", "lots.list", "masters.list", "exits.list"}, b.CallLog())
}

func TestStore_LoadFallidoConservaEstadoAnterior(t *testing.T) {
	b := seeded()
	s := newStore(b)
	require.NoError(t, s.Load(context.Background()))

	b.LotsData = nil
	b.FailOn["exits.list"] = domain.ErrRemote
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemote))
	assert.Len(t, s.Lots(), 1, "una carga fallida no reemplaza nada")
}

func TestStore_ClearVaciaTodo(t *testing.T) {
	s := newStore(seeded())
	require.NoError(t, s.Load(context.Background()))

	s.Clear()
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Products())
	assert.Empty(t, s.Lots())
	assert.Empty(t, s.MasterLocations())
}

func TestStore_AccesoresDevuelvenCopias(t *testing.T) {
	s := newStore(seeded())
	require.NoError(t, s.Load(context.Background()))

	lots := s.Lots()
	lots[0].Volume = 99
	assert.Equal(t, 2, s.Lots()[0].Volume)
}

func TestStore_AddMasterLocationIdempotente(t *testing.T) {
	b := seeded()
	s := newStore(b)
	require.NoError(t, s.Load(context.Background()))
	b.ResetCalls()

	require.NoError(t, s.AddMasterLocation(context.Background(), "a-01"))
	assert.Empty(t, b.CallLog(), "etiqueta existente: sin llamada remota")

	require.NoError(t, s.AddMasterLocation(context.Background(), "0-PISO"))
	assert.Equal(t, []string{"masters.create"}, b.CallLog())
	assert.Equal(t, []string{"0-PISO", "A-01", "B-01"}, s.MasterLocations())

	assert.ErrorIs(t, s.AddMasterLocation(context.Background(), "  "), domain.ErrInvalidInput)
}

func TestStore_RemoveMasterLocation(t *testing.T) {
	b := seeded()
	s := newStore(b)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.RemoveMasterLocation(context.Background(), "B-01"))
	assert.Equal(t, []string{"A-01"}, s.MasterLocations())

	b.FailOn["masters.delete"] = domain.ErrRemote
	require.Error(t, s.RemoveMasterLocation(context.Background(), "A-01"))
	assert.Equal(t, []string{"A-01"}, s.MasterLocations(), "falla remota no toca la memoria")
}

func TestStore_RemocionesSinDistinguirMayusculas(t *testing.T) {
	b := seeded()
	s := newStore(b)
	require.NoError(t, s.Load(context.Background()))

	s.RemoveProduct("x")
	assert.Empty(t, s.Products())

	s.ReplaceMasterLocations([]string{"a-01", "b-01"})
	require.NoError(t, s.RemoveMasterLocation(context.Background(), "B-01"))
	assert.Equal(t, []string{"a-01"}, s.MasterLocations())
}

func TestStore_PutProductInsertaAlPrincipio(t *testing.T) {
	s := newStore(seeded())
	require.NoError(t, s.Load(context.Background()))

	s.PutProduct(entity.Product{SKU: "Y", Name: "Colar"})
	s.PutProduct(entity.Product{SKU: "x", Name: "Brinco novo"})
	p := s.Products()
	require.Len(t, p, 2)
	assert.Equal(t, "Y", p[0].SKU)
	assert.Equal(t, "Brinco novo", p[1].Name)

	s.RemoveProduct("Y")
	assert.Len(t, s.Products(), 1)
}

func TestGate_SegundaEntradaRechazada(t *testing.T) {
	var g state.Gate
	release, err := g.Enter()
	require.NoError(t, err)
	assert.True(t, g.Busy())

	_, err = g.Enter()
	assert.ErrorIs(t, err, domain.ErrSubmissionInProgress)

	release()
	assert.False(t, g.Busy())
	release2, err := g.Enter()
	require.NoError(t, err)
	release2()
}
