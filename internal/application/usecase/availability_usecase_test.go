package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/domain"
)

func TestAvailabilityList_Estado(t *testing.T) {
	b := seededBackend()
	uc := usecase.NewAvailabilityUseCase(loadedStore(t, b), nil)

	p := uc.List(dto.ListQuery{})
	require.Len(t, p.Items, 4)
	status := map[string]string{}
	for _, it := range p.Items {
		status[it.Location] = it.Status
	}
	assert.Equal(t, dto.AvailabilityOccupied, status["A-01"])
	assert.Equal(t, dto.AvailabilityOccupied, status["B-02"])
	assert.Equal(t, dto.AvailabilityFree, status["C-01"])

	p = uc.List(dto.ListQuery{Search: "b-"})
	assert.Len(t, p.Items, 2)
}

func TestAvailabilityAdd_Idempotente(t *testing.T) {
	b := seededBackend()
	uc := usecase.NewAvailabilityUseCase(loadedStore(t, b), nil)
	ctx := context.Background()

	resp, err := uc.Add(ctx, dto.AddLocationRequest{Name: " D-01 "})
	require.NoError(t, err)
	assert.Equal(t, "D-01", resp.Location)
	assert.Equal(t, dto.AvailabilityFree, resp.Status)

	_, err = uc.Add(ctx, dto.AddLocationRequest{Name: "d-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"masters.create"}, b.CallLog(), "la segunda alta no llama a la API")

	_, err = uc.Add(ctx, dto.AddLocationRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAvailabilityDelete(t *testing.T) {
	b := seededBackend()
	uc := usecase.NewAvailabilityUseCase(loadedStore(t, b), nil)
	ctx := context.Background()

	err := uc.Delete(ctx, "a-01")
	assert.ErrorIs(t, err, domain.ErrLocationOccupied)
	assert.Empty(t, b.CallLog())

	assert.ErrorIs(t, uc.Delete(ctx, "Z-99"), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, "c-01"))
	assert.Equal(t, []string{"masters.delete"}, b.CallLog())
	assert.NotContains(t, b.MasterData, "C-01")
	assert.Len(t, uc.List(dto.ListQuery{}).Items, 3)
}

func TestAvailabilityRecords(t *testing.T) {
	b := seededBackend()
	uc := usecase.NewAvailabilityUseCase(loadedStore(t, b), nil)

	recs := uc.Records(dto.ListQuery{Search: "c"})
	require.Len(t, recs, 1)
	assert.Equal(t, "C-01", recs[0].Get("location"))
	assert.Equal(t, "Livre", recs[0].Get("status"))
}
