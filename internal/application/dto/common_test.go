package dto_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	p := dto.Paginate(items, 1, 12)
	assert.Equal(t, 12, len(p.Items))
	assert.Equal(t, 1, p.Items[0])
	assert.Equal(t, dto.PageResponse{Page: 1, PageSize: 12, Total: 25, TotalPages: 3}, p.Page)

	p = dto.Paginate(items, 3, 12)
	assert.Equal(t, []int{25}, p.Items)

	p = dto.Paginate(items, 9, 12)
	assert.Equal(t, 3, p.Page.Page, "página fuera de rango se ajusta a la última")

	p = dto.Paginate(items, 0, 0)
	assert.Equal(t, 1, p.Page.Page)
	assert.Equal(t, dto.DefaultPageSize, p.Page.PageSize)
}

func TestPaginate_Vacio(t *testing.T) {
	p := dto.Paginate([]string{}, 2, 9)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items, "se serializa como [] y no null")
	assert.Equal(t, dto.PageResponse{Page: 1, PageSize: 9, Total: 0, TotalPages: 0}, p.Page)
}

func TestPaginate_PageSizeEnorme(t *testing.T) {
	p := dto.Paginate([]int{1, 2, 3}, 1, math.MaxInt)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Equal(t, dto.PageResponse{Page: 1, PageSize: math.MaxInt, Total: 3, TotalPages: 1}, p.Page)

	p = dto.Paginate([]int{1, 2, 3}, 5, math.MaxInt)
	assert.Equal(t, 1, p.Page.Page)
	assert.Len(t, p.Items, 3)
}
