package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-console/pkg/search"
)

func TestContains(t *testing.T) {
	assert.True(t, search.Contains("Brinco Dourado", "dourado"))
	assert.True(t, search.Contains("EXPEDIÇÃO", "expedição"))
	assert.True(t, search.Contains("qualquer", ""))
	assert.True(t, search.Contains("qualquer", "   "))
	assert.False(t, search.Contains("Colar", "brinco"))
}

func TestAnyContains(t *testing.T) {
	assert.True(t, search.AnyContains("a-01", "Colar", "SKU-9", "A-01"))
	assert.False(t, search.AnyContains("z", "Colar", "SKU-9"))
	assert.True(t, search.AnyContains("", "Colar"))
}

func TestFilter_ConservaOrden(t *testing.T) {
	type item struct{ name, sku string }
	items := []item{{"Brinco", "B1"}, {"Colar", "C1"}, {"Brinco argola", "B2"}}

	got := search.Filter(items, "BRINCO", func(i item) []string { return []string{i.name, i.sku} })
	assert.Equal(t, []item{{"Brinco", "B1"}, {"Brinco argola", "B2"}}, got)

	all := search.Filter(items, "", func(i item) []string { return []string{i.name} })
	assert.Len(t, all, 3)
}
