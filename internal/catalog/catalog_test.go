package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmacare/showcase/internal/model"
)

func ids(ps []model.Product) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func newDefault(t *testing.T) *Memory {
	t.Helper()
	m, err := Default()
	require.NoError(t, err)
	return m
}

func TestLoadSeed_Embedded(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	assert.Len(t, seed.Products, 10)
	assert.Len(t, seed.Categories, 10)
	assert.Equal(t, "Bubble Bath Set", seed.Products[0].Name)
	assert.Equal(t, 150.0, seed.Products[0].OriginalPrice)
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := []byte(`
categories: [Vitamins]
products:
  - {id: 7, name: Zinc, category: Vitamins, price: 5, rating: 4.1}
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Products, 1)
	assert.Equal(t, "Zinc", seed.Products[0].Name)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSeed_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate id", `
categories: [A]
products:
  - {id: 1, name: x, category: A, price: 1}
  - {id: 1, name: y, category: A, price: 1}`},
		{"missing name", `
categories: [A]
products:
  - {id: 1, category: A, price: 1}`},
		{"zero price", `
categories: [A]
products:
  - {id: 1, name: x, category: A, price: 0}`},
		{"original below price", `
categories: [A]
products:
  - {id: 1, name: x, category: A, price: 10, originalPrice: 5}`},
		{"unknown category", `
categories: [A]
products:
  - {id: 1, name: x, category: B, price: 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidSeed)
		})
	}
}

func TestMemory_Products(t *testing.T) {
	m := newDefault(t)

	all, err := m.Products(model.ProductQuery{Category: model.CategoryAll})
	require.NoError(t, err)
	assert.Len(t, all, 10)

	baby, err := m.Products(model.ProductQuery{Category: "Baby Care"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(baby))

	set, err := m.Products(model.ProductQuery{Category: "Baby Care", Search: "SET"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(set))

	lotion, err := m.Products(model.ProductQuery{Search: "lotion"})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, ids(lotion))

	none, err := m.Products(model.ProductQuery{Category: "Vitamins", Search: "lotion"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemory_Product(t *testing.T) {
	m := newDefault(t)

	p, err := m.Product(4)
	require.NoError(t, err)
	assert.Equal(t, "First Aid Kit Deluxe", p.Name)

	_, err = m.Product(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Categories(t *testing.T) {
	m := newDefault(t)
	cats, err := m.Categories()
	require.NoError(t, err)
	require.Len(t, cats, 10)
	assert.Equal(t, model.CategoryAll, cats[0])
	assert.Equal(t, "Allergy Relief", cats[9])
}

func TestMemory_Lanes(t *testing.T) {
	m := newDefault(t)

	featured, err := m.Featured()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(featured))

	trending, err := m.Trending(5)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 9, 4, 8}, ids(trending))

	discounted, err := m.Discounted(5)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 10, 4, 1, 6}, ids(discounted))

	everything, err := m.Trending(0)
	require.NoError(t, err)
	assert.Len(t, everything, 10)
}

func TestMemory_ResultsAreCopies(t *testing.T) {
	m := newDefault(t)
	all, _ := m.AllProducts()
	all[0].Name = "changed"

	p, err := m.Product(1)
	require.NoError(t, err)
	assert.Equal(t, "Bubble Bath Set", p.Name)
}

func TestProviders(t *testing.T) {
	m := newDefault(t)

	trending, err := TrendingLane(m, 3).GetAllItems()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 9}, ids(trending))

	discounts, err := DiscountLane(m, 2).GetAllItems()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 10}, ids(discounts))
}
