package catalog

import (
	"errors"
	"sort"

	"github.com/pharmacare/showcase/internal/model"
)

// ErrNotFound is returned when a product id does not exist.
var ErrNotFound = errors.New("product not found")

// Memory is an in-process CatalogQuerier over a fixed seed.
type Memory struct {
	categories []string
	products   []model.Product
}

var _ model.CatalogQuerier = (*Memory)(nil)

// NewMemory builds a querier over seed. "All" is always the first category.
func NewMemory(seed Seed) *Memory {
	cats := []string{model.CategoryAll}
	for _, c := range seed.Categories {
		if c != model.CategoryAll {
			cats = append(cats, c)
		}
	}
	products := make([]model.Product, len(seed.Products))
	copy(products, seed.Products)
	return &Memory{categories: cats, products: products}
}

// Default returns a querier over the built-in catalog.
func Default() (*Memory, error) {
	seed, err := LoadSeed("")
	if err != nil {
		return nil, err
	}
	return NewMemory(seed), nil
}

func (m *Memory) AllProducts() ([]model.Product, error) {
	return clone(m.products), nil
}

func (m *Memory) Products(q model.ProductQuery) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range m.products {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) Product(id int) (model.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

func (m *Memory) Categories() ([]string, error) {
	out := make([]string, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *Memory) Featured() ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range m.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

// Trending returns the highest rated products, ties in catalog order.
func (m *Memory) Trending(limit int) ([]model.Product, error) {
	out := clone(m.products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return head(out, limit), nil
}

// Discounted returns products with an original price ordered by discount
// ratio, ties in catalog order.
func (m *Memory) Discounted(limit int) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range m.products {
		if p.OriginalPrice > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Discount() > out[j].Discount() })
	return head(out, limit), nil
}

func clone(ps []model.Product) []model.Product {
	out := make([]model.Product, len(ps))
	copy(out, ps)
	return out
}

func head(ps []model.Product, limit int) []model.Product {
	if limit > 0 && len(ps) > limit {
		return ps[:limit]
	}
	return ps
}
