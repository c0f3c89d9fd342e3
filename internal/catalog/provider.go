package catalog

import "github.com/pharmacare/showcase/internal/model"

// Provider supplies the ordered content of one lane.
type Provider interface {
	GetAllItems() ([]model.Product, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() ([]model.Product, error)

func (f ProviderFunc) GetAllItems() ([]model.Product, error) { return f() }

// TrendingLane feeds the leftward "Trending Now" lane.
func TrendingLane(q model.CatalogQuerier, limit int) Provider {
	return ProviderFunc(func() ([]model.Product, error) { return q.Trending(limit) })
}

// DiscountLane feeds the rightward "Hot Discounts" lane.
func DiscountLane(q model.CatalogQuerier, limit int) Provider {
	return ProviderFunc(func() ([]model.Product, error) { return q.Discounted(limit) })
}
