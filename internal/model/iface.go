package model

// CatalogQuerier provides read-only queries on the product catalog.
type CatalogQuerier interface {
	AllProducts() ([]Product, error)
	Products(q ProductQuery) ([]Product, error)
	Product(id int) (Product, error)
	Categories() ([]string, error)
	Featured() ([]Product, error)
	Trending(limit int) ([]Product, error)
	Discounted(limit int) ([]Product, error)
}
