package model

import (
	"strings"
	"time"
)

// CategoryAll is the pseudo-category that disables category filtering.
const CategoryAll = "All"

// Product is a single catalog entry used across the system.
// It is the canonical type for storage, transport (socket RPC, HTTP) and display.
type Product struct {
	ID            int     `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Category      string  `json:"category" yaml:"category"`
	Price         float64 `json:"price" yaml:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty" yaml:"originalPrice"` // 0 = no markdown
	Image         string  `json:"image" yaml:"image"`
	Featured      bool    `json:"featured" yaml:"featured"`
	Description   string  `json:"description" yaml:"description"`
	Rating        float64 `json:"rating" yaml:"rating"`
	ReviewCount   int     `json:"reviewCount" yaml:"reviewCount"`
}

// HasDiscount reports whether the product carries an original price above its price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > 0 && p.OriginalPrice > p.Price
}

// Discount returns the markdown as a fraction of the original price (0.34 = 34% off).
func (p Product) Discount() float64 {
	if p.OriginalPrice <= 0 {
		return 0
	}
	return (p.OriginalPrice - p.Price) / p.OriginalPrice
}

// Savings returns the absolute amount saved against the original price.
func (p Product) Savings() float64 {
	if !p.HasDiscount() {
		return 0
	}
	return p.OriginalPrice - p.Price
}

// ProductQuery filters the product list.
type ProductQuery struct {
	Category string `json:"category"` // "" or CategoryAll = any
	Search   string `json:"search"`   // case-insensitive name substring
}

// Matches applies the query to a single product.
func (q ProductQuery) Matches(p Product) bool {
	if q.Category != "" && q.Category != CategoryAll && p.Category != q.Category {
		return false
	}
	if q.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search))
}

// ChatMessage is one entry of the assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	IsError   bool      `json:"isError"`
	Timestamp time.Time `json:"timestamp"`
}
