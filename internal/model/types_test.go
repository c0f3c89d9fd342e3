package model

import "testing"

func TestProductDiscount(t *testing.T) {
	t.Parallel()

	p := Product{Price: 99, OriginalPrice: 150}
	if !p.HasDiscount() {
		t.Fatal("expected discount")
	}
	if got := p.Savings(); got != 51 {
		t.Errorf("Savings() = %v, want 51", got)
	}
	if got := p.Discount(); got != 0.34 {
		t.Errorf("Discount() = %v, want 0.34", got)
	}

	plain := Product{Price: 10}
	if plain.HasDiscount() || plain.Discount() != 0 || plain.Savings() != 0 {
		t.Errorf("product without original price reported a discount: %+v", plain)
	}
}

func TestProductQueryMatches(t *testing.T) {
	t.Parallel()

	p := Product{Name: "SPF 50 Sunblock Lotion", Category: "Sunblocks"}

	tests := []struct {
		name string
		q    ProductQuery
		want bool
	}{
		{"empty query", ProductQuery{}, true},
		{"all category", ProductQuery{Category: CategoryAll}, true},
		{"same category", ProductQuery{Category: "Sunblocks"}, true},
		{"other category", ProductQuery{Category: "Vitamins"}, false},
		{"case-insensitive search", ProductQuery{Search: "sunBLOCK"}, true},
		{"search miss", ProductQuery{Search: "vitamin"}, false},
		{"category and search", ProductQuery{Category: "Sunblocks", Search: "lotion"}, true},
		{"description is not searched", ProductQuery{Search: "broad spectrum"}, false},
	}

	for _, tt := range tests {
		if got := tt.q.Matches(p); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}
