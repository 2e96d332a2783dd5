package models

import "strings"

// Category is a menu section. Items are not required to carry one.
type Category string

const (
	CategoryVeg        Category = "Veg"
	CategoryNonVeg     Category = "Non-Veg"
	CategoryStarters   Category = "Starters"
	CategoryMainCourse Category = "Main Course"
	CategoryDesserts   Category = "Desserts"
	CategoryDrinks     Category = "Drinks"
)

// Uncategorized labels items with no category when a menu is grouped.
const Uncategorized = "Uncategorized"

// Categories lists the known categories in display order.
var Categories = []Category{
	CategoryVeg,
	CategoryNonVeg,
	CategoryStarters,
	CategoryMainCourse,
	CategoryDesserts,
	CategoryDrinks,
}

// ValidCategory reports whether s is one of Categories.
func ValidCategory(s string) bool {
	return CategoryRank(s) < len(Categories)
}

// CategoryRank orders a group label: known categories by display order,
// then any other label, then Uncategorized last.
func CategoryRank(s string) int {
	for i, c := range Categories {
		if string(c) == s {
			return i
		}
	}
	if s == Uncategorized {
		return len(Categories) + 1
	}
	return len(Categories)
}

// MenuItem is one dish in the catalog. Prices are per unit, in the same
// currency everywhere.
type MenuItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PriceAC    float64 `json:"priceAC"`
	PriceNonAC float64 `json:"priceNonAC"`
	// Price is the single price carried by items created before room pricing.
	Price    float64 `json:"price,omitempty"`
	Category string  `json:"category,omitempty"`
	// Image is the stored image filename, not a URL.
	Image string `json:"image,omitempty"`
}

// PriceFor returns the unit price for the room type, falling back to the
// legacy single price when the room price is unset.
func (m MenuItem) PriceFor(isAC bool) float64 {
	p := m.PriceNonAC
	if isAC {
		p = m.PriceAC
	}
	if p == 0 {
		return m.Price
	}
	return p
}

// GroupLabel is the category used when grouping the menu.
func (m MenuItem) GroupLabel() string {
	if strings.TrimSpace(m.Category) == "" {
		return Uncategorized
	}
	return m.Category
}
