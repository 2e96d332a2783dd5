package collection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type dish struct {
	name, category string
	price          float64
}

func TestGroupByRanksThenNames(t *testing.T) {
	dishes := []dish{
		{"Lassi", "Drinks", 80},
		{"Dal", "Main Course", 180},
		{"Soup", "", 90},
		{"Naan", "Main Course", 40},
		{"Tea", "Beverages", 20},
	}
	order := map[string]int{"Main Course": 0, "Drinks": 1}
	rank := func(k string) int {
		if r, ok := order[k]; ok {
			return r
		}
		return len(order)
	}

	groups := GroupBy(dishes, func(d dish) string {
		if d.category == "" {
			return "Uncategorized"
		}
		return d.category
	}, rank)

	keys := Map(groups, func(g Group[dish]) string { return g.Key })
	assert.Equal(t, []string{"Main Course", "Drinks", "Beverages", "Uncategorized"}, keys)
	assert.Equal(t, "Dal", groups[0].Items[0].name)
	assert.Equal(t, "Naan", groups[0].Items[1].name)
}

func TestFilterFirstSum(t *testing.T) {
	dishes := []dish{{"Paneer", "Veg", 250}, {"Chicken", "Non-Veg", 320}, {"Palak", "Veg", 210}}

	veg := Filter(dishes, func(d dish) bool { return d.category == "Veg" })
	assert.Len(t, veg, 2)
	assert.NotNil(t, Filter(dishes, func(dish) bool { return false }))

	d, ok := First(dishes, func(d dish) bool { return strings.HasPrefix(d.name, "Chi") })
	assert.True(t, ok)
	assert.Equal(t, 320.0, d.price)

	assert.Equal(t, -1, IndexOf(dishes, func(d dish) bool { return d.name == "Dosa" }))
	assert.Equal(t, 780.0, Sum(dishes, func(d dish) float64 { return d.price }))
}

func TestSortByIsStable(t *testing.T) {
	dishes := []dish{{"a", "x", 2}, {"b", "y", 1}, {"c", "z", 2}}
	SortBy(dishes, func(a, b dish) bool { return a.price > b.price })
	assert.Equal(t, []string{"a", "c", "b"}, Map(dishes, func(d dish) string { return d.name }))
}
