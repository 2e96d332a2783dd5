package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/repositories"
	"github.com/shashiranjanraj/dinein/pkg/collection"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "All"

// ImageLinker resolves an item's image reference to a public URL.
type ImageLinker interface {
	URL(name string) string
}

// MenuEntry is a menu item priced for one room type.
type MenuEntry struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	PriceAC    float64 `json:"priceAC"`
	PriceNonAC float64 `json:"priceNonAC"`
	Image      string  `json:"image"`
	ImageURL   string  `json:"imageUrl"`
}

func newEntry(item models.MenuItem, isAC bool, images ImageLinker) MenuEntry {
	return MenuEntry{
		ID:         item.ID,
		Name:       item.Name,
		Category:   item.GroupLabel(),
		Price:      item.PriceFor(isAC),
		PriceAC:    item.PriceAC,
		PriceNonAC: item.PriceNonAC,
		Image:      item.Image,
		ImageURL:   images.URL(item.Image),
	}
}

// BrowseFilter holds the three independent browse dimensions.
type BrowseFilter struct {
	Category string
	Search   string
	Room     string
}

type BrowseResult struct {
	Room       string                        `json:"room"`
	Categories []string                      `json:"categories"`
	Items      []MenuEntry                   `json:"items"`
	Groups     []collection.Group[MenuEntry] `json:"groups"`
}

// ParseRoom maps a room query value to isAC. Empty means AC.
func ParseRoom(room string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(room)) {
	case "", "ac":
		return true, nil
	case "nonac", "non-ac", "non_ac":
		return false, nil
	}
	return false, models.Invalid(map[string]string{"room": "The selected room is invalid."})
}

type MenuBrowser struct {
	catalog repositories.CatalogStore
	images  ImageLinker
}

func NewMenuBrowser(catalog repositories.CatalogStore, images ImageLinker) *MenuBrowser {
	return &MenuBrowser{catalog: catalog, images: images}
}

// Browse filters the catalog in process and groups the result by category.
func (s *MenuBrowser) Browse(ctx context.Context, f BrowseFilter) (BrowseResult, error) {
	isAC, err := ParseRoom(f.Room)
	if err != nil {
		return BrowseResult{}, err
	}

	items, err := s.catalog.List(ctx)
	if err != nil {
		return BrowseResult{}, fmt.Errorf("menu browser: %w", err)
	}

	category := strings.TrimSpace(f.Category)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	matched := collection.Filter(items, func(m models.MenuItem) bool {
		if category != "" && !strings.EqualFold(category, AllCategories) && m.GroupLabel() != category {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(m.Name), search)
	})

	entries := collection.Map(matched, func(m models.MenuItem) MenuEntry {
		return newEntry(m, isAC, s.images)
	})

	return BrowseResult{
		Room:       models.RoomName(isAC),
		Categories: categoryOptions(),
		Items:      entries,
		Groups: collection.GroupBy(entries, func(e MenuEntry) string {
			return e.Category
		}, models.CategoryRank),
	}, nil
}

func categoryOptions() []string {
	out := []string{AllCategories}
	for _, c := range models.Categories {
		out = append(out, string(c))
	}
	return out
}
