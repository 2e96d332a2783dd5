package seeders

import (
	"context"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/logger"
)

func init() {
	Register("menu", SeedMenu)
}

var demoMenu = []models.MenuItem{
	{Name: "Paneer Tikka", PriceAC: 250, PriceNonAC: 220, Category: string(models.CategoryStarters)},
	{Name: "Chicken 65", PriceAC: 280, PriceNonAC: 250, Category: string(models.CategoryStarters)},
	{Name: "Dal Makhani", PriceAC: 220, PriceNonAC: 190, Category: string(models.CategoryVeg)},
	{Name: "Butter Chicken", PriceAC: 340, PriceNonAC: 310, Category: string(models.CategoryNonVeg)},
	{Name: "Veg Biryani", PriceAC: 260, PriceNonAC: 230, Category: string(models.CategoryMainCourse)},
	{Name: "Gulab Jamun", PriceAC: 90, PriceNonAC: 80, Category: string(models.CategoryDesserts)},
	{Name: "Sweet Lassi", PriceAC: 80, PriceNonAC: 70, Category: string(models.CategoryDrinks)},
}

// SeedMenu inserts the demo menu into an empty catalog.
func SeedMenu(ctx context.Context, t Target) error {
	existing, err := t.Catalog.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("seed: catalog not empty, skipping", "items", len(existing))
		return nil
	}

	for _, item := range demoMenu {
		if _, err := t.Catalog.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
