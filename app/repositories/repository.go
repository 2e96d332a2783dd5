// Package repositories persists the menu catalog, submitted orders and open
// carts. Each store has an in-memory implementation plus MongoDB and SQL
// (GORM) backends for the catalog and orders.
package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/collection"
)

// CatalogStore is the "menuItems" collection.
type CatalogStore interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	// Create assigns the item an ID and stores it.
	Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	// Update replaces the stored item with the same ID.
	// models.ErrNotFound is returned for an unknown ID.
	Update(ctx context.Context, item models.MenuItem) error
	// Delete removes the item. models.ErrNotFound is returned for an unknown ID.
	Delete(ctx context.Context, id string) error
}

// OrderStore is the "orders" collection.
type OrderStore interface {
	// Create assigns the order an ID and stores it as given.
	Create(ctx context.Context, order models.Order) (models.Order, error)
	// UpdateStatus moves a pending order to status. The check and the write
	// are one conditional update: an order that is no longer pending yields
	// models.ErrInvalidTransition, an unknown ID models.ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	// ListSince returns orders created at or after since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]models.Order, error)
}

// CartStore holds open carts. Carts expire after the store's TTL.
type CartStore interface {
	// Get returns models.ErrNotFound for unknown or expired carts.
	Get(ctx context.Context, id string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, id string) error
}

// FindItem loads one item from the catalog.
func FindItem(ctx context.Context, catalog CatalogStore, id string) (models.MenuItem, error) {
	items, err := catalog.List(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	item, ok := collection.First(items, func(m models.MenuItem) bool { return m.ID == id })
	if !ok {
		return models.MenuItem{}, models.ErrNotFound
	}
	return item, nil
}
