package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/collection"
)

// MemoryCatalog keeps the catalog in insertion order.
type MemoryCatalog struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

func NewMemoryCatalog(seed ...models.MenuItem) *MemoryCatalog {
	return &MemoryCatalog{items: append([]models.MenuItem(nil), seed...)}
}

func (s *MemoryCatalog) List(_ context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MenuItem{}, s.items...), nil
}

func (s *MemoryCatalog) Create(_ context.Context, item models.MenuItem) (models.MenuItem, error) {
	item.ID = uuid.NewString()

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

func (s *MemoryCatalog) Update(_ context.Context, item models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryCatalog) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// MemoryOrders is an OrderStore guarded by a single mutex, which makes the
// pending check and the status write atomic.
type MemoryOrders struct {
	mu     sync.Mutex
	orders map[string]models.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: map[string]models.Order{}}
}

func (s *MemoryOrders) Create(_ context.Context, order models.Order) (models.Order, error) {
	order.ID = uuid.NewString()
	order.Items = append([]models.LineItem(nil), order.Items...)

	s.mu.Lock()
	s.orders[order.ID] = order
	s.mu.Unlock()
	return order, nil
}

func (s *MemoryOrders) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return models.ErrNotFound
	}
	if !models.CanTransition(o.Status, status) {
		return models.ErrInvalidTransition
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

func (s *MemoryOrders) ListSince(_ context.Context, since time.Time) ([]models.Order, error) {
	s.mu.Lock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if !o.CreatedAt.Before(since) {
			o.Items = append([]models.LineItem(nil), o.Items...)
			out = append(out, o)
		}
	}
	s.mu.Unlock()

	return collection.SortBy(out, func(a, b models.Order) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}
