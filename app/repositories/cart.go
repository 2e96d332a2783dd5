package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/cache"
)

const cartKeyPrefix = "cart:"

type cacheCarts struct {
	store cache.Store
	ttl   time.Duration
}

// NewCartStore keeps carts in store. Every Save renews the TTL.
func NewCartStore(store cache.Store, ttl time.Duration) CartStore {
	return &cacheCarts{store: store, ttl: ttl}
}

func (s *cacheCarts) Get(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	ok, err := s.store.Get(ctx, cartKeyPrefix+id, &cart)
	if err != nil {
		return nil, fmt.Errorf("carts: get %s: %w", id, err)
	}
	if !ok {
		return nil, models.ErrNotFound
	}
	if cart.Lines == nil {
		cart.Lines = []models.LineItem{}
	}
	return &cart, nil
}

func (s *cacheCarts) Save(ctx context.Context, cart *models.Cart) error {
	if err := s.store.Set(ctx, cartKeyPrefix+cart.ID, cart, s.ttl); err != nil {
		return fmt.Errorf("carts: save %s: %w", cart.ID, err)
	}
	return nil
}

func (s *cacheCarts) Delete(ctx context.Context, id string) error {
	return s.store.Del(ctx, cartKeyPrefix+id)
}
