package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/metrics"
)

// InstrumentCatalog records the latency and outcome of every call on next.
func InstrumentCatalog(next CatalogStore) CatalogStore {
	return instrumentedCatalog{next: next}
}

// InstrumentOrders records the latency and outcome of every call on next.
func InstrumentOrders(next OrderStore) OrderStore {
	return instrumentedOrders{next: next}
}

type instrumentedCatalog struct{ next CatalogStore }

func (s instrumentedCatalog) List(ctx context.Context) (items []models.MenuItem, err error) {
	defer metrics.ObserveStore(menuCollection, "list", time.Now(), &err)
	return s.next.List(ctx)
}

func (s instrumentedCatalog) Create(ctx context.Context, item models.MenuItem) (_ models.MenuItem, err error) {
	defer metrics.ObserveStore(menuCollection, "create", time.Now(), &err)
	return s.next.Create(ctx, item)
}

func (s instrumentedCatalog) Update(ctx context.Context, item models.MenuItem) (err error) {
	defer metrics.ObserveStore(menuCollection, "update", time.Now(), &err)
	return s.next.Update(ctx, item)
}

func (s instrumentedCatalog) Delete(ctx context.Context, id string) (err error) {
	defer metrics.ObserveStore(menuCollection, "delete", time.Now(), &err)
	return s.next.Delete(ctx, id)
}

type instrumentedOrders struct{ next OrderStore }

func (s instrumentedOrders) Create(ctx context.Context, order models.Order) (_ models.Order, err error) {
	defer metrics.ObserveStore(orderCollection, "create", time.Now(), &err)
	return s.next.Create(ctx, order)
}

func (s instrumentedOrders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (err error) {
	defer metrics.ObserveStore(orderCollection, "update_status", time.Now(), &err)
	return s.next.UpdateStatus(ctx, id, status)
}

func (s instrumentedOrders) ListSince(ctx context.Context, since time.Time) (_ []models.Order, err error) {
	defer metrics.ObserveStore(orderCollection, "list_since", time.Now(), &err)
	return s.next.ListSince(ctx, since)
}
