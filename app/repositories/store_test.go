package repositories

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/pkg/database"
)

// storeSuite runs the same contract against every CatalogStore/OrderStore.
type storeSuite struct {
	suite.Suite
	newStores func(t *testing.T) (CatalogStore, OrderStore)
	catalog   CatalogStore
	orders    OrderStore
}

func (s *storeSuite) SetupTest() {
	s.catalog, s.orders = s.newStores(s.T())
}

func TestMemoryStores(t *testing.T) {
	suite.Run(t, &storeSuite{newStores: func(*testing.T) (CatalogStore, OrderStore) {
		return NewMemoryCatalog(), NewMemoryOrders()
	}})
}

func TestSQLiteStores(t *testing.T) {
	suite.Run(t, &storeSuite{newStores: func(t *testing.T) (CatalogStore, OrderStore) {
		db, err := database.OpenSQL("sqlite", filepath.Join(t.TempDir(), "dinein.db"))
		require.NoError(t, err)
		require.NoError(t, AutoMigrate(db))
		t.Cleanup(func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		})
		return NewSQLCatalog(db), NewSQLOrders(db)
	}})
}

func TestInstrumentedStores(t *testing.T) {
	suite.Run(t, &storeSuite{newStores: func(*testing.T) (CatalogStore, OrderStore) {
		return InstrumentCatalog(NewMemoryCatalog()), InstrumentOrders(NewMemoryOrders())
	}})
}

func (s *storeSuite) TestCatalogCRUD() {
	ctx := context.Background()

	created, err := s.catalog.Create(ctx, models.MenuItem{Name: "Paneer Tikka", PriceAC: 250, PriceNonAC: 220})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	_, err = s.catalog.Create(ctx, models.MenuItem{Name: "Gulab Jamun", PriceAC: 90, PriceNonAC: 80, Category: "Desserts"})
	s.Require().NoError(err)

	items, err := s.catalog.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("Paneer Tikka", items[0].Name, "list keeps creation order")
	s.Equal("", items[0].Category)

	created.Category = "Starters"
	created.Image = "1700_paneer.jpg"
	s.Require().NoError(s.catalog.Update(ctx, created))

	got, err := FindItem(ctx, s.catalog, created.ID)
	s.Require().NoError(err)
	s.Equal(created, got)

	s.Require().NoError(s.catalog.Delete(ctx, created.ID))
	_, err = FindItem(ctx, s.catalog, created.ID)
	s.ErrorIs(err, models.ErrNotFound)
}

func (s *storeSuite) TestCatalogUnknownIDs() {
	ctx := context.Background()

	s.ErrorIs(s.catalog.Update(ctx, models.MenuItem{ID: "missing", Name: "x"}), models.ErrNotFound)
	s.ErrorIs(s.catalog.Delete(ctx, "missing"), models.ErrNotFound)
}

func (s *storeSuite) TestOrdersWindowAndOrdering() {
	ctx := context.Background()
	base := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mk := func(table string, at time.Time) models.Order {
		o, err := s.orders.Create(ctx, models.Order{
			TableNumber: table,
			Items:       []models.LineItem{{MenuItemID: "m1", Name: "Dal", Price: 180, Quantity: 2}},
			Total:       360,
			Status:      models.StatusPending,
			CreatedAt:   at,
		})
		s.Require().NoError(err)
		return o
	}

	mk("old", base.Add(-time.Second))
	first := mk("1", base)
	latest := mk("2", base.Add(5*time.Hour))

	got, err := s.orders.ListSince(ctx, base)
	s.Require().NoError(err)
	s.Require().Len(got, 2, "boundary is inclusive and older orders are excluded")
	s.Equal(latest.ID, got[0].ID)
	s.Equal(first.ID, got[1].ID)
	s.True(got[1].CreatedAt.Equal(base))
	s.Equal([]models.LineItem{{MenuItemID: "m1", Name: "Dal", Price: 180, Quantity: 2}}, got[1].Items)
	s.Equal(360.0, got[1].Total)
}

func (s *storeSuite) TestStatusTransitions() {
	ctx := context.Background()
	o, err := s.orders.Create(ctx, models.Order{TableNumber: "3", Status: models.StatusPending, CreatedAt: time.Now()})
	s.Require().NoError(err)

	s.Require().NoError(s.orders.UpdateStatus(ctx, o.ID, models.StatusServed))
	s.ErrorIs(s.orders.UpdateStatus(ctx, o.ID, models.StatusCancelled), models.ErrInvalidTransition)
	s.ErrorIs(s.orders.UpdateStatus(ctx, o.ID, models.StatusServed), models.ErrInvalidTransition)
	s.ErrorIs(s.orders.UpdateStatus(ctx, "missing", models.StatusServed), models.ErrNotFound)

	got, err := s.orders.ListSince(ctx, time.Time{})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(models.StatusServed, got[0].Status)
}

func TestConcurrentTransitionsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	orders := NewMemoryOrders()
	o, err := orders.Create(ctx, models.Order{Status: models.StatusPending, CreatedAt: time.Now()})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		status := models.StatusServed
		if i%2 == 1 {
			status = models.StatusCancelled
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- orders.UpdateStatus(ctx, o.ID, status)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, models.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestMemoryListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	catalog := NewMemoryCatalog(models.MenuItem{ID: "m1", Name: "Dal"})

	items, _ := catalog.List(ctx)
	items[0].Name = "changed"

	again, _ := catalog.List(ctx)
	assert.Equal(t, "Dal", again[0].Name)
}
