package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/repositories"
	"github.com/shashiranjanraj/dinein/pkg/cache"
	"github.com/shashiranjanraj/dinein/pkg/storage"
)

type mockUploader struct{ mock.Mock }

func (m *mockUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []models.Order
	changed []StatusEvent
}

func (n *recordingNotifier) OrderCreated(o models.Order) {
	n.mu.Lock()
	n.created = append(n.created, o)
	n.mu.Unlock()
}

func (n *recordingNotifier) OrderStatusChanged(id string, status models.OrderStatus) {
	n.mu.Lock()
	n.changed = append(n.changed, StatusEvent{ID: id, Status: status})
	n.mu.Unlock()
}

func newTestImages(t *testing.T) *ImageStore {
	t.Helper()
	return NewImageStore(storage.NewLocalDisk(t.TempDir(), ""), "menuImages", "default.png")
}

func newTestCarts() repositories.CartStore {
	return repositories.NewCartStore(cache.NewMemory(), time.Hour)
}

func seedCatalog(t *testing.T, items ...models.MenuItem) repositories.CatalogStore {
	t.Helper()
	catalog := repositories.NewMemoryCatalog()
	for _, it := range items {
		_, err := catalog.Create(context.Background(), it)
		require.NoError(t, err)
	}
	return catalog
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
