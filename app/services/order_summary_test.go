package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dinein/app/models"
	"github.com/shashiranjanraj/dinein/app/repositories"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestStartOfYesterday(t *testing.T) {
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2024, 5, 2, 9, 30, 0, 0, ist), time.Date(2024, 5, 1, 0, 0, 0, 0, ist)},
		{time.Date(2024, 3, 1, 0, 0, 0, 0, ist), time.Date(2024, 2, 29, 0, 0, 0, 0, ist)},
		{time.Date(2024, 1, 1, 23, 59, 0, 0, ist), time.Date(2023, 12, 31, 0, 0, 0, 0, ist)},
		// 20:00 UTC is already the next day in IST.
		{time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC), time.Date(2024, 5, 1, 0, 0, 0, 0, ist)},
	}
	for _, tt := range tests {
		assert.True(t, StartOfYesterday(tt.now, ist).Equal(tt.want), "now=%s got=%s", tt.now, StartOfYesterday(tt.now, ist))
	}
}

func newSummaryFixture(t *testing.T, now time.Time) (*OrderSummary, *repositories.MemoryOrders, *recordingNotifier) {
	t.Helper()
	orders := repositories.NewMemoryOrders()
	notify := &recordingNotifier{}
	s := NewOrderSummary(orders, ist, notify)
	s.now = fixedClock(now)
	return s, orders, notify
}

func TestRecentWindowAndServeFlow(t *testing.T) {
	ctx := context.Background()
	placed := time.Date(2024, 5, 1, 20, 15, 0, 0, ist)
	s, orders, notify := newSummaryFixture(t, placed.Add(24*time.Hour))

	old, err := orders.Create(ctx, models.Order{TableNumber: "1", Status: models.StatusPending, CreatedAt: placed.Add(-48 * time.Hour)})
	require.NoError(t, err)
	o, err := orders.Create(ctx, models.Order{
		TableNumber: "12",
		IsAC:        true,
		Items:       []models.LineItem{{MenuItemID: "m1", Name: "Paneer Tikka", Price: 250, Quantity: 2}},
		Total:       500,
		Status:      models.StatusPending,
		CreatedAt:   placed,
	})
	require.NoError(t, err)

	recent, err := s.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1, "order from two days ago is outside the window")
	assert.NotEqual(t, old.ID, recent[0].ID)
	assert.Equal(t, models.StatusPending, recent[0].Status)
	assert.Equal(t, []string{ActionServe, ActionCancel}, recent[0].Actions)
	assert.Equal(t, ToneNeutral, recent[0].Tone)
	assert.Equal(t, "01 May 2024, 8:15 PM", recent[0].CreatedAtText)

	require.NoError(t, s.MarkServed(ctx, o.ID))

	recent, err = s.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusServed, recent[0].Status)
	assert.Empty(t, recent[0].Actions)
	assert.Equal(t, TonePositive, recent[0].Tone)

	assert.ErrorIs(t, s.MarkCancelled(ctx, o.ID), models.ErrInvalidTransition)
	assert.ErrorIs(t, s.MarkServed(ctx, "missing"), models.ErrNotFound)
	assert.Equal(t, []StatusEvent{{ID: o.ID, Status: models.StatusServed}}, notify.changed)
}

func TestRecentNewestFirstAndCancelledTone(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, ist)
	s, orders, _ := newSummaryFixture(t, now)

	first, _ := orders.Create(ctx, models.Order{TableNumber: "1", Status: models.StatusPending, CreatedAt: now.Add(-3 * time.Hour)})
	second, _ := orders.Create(ctx, models.Order{TableNumber: "2", Status: models.StatusPending, CreatedAt: now.Add(-time.Hour)})
	require.NoError(t, s.MarkCancelled(ctx, first.ID))

	recent, err := s.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].ID)
	assert.Equal(t, ToneNegative, recent[1].Tone)
	assert.NotNil(t, recent[1].Items)
}

func TestPrintHasNoControls(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, ist)
	s, orders, _ := newSummaryFixture(t, now)

	_, err := orders.Create(ctx, models.Order{
		TableNumber: "7",
		Items:       []models.LineItem{{Name: "Dal <Tadka>", Price: 180, Quantity: 1, Notes: "no onion"}},
		Total:       180,
		Status:      models.StatusPending,
		CreatedAt:   now,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Print(ctx, &buf))
	out := buf.String()

	assert.Contains(t, out, "window.print()")
	assert.Contains(t, out, "Table 7")
	assert.Contains(t, out, "Dal &lt;Tadka&gt;")
	assert.Contains(t, out, "no onion")
	assert.Contains(t, out, "180.00")
	assert.NotContains(t, out, "<button")
	assert.NotContains(t, out, "<form")
}
