package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartStub struct {
	ID    string `json:"id"`
	Lines int    `json:"lines"`
}

func TestMemoryRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Set(ctx, "cart:1", cartStub{ID: "1", Lines: 2}, time.Hour))

	var got cartStub
	ok, err := s.Get(ctx, "cart:1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cartStub{ID: "1", Lines: 2}, got)

	require.NoError(t, s.Del(ctx, "cart:1", "cart:missing"))
	ok, err = s.Get(ctx, "cart:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemory()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, s.Set(ctx, "forever", 2, 0))

	now = now.Add(time.Minute)

	var v int
	ok, _ := s.Get(ctx, "k", &v)
	assert.False(t, ok, "entry expires at its deadline")

	ok, _ = s.Get(ctx, "forever", &v)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, "memory", s.Driver())
}

func TestMemorySweepDropsOnlyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemory()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "cart:old", cartStub{ID: "old"}, time.Minute))
	require.NoError(t, s.Set(ctx, "cart:new", cartStub{ID: "new"}, time.Hour))
	require.NoError(t, s.Set(ctx, "cart:forever", cartStub{ID: "forever"}, 0))

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Sweep())

	var got cartStub
	ok, err := s.Get(ctx, "cart:new", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Get(ctx, "cart:forever", &got)
	require.NoError(t, err)
	assert.True(t, ok)
}
