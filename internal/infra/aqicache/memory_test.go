package aqicache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	rating := aqi.Rating{AQI: 72, Observations: 3, Source: "airnow"}
	require.NoError(t, store.Set(ctx, "box@2025-10-04", rating, 0))

	got, ok, err := store.Get(ctx, "box@2025-10-04")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rating, got)
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 10, 4, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", aqi.Rating{AQI: 10}, time.Minute))
	_, ok, _ := store.Get(ctx, "k")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, store.Len())
}
