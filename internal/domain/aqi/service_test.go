package aqi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
)

func TestAggregateReturnsProviderRating(t *testing.T) {
	source := &stubSource{
		observations: []Observation{{Station: "a", AQI: 40}, {Station: "b", AQI: 87}},
		rating:       87,
	}
	svc := newServiceUnderTest(source, newMapCache())

	resp, err := svc.Aggregate(context.Background(), NewRequest(40.7128, -74.0060, "2025-10-04"))
	require.NoError(t, err)
	require.Equal(t, 87, resp.AQI)
	require.Equal(t, "2025-10-04", resp.Date)
	require.Equal(t, 2, resp.Observations)
	require.Equal(t, "stub", resp.Source)
	require.False(t, resp.Cached)
	require.Equal(t, "2025-10-04", source.lastDate)
	require.InDelta(t, -74.1060, source.lastBox.MinLon, 1e-9)
	require.InDelta(t, 40.6128, source.lastBox.MinLat, 1e-9)
	require.InDelta(t, -73.9060, source.lastBox.MaxLon, 1e-9)
	require.InDelta(t, 40.8128, source.lastBox.MaxLat, 1e-9)
	require.Equal(t, 1, source.rateCalls)
}

func TestAggregateNoObservations(t *testing.T) {
	source := &stubSource{}
	svc := newServiceUnderTest(source, newMapCache())

	_, err := svc.Aggregate(context.Background(), NewRequest(51.5, -0.1, "2025-10-04"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoData)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNoData))
	require.Zero(t, source.rateCalls)
}

func TestAggregateRejectsMalformedCoordinates(t *testing.T) {
	lat := 40.0
	tests := []struct {
		name string
		req  Request
	}{
		{name: "missing longitude", req: Request{Latitude: &lat}},
		{name: "missing both", req: Request{}},
		{name: "latitude out of range", req: NewRequest(91, 0, "")},
		{name: "longitude out of range", req: NewRequest(0, -181, "")},
		{name: "not a number", req: NewRequest(math.NaN(), 0, "")},
		{name: "infinite", req: NewRequest(0, math.Inf(1), "")},
		{name: "bad date", req: NewRequest(10, 10, "2025/10/04")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := &stubSource{rating: 10, observations: []Observation{{AQI: 10}}}
			svc := newServiceUnderTest(source, newMapCache())

			_, err := svc.Aggregate(context.Background(), tc.req)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "got %v", err)
			require.Zero(t, source.observationCalls)
		})
	}
}

func TestAggregateUpstreamFailure(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	svc := newServiceUnderTest(source, newMapCache())

	_, err := svc.Aggregate(context.Background(), NewRequest(34.05, -118.24, "2025-10-04"))
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstreamError))
	require.NotErrorIs(t, err, ErrNoData)
}

func TestAggregateUsesCache(t *testing.T) {
	source := &stubSource{observations: []Observation{{AQI: 55}}, rating: 55}
	cache := newMapCache()
	svc := newServiceUnderTest(source, cache)
	req := NewRequest(41.8781, -87.6298, "2025-10-04")

	first, err := svc.Aggregate(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Aggregate(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, first.AQI, second.AQI)
	require.True(t, second.Cached)
	require.Equal(t, 1, source.observationCalls)
	require.Equal(t, time.Hour, cache.lastTTL)
}

func TestAggregateIgnoresCacheErrors(t *testing.T) {
	source := &stubSource{observations: []Observation{{AQI: 12}}, rating: 12}
	cache := newMapCache()
	cache.err = errors.New("valkey down")
	svc := newServiceUnderTest(source, cache)

	resp, err := svc.Aggregate(context.Background(), NewRequest(47.6062, -122.3321, "2025-10-04"))
	require.NoError(t, err)
	require.Equal(t, 12, resp.AQI)
}

func TestAggregateDefaultsToToday(t *testing.T) {
	source := &stubSource{observations: []Observation{{AQI: 30}}, rating: 30}
	svc := newServiceUnderTest(source, nil)
	svc.now = func() time.Time { return time.Date(2025, 10, 5, 3, 0, 0, 0, time.UTC) }
	svc.cfg.Location = time.FixedZone("America/New_York", -4*60*60)

	resp, err := svc.Aggregate(context.Background(), NewRequest(40.7, -74.0, " "))
	require.NoError(t, err)
	require.Equal(t, "2025-10-04", resp.Date)
}

func TestAggregateAppliesUpstreamTimeout(t *testing.T) {
	source := &stubSource{observations: []Observation{{AQI: 30}}, rating: 30}
	svc := newServiceUnderTest(source, nil)

	_, err := svc.Aggregate(context.Background(), NewRequest(40.7, -74.0, "2025-10-04"))
	require.NoError(t, err)
	require.True(t, source.hadDeadline)
}

func TestBoundingBox(t *testing.T) {
	box := NewBoundingBox(51.5, -0.1, 0.1)
	arr := box.Array()
	require.InDelta(t, -0.2, arr[0], 1e-9)
	require.InDelta(t, 51.4, arr[1], 1e-9)
	require.InDelta(t, 0.0, arr[2], 1e-9)
	require.InDelta(t, 51.6, arr[3], 1e-9)
	require.True(t, box.Contains(51.5, -0.1))
	require.True(t, box.Contains(51.45, -0.15))
	require.False(t, box.Contains(51.7, -0.1))

	lat, lon := box.Center()
	require.InDelta(t, 51.5, lat, 1e-9)
	require.InDelta(t, -0.1, lon, 1e-9)
	require.Equal(t, "-0.2000,51.4000,0.0000,51.6000@2025-10-04", box.CacheKey("2025-10-04"))
}

func TestBoundingBoxClampedAtEdges(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     [4]float64
	}{
		{name: "north pole antimeridian", lat: 89.95, lon: 179.95, want: [4]float64{179.85, 89.85, 180, 90}},
		{name: "south pole antimeridian", lat: -89.95, lon: -179.95, want: [4]float64{-180, -90, -179.85, -89.85}},
		{name: "exact pole", lat: 90, lon: 0, want: [4]float64{-0.1, 89.9, 0.1, 90}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			box := NewBoundingBox(tc.lat, tc.lon, 0.1)
			got := box.Array()
			for i := range got {
				require.InDelta(t, tc.want[i], got[i], 1e-9)
			}
			require.True(t, box.Contains(tc.lat, tc.lon))
			lat, lon := box.Center()
			require.NoError(t, ValidateCoordinates(lat, lon))
		})
	}
}

func TestAggregateNearPoleQueriesValidBox(t *testing.T) {
	source := &stubSource{observations: []Observation{{AQI: 12}}, rating: 12}
	svc := newServiceUnderTest(source, nil)

	resp, err := svc.Aggregate(context.Background(), NewRequest(89.95, 179.95, "2025-10-04"))
	require.NoError(t, err)
	require.Equal(t, 12, resp.AQI)
	require.LessOrEqual(t, source.lastBox.MaxLat, 90.0)
	require.LessOrEqual(t, source.lastBox.MaxLon, 180.0)
}

func TestHighestAQI(t *testing.T) {
	require.Zero(t, HighestAQI(nil))
	require.Equal(t, 151, HighestAQI([]Observation{{AQI: 20}, {AQI: 151}, {AQI: 99}}))
}

func newServiceUnderTest(source Source, cache Cache) *service {
	cfg := Config{
		HalfWidth:       0.1,
		UpstreamTimeout: time.Second,
		CacheTTL:        time.Hour,
		Location:        time.UTC,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(cfg, source, cache, logger).(*service)
}

type stubSource struct {
	observations     []Observation
	rating           int
	err              error
	lastBox          BoundingBox
	lastDate         string
	observationCalls int
	rateCalls        int
	hadDeadline      bool
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Observations(ctx context.Context, box BoundingBox, date string) ([]Observation, error) {
	s.observationCalls++
	s.lastBox = box
	s.lastDate = date
	_, s.hadDeadline = ctx.Deadline()
	if s.err != nil {
		return nil, s.err
	}
	return s.observations, nil
}

func (s *stubSource) Rate(_ context.Context, observations []Observation) (int, error) {
	s.rateCalls++
	return s.rating, nil
}

type mapCache struct {
	items   map[string]Rating
	err     error
	lastTTL time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]Rating)}
}

func (c *mapCache) Get(_ context.Context, key string) (Rating, bool, error) {
	if c.err != nil {
		return Rating{}, false, c.err
	}
	rating, ok := c.items[key]
	return rating, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, rating Rating, ttl time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.items[key] = rating
	c.lastTTL = ttl
	return nil
}
