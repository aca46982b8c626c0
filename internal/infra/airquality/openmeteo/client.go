package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
)

const (
	defaultBaseURL     = "https://air-quality-api.open-meteo.com/v1/air-quality"
	defaultConcurrency = 4
)

// Client samples the Open-Meteo air-quality model over a bounding box.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	concurrency int
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration, concurrency int) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Client{
		baseURL:     strings.TrimRight(endpoint, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		concurrency: concurrency,
	}
}

// Name implements aqi.Source.
func (c *Client) Name() string { return "openmeteo" }

// Observations returns every hourly US AQI value of the date for the corners
// and center of the box.
func (c *Client) Observations(ctx context.Context, box aqi.BoundingBox, date string) ([]aqi.Observation, error) {
	cells := gridCells(box)
	results := make([][]aqi.Observation, len(cells))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)
	for i, cell := range cells {
		group.Go(func() error {
			obs, err := c.fetchCell(groupCtx, cell, date)
			if err != nil {
				return err
			}
			results[i] = obs
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var out []aqi.Observation
	for _, obs := range results {
		out = append(out, obs...)
	}
	return out, nil
}

// Rate reports the daily peak across the sampled cells.
func (c *Client) Rate(_ context.Context, observations []aqi.Observation) (int, error) {
	return aqi.HighestAQI(observations), nil
}

type cell struct {
	name string
	lat  float64
	lon  float64
}

func gridCells(box aqi.BoundingBox) []cell {
	lat, lon := box.Center()
	return []cell{
		{name: "center", lat: lat, lon: lon},
		{name: "sw", lat: box.MinLat, lon: box.MinLon},
		{name: "se", lat: box.MinLat, lon: box.MaxLon},
		{name: "nw", lat: box.MaxLat, lon: box.MinLon},
		{name: "ne", lat: box.MaxLat, lon: box.MaxLon},
	}
}

func (c *Client) fetchCell(ctx context.Context, target cell, date string) ([]aqi.Observation, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(target.lat, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(target.lon, 'f', 4, 64))
	query.Set("hourly", "us_aqi")
	query.Set("start_date", date)
	query.Set("end_date", date)
	query.Set("timezone", "GMT")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build open-meteo request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read open-meteo response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return nil, fmt.Errorf("open-meteo error: status=%d reason=%s", resp.StatusCode, apiErr.Reason)
		}
		return nil, fmt.Errorf("open-meteo error: status=%d body=%s", resp.StatusCode, truncate(body, 4<<10))
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}
	return normalizeHourly(raw, target), nil
}

type apiError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

type apiResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Hourly    hourly  `json:"hourly"`
}

type hourly struct {
	Time  []string `json:"time"`
	USAQI []*int   `json:"us_aqi"`
}

func normalizeHourly(raw apiResponse, target cell) []aqi.Observation {
	out := make([]aqi.Observation, 0, len(raw.Hourly.Time))
	for i, stamp := range raw.Hourly.Time {
		if i >= len(raw.Hourly.USAQI) || raw.Hourly.USAQI[i] == nil {
			continue
		}
		value := *raw.Hourly.USAQI[i]
		if value < 0 {
			continue
		}
		observedAt, err := time.Parse("2006-01-02T15:04", stamp)
		if err != nil {
			continue
		}
		out = append(out, aqi.Observation{
			Station:    target.name,
			Latitude:   target.lat,
			Longitude:  target.lon,
			Parameter:  "us_aqi",
			AQI:        value,
			ObservedAt: observedAt,
		})
	}
	return out
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}

var _ aqi.Source = (*Client)(nil)
