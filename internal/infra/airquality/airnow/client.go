package airnow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
)

const (
	defaultBaseURL    = "https://www.airnowapi.org/aq/data/"
	defaultParameters = "OZONE,PM25,PM10,CO,NO2,SO2"
	missingValue      = -999
)

// ErrMissingAPIKey is returned when the client is used without credentials.
var ErrMissingAPIKey = errors.New("airnow api key is not configured")

// Client fetches monitoring-station observations from AirNow.
type Client struct {
	baseURL    string
	apiKey     string
	parameters string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    endpoint,
		apiKey:     strings.TrimSpace(apiKey),
		parameters: defaultParameters,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name implements aqi.Source.
func (c *Client) Name() string { return "airnow" }

// Observations lists every station reading inside the box for the UTC day.
func (c *Client) Observations(ctx context.Context, box aqi.BoundingBox, date string) ([]aqi.Observation, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("startDate", date+"T00")
	query.Set("endDate", date+"T23")
	query.Set("parameters", c.parameters)
	query.Set("BBOX", box.String())
	query.Set("dataType", "A")
	query.Set("format", "application/json")
	query.Set("verbose", "1")
	query.Set("monitorType", "0")
	query.Set("includerawconcentrations", "0")
	query.Set("API_KEY", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build airnow request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airnow request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("airnow request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read airnow response: %w", err)
	}
	return decodeObservations(body)
}

// Rate applies the AirNow reporting rule: the highest sub-index wins.
func (c *Client) Rate(_ context.Context, observations []aqi.Observation) (int, error) {
	return aqi.HighestAQI(observations), nil
}

type record struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
	UTC       string  `json:"UTC"`
	Parameter string  `json:"Parameter"`
	AQI       int     `json:"AQI"`
	SiteName  string  `json:"SiteName"`
	AQSCode   string  `json:"FullAQSCode"`
}

type serviceError struct {
	WebServiceError []struct {
		Message string `json:"Message"`
	} `json:"WebServiceError"`
}

func decodeObservations(body []byte) ([]aqi.Observation, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var svcErr serviceError
		if err := json.Unmarshal(body, &svcErr); err == nil && len(svcErr.WebServiceError) > 0 {
			return nil, fmt.Errorf("airnow api error: %s", svcErr.WebServiceError[0].Message)
		}
		return nil, errors.New("airnow api returned an unexpected object")
	}

	var records []record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode airnow response: %w", err)
	}

	out := make([]aqi.Observation, 0, len(records))
	for _, rec := range records {
		if rec.AQI == missingValue || rec.AQI < 0 {
			continue
		}
		station := rec.SiteName
		if station == "" {
			station = rec.AQSCode
		}
		observedAt, _ := time.Parse("2006-01-02T15:04", rec.UTC)
		out = append(out, aqi.Observation{
			Station:    station,
			Latitude:   rec.Latitude,
			Longitude:  rec.Longitude,
			Parameter:  rec.Parameter,
			AQI:        rec.AQI,
			ObservedAt: observedAt,
		})
	}
	return out, nil
}

var _ aqi.Source = (*Client)(nil)
