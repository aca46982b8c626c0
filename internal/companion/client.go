package companion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
)

const defaultTimeout = 8 * time.Second

// Reading is the AQI the server reported for a coordinate.
type Reading struct {
	AQI      int    `json:"AQI"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Source   string `json:"source"`
}

// CityReading is the payload of the surprise endpoint.
type CityReading struct {
	City struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"city"`
	Reading
}

// TransportError reports a network failure, timeout or non-2xx response.
// Status is zero when no response was received.
type TransportError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return "request failed: " + e.Err.Error()
	case e.Message != "":
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("server returned %d", e.Status)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNoData reports whether the server had no observations for the request.
func IsNoData(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Code == apperrors.CodeNoData
}

// Client calls the air pet API. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client with an explicit request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchAQI asks the server for the representative AQI around a coordinate.
// Coordinates are validated before any network call.
func (c *Client) FetchAQI(ctx context.Context, lat, lon float64) (Reading, error) {
	if err := aqi.ValidateCoordinates(lat, lon); err != nil {
		return Reading{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid coordinates", err)
	}
	payload, err := json.Marshal(aqi.NewRequest(lat, lon, ""))
	if err != nil {
		return Reading{}, fmt.Errorf("encode aqi request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/aqi", bytes.NewReader(payload))
	if err != nil {
		return Reading{}, fmt.Errorf("build aqi request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var reading Reading
	if err := c.do(req, &reading); err != nil {
		return Reading{}, err
	}
	return reading, nil
}

// Surprise asks the server for a random city and its AQI.
func (c *Client) Surprise(ctx context.Context) (CityReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/surprise", nil)
	if err != nil {
		return CityReading{}, fmt.Errorf("build surprise request: %w", err)
	}
	var reading CityReading
	if err := c.do(req, &reading); err != nil {
		return CityReading{}, err
	}
	return reading, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return &TransportError{Status: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Error}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
