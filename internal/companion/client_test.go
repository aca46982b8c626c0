package companion

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
)

func TestFetchAQISuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/aqi", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 34.05, body["latitude"])
		assert.Equal(t, -118.24, body["longitude"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"AQI":88,"category":"moderate","date":"2025-10-04","source":"openmeteo"}`))
	}))
	defer server.Close()

	reading, err := NewClient(server.URL+"/", time.Second).FetchAQI(context.Background(), 34.05, -118.24)
	require.NoError(t, err)
	require.Equal(t, Reading{AQI: 88, Category: "moderate", Date: "2025-10-04", Source: "openmeteo"}, reading)
}

func TestFetchAQIMapsErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"no observations in bounding box","code":"no_data"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).FetchAQI(context.Background(), 51.5, -0.12)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusServiceUnavailable, transportErr.Status)
	require.Equal(t, "no observations in bounding box", transportErr.Message)
	require.True(t, IsNoData(err))
}

func TestFetchAQIValidatesBeforeCalling(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.FetchAQI(context.Background(), 91, 0)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	_, err = client.FetchAQI(context.Background(), math.NaN(), 0)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, atomic.LoadInt32(&calls))
}

func TestFetchAQITimesOut(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewClient(server.URL, 50*time.Millisecond).FetchAQI(context.Background(), 40.7, -74)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Zero(t, transportErr.Status)
	require.Error(t, transportErr.Err)
}

func TestFetchAQINetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).FetchAQI(context.Background(), 40.7, -74)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Zero(t, transportErr.Status)
	require.False(t, IsNoData(err))
	require.False(t, errors.Is(err, context.Canceled))
}

func TestSurprise(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/surprise", r.URL.Path)
		_, _ = w.Write([]byte(`{"city":{"name":"Denver, CO","latitude":39.74,"longitude":-104.99},"AQI":160,"category":"unhealthy"}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL, time.Second).Surprise(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Denver, CO", got.City.Name)
	require.Equal(t, 160, got.AQI)
	require.Equal(t, "unhealthy", got.Category)
}
