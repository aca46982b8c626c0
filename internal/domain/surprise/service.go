package surprise

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
)

const defaultAttempts = 3

// Response pairs a randomly chosen city with its current AQI.
type Response struct {
	City City         `json:"city"`
	AQI  aqi.Response `json:"aqi"`
}

// Config controls the city pool and how many cities are tried per request.
type Config struct {
	Cities   []City
	Attempts int
}

// Service picks a city to show when the user asks to be surprised.
type Service interface {
	Pick(ctx context.Context) (Response, error)
	Warm(ctx context.Context) (int, error)
}

type service struct {
	cities     []City
	attempts   int
	aggregator aqi.Service
	logger     *slog.Logger
	perm       func(n int) []int
}

// NewService wires up the surprise domain.
func NewService(cfg Config, aggregator aqi.Service, logger *slog.Logger) Service {
	cities := cfg.Cities
	if len(cities) == 0 {
		cities = NorthAmericanCities
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if attempts > len(cities) {
		attempts = len(cities)
	}
	return &service{
		cities:     cities,
		attempts:   attempts,
		aggregator: aggregator,
		logger:     logger.With("component", "surprise.service"),
		perm:       rand.Perm,
	}
}

// Pick tries random cities until one has data; cities without observations
// are skipped, any other failure ends the request.
func (s *service) Pick(ctx context.Context) (Response, error) {
	order := s.perm(len(s.cities))
	var lastErr error
	for _, idx := range order[:s.attempts] {
		city := s.cities[idx]
		resp, err := s.aggregator.Aggregate(ctx, aqi.NewRequest(city.Latitude, city.Longitude, ""))
		if err == nil {
			return Response{City: city, AQI: resp}, nil
		}
		if !errors.Is(err, aqi.ErrNoData) {
			return Response{}, err
		}
		s.logger.Info("surprise city has no data", "city", city.Name)
		lastErr = err
	}
	return Response{}, apperrors.Wrap(apperrors.CodeNoData, "no surprise city has air quality data right now", lastErr)
}

// Warm aggregates every city once so later picks are served from cache.
func (s *service) Warm(ctx context.Context) (int, error) {
	warmed := 0
	for _, city := range s.cities {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}
		if _, err := s.aggregator.Aggregate(ctx, aqi.NewRequest(city.Latitude, city.Longitude, "")); err != nil {
			s.logger.Warn("surprise warm-up failed", "city", city.Name, "error", err)
			continue
		}
		warmed++
	}
	return warmed, nil
}
