package aqi

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/errors"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/util"
)

// ErrNoData is returned when the bounding box holds no observations for the date.
var ErrNoData = errors.New("no observations in bounding box")

// Service turns a coordinate into one representative AQI.
type Service interface {
	Aggregate(ctx context.Context, req Request) (Response, error)
}

// Source is an upstream air-quality provider. Rate reduces an observation
// set with the provider's own rating policy and must be idempotent.
type Source interface {
	Name() string
	Observations(ctx context.Context, box BoundingBox, date string) ([]Observation, error)
	Rate(ctx context.Context, observations []Observation) (int, error)
}

// Cache stores ratings keyed by bounding box and date.
type Cache interface {
	Get(ctx context.Context, key string) (Rating, bool, error)
	Set(ctx context.Context, key string, rating Rating, ttl time.Duration) error
}

type service struct {
	cfg    Config
	source Source
	cache  Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the aggregator.
func NewService(cfg Config, source Source, cache Cache, logger *slog.Logger) Service {
	if cfg.HalfWidth <= 0 {
		cfg.HalfWidth = DefaultHalfWidth
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &service{
		cfg:    cfg,
		source: source,
		cache:  cache,
		logger: logger.With("component", "aqi.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Aggregate(ctx context.Context, req Request) (Response, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude are required", nil)
	}
	lat, lon := *req.Latitude, *req.Longitude
	if err := ValidateCoordinates(lat, lon); err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid coordinates", err)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}

	box := NewBoundingBox(lat, lon, s.cfg.HalfWidth)
	key := box.CacheKey(date)
	if rating, ok := s.cached(ctx, key); ok {
		return toResponse(rating, box, date, true), nil
	}

	rating, err := s.rate(ctx, box, date)
	if err != nil {
		return Response{}, err
	}
	s.logger.Info("aqi aggregated", "bbox", box.String(), "date", date, "aqi", rating.AQI, "observations", rating.Observations, "source", rating.Source)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rating, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("aqi cache write failed", "key", key, "error", err)
		}
	}
	return toResponse(rating, box, date, false), nil
}

func (s *service) rate(ctx context.Context, box BoundingBox, date string) (Rating, error) {
	if s.cfg.UpstreamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.UpstreamTimeout)
		defer cancel()
	}

	observations, err := s.source.Observations(ctx, box, date)
	if err != nil {
		return Rating{}, apperrors.Wrap(apperrors.CodeUpstreamError, "failed to fetch air quality observations", err)
	}
	if len(observations) == 0 {
		return Rating{}, apperrors.Wrap(apperrors.CodeNoData, "no air quality observations near the requested location", ErrNoData)
	}

	value, err := s.source.Rate(ctx, observations)
	if err != nil {
		return Rating{}, apperrors.Wrap(apperrors.CodeUpstreamError, "failed to rate air quality observations", err)
	}
	return Rating{
		AQI:          value,
		Observations: len(observations),
		Source:       s.source.Name(),
		RatedAt:      s.now().UTC(),
	}, nil
}

func (s *service) cached(ctx context.Context, key string) (Rating, bool) {
	if s.cache == nil {
		return Rating{}, false
	}
	rating, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("aqi cache read failed", "key", key, "error", err)
		return Rating{}, false
	}
	return rating, ok
}

func (s *service) resolveDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return util.DayIn(s.now(), s.cfg.Location), nil
	}
	if _, err := util.ParseDay(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

func toResponse(rating Rating, box BoundingBox, date string, cached bool) Response {
	return Response{
		AQI:          rating.AQI,
		Date:         date,
		BoundingBox:  box,
		Observations: rating.Observations,
		Source:       rating.Source,
		Cached:       cached,
	}
}
