package stationdb

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/util"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository reads station observations that an ingestion job keeps in
// Postgres. Expected schema:
//
//	CREATE TABLE aqi_observations (
//	    station_id  TEXT        NOT NULL,
//	    latitude    DOUBLE PRECISION NOT NULL,
//	    longitude   DOUBLE PRECISION NOT NULL,
//	    parameter   TEXT        NOT NULL,
//	    aqi         INTEGER     NOT NULL,
//	    observed_at TIMESTAMPTZ NOT NULL
//	);
type Repository struct {
	db Querier
}

// NewRepository constructs the repository.
func NewRepository(db Querier) *Repository {
	return &Repository{db: db}
}

// Name implements aqi.Source.
func (r *Repository) Name() string { return "stationdb" }

const observationsInBox = `
	SELECT station_id, latitude, longitude, parameter, aqi, observed_at
	FROM aqi_observations
	WHERE longitude BETWEEN $1 AND $3
	  AND latitude BETWEEN $2 AND $4
	  AND observed_at >= $5 AND observed_at < $6
	  AND aqi >= 0
	ORDER BY observed_at, station_id
`

// Observations returns every row inside the box for the UTC day.
func (r *Repository) Observations(ctx context.Context, box aqi.BoundingBox, date string) ([]aqi.Observation, error) {
	from, to, err := dayRange(date)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, observationsInBox, box.MinLon, box.MinLat, box.MaxLon, box.MaxLat, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query observations: %w", err)
	}
	defer rows.Close()

	var out []aqi.Observation
	for rows.Next() {
		var obs aqi.Observation
		if err := rows.Scan(&obs.Station, &obs.Latitude, &obs.Longitude, &obs.Parameter, &obs.AQI, &obs.ObservedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan observation row: %w", err)
		}
		out = append(out, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read observations: %w", err)
	}
	return out, nil
}

// Rate keeps the highest sub-index, matching what the ingestion job publishes.
func (r *Repository) Rate(_ context.Context, observations []aqi.Observation) (int, error) {
	return aqi.HighestAQI(observations), nil
}

func dayRange(date string) (time.Time, time.Time, error) {
	start, err := util.ParseDay(date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse observation date: %w", err)
	}
	return start, start.AddDate(0, 0, 1), nil
}

var _ aqi.Source = (*Repository)(nil)
