package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/aqi"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/surprise"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/airquality/airnow"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/airquality/openmeteo"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/airquality/stationdb"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/aqicache"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/config"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/scheduler"
)

func provideAQIConfig(cfg *config.Config) aqi.Config {
	return aqi.Config{
		HalfWidth:       cfg.AQI.HalfWidth,
		UpstreamTimeout: cfg.AQI.UpstreamTimeout,
		CacheTTL:        cfg.AQI.CacheTTL,
		Location:        cfg.Location(),
	}
}

func provideSurpriseConfig(cfg *config.Config) surprise.Config {
	return surprise.Config{
		Cities:   surprise.NorthAmericanCities,
		Attempts: cfg.Surprise.Attempts,
	}
}

// provideSource builds the configured upstream. The station database is the
// only provider holding resources, released by the returned cleanup.
func provideSource(cfg *config.Config, logger *slog.Logger) (aqi.Source, func(), error) {
	noop := func() {}
	switch cfg.AQI.Provider {
	case config.ProviderAirNow:
		logger.Info("aqi provider selected", "provider", config.ProviderAirNow)
		return airnow.NewClient(cfg.AQI.AirNow.BaseURL, cfg.AQI.AirNow.APIKey, cfg.AQI.UpstreamTimeout), noop, nil
	case config.ProviderStationDB:
		pool, err := openStationPool(cfg.AQI.StationDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("aqi provider selected", "provider", config.ProviderStationDB)
		return stationdb.NewRepository(pool), pool.Close, nil
	default:
		logger.Info("aqi provider selected", "provider", config.ProviderOpenMeteo)
		return openmeteo.NewClient(cfg.AQI.OpenMeteo.BaseURL, cfg.AQI.UpstreamTimeout, cfg.AQI.OpenMeteo.Concurrency), noop, nil
	}
}

func openStationPool(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("invalid station db dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("init station db pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping station db: %w", err)
	}
	return pool, nil
}

// provideCache prefers Valkey and falls back to process memory.
func provideCache(cfg *config.Config, logger *slog.Logger) (aqi.Cache, func()) {
	noop := func() {}
	if !cfg.AQI.Valkey.Enabled {
		return aqicache.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.AQI.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return aqicache.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return aqicache.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return aqicache.NewMemoryStore(), noop
	}
	logger.Info("aqi valkey cache enabled", "addr", cfg.AQI.Valkey.Addr)
	return aqicache.NewValkeyStore(client, cfg.AQI.Valkey.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideWarmer(cfg *config.Config, svc surprise.Service, logger *slog.Logger) (*scheduler.Warmer, error) {
	return scheduler.NewWarmer(cfg.Surprise.WarmSchedule, cfg.Surprise.WarmTimeout, svc.Warm, logger)
}
