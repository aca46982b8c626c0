package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider names accepted by aqi.provider.
const (
	ProviderOpenMeteo = "openmeteo"
	ProviderAirNow    = "airnow"
	ProviderStationDB = "stationdb"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	AQI      AQIConfig      `yaml:"aqi"`
	Surprise SurpriseConfig `yaml:"surprise"`
	Client   ClientConfig   `yaml:"client"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AQIConfig controls the regional aggregator and its upstream provider.
type AQIConfig struct {
	Provider        string          `yaml:"provider"`
	HalfWidth       float64         `yaml:"halfWidth"`
	UpstreamTimeout time.Duration   `yaml:"upstreamTimeout"`
	Timezone        string          `yaml:"timezone"`
	CacheTTL        time.Duration   `yaml:"cacheTtl"`
	OpenMeteo       OpenMeteoConfig `yaml:"openMeteo"`
	AirNow          AirNowConfig    `yaml:"airNow"`
	StationDB       PostgresConfig  `yaml:"stationDb"`
	Valkey          ValkeyConfig    `yaml:"valkey"`
}

// OpenMeteoConfig points at the Open-Meteo air-quality API.
type OpenMeteoConfig struct {
	BaseURL     string `yaml:"baseUrl"`
	Concurrency int    `yaml:"concurrency"`
}

// AirNowConfig points at the AirNow observation API.
type AirNowConfig struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the rating cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// SurpriseConfig controls the surprise-me endpoint and its cache warmer.
type SurpriseConfig struct {
	Attempts     int           `yaml:"attempts"`
	WarmSchedule string        `yaml:"warmSchedule"`
	WarmTimeout  time.Duration `yaml:"warmTimeout"`
}

// ClientConfig is read by the terminal client.
type ClientConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv never overrides variables that are already set.
func loadDotEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	return nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("AQI_PROVIDER"); v != "" {
		cfg.AQI.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("AQI_HALF_WIDTH"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AQI.HalfWidth = parsed
		}
	}
	if v := os.Getenv("AQI_UPSTREAM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.AQI.UpstreamTimeout = parsed
		}
	}
	if v := os.Getenv("AQI_TIMEZONE"); v != "" {
		cfg.AQI.Timezone = v
	}
	if v := os.Getenv("AQI_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.AQI.CacheTTL = parsed
		}
	}
	if v := os.Getenv("OPENMETEO_BASE_URL"); v != "" {
		cfg.AQI.OpenMeteo.BaseURL = v
	}
	if v := os.Getenv("AIRNOW_BASE_URL"); v != "" {
		cfg.AQI.AirNow.BaseURL = v
	}
	if v := os.Getenv("AIRNOW_API_KEY"); v != "" {
		cfg.AQI.AirNow.APIKey = v
	}
	if v := os.Getenv("STATIONDB_DSN"); v != "" {
		cfg.AQI.StationDB.DSN = v
	}
	if v := os.Getenv("STATIONDB_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.AQI.StationDB.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.AQI.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.AQI.Valkey.Addr = v
	}
	if v := os.Getenv("SURPRISE_WARM_SCHEDULE"); v != "" {
		cfg.Surprise.WarmSchedule = v
	}
	if v := os.Getenv("AIRPET_BASE_URL"); v != "" {
		cfg.Client.BaseURL = v
	}
	if v := os.Getenv("AIRPET_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Client.Timeout = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":5001",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:8081"},
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		AQI: AQIConfig{
			Provider:        ProviderOpenMeteo,
			HalfWidth:       0.1,
			UpstreamTimeout: 5 * time.Second,
			Timezone:        "UTC",
			CacheTTL:        15 * time.Minute,
			OpenMeteo: OpenMeteoConfig{
				BaseURL:     "https://air-quality-api.open-meteo.com/v1/air-quality",
				Concurrency: 4,
			},
			AirNow: AirNowConfig{
				BaseURL: "https://www.airnowapi.org/aq/data/",
			},
			StationDB: PostgresConfig{
				MaxConns: 4,
			},
			Valkey: ValkeyConfig{
				Prefix: "airpet",
			},
		},
		Surprise: SurpriseConfig{
			Attempts:    3,
			WarmTimeout: 2 * time.Minute,
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:5001",
			Timeout: 8 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch c.AQI.Provider {
	case ProviderOpenMeteo:
	case ProviderAirNow:
		if strings.TrimSpace(c.AQI.AirNow.APIKey) == "" {
			return errors.New("aqi.airNow.apiKey cannot be empty when the airnow provider is selected")
		}
	case ProviderStationDB:
		if strings.TrimSpace(c.AQI.StationDB.DSN) == "" {
			return errors.New("aqi.stationDb.dsn cannot be empty when the stationdb provider is selected")
		}
	default:
		return fmt.Errorf("aqi.provider %q is not supported", c.AQI.Provider)
	}
	if c.AQI.HalfWidth <= 0 || c.AQI.HalfWidth > 5 {
		return errors.New("aqi.halfWidth must be within (0, 5] degrees")
	}
	if c.AQI.UpstreamTimeout <= 0 {
		return errors.New("aqi.upstreamTimeout must be positive")
	}
	if c.AQI.CacheTTL < 0 {
		return errors.New("aqi.cacheTtl cannot be negative")
	}
	if _, err := time.LoadLocation(c.AQI.Timezone); err != nil {
		return fmt.Errorf("aqi.timezone is invalid: %w", err)
	}
	if c.AQI.Valkey.Enabled && strings.TrimSpace(c.AQI.Valkey.Addr) == "" {
		return errors.New("aqi.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if c.Surprise.Attempts < 0 {
		return errors.New("surprise.attempts cannot be negative")
	}
	if c.Client.Timeout <= 0 {
		return errors.New("client.timeout must be positive")
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AQI.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
