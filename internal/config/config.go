package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	StoreDriver    string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBSchema       string        `mapstructure:"DB_SCHEMA"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32         `mapstructure:"DB_MIN_CONNS"`
	FHIRBaseURL    string        `mapstructure:"FHIR_BASE_URL"`
	FHIRTimeout    time.Duration `mapstructure:"FHIR_TIMEOUT"`
	FHIRMaxRetries int           `mapstructure:"FHIR_MAX_RETRIES"`
	RedisURL       string        `mapstructure:"REDIS_URL"`
	RemoteCacheTTL time.Duration `mapstructure:"REMOTE_CACHE_TTL"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	AuthSecret     string        `mapstructure:"AUTH_SECRET"`
}

var defaults = map[string]interface{}{
	"PORT":             "8000",
	"ENV":              "development",
	"LOG_LEVEL":        "info",
	"STORE_DRIVER":     DriverPostgres,
	"DB_SCHEMA":        "public",
	"DB_MAX_CONNS":     20,
	"DB_MIN_CONNS":     5,
	"FHIR_BASE_URL":    "https://hapi.fhir.org/baseR4",
	"FHIR_TIMEOUT":     "15s",
	"FHIR_MAX_RETRIES": 2,
	"REMOTE_CACHE_TTL": "0s",
	"CORS_ORIGINS":     "http://localhost:3000",
	"RATE_LIMIT_RPS":   100,
	"RATE_LIMIT_BURST": 200,
	"REQUEST_TIMEOUT":  "30s",
}

// Load reads .env (when present) and the environment. It does not call
// Validate.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	// Unmarshal only sees env vars that are bound.
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "AUTH_SECRET"} {
		v.BindEnv(key)
	}

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	cfg.FHIRBaseURL = strings.TrimSpace(cfg.FHIRBaseURL)
	if strings.EqualFold(cfg.FHIRBaseURL, "off") {
		cfg.FHIRBaseURL = ""
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// RemoteEnabled reports whether list and detail reads fall back to the
// clinical API.
func (c *Config) RemoteEnabled() bool {
	return c.FHIRBaseURL != ""
}

// AuthEnabled reports whether bearer tokens are required on /api.
func (c *Config) AuthEnabled() bool {
	return c.AuthSecret != ""
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", DriverPostgres)
		}
		if c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.StoreDriver)
	}

	if c.RemoteEnabled() {
		if !strings.HasPrefix(c.FHIRBaseURL, "http://") && !strings.HasPrefix(c.FHIRBaseURL, "https://") {
			return fmt.Errorf("FHIR_BASE_URL must be an http(s) URL, got %q", c.FHIRBaseURL)
		}
		if c.FHIRTimeout <= 0 {
			return fmt.Errorf("FHIR_TIMEOUT must be positive")
		}
		if c.FHIRMaxRetries < 0 {
			return fmt.Errorf("FHIR_MAX_RETRIES must not be negative")
		}
	}
	if c.RemoteCacheTTL < 0 {
		return fmt.Errorf("REMOTE_CACHE_TTL must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.AuthEnabled() && len(c.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be at least 32 characters")
	}
	return nil
}
