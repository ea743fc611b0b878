// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package config loads server configuration from defaults, an optional YAML
// file, and environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/travelworld/internal/logging"
)

// Config is the root configuration tree.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Storage  StorageConfig  `koanf:"storage"`
	Security SecurityConfig `koanf:"security"`
	Portrait PortraitConfig `koanf:"portrait"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig points at the DuckDB file holding trips, visits, photos
// metadata and portraits.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 lets DuckDB decide
}

// StorageConfig configures the badger photo blob store.
type StorageConfig struct {
	PhotoPath        string `koanf:"photo_path"` // "" or ":memory:" keeps blobs in memory
	MaxPhotosPerTrip int    `koanf:"max_photos_per_trip"`
	MaxPhotoBytes    int64  `koanf:"max_photo_bytes"`
}

// SecurityConfig covers bearer-token validation, CORS and rate limiting.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// PortraitConfig configures traveler portrait generation.
type PortraitConfig struct {
	Provider       string        `koanf:"provider"` // gemini, claude or openai
	APIKey         string        `koanf:"api_key"`
	Model          string        `koanf:"model"`
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	Cooldown       time.Duration `koanf:"cooldown"`
	MinTrips       int           `koanf:"min_trips"`
	RequestsPerMin int           `koanf:"requests_per_min"`
	MaxRetries     int           `koanf:"max_retries"`
}

// ModelVersion is the value recorded with every stored portrait.
func (p PortraitConfig) ModelVersion() string {
	if p.Provider == ProviderGemini {
		return ProviderGemini + "/" + p.Model
	}
	return p.Provider
}

// APIConfig holds response caching knobs.
type APIConfig struct {
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Supported LLM providers. Only gemini has a client.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

// Load reads configuration. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Validate checks the loaded configuration for unusable values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("DUCKDB_PATH must not be empty"))
	}
	if c.Storage.MaxPhotosPerTrip <= 0 {
		errs = append(errs, errors.New("storage.max_photos_per_trip must be positive"))
	}
	if c.Storage.MaxPhotoBytes <= 0 {
		errs = append(errs, errors.New("storage.max_photo_bytes must be positive"))
	}

	if len(c.Security.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters"))
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs <= 0 || c.Security.RateLimitWindow <= 0) {
		errs = append(errs, errors.New("rate limit requests and window must be positive"))
	}
	if c.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				errs = append(errs, errors.New("CORS_ORIGINS=* is not allowed in production"))
				break
			}
		}
	}

	switch strings.ToLower(c.Portrait.Provider) {
	case ProviderGemini, ProviderClaude, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q: use gemini, claude, or openai", c.Portrait.Provider))
	}
	if c.Portrait.Cooldown <= 0 {
		errs = append(errs, errors.New("portrait.cooldown must be positive"))
	}
	if c.Portrait.MinTrips < 1 {
		errs = append(errs, errors.New("portrait.min_trips must be at least 1"))
	}

	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("invalid LOG_FORMAT %q: use json or console", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}
