// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are probed in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/travelworld/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:      "/data/travelworld.duckdb",
			MaxMemory: "512MB",
		},
		Storage: StorageConfig{
			PhotoPath:        "/data/photos",
			MaxPhotosPerTrip: 20,
			MaxPhotoBytes:    5 << 20,
		},
		Security: SecurityConfig{
			TokenTTL:        24 * time.Hour,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Portrait: PortraitConfig{
			Provider:       ProviderGemini,
			Model:          "gemini-2.0-flash",
			BaseURL:        "https://generativelanguage.googleapis.com",
			Timeout:        60 * time.Second,
			Cooldown:       72 * time.Hour,
			MinTrips:       3,
			RequestsPerMin: 10,
			MaxRetries:     2,
		},
		API: APIConfig{
			CacheTTL:        5 * time.Minute,
			DefaultPageSize: 50,
			MaxPageSize:     200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf layers defaults, the YAML file (if any) and environment
// variables, then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Portrait.Provider = strings.ToLower(cfg.Portrait.Provider)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values into string slices.
// Values that arrived from YAML are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"photo_store_path":    "storage.photo_path",
	"max_photos_per_trip": "storage.max_photos_per_trip",
	"max_photo_bytes":     "storage.max_photo_bytes",

	"jwt_secret":          "security.jwt_secret",
	"token_ttl":           "security.token_ttl",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"llm_provider":         "portrait.provider",
	"gemini_api_key":       "portrait.api_key",
	"gemini_model":         "portrait.model",
	"gemini_base_url":      "portrait.base_url",
	"llm_timeout":          "portrait.timeout",
	"portrait_cooldown":    "portrait.cooldown",
	"portrait_min_trips":   "portrait.min_trips",
	"llm_requests_per_min": "portrait.requests_per_min",
	"llm_max_retries":      "portrait.max_retries",

	"api_cache_ttl":         "api.cache_ttl",
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps JWT_SECRET to security.jwt_secret and so on.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
