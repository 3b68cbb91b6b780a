// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads costafaq settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/costafaq/internal/model"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"COSTAFAQ_DB_DRIVER" envDefault:"sqlite"`
	DBDSN      string `env:"COSTAFAQ_DB_DSN" envDefault:"./data/costafaq.db"`
	ServerHost string `env:"COSTAFAQ_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"COSTAFAQ_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"COSTAFAQ_ENV" envDefault:"development"`
	LogLevel   string `env:"COSTAFAQ_LOG_LEVEL" envDefault:"info"`

	SiteURL  string `env:"COSTAFAQ_SITE_URL" envDefault:"http://localhost:8080"`
	SiteName string `env:"COSTAFAQ_SITE_NAME" envDefault:"Costa del Sol Property FAQ"`

	// Languages the site is served in. The default language is always included.
	Languages       []string `env:"COSTAFAQ_LANGUAGES" envSeparator:"," envDefault:"en,es,de,fr,nl,sv"`
	DefaultLanguage string   `env:"COSTAFAQ_DEFAULT_LANGUAGE" envDefault:"en"`

	// Cache configuration
	RedisURL     string `env:"COSTAFAQ_REDIS_URL"`                               // Optional Redis URL for a shared cache
	CachePrefix  string `env:"COSTAFAQ_CACHE_PREFIX" envDefault:"costafaq:"`     // Redis key prefix
	CacheTTL     int    `env:"COSTAFAQ_CACHE_TTL" envDefault:"600"`              // Working set TTL in seconds
	CacheMaxSize int    `env:"COSTAFAQ_CACHE_MAX_SIZE" envDefault:"1000"`        // Max memory cache entries
	WarmSchedule string `env:"COSTAFAQ_WARM_SCHEDULE" envDefault:"*/15 * * * *"` // Cron expression, "off" disables

	// Related FAQs fall back to the same category on an empty relation lookup too.
	RelatedFallbackOnEmpty bool `env:"COSTAFAQ_RELATED_FALLBACK_ON_EMPTY" envDefault:"false"`

	// AdminTokenHash is the argon2id hash of the admin bearer token.
	// Admin endpoints are disabled when empty.
	AdminTokenHash string `env:"COSTAFAQ_ADMIN_TOKEN_HASH"`

	RateLimitRPS   float64 `env:"COSTAFAQ_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"COSTAFAQ_RATE_LIMIT_BURST" envDefault:"20"`

	SeedFile string `env:"COSTAFAQ_SEED_FILE" envDefault:"./data/seed/faqs.yaml"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AdminEnabled returns true if an admin token hash is configured.
func (c Config) AdminEnabled() bool {
	return c.AdminTokenHash != ""
}

// CacheTTLDuration returns the working set TTL.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SupportsLanguage reports whether code is one of the configured languages.
func (c Config) SupportsLanguage(code string) bool {
	return slices.Contains(c.Languages, code)
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	var errs []error

	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Errorf("COSTAFAQ_DB_DRIVER must be sqlite or mysql, got %q", c.DBDriver))
	}

	if c.DefaultLanguage != model.DefaultLanguage {
		errs = append(errs, fmt.Errorf("COSTAFAQ_DEFAULT_LANGUAGE must be %q, got %q", model.DefaultLanguage, c.DefaultLanguage))
	}

	langs := []string{model.DefaultLanguage}
	for _, raw := range c.Languages {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		code := model.NormalizeLangCode(raw)
		if code == "" {
			errs = append(errs, fmt.Errorf("COSTAFAQ_LANGUAGES contains invalid code %q", raw))
			continue
		}
		if !slices.Contains(langs, code) {
			langs = append(langs, code)
		}
	}
	c.Languages = langs

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("COSTAFAQ_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}

	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("COSTAFAQ_CACHE_TTL must be positive, got %d", c.CacheTTL))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("COSTAFAQ_RATE_LIMIT_RPS and COSTAFAQ_RATE_LIMIT_BURST must be positive"))
	}

	c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")

	c.WarmSchedule = strings.TrimSpace(c.WarmSchedule)
	if strings.EqualFold(c.WarmSchedule, "off") {
		c.WarmSchedule = ""
	}

	return errors.Join(errs...)
}
