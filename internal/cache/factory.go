// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix namespaces Redis keys.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize bounds the memory cache (0 = unlimited).
	MaxSize int

	CleanupInterval time.Duration
}

// DefaultConfig returns a memory cache configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:          "costafaq:",
		DefaultTTL:      10 * time.Minute,
		MaxSize:         1000,
		CleanupInterval: time.Minute,
	}
}

// NewCache creates a RedisCache when cfg.RedisURL is set, a MemoryCache otherwise.
func NewCache(cfg Config) (Cacher, error) {
	if cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			opts.DefaultTTL = cfg.DefaultTTL
		}
		rc, err := NewRedisCache(opts)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", SanitizeRedisURL(cfg.RedisURL), err)
		}
		return rc, nil
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	}), nil
}

// SanitizeRedisURL masks the password of a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
