// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte caches that hold per-language FAQ working sets.
package cache

import (
	"context"
	"time"
)

// Cacher is implemented by MemoryCache and RedisCache.
// Values are opaque bytes so both backends share one contract.
// All implementations must be safe for concurrent use.
type Cacher interface {
	// Get returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl; a zero ttl uses the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	Clear(ctx context.Context) error

	Has(ctx context.Context, key string) (bool, error)

	Close() error
}

// StatsProvider is an optional interface for caches that keep statistics.
type StatsProvider interface {
	Stats() Stats
	ResetStats()
}

// Stats holds cache statistics.
type Stats struct {
	Backend string     `json:"backend"`
	Hits    int64      `json:"hits"`
	Misses  int64      `json:"misses"`
	Sets    int64      `json:"sets"`
	Items   int        `json:"items"`
	HitRate float64    `json:"hit_rate"`
	Size    int64      `json:"size_bytes,omitempty"`
	ResetAt *time.Time `json:"reset_at,omitempty"`
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
