// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TypedCache stores values of T as JSON in a Cacher.
type TypedCache[T any] struct {
	cache      Cacher
	defaultTTL time.Duration
}

// NewTypedCache creates a new TypedCache wrapping the given cache implementation.
func NewTypedCache[T any](cache Cacher, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get returns the decoded value and true on a hit. Backend errors and
// undecodable payloads count as misses; undecodable entries are removed.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	value, err := c.Lookup(ctx, key)
	if err != nil {
		return nil, false
	}
	return value, true
}

// Lookup is Get with the error exposed. It returns ErrCacheMiss on a miss.
func (c *TypedCache[T]) Lookup(ctx context.Context, key string) (*T, error) {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		_ = c.cache.Delete(ctx, key)
		return nil, fmt.Errorf("decoding cached %q: %w", key, errors.Join(ErrCacheMiss, err))
	}

	return &value, nil
}

// Set stores a value in the cache with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	return c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

// SetWithTTL stores a value in the cache with a custom TTL.
func (c *TypedCache[T]) SetWithTTL(ctx context.Context, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}

	return c.cache.Set(ctx, key, data, ttl)
}

// Delete removes a key from the cache.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.cache.Delete(ctx, key)
}

// DeleteByPrefix removes all keys starting with prefix.
func (c *TypedCache[T]) DeleteByPrefix(ctx context.Context, prefix string) error {
	return c.cache.DeleteByPrefix(ctx, prefix)
}
