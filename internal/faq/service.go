// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package faq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/olegiv/costafaq/internal/cache"
	"github.com/olegiv/costafaq/internal/model"
)

const cacheKeyPrefix = "faq:ws:"

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// TTL of cached working sets; 0 uses the cache default.
	TTL time.Duration
	// LoadTimeout bounds a single store load.
	LoadTimeout time.Duration
	// WarmConcurrency bounds parallel loads in Warm.
	WarmConcurrency int
	// FallbackOnEmpty is passed to Related.
	FallbackOnEmpty bool

	Logger *slog.Logger
}

// generation identifies the cache epoch a load started in. InvalidateAll
// bumps all, Invalidate bumps the per-language counter.
type generation struct {
	all  uint64
	lang uint64
}

// Service serves working sets from a per-language cache. Concurrent misses
// for one language share a single store load. A load that started before an
// invalidation still answers its callers but is never cached.
type Service struct {
	src    Source
	cache  cache.Cacher
	sets   *cache.TypedCache[WorkingSet]
	opts   ServiceOptions
	logger *slog.Logger
	group  singleflight.Group

	mu    sync.Mutex
	all   uint64
	langs map[string]uint64
}

// NewService creates a Service over src, caching in c.
func NewService(src Source, c cache.Cacher, opts ServiceOptions) *Service {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 10 * time.Second
	}
	if opts.WarmConcurrency <= 0 {
		opts.WarmConcurrency = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		src:    src,
		cache:  c,
		sets:   cache.NewTypedCache[WorkingSet](c, opts.TTL),
		opts:   opts,
		logger: logger,
		langs:  make(map[string]uint64),
	}
}

// CacheKey returns the cache key of a language's working set.
func CacheKey(lang string) string {
	return cacheKeyPrefix + lang
}

// Source returns the underlying source.
func (s *Service) Source() Source {
	return s.src
}

// WorkingSet returns the working set for lang, loading it on a cache miss.
// The result is shared and must not be modified.
func (s *Service) WorkingSet(ctx context.Context, lang string) (*WorkingSet, error) {
	lang, err := ResolveLanguage(lang)
	if err != nil {
		return nil, err
	}

	key := CacheKey(lang)
	if ws, ok := s.sets.Get(ctx, key); ok {
		return ws, nil
	}

	gen := s.generation(lang)
	flight := fmt.Sprintf("%s@%d.%d", lang, gen.all, gen.lang)

	v, err, shared := s.group.Do(flight, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.LoadTimeout)
		defer cancel()

		start := time.Now()
		ws, err := Load(loadCtx, s.src, lang)
		if err != nil {
			s.logger.Error("failed to load FAQs", "language", lang, "error", err)
			return nil, err
		}

		s.storeIfCurrent(loadCtx, lang, gen, ws)
		s.logger.Debug("loaded FAQ working set",
			"language", lang,
			"effective_language", ws.EffectiveLanguage,
			"faqs", len(ws.FAQs),
			"categories", len(ws.Categories),
			"duration", time.Since(start),
		)
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("shared in-flight FAQ load", "language", lang)
	}
	return v.(*WorkingSet), nil
}

// storeIfCurrent caches ws unless an invalidation happened since gen. The
// generation is checked again after the write so an invalidation racing
// with the write cannot leave a stale entry behind.
func (s *Service) storeIfCurrent(ctx context.Context, lang string, gen generation, ws *WorkingSet) {
	if s.generation(lang) != gen {
		s.logger.Debug("discarding stale FAQ load", "language", lang)
		return
	}

	key := CacheKey(lang)
	if err := s.sets.Set(ctx, key, ws); err != nil {
		s.logger.Warn("failed to cache FAQ working set", "language", lang, "error", err)
		return
	}

	if s.generation(lang) != gen {
		_ = s.sets.Delete(ctx, key)
	}
}

func (s *Service) generation(lang string) generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation{all: s.all, lang: s.langs[lang]}
}

// Invalidate drops the cached working set of lang.
func (s *Service) Invalidate(ctx context.Context, lang string) error {
	lang, err := ResolveLanguage(lang)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.langs[lang]++
	s.mu.Unlock()

	if err := s.sets.Delete(ctx, CacheKey(lang)); err != nil {
		return fmt.Errorf("invalidating %q: %w", lang, err)
	}
	s.logger.Info("FAQ cache invalidated", "language", lang)
	return nil
}

// InvalidateAll drops every cached working set.
func (s *Service) InvalidateAll(ctx context.Context) error {
	s.mu.Lock()
	s.all++
	s.mu.Unlock()

	if err := s.sets.DeleteByPrefix(ctx, cacheKeyPrefix); err != nil {
		return fmt.Errorf("invalidating all languages: %w", err)
	}
	s.logger.Info("FAQ cache invalidated", "language", "all")
	return nil
}

// Warm loads langs concurrently. Every failure is reported.
func (s *Service) Warm(ctx context.Context, langs []string) error {
	errs := make([]error, len(langs))

	var g errgroup.Group
	g.SetLimit(s.opts.WarmConcurrency)
	for i, lang := range langs {
		g.Go(func() error {
			if _, err := s.WorkingSet(ctx, lang); err != nil {
				errs[i] = fmt.Errorf("warming %q: %w", lang, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Related returns entries related to entry; see the package-level Related.
func (s *Service) Related(ctx context.Context, ws *WorkingSet, entry model.FAQEntry, limit int) []model.FAQEntry {
	return Related(ctx, s.src, ws, entry, limit, RelatedOptions{
		FallbackOnEmpty: s.opts.FallbackOnEmpty,
		Logger:          s.logger,
	})
}

// Stats returns cache statistics when the backing cache keeps them.
func (s *Service) Stats() (cache.Stats, bool) {
	sp, ok := s.cache.(cache.StatsProvider)
	if !ok {
		return cache.Stats{}, false
	}
	return sp.Stats(), true
}
