// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/olegiv/costafaq/internal/cache"
	"github.com/olegiv/costafaq/internal/config"
	"github.com/olegiv/costafaq/internal/content"
	"github.com/olegiv/costafaq/internal/faq"
	"github.com/olegiv/costafaq/internal/logging"
	"github.com/olegiv/costafaq/internal/store"
)

// app holds what every command needs: config, logger and a migrated database.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

// newApp loads configuration, sets up logging and opens the database.
// Migrations run unless skipMigrate is set.
func newApp(skipMigrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.SlogLevel(), cfg.IsDevelopment())
	slog.SetDefault(logger)

	if cfg.DBDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	logger.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.Open(cfg.DBDriver, cfg.DBDSN, store.DefaultDBConfig())
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	if !skipMigrate {
		logger.Info("running database migrations")
		if err := store.Migrate(db, cfg.DBDriver); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("error closing database connection", "error", err)
	}
}

// faqService builds the FAQ service over the store with the configured cache.
// The caller closes the returned cache.
func (a *app) faqService() (*faq.Service, cache.Cacher, error) {
	c, err := cache.NewCache(cache.Config{
		RedisURL:        a.cfg.RedisURL,
		Prefix:          a.cfg.CachePrefix,
		DefaultTTL:      a.cfg.CacheTTLDuration(),
		MaxSize:         a.cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return nil, nil, err
	}
	if a.cfg.UseRedisCache() {
		a.logger.Info("cache initialized", "backend", "redis", "url", cache.SanitizeRedisURL(a.cfg.RedisURL))
	} else {
		a.logger.Info("cache initialized", "backend", "memory", "max_size", a.cfg.CacheMaxSize)
	}

	src := faq.NewStoreSource(store.New(a.db), content.NewRenderer(), a.logger)
	svc := faq.NewService(src, c, faq.ServiceOptions{
		TTL:             a.cfg.CacheTTLDuration(),
		FallbackOnEmpty: a.cfg.RelatedFallbackOnEmpty,
		Logger:          a.logger,
	})
	return svc, c, nil
}
