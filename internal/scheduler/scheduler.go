// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic cache warm job.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// WarmJobName is the registry name of the cache warm job.
const WarmJobName = "cache_warm"

// DefaultWarmTimeout bounds a single warm run.
const DefaultWarmTimeout = 2 * time.Minute

// Warmer drops and reloads cached working sets.
type Warmer interface {
	InvalidateAll(ctx context.Context) error
	Warm(ctx context.Context, langs []string) error
}

// Scheduler handles scheduled jobs.
type Scheduler struct {
	cron      *cron.Cron
	registry  *Registry
	warmer    Warmer
	languages []string
	schedule  string
	timeout   time.Duration
	logger    *slog.Logger

	// running serializes warm runs between cron and manual triggers.
	running sync.Mutex
}

// New creates a new scheduler warming languages on schedule.
func New(warmer Warmer, languages []string, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New()
	return &Scheduler{
		cron:      c,
		registry:  NewRegistry(c, logger),
		warmer:    warmer,
		languages: languages,
		schedule:  schedule,
		timeout:   DefaultWarmTimeout,
		logger:    logger,
	}
}

// Registry returns the job registry.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Start registers the warm job and starts the cron loop.
func (s *Scheduler) Start() error {
	err := s.registry.Register(WarmJobName,
		"Invalidate and reload the FAQ working set of every language",
		s.schedule,
		func() { _ = s.WarmNow(context.Background()) },
		func() error { return s.WarmNow(context.Background()) },
	)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "warm_schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// WarmNow invalidates every cached working set and reloads each language.
// Failures are logged per run and returned.
func (s *Scheduler) WarmNow(ctx context.Context) error {
	s.running.Lock()
	defer s.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.warmer.InvalidateAll(ctx)
	if err == nil {
		err = s.warmer.Warm(ctx, s.languages)
	}
	duration := time.Since(start)
	s.registry.recordRun(WarmJobName, duration, err)

	if err != nil {
		s.logger.Error("cache warm failed", "duration", duration, "languages", len(s.languages), "error", err)
		return err
	}
	s.logger.Info("cache warmed", "duration", duration, "languages", len(s.languages))
	return nil
}
