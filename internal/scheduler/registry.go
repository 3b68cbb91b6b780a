// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Registry errors.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrTriggerNotAvailable = errors.New("manual trigger not available")
)

// cronParser accepts standard five-field expressions and descriptors.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// registeredJob holds metadata about a registered cron job.
type registeredJob struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	jobFunc     func()
	triggerFunc func() error // nil if manual trigger not allowed

	lastDuration time.Duration
	lastErr      error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Schedule     string    `json:"schedule"`
	LastRun      time.Time `json:"last_run,omitzero"`
	NextRun      time.Time `json:"next_run,omitzero"`
	LastDuration string    `json:"last_duration,omitempty"`
	LastError    string    `json:"last_error,omitempty"`
	CanTrigger   bool      `json:"can_trigger"`
}

// Registry tracks the jobs of one cron instance.
type Registry struct {
	cron   *cron.Cron
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*registeredJob
}

// NewRegistry creates a registry adding jobs to c.
func NewRegistry(c *cron.Cron, logger *slog.Logger) *Registry {
	return &Registry{
		cron:   c,
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

// Register adds jobFunc to the cron instance under name.
func (r *Registry) Register(name, description, schedule string, jobFunc func(), triggerFunc func() error) error {
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[name]; ok {
		return fmt.Errorf("job already registered: %s", name)
	}

	entryID, err := r.cron.AddFunc(schedule, jobFunc)
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}

	r.jobs[name] = &registeredJob{
		name:        name,
		description: description,
		schedule:    schedule,
		entryID:     entryID,
		jobFunc:     jobFunc,
		triggerFunc: triggerFunc,
	}

	r.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// recordRun stores the outcome of a job run.
func (r *Registry) recordRun(name string, d time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job, ok := r.jobs[name]; ok {
		job.lastDuration = d
		job.lastErr = err
	}
}

// List returns all registered jobs sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		entry := r.cron.Entry(job.entryID)
		info := JobInfo{
			Name:        job.name,
			Description: job.description,
			Schedule:    job.schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
			CanTrigger:  job.triggerFunc != nil,
		}
		if job.lastDuration > 0 {
			info.LastDuration = job.lastDuration.String()
		}
		if job.lastErr != nil {
			info.LastError = job.lastErr.Error()
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// TriggerNow manually executes a job immediately.
func (r *Registry) TriggerNow(name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if job.triggerFunc == nil {
		return fmt.Errorf("%w: %s", ErrTriggerNotAvailable, name)
	}

	r.logger.Info("manually triggering job", "name", name)
	return job.triggerFunc()
}

// UpdateSchedule replaces the cron entry of a job. The old entry is kept
// when the new expression cannot be scheduled.
func (r *Registry) UpdateSchedule(name, schedule string) error {
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	entryID, err := r.cron.AddFunc(schedule, job.jobFunc)
	if err != nil {
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}
	r.cron.Remove(job.entryID)

	job.entryID = entryID
	job.schedule = schedule

	r.logger.Info("updated job schedule", "name", name, "schedule", schedule)
	return nil
}
