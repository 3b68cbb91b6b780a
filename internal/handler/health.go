// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/costafaq/internal/cache"
	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/store"
	"github.com/olegiv/costafaq/internal/version"
)

// checkTimeout bounds each dependency check.
const checkTimeout = 3 * time.Second

// StatsFunc reports cache statistics, ok=false when unavailable.
type StatsFunc func() (cache.Stats, bool)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	queries   *store.Queries
	stats     StatsFunc
	startTime time.Time
}

// NewHealthHandler creates a new health handler. stats may be nil.
func NewHealthHandler(db *sql.DB, stats StatsFunc) *HealthHandler {
	return &HealthHandler{
		db:        db,
		queries:   store.New(db),
		stats:     stats,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Content   map[string]int64 `json:"content,omitempty"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	counts, contentCheck := h.checkContent(r.Context())

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Version,
		Checks: map[string]Check{
			"database": dbCheck,
			"content":  contentCheck,
		},
		Content: counts,
	}

	switch {
	case dbCheck.Status != "healthy":
		status.Status = "unhealthy"
	case contentCheck.Status != "healthy":
		status.Status = "degraded"
	}

	if h.stats != nil {
		if s, ok := h.stats(); ok {
			status.Cache = &s
		}
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}

	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. The service is ready when the database
// answers and the FAQ tables can be counted.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if check := h.checkDatabase(r.Context()); check.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "reason": "database"})
		return
	}
	counts, check := h.checkContent(r.Context())
	if check.Status == "unhealthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready", "reason": "content"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "content": counts})
}

// checkDatabase verifies database connectivity.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "health check: database ping failed", "error", err)
		return Check{Status: "unhealthy", Message: "Database unreachable", Latency: latency.String()}
	}
	return Check{Status: "healthy", Message: "Connected", Latency: latency.String()}
}

// checkContent counts FAQ rows per language. An empty default language is
// degraded: every request would be served empty.
func (h *HealthHandler) checkContent(ctx context.Context) (map[string]int64, Check) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	rows, err := h.queries.CountFAQsByLanguage(ctx)
	if err != nil {
		slog.WarnContext(ctx, "health check: counting faqs failed", "error", err)
		return nil, Check{Status: "unhealthy", Message: "FAQ tables unavailable"}
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Language] = row.Count
	}
	if counts[model.DefaultLanguage] == 0 {
		return counts, Check{Status: "degraded", Message: "No FAQs in the default language"}
	}
	return counts, Check{Status: "healthy"}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAllocMB:   m.Alloc / 1024 / 1024,
	}
}
