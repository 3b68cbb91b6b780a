// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/costafaq/internal/scheduler"
)

// JobRegistry lists and triggers scheduled jobs.
type JobRegistry interface {
	List() []scheduler.JobInfo
	TriggerNow(name string) error
}

// SetJobs enables the admin job endpoints.
func (h *Handler) SetJobs(jobs JobRegistry) {
	h.jobs = jobs
}

// ListJobs handles GET /api/v1/admin/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	if h.jobs == nil {
		WriteSuccess(w, []scheduler.JobInfo{}, nil)
		return
	}
	WriteSuccess(w, h.jobs.List(), nil)
}

// RunJob handles POST /api/v1/admin/jobs/{name}/run. The job runs
// synchronously and its error, if any, is logged.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.jobs == nil {
		WriteNotFound(w, "Job not found")
		return
	}

	err := h.jobs.TriggerNow(name)
	switch {
	case err == nil:
		WriteSuccess(w, map[string]string{"job": name, "status": "completed"}, nil)
	case errors.Is(err, scheduler.ErrJobNotFound):
		WriteNotFound(w, "Job not found")
	case errors.Is(err, scheduler.ErrTriggerNotAvailable):
		WriteBadRequest(w, "Job cannot be triggered manually", nil)
	default:
		h.logger.ErrorContext(r.Context(), "running job", "job", name, "error", err)
		WriteInternalError(w, "Job failed")
	}
}
