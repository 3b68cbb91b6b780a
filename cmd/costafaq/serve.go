// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/olegiv/costafaq/internal/config"
	"github.com/olegiv/costafaq/internal/faq"
	"github.com/olegiv/costafaq/internal/handler"
	"github.com/olegiv/costafaq/internal/handler/api"
	"github.com/olegiv/costafaq/internal/middleware"
	"github.com/olegiv/costafaq/internal/scheduler"
	"github.com/olegiv/costafaq/internal/seo"
	"github.com/olegiv/costafaq/internal/session"
	"github.com/olegiv/costafaq/internal/version"
)

// apiCacheMaxAge is the public cache lifetime of FAQ API responses, in seconds.
const apiCacheMaxAge = 60

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	logger := a.logger
	logger.Info("starting costafaq", "version", version.Get().String(), "languages", a.cfg.Languages)

	svc, c, err := a.faqService()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if err := svc.Warm(ctx, a.cfg.Languages); err != nil {
		logger.Warn("initial cache warm incomplete", "error", err)
	}

	sched := scheduler.New(svc, a.cfg.Languages, a.cfg.WarmSchedule, logger)
	if a.cfg.WarmSchedule != "" {
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
	}

	sessionManager := session.New(a.db, a.cfg.DBDriver, a.cfg.IsDevelopment())
	if !a.cfg.AdminEnabled() {
		logger.Info("admin API disabled", "reason", "COSTAFAQ_ADMIN_TOKEN_HASH not set")
	}

	r := newRouter(a, svc, sched, sessionManager)

	srv := &http.Server{
		Addr:              a.cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", a.cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newRouter assembles the middleware stack and every route.
func newRouter(a *app, svc *faq.Service, sched *scheduler.Scheduler, sm *scs.SessionManager) http.Handler {
	cfg := a.cfg
	logger := a.logger

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sm.LoadAndSave)

	health := handler.NewHealthHandler(a.db, svc.Stats)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	seoHandler := handler.NewSEOHandler(svc, cfg.Languages, cfg.SiteURL, disallowCrawlers(cfg))
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware())
		r.Get("/sitemap.xml", seoHandler.Sitemap)
		r.Get("/robots.txt", seoHandler.Robots)
	})

	apiHandler := api.NewHandler(svc, seo.SiteConfig{SiteURL: cfg.SiteURL, SiteName: cfg.SiteName}, cfg.Languages, logger)
	apiHandler.SetJobs(sched.Registry())

	language := middleware.Language(middleware.LanguageConfig{
		Supported: cfg.Languages,
		Sessions:  sm,
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware())
		r.Use(middleware.CacheControl(apiCacheMaxAge))
		apiHandler.RegisterRoutes(r, language, middleware.AdminAuth(cfg.AdminTokenHash))
	})

	slog.Debug("router initialized", "routes", countRoutes(r))
	return r
}

// disallowCrawlers keeps non-production deployments out of search indexes.
func disallowCrawlers(cfg *config.Config) bool {
	return cfg.Env != "production"
}

func countRoutes(r chi.Routes) int {
	n := 0
	_ = chi.Walk(r, func(string, string, http.Handler, ...func(http.Handler) http.Handler) error {
		n++
		return nil
	})
	return n
}
