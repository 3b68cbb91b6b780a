// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the row store client for FAQ content.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrations embed.FS

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// DBConfig holds database configuration options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible defaults for a read-heavy workload.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// NewDB opens a SQLite database at path with default settings.
func NewDB(path string) (*sql.DB, error) {
	return Open(DriverSQLite, path, DefaultDBConfig())
}

// Open opens a database connection for the given driver and verifies it.
func Open(driver, dsn string, cfg DBConfig) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
	case DriverMySQL:
		var err error
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if driver == DriverSQLite {
		pragmas := []string{
			"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
			"PRAGMA busy_timeout=5000",  // Wait 5s when database is locked
			"PRAGMA synchronous=NORMAL", // Good balance of safety and speed
			"PRAGMA cache_size=-64000",  // 64MB cache
			"PRAGMA foreign_keys=ON",    // Enforce foreign key constraints
			"PRAGMA temp_store=MEMORY",  // Store temp tables in memory
		}
		for _, pragma := range pragmas {
			if _, err := db.Exec(pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
			}
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// mysqlDSN forces the options the row mapping relies on.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parsing mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}

// Migrate runs all pending database migrations for the driver.
func Migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(migrations)

	dialect, dir := "sqlite3", "migrations/sqlite"
	if driver == DriverMySQL {
		dialect, dir = "mysql", "migrations/mysql"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
