// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command costafaq serves and manages the multilingual property FAQ.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/olegiv/costafaq/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "costafaq",
		Short: "Multilingual FAQ service for Costa del Sol property buyers",
		Long: `costafaq serves FAQ content in several languages with English fallback.

Configuration is read from COSTAFAQ_* environment variables and an optional .env file.
Running without a command starts the HTTP server.`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; real environment variables win.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newQueryCmd(),
		newTokenCmd(),
		newVersionCmd(),
	)
	return root
}
