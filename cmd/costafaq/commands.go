// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olegiv/costafaq/internal/auth"
	"github.com/olegiv/costafaq/internal/faq"
	"github.com/olegiv/costafaq/internal/model"
	"github.com/olegiv/costafaq/internal/seed"
	"github.com/olegiv/costafaq/internal/version"
)

// --- migrate ---

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}

// --- seed ---

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import FAQ content from a YAML file",
		Long: `Import FAQ content from a YAML file.

Every language present in the file replaces the stored content of that
language; other languages are left untouched.

Examples:
  costafaq seed
  costafaq seed --file ./data/seed/faqs.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				path = a.cfg.SeedFile
			}

			result, err := seed.NewImporter(a.db, a.logger).ImportFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			// A shared cache would keep serving the old content until its TTL.
			if a.cfg.UseRedisCache() {
				svc, c, err := a.faqService()
				if err != nil {
					return err
				}
				defer func() { _ = c.Close() }()
				for _, lang := range result.Languages {
					if err := svc.Invalidate(cmd.Context(), lang); err != nil {
						a.logger.Warn("invalidating cache after seed", "language", lang, "error", err)
					}
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d faqs, %d categories, %d relations (%s)\n",
				result.FAQs, result.Categories, result.Relations, strings.Join(result.Languages, ", "))
			return nil
		},
	}
	cmd.Flags().String("file", "", "seed file path (default COSTAFAQ_SEED_FILE)")
	return cmd
}

// --- query ---

type queryOptions struct {
	lang     string
	filter   faq.Filter
	featured int
	voice    bool
	keyword  string
	asJSON   bool
}

func newQueryCmd() *cobra.Command {
	var opts queryOptions
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the FAQ from the command line",
		Long: `Query the FAQ from the command line.

Examples:
  costafaq query --lang es --category tax
  costafaq query --lang de --search "nie number"
  costafaq query --featured 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, c, err := a.faqService()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			return runQuery(cmd, faq.NewBrowser(svc), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.lang, "lang", model.DefaultLanguage, "language code")
	f.StringVar(&opts.filter.Category, "category", "", "category key")
	f.StringVar(&opts.filter.TargetArea, "area", "", "target area")
	f.StringVar(&opts.filter.PropertyType, "type", "", "property type")
	f.StringVar(&opts.filter.Search, "search", "", "search text")
	f.IntVar(&opts.featured, "featured", 0, "show up to N featured entries instead")
	f.BoolVar(&opts.voice, "voice", false, "show entries with voice queries instead")
	f.StringVar(&opts.keyword, "keyword", "", "show entries with this keyword instead")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

func runQuery(cmd *cobra.Command, b *faq.Browser, opts queryOptions) error {
	if err := b.SetLanguage(cmd.Context(), opts.lang); err != nil {
		return err
	}
	b.SetFilter(opts.filter)

	state := b.Snapshot()
	entries := state.Filtered
	switch {
	case opts.featured > 0:
		entries = b.Featured(opts.featured)
	case opts.voice:
		entries = b.VoiceSearch()
	case opts.keyword != "":
		entries = b.ByKeyword(opts.keyword)
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"language":           state.Language,
			"effective_language": state.EffectiveLanguage,
			"fallback_used":      state.FallbackUsed,
			"total":              len(entries),
			"faqs":               entries,
		})
	}

	printEntries(out, state, entries)
	return nil
}

func printEntries(out io.Writer, state faq.State, entries []model.FAQEntry) {
	if state.FallbackUsed {
		_, _ = fmt.Fprintf(out, "no content in %q, showing %q\n", state.Language, state.EffectiveLanguage)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SLUG\tCATEGORY\tQUESTION")
	for _, e := range entries {
		category := state.CategoryNames[e.Category]
		if category == "" {
			category = e.Category
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Slug, category, e.Question)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(out, "%d of %d entries\n", len(entries), len(state.FAQs))
}

// --- token ---

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate an admin API token and its hash",
		Long: `Generate an admin API token and its argon2id hash.

Put the hash in COSTAFAQ_ADMIN_TOKEN_HASH and send the token as
"Authorization: Bearer <token>". Pass --value to hash an existing token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("value")
			if token == "" {
				var err error
				if token, err = auth.GenerateToken(); err != nil {
					return err
				}
			}

			hash, err := auth.HashToken(token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "token: %s\n", token)
			_, _ = fmt.Fprintf(out, "COSTAFAQ_ADMIN_TOKEN_HASH='%s'\n", hash)
			return nil
		},
	}
	cmd.Flags().String("value", "", "existing token to hash")
	return cmd
}

// --- version ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
