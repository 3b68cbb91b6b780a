// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL     string   // Base URL for the sitemap reference
	DisallowAll bool     // Block all crawlers (staging)
	Languages   []string // Languages whose FAQ pages are advertised
}

// robotsDisallow lists paths crawlers never need.
var robotsDisallow = []string{
	"/api/v1/admin",
	"/health",
}

// BuildRobots generates robots.txt content.
func BuildRobots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	for _, path := range robotsDisallow {
		sb.WriteString("Disallow: " + path + "\n")
	}
	for _, lang := range cfg.Languages {
		sb.WriteString("Allow: " + FAQIndexPath(lang) + "\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: " + strings.TrimSuffix(cfg.SiteURL, "/") + "/sitemap.xml\n")
	}

	return sb.String()
}
