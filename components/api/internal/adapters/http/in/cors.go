// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORSConfig holds the comma-separated CORS settings loaded from the environment.
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// CORSMiddleware configures CORS from explicit origins.
//
// Input strings are sanitized before they reach cors.New:
//   - origins without a scheme://host form, and empty segments, are dropped;
//   - methods and headers lose empty segments from stray commas.
//
// Fiber panics on either kind of malformed entry.
func CORSMiddleware(cfg CORSConfig) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  sanitizeOrigins(cfg.AllowedOrigins),
		AllowMethods:  sanitizeCommaSeparated(cfg.AllowedMethods),
		AllowHeaders:  sanitizeCommaSeparated(cfg.AllowedHeaders),
		ExposeHeaders: "Retry-After",
		Next:          corsSkipPath,
	})
}

// corsSkipPath reports paths that never serve browser cross-origin requests.
func corsSkipPath(c *fiber.Ctx) bool {
	path := c.Path()

	switch path {
	case "/health", "/ready", "/version":
		return true
	}

	return strings.HasPrefix(path, "/swagger")
}

// sanitizeOrigins trims the comma-separated origins and keeps well-formed origins only.
// A "*" anywhere in the list collapses the result to "*".
func sanitizeOrigins(input string) string {
	var clean []string

	for _, p := range strings.Split(input, ",") {
		p = strings.TrimSpace(p)

		switch {
		case p == "":
			continue
		case p == "*":
			return "*"
		case isValidOrigin(p):
			clean = append(clean, p)
		}
	}

	return strings.Join(clean, ",")
}

// isValidOrigin checks the RFC 6454 form scheme "://" host [ ":" port ] with an
// http or https scheme and no path, query, fragment or userinfo. A wildcard is
// only accepted as a leading "*." subdomain label.
func isValidOrigin(origin string) bool {
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	if parsed.Host == "" || strings.Contains(strings.TrimPrefix(parsed.Host, "*."), "*") {
		return false
	}

	if parsed.Path != "" && parsed.Path != "/" {
		return false
	}

	return parsed.RawQuery == "" && parsed.Fragment == "" && parsed.User == nil
}

func sanitizeCommaSeparated(input string) string {
	var clean []string

	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}

	return strings.Join(clean, ",")
}
