// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitCodeTooManyRequests is the error code of a 429 response.
const RateLimitCodeTooManyRequests = "THB-0429"

// RateLimitConfig holds the three independent rate limit tiers.
//   - GlobalMax: reads and anything not covered by another tier
//   - AuthMax: login, register and refresh, the credential-guessing surface
//   - WriteMax: POST, PUT, PATCH and DELETE
type RateLimitConfig struct {
	Enabled   bool
	GlobalMax int
	AuthMax   int
	WriteMax  int
	Window    time.Duration
	Storage   RateLimitStorage
}

var healthPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/version": true,
}

var authPaths = map[string]bool{
	"/v1/auth/login":    true,
	"/v1/auth/register": true,
	"/v1/auth/refresh":  true,
}

func isHealthPath(path string) bool {
	return healthPaths[path]
}

func isAuthPath(path string) bool {
	return authPaths[path]
}

func isWriteMethod(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}

	return false
}

// RateLimiterMiddleware enforces the tiers by path and method. Each tier has its own
// per-IP counter. Tier selection, first match wins:
//  1. health, readiness and version endpoints are never limited
//  2. credential endpoints use the auth tier
//  3. write methods use the write tier
//  4. everything else uses the global tier
//
// When disabled the middleware only calls c.Next().
func RateLimiterMiddleware(cfg RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	limitReached := newRateLimitReachedHandler(cfg.Window)

	newTier := func(name string, maxRequests int) fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        maxRequests,
			Expiration: cfg.Window,
			Storage:    cfg.Storage,
			KeyGenerator: func(c *fiber.Ctx) string {
				return name + ":" + c.IP()
			},
			LimitReached: limitReached,
		})
	}

	globalLimiter := newTier("global", cfg.GlobalMax)
	authLimiter := newTier("auth", cfg.AuthMax)
	writeLimiter := newTier("write", cfg.WriteMax)

	return func(c *fiber.Ctx) error {
		path := c.Path()

		switch {
		case isHealthPath(path):
			return c.Next()
		case isAuthPath(path):
			return authLimiter(c)
		case isWriteMethod(c.Method()):
			return writeLimiter(c)
		default:
			return globalLimiter(c)
		}
	}
}

type rateLimitErrorResponse struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// newRateLimitReachedHandler answers 429 with a Retry-After of the window length in seconds.
func newRateLimitReachedHandler(window time.Duration) fiber.Handler {
	retryAfterSeconds := strconv.Itoa(int(window.Seconds()))

	return func(c *fiber.Ctx) error {
		if c.GetRespHeader(fiber.HeaderRetryAfter) == "" {
			c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
		}

		return c.Status(fiber.StatusTooManyRequests).JSON(rateLimitErrorResponse{
			Code:    RateLimitCodeTooManyRequests,
			Title:   "Too Many Requests",
			Message: "Rate limit exceeded. Please retry after " + retryAfterSeconds + " seconds.",
		})
	}
}
