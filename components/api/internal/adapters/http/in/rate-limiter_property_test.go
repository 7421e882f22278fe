//go:build property

// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/quick"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// TestProperty_IsWriteMethod_OnlyMutatingVerbs: exactly POST, PUT, PATCH and DELETE
// are write methods, whatever else the method string holds.
func TestProperty_IsWriteMethod_OnlyMutatingVerbs(t *testing.T) {
	t.Parallel()

	writes := map[string]bool{
		http.MethodPost: true, http.MethodPut: true, http.MethodPatch: true, http.MethodDelete: true,
	}

	property := func(method string) bool {
		return isWriteMethod(method) == writes[method]
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 500}))
}

// TestProperty_AllowsExactlyMaxRequests: for any max in [1, 20] the global tier lets
// max requests through and rejects the next one.
func TestProperty_AllowsExactlyMaxRequests(t *testing.T) {
	t.Parallel()

	property := func(raw uint8) bool {
		maxRequests := int(raw%20) + 1

		app := fiber.New(fiber.Config{DisableStartupMessage: true})
		app.Use(RateLimiterMiddleware(RateLimitConfig{
			Enabled: true, GlobalMax: maxRequests, AuthMax: 1, WriteMax: 1, Window: time.Minute,
		}))
		app.Get("/v1/talents", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

		for i := 0; i <= maxRequests; i++ {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/talents", nil))
			if err != nil {
				return false
			}

			resp.Body.Close()

			expected := http.StatusOK
			if i == maxRequests {
				expected = http.StatusTooManyRequests
			}

			if resp.StatusCode != expected {
				return false
			}
		}

		return true
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 25}))
}

// TestProperty_HealthPathsNeverLimited: health paths pass regardless of the
// configured maximum.
func TestProperty_HealthPathsNeverLimited(t *testing.T) {
	t.Parallel()

	paths := []string{"/health", "/ready", "/version"}

	property := func(seed uint8, hits uint8) bool {
		path := paths[int(seed)%len(paths)]

		app := fiber.New(fiber.Config{DisableStartupMessage: true})
		app.Use(RateLimiterMiddleware(RateLimitConfig{
			Enabled: true, GlobalMax: 1, AuthMax: 1, WriteMax: 1, Window: time.Minute,
		}))
		app.Get(path, func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

		for i := 0; i < int(hits%10)+2; i++ {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
			if err != nil {
				return false
			}

			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return false
			}
		}

		return true
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 25}))
}
