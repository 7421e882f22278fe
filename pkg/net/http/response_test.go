// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(c *fiber.Ctx) error
		expected int
	}{
		{"unauthorized", func(c *fiber.Ctx) error { return Unauthorized(c, "THB-0031", "Invalid Token", "expired") }, stdhttp.StatusUnauthorized},
		{"forbidden", func(c *fiber.Ctx) error { return Forbidden(c, "THB-0032", "Insufficient Role", "nope") }, stdhttp.StatusForbidden},
		{"not found", func(c *fiber.Ctx) error { return NotFound(c, "THB-0013", "Entity Not Found", "missing") }, stdhttp.StatusNotFound},
		{"conflict", func(c *fiber.Ctx) error { return Conflict(c, "THB-0051", "Duplicate", "again") }, stdhttp.StatusConflict},
		{"unprocessable", func(c *fiber.Ctx) error { return UnprocessableEntity(c, "THB-0050", "Job Not Open", "closed") }, stdhttp.StatusUnprocessableEntity},
		{"internal", func(c *fiber.Ctx) error { return InternalServerError(c, "THB-0020", "Internal", "oops") }, stdhttp.StatusInternalServerError},
		{"unavailable", func(c *fiber.Ctx) error { return ServiceUnavailable(c, "THB-0023", "Unavailable", "later") }, stdhttp.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{DisableStartupMessage: true})
			app.Get("/test", tt.respond)

			resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/test", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["code"])
			assert.NotEmpty(t, body["title"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestBadRequest(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/test", func(c *fiber.Ctx) error {
		return BadRequest(c, map[string]string{"error": "invalid input"})
	})

	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid input", body["error"])
}

func TestJSONResponseError(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/test", func(c *fiber.Ctx) error {
		return JSONResponseError(c, pkg.ResponseError{Code: stdhttp.StatusBadGateway, Title: "Bad Gateway", Message: "upstream"})
	})

	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusBadGateway, resp.StatusCode)
}
