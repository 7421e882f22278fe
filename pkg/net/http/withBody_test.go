// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profilePayload struct {
	Name     string   `json:"name" validate:"required,max=20"`
	Age      int      `json:"age,omitempty" validate:"omitempty,gte=0"`
	Headline *string  `json:"headline,omitempty" validate:"omitempty,max=10"`
	Tags     []string `json:"tags,omitempty"`
	Role     string   `json:"role,omitempty" validate:"omitempty,oneof=talent recruiter"`
}

func newBodyApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/test", WithBody(new(profilePayload), func(p any, c *fiber.Ctx) error {
		payload := p.(*profilePayload)

		return c.Status(stdhttp.StatusOK).JSON(payload)
	}))

	return app
}

func TestWithBody(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode int
		expectedErr  string
	}{
		{name: "valid payload", body: `{"name":"Ada","age":36,"tags":["go"]}`, expectedCode: stdhttp.StatusOK},
		{name: "empty optional values", body: `{"name":"Ada","tags":[],"role":""}`, expectedCode: stdhttp.StatusOK},
		{name: "empty body", body: "", expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0001"},
		{name: "null body", body: "null", expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0001"},
		{name: "array body", body: `[{"name":"Ada"}]`, expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0019"},
		{name: "unknown field", body: `{"name":"Ada","salary":10}`, expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0017"},
		{name: "missing required", body: `{"age":3}`, expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0018"},
		{name: "type mismatch", body: `{"name":"Ada","age":"old"}`, expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0019"},
		{name: "pointer type mismatch", body: `{"name":"Ada","headline":12}`, expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0019"},
		{name: "invalid enum", body: `{"name":"Ada","role":"admin"}`, expectedCode: stdhttp.StatusBadRequest, expectedErr: "THB-0019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(stdhttp.MethodPost, "/test", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := newBodyApp().Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, resp.StatusCode)

			if tt.expectedErr == "" {
				return
			}

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedErr, body["code"])
		})
	}
}

func TestWithBody_FieldMessages(t *testing.T) {
	req := httptest.NewRequest(stdhttp.MethodPost, "/test", strings.NewReader(`{"name":"Ada","role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := newBodyApp().Test(req)
	require.NoError(t, err)

	var body struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "role must be one of [talent recruiter]", body.Fields["role"])
}

func TestFindUnknownFields(t *testing.T) {
	tests := []struct {
		name      string
		original  map[string]any
		marshaled map[string]any
		expected  map[string]any
	}{
		{
			name:      "no differences",
			original:  map[string]any{"name": "Ada"},
			marshaled: map[string]any{"name": "Ada"},
			expected:  map[string]any{},
		},
		{
			name:      "extra field",
			original:  map[string]any{"name": "Ada", "extra": "x"},
			marshaled: map[string]any{"name": "Ada"},
			expected:  map[string]any{"extra": "x"},
		},
		{
			name:      "zero number omitted",
			original:  map[string]any{"age": 0.0},
			marshaled: map[string]any{},
			expected:  map[string]any{},
		},
		{
			name:      "nested difference",
			original:  map[string]any{"meta": map[string]any{"a": 1.0, "b": 2.0}},
			marshaled: map[string]any{"meta": map[string]any{"a": 1.0}},
			expected:  map[string]any{"meta": map[string]any{"b": 2.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findUnknownFields(tt.original, tt.marshaled))
		})
	}
}

func TestCompareSlices(t *testing.T) {
	assert.Nil(t, compareSlices([]any{"a", "b"}, []any{"a", "b"}))
	assert.Equal(t, []any{"c"}, compareSlices([]any{"a", "b", "c"}, []any{"a", "b"}))
	assert.Equal(t, []any{"z"}, compareSlices([]any{"a", "z"}, []any{"a", "b"}))
}

func TestGetTypeMismatch(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		kind     reflect.Kind
		expected string
	}{
		{"string into string", "a", reflect.String, ""},
		{"string into int", "a", reflect.Int, "string"},
		{"string into struct", "50000", reflect.Struct, ""},
		{"number into string", 1.0, reflect.String, "number"},
		{"number into int", 1.0, reflect.Int, ""},
		{"bool into string", true, reflect.String, "boolean"},
		{"object into slice", map[string]any{}, reflect.Slice, "object"},
		{"array into slice", []any{}, reflect.Slice, ""},
		{"array into string", []any{}, reflect.String, "array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getTypeMismatch(tt.value, tt.kind))
		})
	}
}

func TestFormatErrorFieldName(t *testing.T) {
	assert.Equal(t, "title", formatErrorFieldName("CreateJobInput.title"))
	assert.Equal(t, "meta.key", formatErrorFieldName("Input.meta.key"))
	assert.Equal(t, "title", formatErrorFieldName("title"))
}

func TestExtractFieldNameFromUnmarshalError(t *testing.T) {
	assert.Equal(t, "age", extractFieldNameFromUnmarshalError("json: cannot unmarshal string into Go struct field profilePayload.age of type int"))
	assert.Empty(t, extractFieldNameFromUnmarshalError("unexpected end of JSON input"))
}
