// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listServer(t *testing.T, handler func(r *http.Request) (int, any)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, body := handler(r)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func run(args ...string) (code int, stdout, stderr string) {
	return runWithInput("", args...)
}

func runWithInput(input string, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer

	code = Execute(args, strings.NewReader(input), &out, &errOut)

	return code, out.String(), errOut.String()
}

func TestJobsList_PrintsTableAndPageWindow(t *testing.T) {
	var gotQuery map[string][]string

	srv := listServer(t, func(r *http.Request) (int, any) {
		assert.Equal(t, "/v1/jobs", r.URL.Path)
		gotQuery = r.URL.Query()

		return http.StatusOK, map[string]any{
			"data": map[string]any{
				"jobs": []map[string]any{
					{
						"id":             "5b1f3c8e-1d2a-4c3b-9e8f-7a6b5c4d3e2f",
						"title":          "Senior Go Engineer",
						"company":        "DLT",
						"category":       "engineering",
						"location":       "Lisbon",
						"employmentType": "full-time",
						"status":         "open",
					},
				},
				"pagination": pagination.NewDescriptor(3, 2, 20),
			},
		}
	})

	code, stdout, stderr := run("--api-url", srv.URL, "jobs", "list", "--page", "3", "--limit", "2", "--q", "go", "--location", "Lisbon")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{"3"}, gotQuery["page"])
	assert.Equal(t, []string{"2"}, gotQuery["limit"])
	assert.Equal(t, []string{"go"}, gotQuery["q"])
	assert.Equal(t, []string{"Lisbon"}, gotQuery["location"])
	assert.NotContains(t, gotQuery, "category")

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "TITLE", "COMPANY", "CATEGORY", "LOCATION", "TYPE", "STATUS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"5b1f3c8e", "Senior", "Go", "Engineer", "DLT", "engineering", "Lisbon", "full-time", "open"}, strings.Fields(lines[1]))
	assert.Equal(t, "Page 3 of 10: 1 2 [3] 4 5 … 10", lines[2])
}

func TestTalentsList_SendsBearerToken(t *testing.T) {
	t.Setenv(envToken, "access-token")

	srv := listServer(t, func(r *http.Request) (int, any) {
		assert.Equal(t, "/v1/talents", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "go", r.URL.Query().Get("skill"))

		return http.StatusOK, map[string]any{
			"data": map[string]any{
				"talents": []map[string]any{
					{
						"id":              "0c9d8e7f-6a5b-4c3d-2e1f-0a9b8c7d6e5f",
						"name":            "Ada Lovelace",
						"location":        "Porto",
						"skills":          []string{"go", "kafka"},
						"experienceYears": 7,
					},
				},
				"pagination": pagination.NewDescriptor(1, 12, 1),
			},
		}
	})

	code, stdout, stderr := run("--api-url", srv.URL, "talents", "list", "--skill", "go")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Ada Lovelace")
	assert.Contains(t, stdout, "go,kafka")
	assert.True(t, strings.HasSuffix(stdout, "Page 1 of 1\n"), stdout)
}

func TestJobsList_JSONOutput(t *testing.T) {
	srv := listServer(t, func(_ *http.Request) (int, any) {
		return http.StatusOK, map[string]any{
			"data": map[string]any{
				"jobs":       []any{},
				"pagination": pagination.NewDescriptor(1, 12, 0),
			},
		}
	})

	code, stdout, stderr := run("--api-url", srv.URL, "-o", "json", "jobs", "list")
	require.Equal(t, 0, code, stderr)

	var got struct {
		Jobs       []jobItem             `json:"jobs"`
		Pagination pagination.Descriptor `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))

	assert.Empty(t, got.Jobs)
	assert.Equal(t, 0, got.Pagination.Pages)
}

func TestJobsList_EmptyResult(t *testing.T) {
	srv := listServer(t, func(_ *http.Request) (int, any) {
		return http.StatusOK, map[string]any{
			"data": map[string]any{
				"jobs":       []any{},
				"pagination": pagination.NewDescriptor(1, 12, 0),
			},
		}
	})

	code, stdout, _ := run("--api-url", srv.URL, "jobs", "list")

	require.Equal(t, 0, code)
	assert.True(t, strings.HasSuffix(stdout, "No results.\n"), stdout)
}

func TestJobsList_Failures(t *testing.T) {
	srv := listServer(t, func(_ *http.Request) (int, any) {
		return http.StatusUnauthorized, map[string]any{
			"code":    "THB-0030",
			"title":   "Unauthorized",
			"message": "Missing or invalid access token.",
		}
	})

	tests := []struct {
		name    string
		args    []string
		wantErr []string
	}{
		{
			name:    "server error carries code and hint",
			args:    []string{"--api-url", srv.URL, "jobs", "list"},
			wantErr: []string{"list fetch failed", "status 401", "THB-0030", "Missing or invalid access token.", "hint: pass --token"},
		},
		{
			name:    "unknown output format",
			args:    []string{"--api-url", srv.URL, "-o", "yaml", "jobs", "list"},
			wantErr: []string{"unknown output format", `"yaml"`},
		},
		{
			name:    "page below one",
			args:    []string{"--api-url", srv.URL, "jobs", "list", "--page", "0"},
			wantErr: []string{"--page must be at least 1"},
		},
		{
			name:    "negative limit",
			args:    []string{"--api-url", srv.URL, "talents", "list", "--limit", "-5"},
			wantErr: []string{"--limit must not be negative"},
		},
		{
			name:    "unreachable api",
			args:    []string{"--api-url", "http://127.0.0.1:1", "--timeout", "2s", "jobs", "list"},
			wantErr: []string{"list fetch failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := run(tt.args...)

			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)

			for _, want := range tt.wantErr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

func TestRootCmd_TimeoutDefaultsToNoDeadline(t *testing.T) {
	flag := RootCmd().PersistentFlags().Lookup("timeout")
	require.NotNil(t, flag)
	assert.Equal(t, "0s", flag.DefValue)

	opts := globalOptions{apiURL: defaultAPIURL, output: outputTable}
	require.NoError(t, opts.validate())
	assert.Zero(t, opts.timeout)
}

func TestPageLine(t *testing.T) {
	tests := []struct {
		name string
		d    pagination.Descriptor
		want string
	}{
		{"no results", pagination.NewDescriptor(1, 12, 0), "No results."},
		{"single page", pagination.NewDescriptor(1, 12, 5), "Page 1 of 1"},
		{"first page", pagination.NewDescriptor(1, 10, 100), "Page 1 of 10: [1] 2 3 … 10"},
		{"middle page", pagination.NewDescriptor(6, 10, 100), "Page 6 of 10: 1 … 4 5 [6] 7 8 … 10"},
		{"last page", pagination.NewDescriptor(10, 10, 100), "Page 10 of 10: 1 … 8 9 [10]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageLine(tt.d))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Senior Go…", truncate("Senior Go Engineer", 10))
	assert.Equal(t, "-", orDash(""))
}
