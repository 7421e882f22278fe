// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedJobs serves five pages of one job each and records the requested pages.
func pagedJobs(t *testing.T, failPage int) (url string, requested func() []int) {
	t.Helper()

	var (
		mu    sync.Mutex
		pages []int
	)

	srv := listServer(t, func(r *http.Request) (int, any) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()

		if page == failPage {
			return http.StatusInternalServerError, map[string]any{"code": "THB-0020", "message": "boom"}
		}

		return http.StatusOK, map[string]any{
			"data": map[string]any{
				"jobs": []map[string]any{{
					"id":    "5b1f3c8e-1d2a-4c3b-9e8f-7a6b5c4d3e2f",
					"title": fmt.Sprintf("Job-page-%d", page),
				}},
				"pagination": pagination.NewDescriptor(page, 1, 5),
			},
		}
	})

	return srv.URL, func() []int {
		mu.Lock()
		defer mu.Unlock()

		return append([]int(nil), pages...)
	}
}

func TestJobsBrowse_NavigatesPages(t *testing.T) {
	url, requested := pagedJobs(t, 0)

	code, stdout, stderr := runWithInput("n\np\n3\n9\nq\n", "--api-url", url, "jobs", "browse")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []int{1, 2, 1, 3}, requested())
	assert.Contains(t, stderr, "page 9 is out of range")

	order := []string{"Job-page-1", "Job-page-2", "Job-page-1", "Job-page-3"}
	rest := stdout

	for _, want := range order {
		i := strings.Index(rest, want)
		require.GreaterOrEqual(t, i, 0, "missing %s in order", want)
		rest = rest[i+len(want):]
	}

	assert.Contains(t, stdout, "Page 3 of 5: 1 2 [3] 4 5")
}

func TestJobsBrowse_FailedPageKeepsCurrentView(t *testing.T) {
	url, requested := pagedJobs(t, 2)

	code, stdout, stderr := runWithInput("n\np\n", "--api-url", url, "jobs", "browse")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []int{1, 2}, requested())
	assert.Equal(t, 1, strings.Count(stdout, "Job-page-1"))
	assert.Contains(t, stderr, "list fetch failed")
	assert.Contains(t, stderr, "status 500")
	assert.Contains(t, stderr, "already on the first page")
}

func TestJobsBrowse_StopsAtLastPage(t *testing.T) {
	url, requested := pagedJobs(t, 0)

	code, _, stderr := runWithInput("5\nn\nq\n", "--api-url", url, "jobs", "browse")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []int{1, 5}, requested())
	assert.Contains(t, stderr, "already on the last page")
}

func TestNextPage(t *testing.T) {
	shown := pagination.NewDescriptor(2, 10, 50)

	tests := []struct {
		name    string
		command string
		current int
		shown   pagination.Descriptor
		want    int
		wantErr string
	}{
		{"enter goes forward", "", 2, shown, 3, ""},
		{"next", " N ", 2, shown, 3, ""},
		{"previous", "p", 2, shown, 1, ""},
		{"jump", "4", 2, shown, 4, ""},
		{"no previous on first page", "prev", 1, pagination.NewDescriptor(1, 10, 50), 0, "already on the first page"},
		{"no next on last page", "next", 5, pagination.NewDescriptor(5, 10, 50), 0, "already on the last page"},
		{"next without a known page count", "n", 1, pagination.Descriptor{}, 2, ""},
		{"jump past the end", "6", 2, shown, 0, "page 6 is out of range"},
		{"jump to zero", "0", 2, shown, 0, "page 0 is out of range"},
		{"unknown", "last", 2, shown, 0, `unknown command "last"`},
		{"quit", "q", 2, shown, 0, "quit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextPage(tt.command, tt.current, tt.shown)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
