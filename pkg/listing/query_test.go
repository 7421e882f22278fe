// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "defaults left to the server",
			query: Query{Resource: "/v1/jobs", Key: "jobs"},
			want:  "/v1/jobs",
		},
		{
			name:  "page and limit",
			query: Query{Resource: "/v1/jobs", Page: 2, Limit: 12},
			want:  "/v1/jobs?limit=12&page=2",
		},
		{
			name: "filters are encoded and sorted",
			query: Query{Resource: "/v1/jobs", Page: 1, Filters: map[string]string{
				"q": "go developer", "category": "engineering", "location": "",
			}},
			want: "/v1/jobs?category=engineering&page=1&q=go+developer",
		},
		{
			name:  "page filter cannot override the explicit page",
			query: Query{Resource: "/v1/users", Page: 3, Filters: map[string]string{"page": "9", "role": "talent"}},
			want:  "/v1/users?page=3&role=talent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, BuildRequest(tt.query).String())
		})
	}
}

func TestQuery_WithMethodsReturnCopies(t *testing.T) {
	t.Parallel()

	base := NewQuery("/v1/jobs", "jobs").WithFilter("category", "design")
	next := base.WithPage(4).WithFilter("category", "engineering").WithLimit(24)

	assert.Equal(t, 1, base.Page)
	assert.Equal(t, "design", base.Filters["category"])
	assert.Equal(t, 0, base.Limit)

	assert.Equal(t, 4, next.Page)
	assert.Equal(t, 24, next.Limit)
	assert.Equal(t, "engineering", next.Filters["category"])

	cleared := next.WithFilter("category", "")
	assert.NotContains(t, cleared.Filters, "category")
	assert.Contains(t, next.Filters, "category")
}

func TestBuildRequest_IsPure(t *testing.T) {
	t.Parallel()

	q := Query{Resource: "/v1/talents", Page: 2, Filters: map[string]string{"skill": "go"}}

	assert.Equal(t, BuildRequest(q), BuildRequest(q))
	assert.Equal(t, map[string]string{"skill": "go"}, q.Filters)
}
