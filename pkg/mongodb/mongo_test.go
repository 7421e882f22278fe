// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package mongodb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestListOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		skip  *int64
		max   *int64
	}{
		{name: "first page", page: 1, limit: 12, max: int64Ptr(12)},
		{name: "third page", page: 3, limit: 10, skip: int64Ptr(20), max: int64Ptr(10)},
		{name: "huge page saturates", page: math.MaxInt64 / 5, limit: 100, skip: int64Ptr(math.MaxInt64), max: int64Ptr(100)},
		{name: "no limit", page: 4, limit: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := ListOptions(tt.page, tt.limit)

			assert.Equal(t, tt.skip, opts.Skip)
			assert.Equal(t, tt.max, opts.Limit)
			assert.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}, opts.Sort)

			if opts.Skip != nil {
				assert.GreaterOrEqual(t, *opts.Skip, int64(0))
			}
		})
	}
}

func int64Ptr(v int64) *int64 { return &v }
