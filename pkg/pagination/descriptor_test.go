// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pagination

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescriptor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Descriptor
	}{
		{
			name: "empty result has no pages", page: 1, limit: 10, total: 0,
			want: Descriptor{Page: 1, Limit: 10, Total: 0, Pages: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "exact multiple", page: 1, limit: 10, total: 30,
			want: Descriptor{Page: 1, Limit: 10, Total: 30, Pages: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "partial last page rounds up", page: 2, limit: 12, total: 25,
			want: Descriptor{Page: 2, Limit: 12, Total: 25, Pages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "last page", page: 3, limit: 12, total: 25,
			want: Descriptor{Page: 3, Limit: 12, Total: 25, Pages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "out of range page is kept as given", page: 9, limit: 10, total: 15,
			want: Descriptor{Page: 9, Limit: 10, Total: 15, Pages: 2, HasNext: false, HasPrev: true},
		},
		{
			name: "non-positive limit yields zero pages", page: 1, limit: 0, total: 15,
			want: Descriptor{Page: 1, Limit: 0, Total: 15, Pages: 0, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, NewDescriptor(tt.page, tt.limit, tt.total))
		})
	}
}

func TestDescriptor_PagesZeroIffTotalZero(t *testing.T) {
	t.Parallel()

	for total := int64(0); total <= 50; total++ {
		for limit := 1; limit <= 15; limit++ {
			d := NewDescriptor(1, limit, total)
			assert.Equal(t, total == 0, d.Pages == 0, "total=%d limit=%d", total, limit)
		}
	}
}

func TestDescriptor_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), NewDescriptor(1, 12, 100).Offset())
	assert.Equal(t, int64(24), NewDescriptor(3, 12, 100).Offset())
	assert.Equal(t, int64(0), NewDescriptor(0, 12, 100).Offset())
	assert.Equal(t, int64(0), NewDescriptor(-4, 12, 100).Offset())
	assert.Equal(t, int64(math.MaxInt64), NewDescriptor(math.MaxInt64/5, 100, 0).Offset())
	assert.Equal(t, int64(math.MaxInt64), NewDescriptor(math.MaxInt, math.MaxInt, 0).Offset())
	assert.Equal(t, int64(math.MaxInt64-1), NewDescriptor(math.MaxInt64/2+1, 2, 0).Offset())
}

func TestDescriptor_JSONFieldNames(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewDescriptor(2, 10, 35))
	require.NoError(t, err)

	assert.JSONEq(t, `{"page":2,"limit":10,"total":35,"pages":4,"hasNext":true,"hasPrev":true}`, string(raw))
}

func TestDescriptor_Window(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 2 3 … 5", NewDescriptor(1, 10, 50).Window().String())
	assert.Empty(t, NewDescriptor(1, 10, 5).Window())
}
