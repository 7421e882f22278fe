// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"encoding/json"

	"github.com/dlt-talenthub/talenthub/pkg/pagination"
)

// ListResponse is the body of every paginated list endpoint:
// {"data": {"<key>": [...], "pagination": {...}}}.
type ListResponse struct {
	Data ListData `json:"data"`
}

// ListData holds the items under a resource-specific key next to the pagination descriptor.
type ListData struct {
	Key        string
	Items      any
	Pagination pagination.Descriptor
}

// MarshalJSON writes the items under Key. Nil item slices are written as [].
func (d ListData) MarshalJSON() ([]byte, error) {
	items := d.Items
	if items == nil {
		items = []any{}
	}

	return json.Marshal(map[string]any{
		d.Key:        items,
		"pagination": d.Pagination,
	})
}

// NewListResponse wraps one page of items. A nil slice is replaced by an empty one.
func NewListResponse[T any](key string, items []T, p pagination.Descriptor) ListResponse {
	if items == nil {
		items = []T{}
	}

	return ListResponse{Data: ListData{Key: key, Items: items, Pagination: p}}
}
