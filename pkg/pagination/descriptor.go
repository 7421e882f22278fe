// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package pagination holds the page descriptor returned by every list endpoint
// and the page window used to render pager controls.
package pagination

import "math"

// Descriptor describes one page of an offset paginated list.
//
// swagger:model Pagination
//
//	@Description	Pagination metadata returned alongside every list.
type Descriptor struct {
	Page    int   `json:"page" example:"1"`
	Limit   int   `json:"limit" example:"12"`
	Total   int64 `json:"total" example:"120"`
	Pages   int   `json:"pages" example:"10"`
	HasNext bool  `json:"hasNext" example:"true"`
	HasPrev bool  `json:"hasPrev" example:"false"`
} //	@name	Pagination

// NewDescriptor derives the page count and navigation flags from page, limit and total.
// A non-positive limit yields zero pages. The page is taken as given and never clamped.
func NewDescriptor(page, limit int, total int64) Descriptor {
	pages := 0
	if limit > 0 && total > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Descriptor{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// Offset is the number of items to skip to reach the first item of the page.
// It saturates at math.MaxInt64 instead of overflowing for very large pages.
func (d Descriptor) Offset() int64 {
	if d.Page <= 1 || d.Limit <= 0 {
		return 0
	}

	skipped, limit := int64(d.Page-1), int64(d.Limit)
	if skipped > math.MaxInt64/limit {
		return math.MaxInt64
	}

	return skipped * limit
}

// Window returns the pager entries for this descriptor.
func (d Descriptor) Window() Window {
	return PageWindow(d.Page, d.Pages)
}
