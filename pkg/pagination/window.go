// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pagination

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// delta is how many pages are shown on each side of the current page.
const delta = 2

// EllipsisText is the JSON form of a gap between page numbers.
const EllipsisText = "..."

// Entry is a single pager control: either a page number or a gap.
type Entry struct {
	Page     int
	Ellipsis bool
}

// PageEntry returns an entry pointing at page n.
func PageEntry(n int) Entry { return Entry{Page: n} }

// Gap returns an ellipsis entry.
func Gap() Entry { return Entry{Ellipsis: true} }

func (e Entry) String() string {
	if e.Ellipsis {
		return "…"
	}

	return strconv.Itoa(e.Page)
}

// MarshalJSON encodes a page as a number and a gap as "...".
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Ellipsis {
		return json.Marshal(EllipsisText)
	}

	return json.Marshal(e.Page)
}

// UnmarshalJSON accepts a number or the "..." marker.
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		if s != EllipsisText {
			return errors.New("pagination: unknown window marker " + strconv.Quote(s))
		}

		*e = Gap()

		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*e = PageEntry(n)

	return nil
}

// Window is the ordered list of pager controls.
type Window []Entry

// Pages returns the page numbers in the window, skipping gaps.
func (w Window) Pages() []int {
	out := make([]int, 0, len(w))

	for _, e := range w {
		if !e.Ellipsis {
			out = append(out, e.Page)
		}
	}

	return out
}

// String renders the window as space separated entries, e.g. "1 2 3 … 5".
func (w Window) String() string {
	parts := make([]string, len(w))
	for i, e := range w {
		parts[i] = e.String()
	}

	return strings.Join(parts, " ")
}

// Highlight renders the window like String, with the current page wrapped in brackets.
func (w Window) Highlight(current int) string {
	parts := make([]string, len(w))

	for i, e := range w {
		if !e.Ellipsis && e.Page == current {
			parts[i] = "[" + e.String() + "]"
			continue
		}

		parts[i] = e.String()
	}

	return strings.Join(parts, " ")
}

// PageWindow computes the pager controls for the given current page and page count.
//
// The first and last pages are always present. Pages within delta of the current
// page are listed between them, and a gap marks any hidden run of pages. A page
// count of one or less produces an empty window. A current page outside [1, pages]
// is clamped into range first.
func PageWindow(page, pages int) Window {
	if pages <= 1 {
		return nil
	}

	if page < 1 {
		page = 1
	} else if page > pages {
		page = pages
	}

	start := max(2, page-delta)
	end := min(pages-1, page+delta)

	window := make(Window, 0, end-start+5)
	window = append(window, PageEntry(1))

	if start > 2 {
		window = append(window, Gap())
	}

	for p := start; p <= end; p++ {
		window = append(window, PageEntry(p))
	}

	if end < pages-1 {
		window = append(window, Gap())
	}

	return append(window, PageEntry(pages))
}
