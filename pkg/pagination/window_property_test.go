//go:build property

// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pagination

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

// boundedInputs maps arbitrary integers onto 2 <= pages <= 500 and 1 <= page <= pages.
func boundedInputs(a, b uint16) (int, int) {
	pages := int(a%499) + 2
	page := int(b)%pages + 1

	return page, pages
}

func TestProperty_PageWindow_EmptyForSinglePage(t *testing.T) {
	t.Parallel()

	property := func(page int16, pages int8) bool {
		p := int(pages)
		if p > 1 {
			p = 1 - p%2
		}

		return len(PageWindow(int(page), p)) == 0
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 500}))
}

func TestProperty_PageWindow_FirstAndLastExactlyOnce(t *testing.T) {
	t.Parallel()

	property := func(a, b uint16) bool {
		page, pages := boundedInputs(a, b)
		w := PageWindow(page, pages)

		firsts, lasts := 0, 0

		for _, e := range w {
			if e.Ellipsis {
				continue
			}

			if e.Page == 1 {
				firsts++
			}

			if e.Page == pages {
				lasts++
			}
		}

		return firsts == 1 && lasts == 1 && w[0] == PageEntry(1) && w[len(w)-1] == PageEntry(pages)
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 1000}))
}

func TestProperty_PageWindow_BandIsCompleteAndInRange(t *testing.T) {
	t.Parallel()

	property := func(a, b uint16) bool {
		page, pages := boundedInputs(a, b)
		w := PageWindow(page, pages)

		seen := map[int]bool{}
		prev := 0

		for _, n := range w.Pages() {
			if n < 1 || n > pages || seen[n] || n <= prev {
				return false
			}

			seen[n] = true
			prev = n
		}

		for n := max(2, page-2); n <= min(pages-1, page+2); n++ {
			if !seen[n] {
				return false
			}
		}

		return len(seen) <= 2*2+3
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 1000}))
}

func TestProperty_PageWindow_EllipsisPlacement(t *testing.T) {
	t.Parallel()

	property := func(a, b uint16) bool {
		page, pages := boundedInputs(a, b)
		w := PageWindow(page, pages)

		start := max(2, page-2)
		end := min(pages-1, page+2)

		gapBefore := len(w) > 1 && w[1].Ellipsis
		gapAfter := len(w) > 1 && w[len(w)-2].Ellipsis

		gaps := 0
		for _, e := range w {
			if e.Ellipsis {
				gaps++
			}
		}

		expected := 0
		if start-1 > 1 {
			expected++
		}

		if end+1 < pages {
			expected++
		}

		return gapBefore == (start-1 > 1) && gapAfter == (end+1 < pages) && gaps == expected
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 1000}))
}

func TestProperty_PageWindow_Idempotent(t *testing.T) {
	t.Parallel()

	property := func(page int16, pages uint8) bool {
		first := PageWindow(int(page), int(pages))
		second := PageWindow(int(page), int(pages))

		return first.String() == second.String() && len(first) == len(second)
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 500}))
}

func TestProperty_Descriptor_Navigation(t *testing.T) {
	t.Parallel()

	property := func(page int16, limit uint8, total uint32) bool {
		d := NewDescriptor(int(page), int(limit), int64(total))

		if (d.Pages == 0) != (total == 0 || limit == 0) {
			return false
		}

		if d.Pages > 0 && int64(d.Pages-1)*int64(limit) >= int64(total) {
			return false
		}

		return d.HasNext == (d.Page < d.Pages) && d.HasPrev == (d.Page > 1)
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 1000}))
}
