//go:build fuzz

// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pagination

import (
	"encoding/json"
	"testing"
)

func FuzzPageWindow(f *testing.F) {
	f.Add(1, 1)
	f.Add(1, 5)
	f.Add(3, 10)
	f.Add(10, 10)
	f.Add(-7, 3)
	f.Add(1<<30, 1<<20)

	f.Fuzz(func(t *testing.T, page, pages int) {
		if pages > 1<<24 {
			pages = 1 << 24
		}

		w := PageWindow(page, pages)

		if pages <= 1 {
			if len(w) != 0 {
				t.Fatalf("expected empty window for pages=%d, got %v", pages, w)
			}

			return
		}

		if len(w) > 9 {
			t.Fatalf("window for page=%d pages=%d is unbounded: %v", page, pages, w)
		}

		raw, err := json.Marshal(w)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		var back Window
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		if back.String() != w.String() {
			t.Fatalf("json form changed window: %q != %q", back.String(), w.String())
		}
	})
}
