// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/dlt-talenthub/talenthub/pkg/listing"
	"github.com/dlt-talenthub/talenthub/pkg/pagination"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// pageLine summarises a page for humans, e.g. "Page 3 of 10: 1 2 [3] 4 5 … 10".
func pageLine(d pagination.Descriptor) string {
	if d.Pages == 0 {
		return "No results."
	}

	line := fmt.Sprintf("Page %d of %d", d.Page, d.Pages)

	if window := d.Window(); len(window) > 0 {
		line += ": " + window.Highlight(d.Page)
	}

	return line
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	header := lipgloss.NewRenderer(w).NewStyle().Bold(true)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = header.Render(h)
	}

	fmt.Fprintln(tw, strings.Join(styled, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

func writeJSON[T any](w io.Writer, key string, res listing.Result[T]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(map[string]any{
		key:          res.Items,
		"pagination": res.Pagination,
	})
}

func printError(w io.Writer, err error) {
	style := lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Bold(true)

	msg := err.Error()

	var fetchErr *listing.FetchError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusUnauthorized {
		msg += "\nhint: pass --token or set " + envToken
	}

	fmt.Fprintln(w, style.Render("Error:")+" "+msg)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
