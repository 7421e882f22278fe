// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg/listing"
	"github.com/dlt-talenthub/talenthub/pkg/pagination"
)

const browsePrompt = "[n]ext [p]rev <page> [q]uit > "

var (
	errNoNextPage = errors.New("already on the last page")
	errNoPrevPage = errors.New("already on the first page")
	errQuit       = errors.New("quit")
)

// runBrowse drives a pager controller from line commands read on in. A failed fetch is
// reported on errOut and the page on display stays as it was.
func runBrowse[T any](ctx context.Context, in io.Reader, out, errOut io.Writer, fetch listing.FetchFunc[T], q listing.Query, output string, columns []column[T]) error {
	ctrl := listing.NewController(fetch, q,
		listing.WithStaleResponseGuard(),
		listing.WithNotifier(func(err error) { printError(errOut, err) }),
	)

	ctrl.OnApply(func(v listing.View[T]) {
		if err := writePage(out, output, q.Key, columns, v.Result); err != nil {
			printError(errOut, err)
		}
	})

	ctrl.Refresh(ctx)
	ctrl.Wait()

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, browsePrompt)

		if !scanner.Scan() {
			fmt.Fprintln(out)

			return scanner.Err()
		}

		current := ctrl.Query().Page
		if view := ctrl.View(); view.Seq > 0 {
			current = view.Result.Pagination.Page
		}

		page, err := nextPage(scanner.Text(), current, ctrl.View().Result.Pagination)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}

		ctrl.OnPageChange(ctx, page)
		ctrl.Wait()
	}
}

// nextPage interprets one pager command. Bounds are only enforced once a page count is known.
func nextPage(command string, current int, shown pagination.Descriptor) (int, error) {
	command = strings.ToLower(strings.TrimSpace(command))

	switch command {
	case "q", "quit", "exit":
		return 0, errQuit
	case "", "n", "next":
		if shown.Pages > 0 && !shown.HasNext {
			return 0, errNoNextPage
		}

		return current + 1, nil
	case "p", "prev", "previous":
		if current <= 1 {
			return 0, errNoPrevPage
		}

		return current - 1, nil
	}

	n, err := strconv.Atoi(command)
	if err != nil {
		return 0, fmt.Errorf("unknown command %q", command)
	}

	if n < 1 || (shown.Pages > 0 && n > shown.Pages) {
		return 0, fmt.Errorf("page %d is out of range", n)
	}

	return n, nil
}
