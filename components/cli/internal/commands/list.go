// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"io"

	"github.com/dlt-talenthub/talenthub/pkg/listing"

	"github.com/spf13/cobra"
)

// listFlags are the pagination and filter flags of a list subcommand.
type listFlags struct {
	page    int
	limit   int
	filters map[string]*string
}

type filterFlag struct {
	name  string
	usage string
}

func newListFlags(cmd *cobra.Command, filters ...filterFlag) *listFlags {
	lf := &listFlags{filters: make(map[string]*string, len(filters))}

	cmd.Flags().IntVar(&lf.page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&lf.limit, "limit", 0, "items per page (server default when 0)")

	for _, f := range filters {
		lf.filters[f.name] = cmd.Flags().String(f.name, "", f.usage)
	}

	return lf
}

func (lf *listFlags) query(resource, key string) (listing.Query, error) {
	if lf.page < 1 {
		return listing.Query{}, fmt.Errorf("--page must be at least 1, got %d", lf.page)
	}

	if lf.limit < 0 {
		return listing.Query{}, fmt.Errorf("--limit must not be negative, got %d", lf.limit)
	}

	q := listing.NewQuery(resource, key).WithPage(lf.page).WithLimit(lf.limit)

	for name, value := range lf.filters {
		q = q.WithFilter(name, *value)
	}

	return q, nil
}

// column renders one table cell of an item.
type column[T any] struct {
	header string
	value  func(T) string
}

// resourceCommand groups the list and browse subcommands of one resource.
type resourceCommand[T any] struct {
	resource string
	key      string
	columns  []column[T]
	filters  []filterFlag
}

func (rc resourceCommand[T]) listCmd(opts *globalOptions, short, example string) *cobra.Command {
	var flags *listFlags

	cmd := &cobra.Command{
		Use:     "list",
		Short:   short,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := flags.query(rc.resource, rc.key)
			if err != nil {
				return err
			}

			res, err := listing.Fetch[T](cmd.Context(), opts.client(), q)
			if err != nil {
				return err
			}

			return writePage(cmd.OutOrStdout(), opts.output, rc.key, rc.columns, res)
		},
	}

	flags = newListFlags(cmd, rc.filters...)

	return cmd
}

func (rc resourceCommand[T]) browseCmd(opts *globalOptions, short string) *cobra.Command {
	var flags *listFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: short,
		Long: `Shows one page at a time and reads pager commands from stdin:
  n or Enter  next page
  p           previous page
  <number>    jump to a page
  q           quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := flags.query(rc.resource, rc.key)
			if err != nil {
				return err
			}

			return runBrowse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
				listing.Fetcher[T](opts.client()), q, opts.output, rc.columns)
		},
	}

	flags = newListFlags(cmd, rc.filters...)

	return cmd
}

func writePage[T any](w io.Writer, output, key string, columns []column[T], res listing.Result[T]) error {
	if output == outputJSON {
		return writeJSON(w, key, res)
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.header
	}

	rows := make([][]string, len(res.Items))

	for i, item := range res.Items {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = c.value(item)
		}

		rows[i] = row
	}

	if err := writeTable(w, headers, rows); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, pageLine(res.Pagination))

	return err
}
