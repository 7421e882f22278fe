// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type jobItem struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employmentType"`
	Status         string    `json:"status"`
}

var jobColumns = []column[jobItem]{
	{"ID", func(j jobItem) string { return shortID(j.ID) }},
	{"TITLE", func(j jobItem) string { return truncate(j.Title, 40) }},
	{"COMPANY", func(j jobItem) string { return orDash(j.Company) }},
	{"CATEGORY", func(j jobItem) string { return j.Category }},
	{"LOCATION", func(j jobItem) string { return j.Location }},
	{"TYPE", func(j jobItem) string { return j.EmploymentType }},
	{"STATUS", func(j jobItem) string { return j.Status }},
}

var jobsResource = resourceCommand[jobItem]{
	resource: "/v1/jobs",
	key:      constant.ResourceJobs,
	columns:  jobColumns,
	filters: []filterFlag{
		{"q", "search title and description"},
		{"category", "filter by category"},
		{"location", "filter by location"},
		{"employmentType", "filter by employment type"},
		{"status", "filter by status (open when omitted)"},
	},
}

func jobsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Job postings",
	}

	cmd.AddCommand(
		jobsResource.listCmd(opts, "List job postings one page at a time",
			`  talenthub jobs list --q golang --location Lisbon
  talenthub jobs list --page 3 --limit 20 --category engineering`),
		jobsResource.browseCmd(opts, "Page through job postings interactively"),
	)

	return cmd
}
