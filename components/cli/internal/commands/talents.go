// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"strconv"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type talentItem struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Headline        string    `json:"headline"`
	Location        string    `json:"location"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experienceYears"`
}

var talentColumns = []column[talentItem]{
	{"ID", func(t talentItem) string { return shortID(t.ID) }},
	{"NAME", func(t talentItem) string { return t.Name }},
	{"HEADLINE", func(t talentItem) string { return orDash(truncate(t.Headline, 40)) }},
	{"LOCATION", func(t talentItem) string { return orDash(t.Location) }},
	{"SKILLS", func(t talentItem) string { return orDash(truncate(strings.Join(t.Skills, ","), 30)) }},
	{"YEARS", func(t talentItem) string { return strconv.Itoa(t.ExperienceYears) }},
}

var talentsResource = resourceCommand[talentItem]{
	resource: "/v1/talents",
	key:      constant.ResourceTalents,
	columns:  talentColumns,
	filters: []filterFlag{
		{"q", "search name and headline"},
		{"skill", "filter by skill"},
		{"location", "filter by location"},
	},
}

func talentsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "talents",
		Short: "Talent profiles",
	}

	cmd.AddCommand(
		talentsResource.listCmd(opts, "List active talent profiles one page at a time",
			`  talenthub talents list --skill go --location Porto --page 2`),
		talentsResource.browseCmd(opts, "Page through talent profiles interactively"),
	)

	return cmd
}
