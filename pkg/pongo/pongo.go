// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package pongo renders in-app notification texts with pongo2 templates.
package pongo

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

func init() {
	// Notification texts are plain strings; clients escape on display.
	pongo2.SetAutoescape(false)

	filters := map[string]pongo2.FilterFunction{
		"status_label": statusLabelFilter,
		"salary":       salaryFilter,
		"replace":      replaceFilter,
	}

	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			continue
		}

		if err := pongo2.RegisterFilter(name, fn); err != nil {
			panic(fmt.Sprintf("Failed to register filter '%s': %s", name, err.Error()))
		}
	}
}
