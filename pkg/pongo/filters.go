// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pongo

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/shopspring/decimal"
)

// statusLabelFilter turns a status value into readable text.
// Example: {{ "application.status_changed"|status_label }} → "application status changed"
func statusLabelFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	label := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(in.String())

	return pongo2.AsValue(strings.ToLower(strings.TrimSpace(label))), nil
}

// salaryFilter formats a decimal amount with two places and an optional currency.
// Syntax: {{ value|salary:"EUR" }}
func salaryFilter(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	raw := strings.TrimSpace(in.String())
	if raw == "" {
		return pongo2.AsValue(""), nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &pongo2.Error{
			Sender:    "filter:salary",
			OrigError: fmt.Errorf("invalid amount %q: %w", raw, err),
		}
	}

	formatted := amount.StringFixed(2)

	if currency := strings.TrimSpace(param.String()); currency != "" {
		formatted += " " + strings.ToUpper(currency)
	}

	return pongo2.AsValue(formatted), nil
}

// replaceFilter substitutes all occurrences of a search string.
// Syntax: {{ value|replace:"search:replacement" }}
func replaceFilter(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	search, replacement, found := strings.Cut(param.String(), ":")
	if !found {
		return nil, &pongo2.Error{
			Sender:    "filter:replace",
			OrigError: fmt.Errorf("invalid format, expected 'search:replacement', got '%s'", param.String()),
		}
	}

	return pongo2.AsValue(strings.ReplaceAll(in.String(), search, replacement)), nil
}
