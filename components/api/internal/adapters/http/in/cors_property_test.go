//go:build property

// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

// TestProperty_SanitizeOrigins_NeverProducesEmptySegments: for any input the
// output has no empty comma-separated segment, since those make cors.New panic.
func TestProperty_SanitizeOrigins_NeverProducesEmptySegments(t *testing.T) {
	t.Parallel()

	property := func(input string) bool {
		if len(input) > 2000 {
			input = input[:2000]
		}

		return noEmptySegments(sanitizeOrigins(input))
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 200}))
}

func TestProperty_SanitizeCommaSeparated_NeverProducesEmptySegments(t *testing.T) {
	t.Parallel()

	property := func(input string) bool {
		if len(input) > 2000 {
			input = input[:2000]
		}

		return noEmptySegments(sanitizeCommaSeparated(input))
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 200}))
}

// TestProperty_SanitizeOrigins_Idempotent: sanitizing twice equals sanitizing once.
func TestProperty_SanitizeOrigins_Idempotent(t *testing.T) {
	t.Parallel()

	property := func(parts []string) bool {
		input := strings.Join(parts, ",")
		once := sanitizeOrigins(input)

		return sanitizeOrigins(once) == once
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 200}))
}

func noEmptySegments(result string) bool {
	if result == "" {
		return true
	}

	for _, p := range strings.Split(result, ",") {
		if strings.TrimSpace(p) == "" {
			return false
		}
	}

	return true
}
