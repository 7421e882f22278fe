//go:build property

// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

// Property: a rate-limit value is accepted exactly when it lies in [1, upper].
func TestProperty_RateLimitRange(t *testing.T) {
	property := func(global, auth, write int16) bool {
		cfg := validAPIConfig()
		cfg.RateLimitGlobal = int(global)
		cfg.RateLimitAuth = int(auth)
		cfg.RateLimitWrite = int(write)

		valid := global >= 1 && global <= 10000 &&
			auth >= 1 && auth <= 1000 &&
			write >= 1 && write <= 5000

		return (cfg.Validate() == nil) == valid
	}

	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 500}))
}

// Property: applyDefaults never leaves a range-checked field at zero.
func TestProperty_DefaultsAreValid(t *testing.T) {
	property := func(pool, window uint8) bool {
		cfg := validAPIConfig()
		cfg.MongoMaxPoolSize = int(pool)
		cfg.RateLimitWindowSec = int(window)
		cfg.applyDefaults()

		return cfg.MongoMaxPoolSize > 0 && cfg.RateLimitWindowSec > 0 && cfg.Validate() == nil
	}

	require.NoError(t, quick.Check(property, nil))
}
