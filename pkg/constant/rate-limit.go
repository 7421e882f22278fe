// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// Rate Limiting Defaults
const (
	// RateLimitDefaultEnabled indicates whether rate limiting is enabled by default.
	RateLimitDefaultEnabled = true

	// RateLimitDefaultGlobalMax is the default maximum number of requests per
	// window for the global (catch-all) rate limit tier.
	RateLimitDefaultGlobalMax = 100

	// RateLimitDefaultAuthMax is the default maximum number of requests per
	// window for the credential endpoints (login, register, refresh).
	RateLimitDefaultAuthMax = 10

	// RateLimitDefaultWriteMax is the default maximum number of requests per
	// window for mutating endpoints (create, update, upload).
	RateLimitDefaultWriteMax = 50

	// RateLimitDefaultWindow is the default window duration for all tiers.
	RateLimitDefaultWindow = 60 * time.Second
)

// Rate Limiting Upper Bounds
const (
	RateLimitMaxGlobal = 10000
	RateLimitMaxAuth   = 1000
	RateLimitMaxWrite  = 5000
)
