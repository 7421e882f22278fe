// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

const (
	// RefreshTokenKeyPrefix is the Redis key prefix for issued refresh tokens.
	RefreshTokenKeyPrefix = "refresh"

	// RateLimitKeyPrefix namespaces the rate limiter counters.
	RateLimitKeyPrefix = "ratelimit"

	// DefaultAccessTokenTTL is used when ACCESS_TOKEN_TTL is not set.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is used when REFRESH_TOKEN_TTL is not set.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)
