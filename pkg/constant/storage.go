// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import "time"

// Upload kinds accepted by POST /v1/uploads.
const (
	UploadKindResume = "resume"
	UploadKindAvatar = "avatar"
	UploadKindLogo   = "logo"
)

const (
	// DefaultUploadMaxBytes caps a single uploaded file (5 MiB).
	DefaultUploadMaxBytes = 5 << 20

	// PresignedURLExpiry is how long a generated download URL stays valid.
	PresignedURLExpiry = 15 * time.Minute

	// StorageBreakerName is the circuit breaker key used for object storage calls.
	StorageBreakerName = "object-storage"
)

// Circuit breaker settings.
const (
	CircuitBreakerMaxRequests = 3
	CircuitBreakerInterval    = 2 * time.Minute
	CircuitBreakerTimeout     = 30 * time.Second
	CircuitBreakerThreshold   = 5

	CircuitBreakerStateClosed   = "closed"
	CircuitBreakerStateOpen     = "open"
	CircuitBreakerStateHalfOpen = "half-open"
)
