// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/constant"
)

// FullJitter returns a random duration in [0, baseDelay), capped at ProducerMaxBackoff.
// Uses crypto/rand for unbiased distribution.
func FullJitter(baseDelay time.Duration) time.Duration {
	if baseDelay <= 0 {
		return 0
	}

	capped := baseDelay
	if capped > constant.ProducerMaxBackoff {
		capped = constant.ProducerMaxBackoff
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(capped)))
	if err != nil {
		return capped / 2
	}

	return time.Duration(n.Int64())
}

// NextBackoff doubles the current delay, capped at ProducerMaxBackoff.
func NextBackoff(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * constant.ProducerBackoffFactor)
	if next > constant.ProducerMaxBackoff {
		return constant.ProducerMaxBackoff
	}

	return next
}

// ExponentialBackoff computes min(initial * 2^attempt, maxDelay) plus a random jitter in [0, jitter).
func ExponentialBackoff(attempt int, initial, maxDelay, jitter time.Duration) time.Duration {
	backoff := initial

	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > maxDelay {
			backoff = maxDelay

			break
		}
	}

	if jitter > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(jitter)))
		if err == nil {
			backoff += time.Duration(n.Int64())
		}
	}

	return backoff
}
