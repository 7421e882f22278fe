// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"testing"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/stretchr/testify/assert"
)

func TestFullJitter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		baseDelay time.Duration
		wantMax   time.Duration
	}{
		{name: "zero base returns zero", baseDelay: 0, wantMax: 0},
		{name: "negative base returns zero", baseDelay: -time.Second, wantMax: 0},
		{name: "initial backoff range", baseDelay: constant.ProducerInitialBackoff, wantMax: constant.ProducerInitialBackoff},
		{name: "capped at producer max", baseDelay: time.Hour, wantMax: constant.ProducerMaxBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for i := 0; i < 50; i++ {
				got := FullJitter(tt.baseDelay)
				assert.GreaterOrEqual(t, got, time.Duration(0))
				assert.LessOrEqual(t, got, tt.wantMax)
			}
		})
	}
}

func TestNextBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2*constant.ProducerInitialBackoff, NextBackoff(constant.ProducerInitialBackoff))
	assert.Equal(t, constant.ProducerMaxBackoff, NextBackoff(constant.ProducerMaxBackoff))
}

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, ExponentialBackoff(0, time.Second, 30*time.Second, 0))
	assert.Equal(t, 4*time.Second, ExponentialBackoff(2, time.Second, 30*time.Second, 0))
	assert.Equal(t, 30*time.Second, ExponentialBackoff(10, time.Second, 30*time.Second, 0))

	got := ExponentialBackoff(1, time.Second, 30*time.Second, 100*time.Millisecond)
	assert.GreaterOrEqual(t, got, 2*time.Second)
	assert.Less(t, got, 2*time.Second+100*time.Millisecond)
}
