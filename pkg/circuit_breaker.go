// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned when a call is rejected because its breaker is open or saturated.
var ErrCircuitOpen = errors.New("circuit breaker open")

// CircuitBreakerManager keeps one breaker per named dependency.
type CircuitBreakerManager struct {
	breakers map[string]*gobreaker.CircuitBreaker
	mu       sync.RWMutex
	logger   log.Logger
}

// NewCircuitBreakerManager creates a new circuit breaker manager
func NewCircuitBreakerManager(logger log.Logger) *CircuitBreakerManager {
	if logger == nil {
		logger = &log.NoneLogger{}
	}

	return &CircuitBreakerManager{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		logger:   logger,
	}
}

func (cbm *CircuitBreakerManager) settings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: constant.CircuitBreakerMaxRequests,
		Interval:    constant.CircuitBreakerInterval,
		Timeout:     constant.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.ConsecutiveFailures >= constant.CircuitBreakerThreshold ||
				(counts.Requests >= 10 && failureRatio >= 0.5)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			cbm.logger.Warnf("Circuit Breaker [%s] state changed: %s -> %s", name, from.String(), to.String())

			if to == gobreaker.StateOpen {
				cbm.logger.Errorf("Circuit Breaker [%s] OPENED - dependency is unhealthy, requests will fast-fail", name)
			}
		},
	}
}

// GetOrCreate returns existing circuit breaker or creates a new one
func (cbm *CircuitBreakerManager) GetOrCreate(name string) *gobreaker.CircuitBreaker {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[name]
	cbm.mu.RUnlock()

	if exists {
		return breaker
	}

	cbm.mu.Lock()
	defer cbm.mu.Unlock()

	if breaker, exists = cbm.breakers[name]; exists {
		return breaker
	}

	breaker = gobreaker.NewCircuitBreaker(cbm.settings(name))
	cbm.breakers[name] = breaker

	return breaker
}

// Execute runs fn through the named breaker. Rejections wrap ErrCircuitOpen.
func (cbm *CircuitBreakerManager) Execute(name string, fn func() (any, error)) (any, error) {
	result, err := cbm.GetOrCreate(name).Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		cbm.logger.Warnf("Circuit breaker [%s] rejected request: %v", name, err)

		return nil, fmt.Errorf("%s: %w: %w", name, ErrCircuitOpen, err)
	}

	return result, err
}

// GetState returns the current state of a circuit breaker
func (cbm *CircuitBreakerManager) GetState(name string) string {
	cbm.mu.RLock()
	breaker, exists := cbm.breakers[name]
	cbm.mu.RUnlock()

	if !exists {
		return "not_initialized"
	}

	switch breaker.State() {
	case gobreaker.StateClosed:
		return constant.CircuitBreakerStateClosed
	case gobreaker.StateOpen:
		return constant.CircuitBreakerStateOpen
	case gobreaker.StateHalfOpen:
		return constant.CircuitBreakerStateHalfOpen
	default:
		return "unknown"
	}
}

// IsHealthy returns false only while the breaker is open.
func (cbm *CircuitBreakerManager) IsHealthy(name string) bool {
	return cbm.GetState(name) != constant.CircuitBreakerStateOpen
}
