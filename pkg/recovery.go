// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"runtime/debug"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
)

// GoNamed runs fn in a goroutine that logs a panic with its stack instead of crashing the process.
// The name identifies the goroutine in the log line.
func GoNamed(logger log.Logger, name string, fn func()) {
	go func() {
		defer RecoverAndLog(logger, name)

		fn()
	}()
}

// RecoverAndLog must be deferred. It swallows a panic and logs it under name.
func RecoverAndLog(logger log.Logger, name string) {
	if r := recover(); r != nil {
		logger.Errorf("Goroutine %q panic recovered: %v\nStack: %s", name, r, string(debug.Stack()))
	}
}
