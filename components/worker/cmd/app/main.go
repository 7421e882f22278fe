// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"

	"github.com/dlt-talenthub/talenthub/components/worker/internal/bootstrap"
)

func main() {
	libCommons.InitLocalEnvConfig()

	svc, err := bootstrap.InitWorker()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize talenthub worker: %v\n", err)
		os.Exit(1)
	}

	svc.Run()
}
