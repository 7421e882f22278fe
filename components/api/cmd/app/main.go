// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"

	"github.com/dlt-talenthub/talenthub/components/api/internal/bootstrap"
)

// @title						TalentHub
// @version					1.0.0
// @description				Job board API for DLT TalentHub: jobs, applications, talents and in-app notifications.
// @host						localhost:4005
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Access token in the 'Bearer access_token' format, issued by /v1/auth/login.
func main() {
	libCommons.InitLocalEnvConfig()

	svc, err := bootstrap.InitServers()
	if err != nil {
		// The structured logger does not exist until InitServers succeeds.
		fmt.Fprintf(os.Stderr, "Failed to initialize talenthub api: %v\n", err)
		os.Exit(1)
	}

	svc.Run()
}
