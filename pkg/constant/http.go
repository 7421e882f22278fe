// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

// HTTP Pagination Defaults
const (
	DefaultPaginationLimit    = 10
	DefaultPaginationPage     = 1
	DefaultMaxPaginationLimit = 100
)

// Per-resource default page sizes used when the client omits "limit".
const (
	DefaultJobsLimit          = 12
	DefaultApplicationsLimit  = 10
	DefaultUsersLimit         = 10
	DefaultTalentsLimit       = 12
	DefaultNotificationsLimit = 20
)

// Resource keys used inside the list response envelope.
const (
	ResourceJobs          = "jobs"
	ResourceApplications  = "applications"
	ResourceUsers         = "users"
	ResourceTalents       = "talents"
	ResourceNotifications = "notifications"
)
