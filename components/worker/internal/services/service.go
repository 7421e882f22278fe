// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"github.com/dlt-talenthub/talenthub/pkg/metrics"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/notification"
	"github.com/dlt-talenthub/talenthub/pkg/pongo"
)

// UseCase turns notification events into stored in-app notifications.
type UseCase struct {
	// NotificationRepo persists rendered notifications.
	NotificationRepo notification.Repository

	// Renderer produces the title, body and link of each event type.
	Renderer *pongo.NotificationRenderer

	Metrics *metrics.Metrics
}
