// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationEvent is the message published to the notification queue.
//
// swagger:model NotificationEvent
// @Description NotificationEvent is published to RabbitMQ for the worker to turn into an in-app notification.
type NotificationEvent struct {
	ID          uuid.UUID         `json:"id"`
	Type        string            `json:"type" example:"application.submitted"`
	RecipientID uuid.UUID         `json:"recipientId"`
	Data        map[string]string `json:"data"`
	OccurredAt  time.Time         `json:"occurredAt"`
} // @name NotificationEvent
