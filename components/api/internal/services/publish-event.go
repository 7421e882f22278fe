// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// publishEvent emits a notification event for recipient. The triggering write has already
// been committed, so a publish failure is logged and swallowed.
func (uc *UseCase) publishEvent(ctx context.Context, eventType string, recipient uuid.UUID, data map[string]string) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.publish_event")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.event_type", eventType),
	)

	if uc.Producer == nil {
		logger.Warnf("No event producer configured, dropping %s event", eventType)

		return
	}

	event := model.NotificationEvent{
		ID:          uuid.New(),
		Type:        eventType,
		RecipientID: recipient,
		Data:        data,
		OccurredAt:  time.Now().UTC(),
	}

	if err := uc.Producer.Publish(ctx, uc.NotificationExchange, uc.NotificationRoutingKey, event); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to publish notification event", err)

		logger.Errorf("Failed to publish %s event for %s: %v", eventType, recipient, err)
	}
}
