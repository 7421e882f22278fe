// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/notification"
	"github.com/dlt-talenthub/talenthub/pkg/pongo"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const notificationEventEntity = "NotificationEvent"

// DeliverNotification decodes one queued event, renders it and stores the notification.
//
// Malformed payloads and template failures come back as pkg.ValidationError so the
// consumer routes them to the dead-letter queue. Event types without a template are
// logged and dropped. A redelivered event is acknowledged without a second insert.
func (uc *UseCase) DeliverNotification(ctx context.Context, body []byte) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.notification.deliver")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	var event model.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Malformed notification event", err)
		logger.Errorf("Error unmarshalling notification event: %v", err)

		return pkg.ValidateBusinessError(constant.ErrBadRequest, notificationEventEntity, err)
	}

	span.SetAttributes(
		attribute.String("app.request.event_id", event.ID.String()),
		attribute.String("app.request.event_type", event.Type),
	)

	if event.ID == uuid.Nil || event.RecipientID == uuid.Nil || event.Type == "" {
		err := pkg.ValidateBusinessError(constant.ErrMissingRequiredFields, notificationEventEntity)
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Notification event without id, recipient or type", err)

		return err
	}

	if !uc.Renderer.Supports(event.Type) {
		logger.Warnf("Dropping notification event %s: unknown type %q", event.ID, event.Type)

		return nil
	}

	rendered, err := uc.Renderer.Render(ctx, event.Type, event.Data)
	if err != nil {
		if errors.Is(err, pongo.ErrUnknownEventType) {
			return nil
		}

		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to render notification", err)

		return pkg.ValidateBusinessError(constant.ErrBadRequest, notificationEventEntity, err)
	}

	n, err := notification.NewNotification(event.ID, event.RecipientID, event.Type, rendered.Title, rendered.Body, rendered.Link)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Rendered notification is incomplete", err)

		return pkg.ValidateBusinessError(constant.ErrMissingRequiredFields, notificationEventEntity)
	}

	if !event.OccurredAt.IsZero() {
		n.CreatedAt = event.OccurredAt.UTC()
	}

	if _, err := uc.NotificationRepo.Create(ctx, n); err != nil {
		if errors.Is(err, notification.ErrAlreadyDelivered) {
			logger.Infof("Notification %s already delivered, skipping", event.ID)

			return nil
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to store notification", err)
		logger.Errorf("Error storing notification %s: %v", event.ID, err)

		return err
	}

	uc.Metrics.RecordNotificationDelivered(ctx, event.Type)

	logger.Infof("Notification %s delivered to %s", event.ID, event.RecipientID)

	return nil
}
