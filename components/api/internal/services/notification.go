// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/notification"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// GetAllNotifications lists the caller's notifications, newest first.
func (uc *UseCase) GetAllNotifications(ctx context.Context, principal *pkg.Principal, filters http.QueryHeader) ([]*notification.Notification, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.notification.get_all")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.Bool("app.request.unread", filters.Unread),
	)

	items, total, err := uc.NotificationRepo.FindList(ctx, principal.UserID, filters)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list notifications", err)

		return nil, 0, err
	}

	uc.Metrics.RecordListRequest(ctx, "notifications")

	return items, total, nil
}

// MarkNotificationRead marks one of the caller's notifications as read.
// Notifications of other users are reported as not found.
func (uc *UseCase) MarkNotificationRead(ctx context.Context, principal *pkg.Principal, id uuid.UUID) (*notification.Notification, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.notification.mark_read")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.notification_id", id.String()),
	)

	item, err := uc.NotificationRepo.MarkRead(ctx, id, principal.UserID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to mark notification read", err)

		return nil, notFound(err, constant.MongoCollectionNotification)
	}

	return item, nil
}

// MarkAllNotificationsRead marks every unread notification of the caller as read and returns how many changed.
func (uc *UseCase) MarkAllNotificationsRead(ctx context.Context, principal *pkg.Principal) (int64, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.notification.mark_all_read")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	updated, err := uc.NotificationRepo.MarkAllRead(ctx, principal.UserID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to mark notifications read", err)

		return 0, err
	}

	logger.Infof("Marked %d notifications read for %s", updated, principal.UserID)

	return updated, nil
}
