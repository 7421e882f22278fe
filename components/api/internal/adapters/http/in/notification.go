// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"errors"

	"github.com/dlt-talenthub/talenthub/components/api/internal/services"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// NotificationHandler serves the caller's in-app notifications.
type NotificationHandler struct {
	service *services.UseCase
}

// NewNotificationHandler creates a new NotificationHandler with the given service dependency.
// It returns an error if service is nil.
func NewNotificationHandler(service *services.UseCase) (*NotificationHandler, error) {
	if service == nil {
		return nil, errors.New("service must not be nil for NotificationHandler")
	}

	return &NotificationHandler{service: service}, nil
}

// MarkAllReadResponse reports how many notifications changed.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated" example:"3"`
} // @name MarkAllReadResponse

// GetAllNotifications lists the caller's notifications.
//
//	@Summary		List my notifications
//	@Tags			Notifications
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			page			query		int		false	"Page"	default(1)
//	@Param			limit			query		int		false	"Limit"	default(20)
//	@Param			unread			query		bool	false	"Only unread"
//	@Success		200				{object}	model.ListResponse{data=model.ListData}
//	@Failure		401				{object}	pkg.ResponseError
//	@Router			/v1/notifications [get]
func (nh *NotificationHandler) GetAllNotifications(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.notification.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	headerParams, err := http.ValidateParameters(c.Queries(), constant.DefaultNotificationsLimit)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid query parameters", err)

		return http.WithError(c, err)
	}

	items, total, err := nh.service.GetAllNotifications(ctx, principalFrom(c), *headerParams)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list notifications", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.NewListResponse(constant.ResourceNotifications, items, headerParams.Descriptor(total)))
}

// MarkNotificationRead marks one notification as read.
//
//	@Summary		Mark a notification read
//	@Tags			Notifications
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string	true	"Notification ID"
//	@Success		200				{object}	notification.Notification
//	@Failure		404				{object}	pkg.ResponseError
//	@Router			/v1/notifications/{id}/read [patch]
func (nh *NotificationHandler) MarkNotificationRead(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.notification.mark_read")
	defer span.End()

	id := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.notification_id", id.String()),
	)

	item, err := nh.service.MarkNotificationRead(ctx, principalFrom(c), id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to mark notification read", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, item)
}

// MarkAllNotificationsRead marks every notification of the caller as read.
//
//	@Summary		Mark all notifications read
//	@Tags			Notifications
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Success		200				{object}	MarkAllReadResponse
//	@Router			/v1/notifications/read-all [patch]
func (nh *NotificationHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.notification.mark_all_read")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	updated, err := nh.service.MarkAllNotificationsRead(ctx, principalFrom(c))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to mark notifications read", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, MarkAllReadResponse{Updated: updated})
}
