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

// UserHandler serves public talent profiles and account administration.
type UserHandler struct {
	service *services.UseCase
}

// NewUserHandler creates a new UserHandler with the given service dependency.
// It returns an error if service is nil.
func NewUserHandler(service *services.UseCase) (*UserHandler, error) {
	if service == nil {
		return nil, errors.New("service must not be nil for UserHandler")
	}

	return &UserHandler{service: service}, nil
}

// GetAllTalents lists active talent profiles.
//
//	@Summary		List talents
//	@Tags			Talents
//	@Produce		json
//	@Param			page		query		int		false	"Page"	default(1)
//	@Param			limit		query		int		false	"Limit"	default(12)
//	@Param			q			query		string	false	"Case-insensitive search on name and headline"
//	@Param			skill		query		string	false	"Skill"
//	@Param			location	query		string	false	"Location"
//	@Success		200			{object}	model.ListResponse{data=model.ListData}
//	@Failure		400			{object}	pkg.ResponseError
//	@Router			/v1/talents [get]
func (uh *UserHandler) GetAllTalents(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.talent.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	headerParams, err := http.ValidateParameters(c.Queries(), constant.DefaultTalentsLimit)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid query parameters", err)

		return http.WithError(c, err)
	}

	talents, total, err := uh.service.GetAllTalents(ctx, *headerParams)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list talents", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.NewListResponse(constant.ResourceTalents, talents, headerParams.Descriptor(total)))
}

// GetTalentByID returns a public talent profile.
//
//	@Summary		Get a talent
//	@Tags			Talents
//	@Produce		json
//	@Param			id	path		string	true	"Talent ID"
//	@Success		200	{object}	user.Profile
//	@Failure		404	{object}	pkg.ResponseError
//	@Router			/v1/talents/{id} [get]
func (uh *UserHandler) GetTalentByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.talent.get_by_id")
	defer span.End()

	id := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.talent_id", id.String()),
	)

	profile, err := uh.service.GetTalentByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get talent", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, profile)
}

// UpdateTalentProfile patches the caller's profile.
//
//	@Summary		Update my talent profile
//	@Tags			Talents
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string							true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			profile			body		model.UpdateTalentProfileInput	true	"Fields to change"
//	@Success		200				{object}	user.User
//	@Failure		400				{object}	pkg.ResponseError
//	@Failure		403				{object}	pkg.ResponseError
//	@Router			/v1/talents/me [patch]
func (uh *UserHandler) UpdateTalentProfile(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.talent.update_profile")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	updated, err := uh.service.UpdateTalentProfile(ctx, principalFrom(c), p.(*model.UpdateTalentProfileInput))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update talent profile", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, updated)
}

// GetAllUsers lists accounts.
//
//	@Summary		List users
//	@Tags			Users
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			page			query		int		false	"Page"	default(1)
//	@Param			limit			query		int		false	"Limit"	default(10)
//	@Param			role			query		string	false	"Role"		Enums(talent,recruiter,admin)
//	@Param			status			query		string	false	"Status"	Enums(active,inactive)
//	@Param			q				query		string	false	"Case-insensitive search on name and email"
//	@Success		200				{object}	model.ListResponse{data=model.ListData}
//	@Failure		401				{object}	pkg.ResponseError
//	@Failure		403				{object}	pkg.ResponseError
//	@Router			/v1/users [get]
func (uh *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.user.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	headerParams, err := http.ValidateParameters(c.Queries(), constant.DefaultUsersLimit)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid query parameters", err)

		return http.WithError(c, err)
	}

	users, total, err := uh.service.GetAllUsers(ctx, *headerParams)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list users", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.NewListResponse(constant.ResourceUsers, users, headerParams.Descriptor(total)))
}

// UpdateUserStatus activates or deactivates an account.
//
//	@Summary		Activate or deactivate a user
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string						true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string						true	"User ID"
//	@Param			status			body		model.UpdateUserStatusInput	true	"New status"
//	@Success		200				{object}	user.User
//	@Failure		400				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Router			/v1/users/{id}/status [patch]
func (uh *UserHandler) UpdateUserStatus(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.user.update_status")
	defer span.End()

	id := pathID(c)
	status := p.(*model.UpdateUserStatusInput).Status

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.user_id", id.String()),
		attribute.String("app.request.status", status),
	)

	updated, err := uh.service.UpdateUserStatus(ctx, principalFrom(c), id, status)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update user status", err)

		logger.Errorf("Failed to set user %s %s, Error: %s", id, status, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, updated)
}
