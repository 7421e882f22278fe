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

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	service *services.UseCase
}

// NewApplicationHandler creates a new ApplicationHandler with the given service dependency.
// It returns an error if service is nil.
func NewApplicationHandler(service *services.UseCase) (*ApplicationHandler, error) {
	if service == nil {
		return nil, errors.New("service must not be nil for ApplicationHandler")
	}

	return &ApplicationHandler{service: service}, nil
}

// CreateApplication applies the calling talent to a job.
//
//	@Summary		Apply to a job
//	@Description	The job must be open and each talent may apply once. The job's recruiter is notified.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string							true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string							true	"Job ID"
//	@Param			application		body		model.CreateApplicationInput	true	"Application"
//	@Success		201				{object}	application.Application
//	@Failure		403				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Failure		409				{object}	pkg.ResponseError
//	@Failure		422				{object}	pkg.ResponseError
//	@Router			/v1/jobs/{id}/applications [post]
func (ah *ApplicationHandler) CreateApplication(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.application.create")
	defer span.End()

	jobID := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", jobID.String()),
	)

	created, err := ah.service.CreateApplication(ctx, principalFrom(c), jobID, p.(*model.CreateApplicationInput))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create application", err)

		logger.Errorf("Failed to apply to job %s, Error: %s", jobID, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.Created(c, created)
}

// GetAllApplications lists the applications visible to the caller.
//
//	@Summary		List applications
//	@Description	Talents see their own applications, recruiters those to their jobs and admins all of them.
//	@Tags			Applications
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			page			query		int		false	"Page"	default(1)
//	@Param			limit			query		int		false	"Limit"	default(10)
//	@Param			status			query		string	false	"Status"	Enums(pending,reviewed,shortlisted,rejected,accepted)
//	@Param			jobId			query		string	false	"Job ID"
//	@Success		200				{object}	model.ListResponse{data=model.ListData}
//	@Failure		400				{object}	pkg.ResponseError
//	@Failure		401				{object}	pkg.ResponseError
//	@Router			/v1/applications [get]
func (ah *ApplicationHandler) GetAllApplications(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.application.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	headerParams, err := http.ValidateParameters(c.Queries(), constant.DefaultApplicationsLimit)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid query parameters", err)

		return http.WithError(c, err)
	}

	items, total, err := ah.service.GetAllApplications(ctx, principalFrom(c), *headerParams)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list applications", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.NewListResponse(constant.ResourceApplications, items, headerParams.Descriptor(total)))
}

// GetJobApplications lists the applications of one job.
//
//	@Summary		List a job's applications
//	@Tags			Applications
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string	true	"Job ID"
//	@Param			page			query		int		false	"Page"	default(1)
//	@Param			limit			query		int		false	"Limit"	default(10)
//	@Param			status			query		string	false	"Status"
//	@Success		200				{object}	model.ListResponse{data=model.ListData}
//	@Failure		403				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Router			/v1/jobs/{id}/applications [get]
func (ah *ApplicationHandler) GetJobApplications(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.application.get_by_job")
	defer span.End()

	jobID := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", jobID.String()),
	)

	headerParams, err := http.ValidateParameters(c.Queries(), constant.DefaultApplicationsLimit)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid query parameters", err)

		return http.WithError(c, err)
	}

	items, total, err := ah.service.GetJobApplications(ctx, principalFrom(c), jobID, *headerParams)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list job applications", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.NewListResponse(constant.ResourceApplications, items, headerParams.Descriptor(total)))
}

// GetApplicationByID returns one application.
//
//	@Summary		Get an application
//	@Tags			Applications
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string	true	"Application ID"
//	@Success		200				{object}	application.Application
//	@Failure		403				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Router			/v1/applications/{id} [get]
func (ah *ApplicationHandler) GetApplicationByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.application.get_by_id")
	defer span.End()

	id := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
	)

	candidate, err := ah.service.GetApplicationByID(ctx, principalFrom(c), id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get application", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, candidate)
}

// UpdateApplicationStatus records a review decision.
//
//	@Summary		Review an application
//	@Description	Moves a pending, reviewed or shortlisted application to a new status and notifies the talent.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string								true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string								true	"Application ID"
//	@Param			status			body		model.UpdateApplicationStatusInput	true	"Decision"
//	@Success		200				{object}	application.Application
//	@Failure		403				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Failure		422				{object}	pkg.ResponseError
//	@Router			/v1/applications/{id}/status [patch]
func (ah *ApplicationHandler) UpdateApplicationStatus(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.application.update_status")
	defer span.End()

	id := pathID(c)
	payload := p.(*model.UpdateApplicationStatusInput)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
		attribute.String("app.request.status", payload.Status),
	)

	updated, err := ah.service.UpdateApplicationStatus(ctx, principalFrom(c), id, payload)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update application status", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, updated)
}

// WithdrawApplication withdraws the caller's application.
//
//	@Summary		Withdraw an application
//	@Description	Allowed while the application is pending or reviewed.
//	@Tags			Applications
//	@Param			Authorization	header	string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path	string	true	"Application ID"
//	@Success		204
//	@Failure		403	{object}	pkg.ResponseError
//	@Failure		404	{object}	pkg.ResponseError
//	@Failure		422	{object}	pkg.ResponseError
//	@Router			/v1/applications/{id} [delete]
func (ah *ApplicationHandler) WithdrawApplication(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.application.withdraw")
	defer span.End()

	id := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
	)

	if err := ah.service.WithdrawApplication(ctx, principalFrom(c), id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to withdraw application", err)

		return http.WithError(c, err)
	}

	return commonsHttp.NoContent(c)
}
