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

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service *services.UseCase
}

// NewJobHandler creates a new JobHandler with the given service dependency.
// It returns an error if service is nil.
func NewJobHandler(service *services.UseCase) (*JobHandler, error) {
	if service == nil {
		return nil, errors.New("service must not be nil for JobHandler")
	}

	return &JobHandler{service: service}, nil
}

// CreateJob posts a new job.
//
//	@Summary		Create a job
//	@Description	Posts a job owned by the calling recruiter. Salary bounds are decimal strings.
//	@Tags			Jobs
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string				true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			job				body		model.CreateJobInput	true	"Job"
//	@Success		201				{object}	job.Job
//	@Failure		400				{object}	pkg.ResponseError
//	@Failure		401				{object}	pkg.ResponseError
//	@Failure		403				{object}	pkg.ResponseError
//	@Router			/v1/jobs [post]
func (jh *JobHandler) CreateJob(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.job.create")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	payload := p.(*model.CreateJobInput)
	logger.Infof("Request to create job %q", payload.Title)

	created, err := jh.service.CreateJob(ctx, principalFrom(c), payload)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create job", err)

		logger.Errorf("Failed to create job, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.Created(c, created)
}

// GetAllJobs lists jobs.
//
//	@Summary		List jobs
//	@Description	Lists jobs, newest first. Only open jobs are listed unless status is given; status=all lists every job.
//	@Tags			Jobs
//	@Produce		json
//	@Param			page			query		int		false	"Page"	default(1)
//	@Param			limit			query		int		false	"Limit"	default(12)
//	@Param			q				query		string	false	"Case-insensitive search on title and description"
//	@Param			category		query		string	false	"Category"
//	@Param			location		query		string	false	"Location"
//	@Param			employmentType	query		string	false	"Employment type"	Enums(full-time,part-time,contract,internship,remote)
//	@Param			status			query		string	false	"Status"			Enums(open,closed,all)
//	@Param			recruiterId		query		string	false	"Recruiter id"
//	@Success		200				{object}	model.ListResponse{data=model.ListData}
//	@Failure		400				{object}	pkg.ResponseError
//	@Router			/v1/jobs [get]
func (jh *JobHandler) GetAllJobs(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.job.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	headerParams, err := http.ValidateParameters(c.Queries(), constant.DefaultJobsLimit)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid query parameters", err)

		return http.WithError(c, err)
	}

	jobs, total, err := jh.service.GetAllJobs(ctx, *headerParams)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list jobs", err)

		logger.Errorf("Failed to list jobs, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, model.NewListResponse(constant.ResourceJobs, jobs, headerParams.Descriptor(total)))
}

// GetJobByID returns one job.
//
//	@Summary		Get a job
//	@Tags			Jobs
//	@Produce		json
//	@Param			id	path		string	true	"Job ID"
//	@Success		200	{object}	job.Job
//	@Failure		400	{object}	pkg.ResponseError
//	@Failure		404	{object}	pkg.ResponseError
//	@Router			/v1/jobs/{id} [get]
func (jh *JobHandler) GetJobByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.job.get_by_id")
	defer span.End()

	id := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	posting, err := jh.service.GetJobByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get job", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, posting)
}

// UpdateJob patches a job.
//
//	@Summary		Update a job
//	@Description	Partially updates a job. Only its recruiter or an admin may update it.
//	@Tags			Jobs
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string				true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string				true	"Job ID"
//	@Param			job				body		model.UpdateJobInput	true	"Fields to change"
//	@Success		200				{object}	job.Job
//	@Failure		400				{object}	pkg.ResponseError
//	@Failure		403				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Router			/v1/jobs/{id} [patch]
func (jh *JobHandler) UpdateJob(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.job.update")
	defer span.End()

	id := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	updated, err := jh.service.UpdateJob(ctx, principalFrom(c), id, p.(*model.UpdateJobInput))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update job", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, updated)
}

// UpdateJobStatus opens or closes a job.
//
//	@Summary		Open or close a job
//	@Description	Closing a job notifies talents whose applications are still under consideration.
//	@Tags			Jobs
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string						true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path		string						true	"Job ID"
//	@Param			status			body		model.UpdateJobStatusInput	true	"New status"
//	@Success		200				{object}	job.Job
//	@Failure		400				{object}	pkg.ResponseError
//	@Failure		403				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Router			/v1/jobs/{id}/status [patch]
func (jh *JobHandler) UpdateJobStatus(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.job.update_status")
	defer span.End()

	id := pathID(c)
	status := p.(*model.UpdateJobStatusInput).Status

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
		attribute.String("app.request.status", status),
	)

	updated, err := jh.service.UpdateJobStatus(ctx, principalFrom(c), id, status)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update job status", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, updated)
}

// DeleteJob soft deletes a job.
//
//	@Summary		Delete a job
//	@Tags			Jobs
//	@Param			Authorization	header	string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			id				path	string	true	"Job ID"
//	@Success		204
//	@Failure		403	{object}	pkg.ResponseError
//	@Failure		404	{object}	pkg.ResponseError
//	@Router			/v1/jobs/{id} [delete]
func (jh *JobHandler) DeleteJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.job.delete")
	defer span.End()

	id := pathID(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	if err := jh.service.DeleteJob(ctx, principalFrom(c), id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete job", err)

		logger.Errorf("Failed to delete job %s, Error: %s", id, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.NoContent(c)
}
