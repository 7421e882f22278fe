// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/application"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"
	"github.com/dlt-talenthub/talenthub/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
)

// CreateApplication applies the calling talent to an open job and notifies the job's recruiter.
func (uc *UseCase) CreateApplication(ctx context.Context, principal *pkg.Principal, jobID uuid.UUID, input *model.CreateApplicationInput) (*application.Application, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.application.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", jobID.String()),
		attribute.String("app.request.talent_id", principal.UserID.String()),
	)

	posting, err := uc.JobRepo.FindByID(ctx, jobID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get job", err)

		return nil, notFound(err, constant.MongoCollectionJob)
	}

	if !posting.IsOpen() {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Job is not open", constant.ErrJobNotOpen)

		return nil, pkg.ValidateBusinessError(constant.ErrJobNotOpen, constant.MongoCollectionApplication)
	}

	talent, err := uc.UserRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get talent", err)

		return nil, notFound(err, constant.MongoCollectionUser)
	}

	resumeKey := input.ResumeKey
	if resumeKey == "" {
		resumeKey = talent.ResumeKey
	}

	if resumeKey != "" && !storage.OwnedBy(resumeKey, talent.ID) {
		return nil, pkg.ValidateBusinessError(constant.ErrNotResourceOwner, constant.MongoCollectionApplication)
	}

	candidate, err := application.NewApplication(uuid.New(), posting.ID, talent.ID, posting.RecruiterID, posting.Title, talent.Name, input.CoverLetter, resumeKey)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid application", err)

		return nil, pkg.ValidateBusinessError(constant.ErrBadRequest, constant.MongoCollectionApplication, err.Error())
	}

	created, err := uc.ApplicationRepo.Create(ctx, candidate)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create application", err)

		return nil, err
	}

	uc.Metrics.RecordApplicationSubmitted(ctx)

	logger.Infof("Talent %s applied to job %s", talent.ID, posting.ID)

	uc.publishEvent(ctx, constant.EventApplicationSubmitted, posting.RecruiterID, map[string]string{
		"applicationId": created.ID.String(),
		"jobId":         posting.ID.String(),
		"jobTitle":      posting.Title,
		"talentName":    talent.Name,
	})

	return created, nil
}

// GetAllApplications lists applications visible to the caller: talents see their own,
// recruiters see applications to their jobs and admins see all.
func (uc *UseCase) GetAllApplications(ctx context.Context, principal *pkg.Principal, filters http.QueryHeader) ([]*application.Application, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.application.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	scope, err := applicationScope(principal)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := uc.ApplicationRepo.FindList(ctx, filters, scope)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list applications", err)

		return nil, 0, err
	}

	uc.Metrics.RecordListRequest(ctx, "applications")

	return items, total, nil
}

// GetJobApplications lists the applications of one job for its recruiter or an admin.
func (uc *UseCase) GetJobApplications(ctx context.Context, principal *pkg.Principal, jobID uuid.UUID, filters http.QueryHeader) ([]*application.Application, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.application.get_by_job")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", jobID.String()),
	)

	if _, err := uc.ownedJob(ctx, principal, jobID); err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Job not visible to caller", err)

		return nil, 0, err
	}

	filters.JobID = jobID

	items, total, err := uc.ApplicationRepo.FindList(ctx, filters, application.Scope{})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list job applications", err)

		return nil, 0, err
	}

	uc.Metrics.RecordListRequest(ctx, "applications")

	return items, total, nil
}

// GetApplicationByID returns an application to its talent, the job's recruiter or an admin.
func (uc *UseCase) GetApplicationByID(ctx context.Context, principal *pkg.Principal, id uuid.UUID) (*application.Application, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.application.get_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
	)

	candidate, err := uc.ApplicationRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get application", err)

		return nil, notFound(err, constant.MongoCollectionApplication)
	}

	if principal.UserID == candidate.TalentID {
		return candidate, nil
	}

	if err := requireOwner(principal, candidate.RecruiterID, constant.MongoCollectionApplication); err != nil {
		return nil, err
	}

	return candidate, nil
}

// UpdateApplicationStatus records a review decision by the job's recruiter or an admin and
// notifies the talent. The update only applies if the status has not changed concurrently.
func (uc *UseCase) UpdateApplicationStatus(ctx context.Context, principal *pkg.Principal, id uuid.UUID, input *model.UpdateApplicationStatusInput) (*application.Application, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.application.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
		attribute.String("app.request.status", input.Status),
	)

	candidate, err := uc.ApplicationRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get application", err)

		return nil, notFound(err, constant.MongoCollectionApplication)
	}

	if err := requireOwner(principal, candidate.RecruiterID, constant.MongoCollectionApplication); err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Caller does not own the job", err)

		return nil, err
	}

	if !application.CanTransition(candidate.Status, input.Status) {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid status transition", constant.ErrInvalidStatusTransition)

		return nil, pkg.ValidateBusinessError(constant.ErrInvalidStatusTransition, constant.MongoCollectionApplication, candidate.Status, input.Status)
	}

	change := application.StatusChange{
		Status:    input.Status,
		Note:      input.Note,
		ChangedBy: principal.UserID,
		ChangedAt: time.Now().UTC(),
	}

	updated, err := uc.ApplicationRepo.UpdateStatus(ctx, id, candidate.Status, change)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Application changed concurrently", err)

			return nil, pkg.ValidateBusinessError(constant.ErrInvalidStatusTransition, constant.MongoCollectionApplication, candidate.Status, input.Status)
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to update application status", err)

		return nil, err
	}

	logger.Infof("Application %s moved from %s to %s", id, candidate.Status, input.Status)

	uc.publishEvent(ctx, constant.EventApplicationStatusChanged, updated.TalentID, map[string]string{
		"applicationId": updated.ID.String(),
		"jobId":         updated.JobID.String(),
		"jobTitle":      updated.JobTitle,
		"status":        updated.Status,
		"note":          input.Note,
	})

	return updated, nil
}

// WithdrawApplication deletes the caller's application while it is still pending or reviewed.
func (uc *UseCase) WithdrawApplication(ctx context.Context, principal *pkg.Principal, id uuid.UUID) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.application.withdraw")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
	)

	candidate, err := uc.ApplicationRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get application", err)

		return notFound(err, constant.MongoCollectionApplication)
	}

	if candidate.TalentID != principal.UserID {
		return pkg.ValidateBusinessError(constant.ErrNotResourceOwner, constant.MongoCollectionApplication)
	}

	if !application.CanWithdraw(candidate.Status) {
		return pkg.ValidateBusinessError(constant.ErrWithdrawNotAllowed, constant.MongoCollectionApplication)
	}

	if err := uc.ApplicationRepo.Delete(ctx, id, application.WithdrawableStatuses()); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pkg.ValidateBusinessError(constant.ErrWithdrawNotAllowed, constant.MongoCollectionApplication)
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to withdraw application", err)

		return err
	}

	logger.Infof("Application %s withdrawn", id)

	return nil
}

func applicationScope(principal *pkg.Principal) (application.Scope, error) {
	switch {
	case principal == nil:
		return application.Scope{}, pkg.ValidateBusinessError(constant.ErrMissingAuthorization, constant.MongoCollectionApplication)
	case principal.HasRole(constant.RoleAdmin):
		return application.Scope{}, nil
	case principal.HasRole(constant.RoleRecruiter):
		return application.Scope{RecruiterID: principal.UserID}, nil
	case principal.HasRole(constant.RoleTalent):
		return application.Scope{TalentID: principal.UserID}, nil
	default:
		return application.Scope{}, pkg.ValidateBusinessError(constant.ErrInsufficientRole, constant.MongoCollectionApplication)
	}
}
