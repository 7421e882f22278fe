// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/application"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/job"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/attribute"
)

// JobStatusAll disables the default open-only status filter of the public job list.
const JobStatusAll = "all"

// CreateJob posts a job owned by the calling recruiter.
func (uc *UseCase) CreateJob(ctx context.Context, principal *pkg.Principal, input *model.CreateJobInput) (*job.Job, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.job.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.recruiter_id", principal.UserID.String()),
	)

	if err := libOpentelemetry.SetSpanAttributesFromStruct(&span, "app.request.payload", input); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert payload to JSON string", err)
	}

	recruiter, err := uc.UserRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find recruiter", err)

		return nil, notFound(err, constant.MongoCollectionUser)
	}

	posting, err := job.NewJob(uuid.New(), recruiter.ID, input.Title, input.Description, input.Category, input.Location, input.EmploymentType)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid job", err)

		return nil, pkg.ValidateBusinessError(constant.ErrBadRequest, constant.MongoCollectionJob, err.Error())
	}

	posting.Company = recruiter.Company
	posting.Skills = normalizeSkills(input.Skills)

	if input.Status != "" {
		posting.Status = input.Status
	}

	if err := applySalary(posting, input.SalaryMin, input.SalaryMax, input.Currency); err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid salary range", err)

		return nil, err
	}

	created, err := uc.JobRepo.Create(ctx, posting)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create job", err)

		return nil, err
	}

	uc.Metrics.RecordJobPosted(ctx)

	logger.Infof("Job %s posted by recruiter %s", created.ID, recruiter.ID)

	return created, nil
}

// GetAllJobs lists jobs. Without a status filter only open jobs are listed; status=all lists every status.
func (uc *UseCase) GetAllJobs(ctx context.Context, filters http.QueryHeader) ([]*job.Job, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.job.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	switch filters.Status {
	case "":
		filters.Status = constant.JobStatusOpen
	case JobStatusAll:
		filters.Status = ""
	case constant.JobStatusOpen, constant.JobStatusClosed:
	default:
		return nil, 0, pkg.ValidateBusinessError(constant.ErrInvalidJobStatus, constant.MongoCollectionJob)
	}

	jobs, total, err := uc.JobRepo.FindList(ctx, filters)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list jobs", err)

		return nil, 0, err
	}

	uc.Metrics.RecordListRequest(ctx, "jobs")

	return jobs, total, nil
}

// GetJobByID returns a single job.
func (uc *UseCase) GetJobByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.job.get_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	posting, err := uc.JobRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get job", err)

		return nil, notFound(err, constant.MongoCollectionJob)
	}

	return posting, nil
}

// UpdateJob applies a partial update. Only the owning recruiter or an admin may update a job.
func (uc *UseCase) UpdateJob(ctx context.Context, principal *pkg.Principal, id uuid.UUID, input *model.UpdateJobInput) (*job.Job, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.job.update")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	current, err := uc.ownedJob(ctx, principal, id)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Job not updatable by caller", err)

		return nil, err
	}

	fields := bson.M{}

	setString := func(key string, value *string) {
		if value != nil {
			fields[key] = strings.TrimSpace(*value)
		}
	}

	setString("title", input.Title)
	setString("description", input.Description)
	setString("category", input.Category)
	setString("location", input.Location)
	setString("employment_type", input.EmploymentType)

	if input.Skills != nil {
		fields["skills"] = normalizeSkills(*input.Skills)
	}

	if input.SalaryMin != nil || input.SalaryMax != nil || input.Currency != nil {
		salaryFields, err := salaryUpdate(current, input)
		if err != nil {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid salary range", err)

			return nil, err
		}

		for k, v := range salaryFields {
			fields[k] = v
		}
	}

	updated, err := uc.JobRepo.Update(ctx, id, fields)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update job", err)

		return nil, notFound(err, constant.MongoCollectionJob)
	}

	logger.Infof("Job %s updated", id)

	return updated, nil
}

// UpdateJobStatus opens or closes a job. Closing notifies talents whose applications are still open.
func (uc *UseCase) UpdateJobStatus(ctx context.Context, principal *pkg.Principal, id uuid.UUID, status string) (*job.Job, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.job.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
		attribute.String("app.request.status", status),
	)

	if status != constant.JobStatusOpen && status != constant.JobStatusClosed {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidJobStatus, constant.MongoCollectionJob)
	}

	current, err := uc.ownedJob(ctx, principal, id)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Job not updatable by caller", err)

		return nil, err
	}

	if current.Status == status {
		return current, nil
	}

	updated, err := uc.JobRepo.Update(ctx, id, bson.M{"status": status})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update job status", err)

		return nil, notFound(err, constant.MongoCollectionJob)
	}

	logger.Infof("Job %s moved from %s to %s", id, current.Status, status)

	if status == constant.JobStatusClosed {
		uc.notifyJobClosed(ctx, updated)
	}

	return updated, nil
}

// DeleteJob soft deletes a job. Only the owning recruiter or an admin may delete it.
func (uc *UseCase) DeleteJob(ctx context.Context, principal *pkg.Principal, id uuid.UUID) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.job.delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	if _, err := uc.ownedJob(ctx, principal, id); err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Job not deletable by caller", err)

		return err
	}

	if err := uc.JobRepo.SoftDelete(ctx, id); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete job", err)

		return notFound(err, constant.MongoCollectionJob)
	}

	logger.Infof("Job %s deleted", id)

	return nil
}

func (uc *UseCase) ownedJob(ctx context.Context, principal *pkg.Principal, id uuid.UUID) (*job.Job, error) {
	posting, err := uc.JobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, constant.MongoCollectionJob)
	}

	if err := requireOwner(principal, posting.RecruiterID, constant.MongoCollectionJob); err != nil {
		return nil, err
	}

	return posting, nil
}

func (uc *UseCase) notifyJobClosed(ctx context.Context, posting *job.Job) {
	logger := pkg.NewLoggerFromContext(ctx)

	talentIDs, err := uc.ApplicationRepo.FindTalentIDsByJob(ctx, posting.ID, application.OpenStatuses())
	if err != nil {
		logger.Errorf("Failed to load applicants of closed job %s: %v", posting.ID, err)

		return
	}

	for _, talentID := range talentIDs {
		uc.publishEvent(ctx, constant.EventJobClosed, talentID, map[string]string{
			"jobId":    posting.ID.String(),
			"jobTitle": posting.Title,
			"company":  posting.Company,
		})
	}
}

func applySalary(posting *job.Job, minimum, maximum, currency string) error {
	minAmount, err := job.ParseSalary(minimum)
	if err != nil {
		return pkg.ValidateBusinessError(constant.ErrInvalidSalaryRange, constant.MongoCollectionJob)
	}

	maxAmount, err := job.ParseSalary(maximum)
	if err != nil {
		return pkg.ValidateBusinessError(constant.ErrInvalidSalaryRange, constant.MongoCollectionJob)
	}

	if err := posting.SetSalary(minAmount, maxAmount, currency); err != nil {
		return pkg.ValidateBusinessError(constant.ErrInvalidSalaryRange, constant.MongoCollectionJob)
	}

	return nil
}

// salaryUpdate merges the patched salary bounds with the stored ones and validates the result.
func salaryUpdate(current *job.Job, input *model.UpdateJobInput) (bson.M, error) {
	merged := *current

	minimum, maximum, currency := "", "", current.Currency

	if current.SalaryMin != nil {
		minimum = current.SalaryMin.String()
	}

	if current.SalaryMax != nil {
		maximum = current.SalaryMax.String()
	}

	if input.SalaryMin != nil {
		minimum = *input.SalaryMin
	}

	if input.SalaryMax != nil {
		maximum = *input.SalaryMax
	}

	if input.Currency != nil {
		currency = *input.Currency
	}

	if err := applySalary(&merged, minimum, maximum, currency); err != nil {
		return nil, err
	}

	minValue, err := job.ToDecimal128(merged.SalaryMin)
	if err != nil {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidSalaryRange, constant.MongoCollectionJob)
	}

	maxValue, err := job.ToDecimal128(merged.SalaryMax)
	if err != nil {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidSalaryRange, constant.MongoCollectionJob)
	}

	return bson.M{
		"salary_min": minValue,
		"salary_max": maxValue,
		"currency":   merged.Currency,
	}, nil
}

// normalizeSkills trims, drops empty entries and removes case-insensitive duplicates, keeping first spelling.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))

	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)

		if s == "" || seen[key] {
			continue
		}

		seen[key] = true

		out = append(out, s)
	}

	return out
}
