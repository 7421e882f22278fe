// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libMongo "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

// Repository provides an interface for operations on the job collection.
//
//go:generate mockgen --destination=job.mongodb.mock.go --package=job --copyright_file=../../../COPYRIGHT . Repository
type Repository interface {
	Create(ctx context.Context, j *Job) (*Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)
	FindList(ctx context.Context, filters http.QueryHeader) ([]*Job, int64, error)
	Update(ctx context.Context, id uuid.UUID, fields bson.M) (*Job, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// JobMongoDBRepository is a MongoDB-specific implementation of Repository.
type JobMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string
}

// Compile-time interface satisfaction check.
var _ Repository = (*JobMongoDBRepository)(nil)

// NewJobMongoDBRepository returns a new instance of JobMongoDBRepository using the given MongoDB connection.
func NewJobMongoDBRepository(mc *libMongo.MongoConnection) (*JobMongoDBRepository, error) {
	r := &JobMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}
	if _, err := r.connection.GetDB(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb for jobs: %w", err)
	}

	return r, nil
}

func (r *JobMongoDBRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return mongodb.Collection(ctx, r.connection, r.Database, constant.MongoCollectionJob)
}

// Create inserts a new job posting.
func (r *JobMongoDBRepository) Create(ctx context.Context, j *Job) (*Job, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.job.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", j.ID.String()),
	)

	if err := libOpentelemetry.SetSpanAttributesFromStruct(&span, "app.request.payload", j); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert job to JSON string", err)
	}

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	record := &JobMongoDBModel{}
	if err := record.FromEntity(j); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert job to model", err)

		return nil, err
	}

	if _, err := coll.InsertOne(ctx, record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to insert job", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByID retrieves a job that has not been deleted. Missing jobs yield mongo.ErrNoDocuments.
func (r *JobMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.job.find_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	var record JobMongoDBModel
	if err := coll.FindOne(ctx, bson.M{"_id": id, "deleted_at": mongodb.NotDeleted()}).Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find job", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindList retrieves a page of jobs and the total number of matches.
func (r *JobMongoDBRepository) FindList(ctx context.Context, filters http.QueryHeader) ([]*Job, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.job.find_list")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	if err := libOpentelemetry.SetSpanAttributesFromStruct(&span, "app.request.filters", filters); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to convert filters to JSON string", err)
	}

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, 0, err
	}

	records, total, err := mongodb.FindPage[JobMongoDBModel](ctx, coll, ListFilter(filters), filters.Page, filters.Limit)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list jobs", err)

		return nil, 0, err
	}

	jobs := make([]*Job, 0, len(records))
	for _, record := range records {
		jobs = append(jobs, record.ToEntity())
	}

	return jobs, total, nil
}

// ListFilter translates list query parameters into a job collection filter.
func ListFilter(filters http.QueryHeader) bson.M {
	filter := bson.M{"deleted_at": mongodb.NotDeleted()}

	if filters.Q != "" {
		filter["$or"] = bson.A{
			bson.M{"title": mongodb.ContainsInsensitive(filters.Q)},
			bson.M{"description": mongodb.ContainsInsensitive(filters.Q)},
		}
	}

	if filters.Category != "" {
		filter["category"] = mongodb.EqualInsensitive(filters.Category)
	}

	if filters.Location != "" {
		filter["location"] = mongodb.ContainsInsensitive(filters.Location)
	}

	if filters.EmploymentType != "" {
		filter["employment_type"] = filters.EmploymentType
	}

	if filters.Status != "" {
		filter["status"] = filters.Status
	}

	if filters.RecruiterID != uuid.Nil {
		filter["recruiter_id"] = filters.RecruiterID
	}

	if filters.Skill != "" {
		filter["skills"] = mongodb.EqualInsensitive(filters.Skill)
	}

	return filter
}

// Update sets fields on a job and returns the updated document. Missing jobs yield mongo.ErrNoDocuments.
func (r *JobMongoDBRepository) Update(ctx context.Context, id uuid.UUID, fields bson.M) (*Job, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.job.update")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record JobMongoDBModel
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "deleted_at": mongodb.NotDeleted()}, bson.M{"$set": set}, opts).Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update job", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// SoftDelete marks a job as deleted. Missing jobs yield mongo.ErrNoDocuments.
func (r *JobMongoDBRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.job.soft_delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", id.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	now := time.Now().UTC()

	result, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "deleted_at": mongodb.NotDeleted()},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}},
	)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete job", err)

		return err
	}

	if result.MatchedCount == 0 {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "No job found with the provided id", mongo.ErrNoDocuments)

		return mongo.ErrNoDocuments
	}

	logger.Infof("Job %s soft deleted", id)

	return nil
}
