// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
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

// Repository provides an interface for operations on the application collection.
//
//go:generate mockgen --destination=application.mongodb.mock.go --package=application --copyright_file=../../../COPYRIGHT . Repository
type Repository interface {
	Create(ctx context.Context, a *Application) (*Application, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	FindList(ctx context.Context, filters http.QueryHeader, scope Scope) ([]*Application, int64, error)
	FindTalentIDsByJob(ctx context.Context, jobID uuid.UUID, statuses []string) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from string, change StatusChange) (*Application, error)
	Delete(ctx context.Context, id uuid.UUID, allowedStatuses []string) error
}

// ApplicationMongoDBRepository is a MongoDB-specific implementation of Repository.
type ApplicationMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string
}

// Compile-time interface satisfaction check.
var _ Repository = (*ApplicationMongoDBRepository)(nil)

// NewApplicationMongoDBRepository returns a new instance of ApplicationMongoDBRepository using the given MongoDB connection.
func NewApplicationMongoDBRepository(mc *libMongo.MongoConnection) (*ApplicationMongoDBRepository, error) {
	r := &ApplicationMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}
	if _, err := r.connection.GetDB(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb for applications: %w", err)
	}

	return r, nil
}

func (r *ApplicationMongoDBRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return mongodb.Collection(ctx, r.connection, r.Database, constant.MongoCollectionApplication)
}

// Create inserts a new application. A second application of the same talent to the same job yields ErrDuplicateApplication.
func (r *ApplicationMongoDBRepository) Create(ctx context.Context, a *Application) (*Application, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.application.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", a.JobID.String()),
		attribute.String("app.request.talent_id", a.TalentID.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	record := &ApplicationMongoDBModel{}
	record.FromEntity(a)

	if _, err := coll.InsertOne(ctx, record); err != nil {
		if mongodb.IsDuplicateKey(err) {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Talent already applied to job", err)

			return nil, pkg.ValidateBusinessError(constant.ErrDuplicateApplication, constant.MongoCollectionApplication)
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to insert application", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByID retrieves an application. Missing applications yield mongo.ErrNoDocuments.
func (r *ApplicationMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.application.find_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	var record ApplicationMongoDBModel
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find application", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// ListFilter translates list query parameters and the caller scope into an application collection filter.
func ListFilter(filters http.QueryHeader, scope Scope) bson.M {
	filter := bson.M{}

	if scope.TalentID != uuid.Nil {
		filter["talent_id"] = scope.TalentID
	}

	if scope.RecruiterID != uuid.Nil {
		filter["recruiter_id"] = scope.RecruiterID
	}

	if filters.JobID != uuid.Nil {
		filter["job_id"] = filters.JobID
	}

	if filters.Status != "" {
		filter["status"] = filters.Status
	}

	return filter
}

// FindList retrieves a page of applications visible within scope and the total number of matches.
func (r *ApplicationMongoDBRepository) FindList(ctx context.Context, filters http.QueryHeader, scope Scope) ([]*Application, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.application.find_list")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.scope_talent_id", scope.TalentID.String()),
		attribute.String("app.request.scope_recruiter_id", scope.RecruiterID.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, 0, err
	}

	records, total, err := mongodb.FindPage[ApplicationMongoDBModel](ctx, coll, ListFilter(filters, scope), filters.Page, filters.Limit)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list applications", err)

		return nil, 0, err
	}

	applications := make([]*Application, 0, len(records))
	for _, record := range records {
		applications = append(applications, record.ToEntity())
	}

	return applications, total, nil
}

// FindTalentIDsByJob returns the distinct talents with an application to jobID in one of statuses.
func (r *ApplicationMongoDBRepository) FindTalentIDsByJob(ctx context.Context, jobID uuid.UUID, statuses []string) ([]uuid.UUID, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.application.find_talent_ids_by_job")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.job_id", jobID.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	filter := bson.M{"job_id": jobID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	values, err := coll.Distinct(ctx, "talent_id", filter)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find talents by job", err)

		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(values))

	for _, v := range values {
		raw, err := bson.Marshal(bson.M{"id": v})
		if err != nil {
			return nil, err
		}

		var decoded struct {
			ID uuid.UUID `bson:"id"`
		}

		if err := bson.Unmarshal(raw, &decoded); err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to decode talent id", err)

			return nil, err
		}

		ids = append(ids, decoded.ID)
	}

	return ids, nil
}

// UpdateStatus applies change only if the application is still in status from, appending it to the history.
// A missing application or a concurrent change yields mongo.ErrNoDocuments.
func (r *ApplicationMongoDBRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from string, change StatusChange) (*Application, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.application.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
		attribute.String("app.request.from", from),
		attribute.String("app.request.to", change.Status),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	if change.ChangedAt.IsZero() {
		change.ChangedAt = time.Now().UTC()
	}

	update := bson.M{
		"$set":  bson.M{"status": change.Status, "updated_at": change.ChangedAt},
		"$push": bson.M{"history": change},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record ApplicationMongoDBModel
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "status": from}, update, opts).Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update application status", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// Delete removes an application still in one of allowedStatuses. Otherwise it yields mongo.ErrNoDocuments.
func (r *ApplicationMongoDBRepository) Delete(ctx context.Context, id uuid.UUID, allowedStatuses []string) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.application.delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.application_id", id.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id, "status": bson.M{"$in": allowedStatuses}})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete application", err)

		return err
	}

	if result.DeletedCount == 0 {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "No withdrawable application found", mongo.ErrNoDocuments)

		return mongo.ErrNoDocuments
	}

	logger.Infof("Application %s withdrawn", id)

	return nil
}
