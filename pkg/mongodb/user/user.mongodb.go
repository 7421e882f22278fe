// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package user

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

// Repository provides an interface for operations on the user collection.
//
//go:generate mockgen --destination=user.mongodb.mock.go --package=user --copyright_file=../../../COPYRIGHT . Repository
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindList(ctx context.Context, filters http.QueryHeader) ([]*User, int64, error)
	FindTalents(ctx context.Context, filters http.QueryHeader) ([]*User, int64, error)
	Update(ctx context.Context, id uuid.UUID, fields bson.M) (*User, error)
}

// UserMongoDBRepository is a MongoDB-specific implementation of Repository.
type UserMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string
}

// Compile-time interface satisfaction check.
var _ Repository = (*UserMongoDBRepository)(nil)

// NewUserMongoDBRepository returns a new instance of UserMongoDBRepository using the given MongoDB connection.
func NewUserMongoDBRepository(mc *libMongo.MongoConnection) (*UserMongoDBRepository, error) {
	r := &UserMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}
	if _, err := r.connection.GetDB(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb for users: %w", err)
	}

	return r, nil
}

func (r *UserMongoDBRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return mongodb.Collection(ctx, r.connection, r.Database, constant.MongoCollectionUser)
}

// Create inserts a new user. A second account with the same email yields ErrEmailAlreadyRegistered.
func (r *UserMongoDBRepository) Create(ctx context.Context, u *User) (*User, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.user.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.user_id", u.ID.String()),
		attribute.String("app.request.role", u.Role),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	record := &UserMongoDBModel{}
	record.FromEntity(u)

	if _, err := coll.InsertOne(ctx, record); err != nil {
		if mongodb.IsDuplicateKey(err) {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Email already registered", err)

			return nil, pkg.ValidateBusinessError(constant.ErrEmailAlreadyRegistered, constant.MongoCollectionUser)
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to insert user", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByID retrieves a user by id. Missing users yield mongo.ErrNoDocuments.
func (r *UserMongoDBRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.findOne(ctx, "repository.user.find_by_id", bson.M{"_id": id, "deleted_at": mongodb.NotDeleted()})
}

// FindByEmail retrieves a user by normalised email. Missing users yield mongo.ErrNoDocuments.
func (r *UserMongoDBRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "repository.user.find_by_email", bson.M{"email": pkg.NormalizeEmail(email), "deleted_at": mongodb.NotDeleted()})
}

func (r *UserMongoDBRepository) findOne(ctx context.Context, spanName string, filter bson.M) (*User, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	var record UserMongoDBModel
	if err := coll.FindOne(ctx, filter).Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find user", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindList retrieves a page of users for administration, filtered by role, status and a name or email search.
func (r *UserMongoDBRepository) FindList(ctx context.Context, filters http.QueryHeader) ([]*User, int64, error) {
	filter := bson.M{"deleted_at": mongodb.NotDeleted()}

	if filters.Role != "" {
		filter["role"] = filters.Role
	}

	if filters.Status != "" {
		filter["status"] = filters.Status
	}

	if filters.Q != "" {
		filter["$or"] = bson.A{
			bson.M{"name": mongodb.ContainsInsensitive(filters.Q)},
			bson.M{"email": mongodb.ContainsInsensitive(filters.Q)},
		}
	}

	return r.findPage(ctx, "repository.user.find_list", filter, filters)
}

// FindTalents retrieves a page of active talents filtered by a name or headline search, skill and location.
func (r *UserMongoDBRepository) FindTalents(ctx context.Context, filters http.QueryHeader) ([]*User, int64, error) {
	filter := bson.M{
		"role":       constant.RoleTalent,
		"status":     constant.UserStatusActive,
		"deleted_at": mongodb.NotDeleted(),
	}

	if filters.Q != "" {
		filter["$or"] = bson.A{
			bson.M{"name": mongodb.ContainsInsensitive(filters.Q)},
			bson.M{"headline": mongodb.ContainsInsensitive(filters.Q)},
		}
	}

	if filters.Skill != "" {
		filter["skills"] = mongodb.EqualInsensitive(filters.Skill)
	}

	if filters.Location != "" {
		filter["location"] = mongodb.ContainsInsensitive(filters.Location)
	}

	return r.findPage(ctx, "repository.user.find_talents", filter, filters)
}

func (r *UserMongoDBRepository) findPage(ctx context.Context, spanName string, filter bson.M, filters http.QueryHeader) ([]*User, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, spanName)
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

	records, total, err := mongodb.FindPage[UserMongoDBModel](ctx, coll, filter, filters.Page, filters.Limit)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list users", err)

		return nil, 0, err
	}

	users := make([]*User, 0, len(records))
	for _, record := range records {
		users = append(users, record.ToEntity())
	}

	return users, total, nil
}

// Update sets fields on a user and returns the updated document. Missing users yield mongo.ErrNoDocuments.
func (r *UserMongoDBRepository) Update(ctx context.Context, id uuid.UUID, fields bson.M) (*User, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.user.update")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.user_id", id.String()),
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

	var record UserMongoDBModel
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "deleted_at": mongodb.NotDeleted()}, bson.M{"$set": set}, opts).Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update user", err)

		return nil, err
	}

	return record.ToEntity(), nil
}
