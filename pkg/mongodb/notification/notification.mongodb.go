// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package notification

import (
	"context"
	"errors"
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

// ErrAlreadyDelivered is returned by Create when a notification with the same id exists.
// Notification ids are event ids, so this marks a redelivered event.
var ErrAlreadyDelivered = errors.New("notification already delivered")

// Repository provides an interface for operations on the notification collection.
//
//go:generate mockgen --destination=notification.mongodb.mock.go --package=notification --copyright_file=../../../COPYRIGHT . Repository
type Repository interface {
	Create(ctx context.Context, n *Notification) (*Notification, error)
	FindList(ctx context.Context, recipientID uuid.UUID, filters http.QueryHeader) ([]*Notification, int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*Notification, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

// NotificationMongoDBRepository is a MongoDB-specific implementation of Repository.
type NotificationMongoDBRepository struct {
	connection *libMongo.MongoConnection
	Database   string
}

var _ Repository = (*NotificationMongoDBRepository)(nil)

// NewNotificationMongoDBRepository returns a new instance of NotificationMongoDBRepository using the given MongoDB connection.
func NewNotificationMongoDBRepository(mc *libMongo.MongoConnection) (*NotificationMongoDBRepository, error) {
	r := &NotificationMongoDBRepository{
		connection: mc,
		Database:   mc.Database,
	}
	if _, err := r.connection.GetDB(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb for notifications: %w", err)
	}

	return r, nil
}

func (r *NotificationMongoDBRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return mongodb.Collection(ctx, r.connection, r.Database, constant.MongoCollectionNotification)
}

// Create inserts a notification.
func (r *NotificationMongoDBRepository) Create(ctx context.Context, n *Notification) (*Notification, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.notification.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.recipient_id", n.RecipientID.String()),
		attribute.String("app.request.type", n.Type),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	record := &NotificationMongoDBModel{}
	record.FromEntity(n)

	if _, err := coll.InsertOne(ctx, record); err != nil {
		if mongodb.IsDuplicateKey(err) {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Notification already delivered", err)

			return nil, ErrAlreadyDelivered
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to insert notification", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindList retrieves a page of the recipient's notifications, optionally only unread ones.
func (r *NotificationMongoDBRepository) FindList(ctx context.Context, recipientID uuid.UUID, filters http.QueryHeader) ([]*Notification, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.notification.find_list")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.recipient_id", recipientID.String()),
		attribute.Bool("app.request.unread", filters.Unread),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, 0, err
	}

	records, total, err := mongodb.FindPage[NotificationMongoDBModel](ctx, coll, ListFilter(recipientID, filters), filters.Page, filters.Limit)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list notifications", err)

		return nil, 0, err
	}

	notifications := make([]*Notification, 0, len(records))
	for _, record := range records {
		notifications = append(notifications, record.ToEntity())
	}

	return notifications, total, nil
}

// ListFilter builds the notification filter for recipientID.
func ListFilter(recipientID uuid.UUID, filters http.QueryHeader) bson.M {
	filter := bson.M{"recipient_id": recipientID}
	if filters.Unread {
		filter["read"] = false
	}

	return filter
}

// MarkRead flags one of the recipient's notifications as read. Marking an already read notification keeps its original read time.
// Notifications of other recipients yield mongo.ErrNoDocuments.
func (r *NotificationMongoDBRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*Notification, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.notification.mark_read")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.notification_id", id.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return nil, err
	}

	filter := bson.M{"_id": id, "recipient_id": recipientID}

	_, err = coll.UpdateOne(ctx, bson.M{"_id": id, "recipient_id": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": time.Now().UTC()}})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to mark notification read", err)

		return nil, err
	}

	var record NotificationMongoDBModel
	if err := coll.FindOne(ctx, filter).Decode(&record); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find notification", err)

		return nil, err
	}

	return record.ToEntity(), nil
}

// MarkAllRead flags every unread notification of the recipient as read and returns how many changed.
func (r *NotificationMongoDBRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.notification.mark_all_read")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.recipient_id", recipientID.String()),
	)

	coll, err := r.collection(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get database", err)

		return 0, err
	}

	result, err := coll.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": time.Now().UTC()}},
		options.Update(),
	)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to mark notifications read", err)

		return 0, err
	}

	logger.Infof("Marked %d notifications read for %s", result.ModifiedCount, recipientID)

	return result.ModifiedCount, nil
}
