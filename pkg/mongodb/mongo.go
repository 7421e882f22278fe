// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package mongodb holds the helpers shared by the TalentHub document repositories.
package mongodb

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/pagination"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libMongo "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

// Collection resolves a collection on the connection's database.
func Collection(ctx context.Context, conn *libMongo.MongoConnection, database, name string) (*mongo.Collection, error) {
	db, err := conn.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	return db.Database(strings.ToLower(database)).Collection(strings.ToLower(name)), nil
}

// NotDeleted matches documents without a deleted_at timestamp.
func NotDeleted() bson.D {
	return bson.D{{Key: "$eq", Value: nil}}
}

// ListOptions returns the find options for a page of results, newest first.
// The _id tie-breaker keeps page boundaries stable when several documents share created_at.
func ListOptions(page, limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})

	if limit > 0 {
		opts.SetLimit(int64(limit))

		if skip := pagination.NewDescriptor(page, limit, 0).Offset(); skip > 0 {
			opts.SetSkip(skip)
		}
	}

	return opts
}

// ContainsInsensitive matches field values containing text, ignoring case. Regex metacharacters in text are escaped.
func ContainsInsensitive(text string) bson.M {
	return bson.M{
		"$regex":   regexp.QuoteMeta(text),
		"$options": "i",
	}
}

// EqualInsensitive matches field values equal to text, ignoring case.
func EqualInsensitive(text string) bson.M {
	return bson.M{
		"$regex":   "^" + regexp.QuoteMeta(text) + "$",
		"$options": "i",
	}
}

// IsDuplicateKey reports whether err was raised by a unique index.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if mongo.IsDuplicateKeyError(err) {
		return true
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == constant.MongoDuplicateKeyCode {
				return true
			}
		}
	}

	return false
}

// FindPage runs filter against coll and returns one page of decoded documents together with the total match count.
func FindPage[M any](ctx context.Context, coll *mongo.Collection, filter bson.M, page, limit int) ([]*M, int64, error) {
	_, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.find_page")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.collection", coll.Name()),
		attribute.Int("app.request.page", page),
		attribute.Int("app.request.limit", limit),
	)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to count documents", err)

		return nil, 0, err
	}

	records := make([]*M, 0)

	if total == 0 {
		return records, 0, nil
	}

	cur, err := coll.Find(ctx, filter, ListOptions(page, limit))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find documents", err)

		return nil, 0, err
	}

	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var record M
		if err := cur.Decode(&record); err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to decode document", err)

			return nil, 0, err
		}

		records = append(records, &record)
	}

	if err := cur.Err(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to iterate documents", err)

		return nil, 0, err
	}

	return records, total, nil
}

// EnsureIndexes creates indexes on coll, treating already existing indexes as success.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, indexes []mongo.IndexModel) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.ensure_indexes")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.collection", coll.Name()),
	)

	ctx, cancel := context.WithTimeout(ctx, constant.MongoIndexCreateTimeout)
	defer cancel()

	logger.Infof("Creating %d indexes for %s collection", len(indexes), coll.Name())

	names, err := coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		if strings.Contains(err.Error(), "IndexOptionsConflict") ||
			strings.Contains(err.Error(), "already exists") {
			logger.Infof("Indexes for %s already exist", coll.Name())

			return nil
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to create indexes", err)
		logger.Errorf("Failed to create indexes for %s: %v", coll.Name(), err)

		return err
	}

	logger.Infof("Indexes ready for %s: %v", coll.Name(), names)

	return nil
}
