// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package job

import (
	"context"

	"github.com/dlt-talenthub/talenthub/pkg/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Indexes lists the indexes of the job collection.
func Indexes() []mongo.IndexModel {
	active := bson.D{{Key: "deleted_at", Value: nil}}

	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_job_list_main").SetPartialFilterExpression(active),
		},
		{
			Keys: bson.D{
				{Key: "recruiter_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_job_recruiter").SetPartialFilterExpression(active),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "employment_type", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_job_category_type").SetPartialFilterExpression(active),
		},
	}
}

// EnsureIndexes creates all indexes for the job collection.
func (r *JobMongoDBRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	return mongodb.EnsureIndexes(ctx, coll, Indexes())
}
