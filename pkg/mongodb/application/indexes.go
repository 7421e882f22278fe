// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package application

import (
	"context"

	"github.com/dlt-talenthub/talenthub/pkg/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Indexes lists the indexes of the application collection.
func Indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "job_id", Value: 1},
				{Key: "talent_id", Value: 1},
			},
			Options: options.Index().SetName("idx_application_job_talent_unique").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "talent_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_application_talent"),
		},
		{
			Keys: bson.D{
				{Key: "recruiter_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_application_recruiter_status"),
		},
	}
}

// EnsureIndexes creates all indexes for the application collection.
func (r *ApplicationMongoDBRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	return mongodb.EnsureIndexes(ctx, coll, Indexes())
}
