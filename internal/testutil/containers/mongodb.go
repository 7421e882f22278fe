// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package containers starts the backing services used by integration tests.
package containers

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const (
	MongoUser     = "talenthub"
	MongoPassword = "talenthub"
	MongoDatabase = "talenthub"

	defaultMongoImage = "mongo:8"
)

// MongoDBContainer wraps a MongoDB testcontainer with connection info.
type MongoDBContainer struct {
	*mongodb.MongoDBContainer
	ConnectionString string
}

// StartMongoDB creates and starts a MongoDB container. An empty image uses mongo:8.
func StartMongoDB(ctx context.Context, image string) (*MongoDBContainer, error) {
	if image == "" {
		image = defaultMongoImage
	}

	container, err := mongodb.Run(ctx,
		image,
		mongodb.WithUsername(MongoUser),
		mongodb.WithPassword(MongoPassword),
		testcontainers.WithEnv(map[string]string{
			"MONGO_INITDB_DATABASE": MongoDatabase,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("get mongodb connection string: %w", err)
	}

	return &MongoDBContainer{
		MongoDBContainer: container,
		ConnectionString: connStr,
	}, nil
}
