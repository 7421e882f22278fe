// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package containers

import (
	"context"
	"fmt"
	"strings"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	RedisPassword = "talenthub-pass"

	defaultRedisImage = "valkey/valkey:8"
)

// RedisContainer wraps a Valkey/Redis testcontainer with connection info.
type RedisContainer struct {
	*redis.RedisContainer
	// Address is host:port, the form lib-commons expects.
	Address  string
	Password string
}

// StartRedis creates and starts a password protected Valkey container. An empty image uses valkey/valkey:8.
func StartRedis(ctx context.Context, image string) (*RedisContainer, error) {
	if image == "" {
		image = defaultRedisImage
	}

	container, err := redis.Run(ctx,
		image,
		testcontainers.CustomizeRequest(testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Cmd: []string{"valkey-server", "--requirepass", RedisPassword},
			},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("start redis container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("get redis connection string: %w", err)
	}

	return &RedisContainer{
		RedisContainer: container,
		Address:        strings.TrimPrefix(connStr, "redis://"),
		Password:       RedisPassword,
	}, nil
}
