// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// ErrTokenNotFound is returned when a refresh token id is unknown, expired or already revoked.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenRepository stores issued refresh token ids so they can be rotated and revoked.
//
//go:generate mockgen --destination=token.redis.mock.go --package=redis --copyright_file=../../../../../COPYRIGHT . TokenRepository
type TokenRepository interface {
	Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error
	Owner(ctx context.Context, jti string) (uuid.UUID, error)
	Revoke(ctx context.Context, jti string) (bool, error)
}

// ClientProvider hands out a Redis client. *libRedis.RedisConnection satisfies it.
type ClientProvider interface {
	GetClient(ctx context.Context) (redis.UniversalClient, error)
}

// TokenRedisRepository is the Redis implementation of TokenRepository.
// Keys are refresh:<jti> holding the owner id and expiring with the token.
type TokenRedisRepository struct {
	conn ClientProvider
}

// Compile-time interface satisfaction check.
var _ TokenRepository = (*TokenRedisRepository)(nil)

// NewTokenRedis returns a TokenRedisRepository after checking the connection.
func NewTokenRedis(conn ClientProvider) (*TokenRedisRepository, error) {
	r := &TokenRedisRepository{conn: conn}

	if _, err := r.conn.GetClient(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return r, nil
}

// TokenKey returns the Redis key of a refresh token id.
func TokenKey(jti string) string {
	return constant.RefreshTokenKeyPrefix + ":" + jti
}

// Save records a refresh token id for userID until ttl elapses.
func (tr *TokenRedisRepository) Save(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.redis.save_refresh_token")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.user_id", userID.String()),
		attribute.String("app.request.ttl", ttl.String()),
	)

	rds, err := tr.conn.GetClient(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get redis", err)

		return err
	}

	if err = rds.Set(ctx, TokenKey(jti), userID.String(), ttl).Err(); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to set refresh token on redis", err)

		logger.Errorf("Failed to store refresh token for user %s: %v", userID, err)

		return err
	}

	return nil
}

// Owner returns the user a refresh token id was issued to.
func (tr *TokenRedisRepository) Owner(ctx context.Context, jti string) (uuid.UUID, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.redis.get_refresh_token")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	rds, err := tr.conn.GetClient(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get redis", err)

		return uuid.Nil, err
	}

	value, err := rds.Get(ctx, TokenKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrTokenNotFound
	}

	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get refresh token on redis", err)

		return uuid.Nil, err
	}

	owner, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt refresh token entry: %w", err)
	}

	return owner, nil
}

// Revoke deletes a refresh token id and reports whether it was still live.
// A single DEL makes rotation single-use under concurrent refreshes.
func (tr *TokenRedisRepository) Revoke(ctx context.Context, jti string) (bool, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.redis.revoke_refresh_token")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	rds, err := tr.conn.GetClient(ctx)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get redis", err)

		return false, err
	}

	deleted, err := rds.Del(ctx, TokenKey(jti)).Result()
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to delete refresh token on redis", err)

		return false, err
	}

	return deleted > 0, nil
}
