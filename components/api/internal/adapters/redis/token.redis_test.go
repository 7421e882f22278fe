// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	client redis.UniversalClient
	err    error
}

func (p staticProvider) GetClient(context.Context) (redis.UniversalClient, error) {
	return p.client, p.err
}

func newTestRepository(t *testing.T) (*TokenRedisRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	repo, err := NewTokenRedis(staticProvider{client: client})
	require.NoError(t, err)

	return repo, mr
}

func TestNewTokenRedis_ConnectionError(t *testing.T) {
	repo, err := NewTokenRedis(staticProvider{err: errors.New("dial tcp: refused")})

	require.Error(t, err)
	assert.Nil(t, repo)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestTokenKey(t *testing.T) {
	assert.Equal(t, "refresh:abc", TokenKey("abc"))
}

func TestTokenRedisRepository_SaveAndOwner(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Save(ctx, "jti-1", userID, time.Hour))

	owner, err := repo.Owner(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, userID, owner)

	assert.Equal(t, time.Hour, mr.TTL("refresh:jti-1"))
}

func TestTokenRedisRepository_OwnerExpired(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jti-2", uuid.New(), time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Owner(ctx, "jti-2")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRedisRepository_OwnerCorruptValue(t *testing.T) {
	repo, mr := newTestRepository(t)

	require.NoError(t, mr.Set("refresh:jti-3", "not-a-uuid"))

	_, err := repo.Owner(context.Background(), "jti-3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenRedisRepository_RevokeIsSingleUse(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "jti-4", uuid.New(), time.Hour))

	revoked, err := repo.Revoke(ctx, "jti-4")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.False(t, mr.Exists("refresh:jti-4"))

	revoked, err = repo.Revoke(ctx, "jti-4")
	require.NoError(t, err)
	assert.False(t, revoked)
}
