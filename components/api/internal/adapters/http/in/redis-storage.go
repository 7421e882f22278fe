// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"
	"time"

	"github.com/dlt-talenthub/talenthub/components/api/internal/adapters/redis"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/gofiber/fiber/v2"
)

const (
	rateLimitKeyPrefix   = "ratelimit:"
	redisStorageTimeout  = 2 * time.Second
	redisStorageLogEntry = "rate-limit redis storage"
)

// RateLimitStorage is the storage contract of the limiter middleware.
type RateLimitStorage = fiber.Storage

// RedisStorage adapts a Redis connection to fiber.Storage for distributed rate limiting.
// Redis failures degrade to "no data": Get returns (nil, nil) and writes return nil,
// so an outage lets traffic through instead of blocking every request.
type RedisStorage struct {
	conn   redis.ClientProvider
	logger log.Logger
}

var _ fiber.Storage = (*RedisStorage)(nil)

// NewRedisStorage wraps conn. A nil conn yields a storage that never counts.
func NewRedisStorage(conn redis.ClientProvider, logger log.Logger) *RedisStorage {
	if logger == nil {
		logger = &log.NoneLogger{}
	}

	return &RedisStorage{conn: conn, logger: logger}
}

// Get returns the stored counter, or nil when absent or Redis is unavailable.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if s.conn == nil {
		return nil, nil //nolint:nilnil // no Redis configured
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisStorageTimeout)
	defer cancel()

	client, err := s.conn.GetClient(ctx)
	if err != nil {
		s.logger.Errorf("%s: failed to get client: %v", redisStorageLogEntry, err)
		return nil, nil //nolint:nilerr // degrade open
	}

	val, err := client.Get(ctx, rateLimitKeyPrefix+key).Bytes()
	if err != nil {
		return nil, nil //nolint:nilerr // redis.Nil or outage
	}

	return val, nil
}

// Set stores val under key for exp.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if s.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisStorageTimeout)
	defer cancel()

	client, err := s.conn.GetClient(ctx)
	if err != nil {
		s.logger.Errorf("%s: failed to get client: %v", redisStorageLogEntry, err)
		return nil //nolint:nilerr // degrade open
	}

	if err := client.Set(ctx, rateLimitKeyPrefix+key, val, exp).Err(); err != nil {
		s.logger.Errorf("%s: failed to set key %s: %v", redisStorageLogEntry, key, err)
	}

	return nil
}

// Delete removes key.
func (s *RedisStorage) Delete(key string) error {
	if s.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisStorageTimeout)
	defer cancel()

	client, err := s.conn.GetClient(ctx)
	if err != nil {
		s.logger.Errorf("%s: failed to get client: %v", redisStorageLogEntry, err)
		return nil //nolint:nilerr // degrade open
	}

	if err := client.Del(ctx, rateLimitKeyPrefix+key).Err(); err != nil {
		s.logger.Errorf("%s: failed to delete key %s: %v", redisStorageLogEntry, key, err)
	}

	return nil
}

// Reset is a no-op: counters expire by TTL and the database is shared with refresh tokens.
func (s *RedisStorage) Reset() error {
	return nil
}

// Close is a no-op. The connection belongs to the bootstrap cleanup stack.
func (s *RedisStorage) Close() error {
	return nil
}
