// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
)

// BreakerStorage guards an ObjectStorage with a named circuit breaker.
// Missing objects are not counted as failures.
type BreakerStorage struct {
	next     ObjectStorage
	breakers *pkg.CircuitBreakerManager
	name     string
}

var _ ObjectStorage = (*BreakerStorage)(nil)

// NewBreakerStorage wraps next so every call passes through the object storage breaker.
func NewBreakerStorage(next ObjectStorage, breakers *pkg.CircuitBreakerManager) *BreakerStorage {
	return &BreakerStorage{
		next:     next,
		breakers: breakers,
		name:     constant.StorageBreakerName,
	}
}

// State reports the breaker state of the underlying storage.
func (b *BreakerStorage) State() string {
	return b.breakers.GetState(b.name)
}

func (b *BreakerStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	result, err := b.breakers.Execute(b.name, func() (any, error) {
		return b.next.Upload(ctx, key, reader, contentType)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

func (b *BreakerStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	var notFound bool

	result, err := b.breakers.Execute(b.name, func() (any, error) {
		rc, err := b.next.Download(ctx, key)
		if errors.Is(err, ErrObjectNotFound) {
			notFound = true

			return nil, nil
		}

		return rc, err
	})
	if notFound {
		return nil, ErrObjectNotFound
	}

	if err != nil {
		return nil, err
	}

	return result.(io.ReadCloser), nil
}

func (b *BreakerStorage) Delete(ctx context.Context, key string) error {
	_, err := b.breakers.Execute(b.name, func() (any, error) {
		return nil, b.next.Delete(ctx, key)
	})

	return err
}

func (b *BreakerStorage) Exists(ctx context.Context, key string) (bool, error) {
	result, err := b.breakers.Execute(b.name, func() (any, error) {
		return b.next.Exists(ctx, key)
	})
	if err != nil {
		return false, err
	}

	return result.(bool), nil
}

func (b *BreakerStorage) GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	result, err := b.breakers.Execute(b.name, func() (any, error) {
		return b.next.GeneratePresignedURL(ctx, key, expiry)
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
