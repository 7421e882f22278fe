// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package storage defines the object storage port used for resumes, avatars and company logos.
package storage

//go:generate mockgen --destination=ports.mock.go --package=storage --copyright_file=../../COPYRIGHT . ObjectStorage

import (
	"context"
	"io"
	"time"
)

// ObjectStorage provides object storage operations for uploaded files.
type ObjectStorage interface {
	// Upload stores content from a reader at the given key and returns the key.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// Download retrieves content from the given key. The caller must close the returned ReadCloser.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// GeneratePresignedURL creates a time-limited download URL.
	GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
