// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gabriel-vasile/mimetype"
	"go.opentelemetry.io/otel/attribute"
)

const uploadEntity = "upload"

// allowedUploadTypes lists the sniffed MIME types accepted per upload kind.
var allowedUploadTypes = map[string][]string{
	constant.UploadKindResume: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	constant.UploadKindAvatar: {"image/png", "image/jpeg", "image/webp"},
	constant.UploadKindLogo:   {"image/png", "image/jpeg", "image/webp"},
}

// DetectUploadType sniffs content and returns its MIME type and extension if kind accepts it.
func DetectUploadType(kind string, content []byte) (string, string, error) {
	accepted, ok := allowedUploadTypes[kind]
	if !ok {
		return "", "", pkg.ValidateBusinessError(constant.ErrInvalidUploadKind, uploadEntity)
	}

	detected := mimetype.Detect(content)

	for m := detected; m != nil; m = m.Parent() {
		if slices.Contains(accepted, m.String()) {
			return m.String(), detected.Extension(), nil
		}
	}

	return "", "", pkg.ValidateBusinessError(constant.ErrInvalidFileFormat, uploadEntity, detected.String(), kind)
}

// UploadFile stores a file for the caller under <kind>s/<userID>/<uuid><ext> and returns a presigned URL.
func (uc *UseCase) UploadFile(ctx context.Context, principal *pkg.Principal, kind string, content []byte) (*model.UploadResponse, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.upload.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.kind", kind),
		attribute.Int("app.request.size", len(content)),
	)

	if len(content) == 0 {
		return nil, pkg.ValidateBusinessError(constant.ErrEmptyFile, uploadEntity)
	}

	if uc.UploadMaxBytes > 0 && int64(len(content)) > uc.UploadMaxBytes {
		return nil, pkg.ValidateBusinessError(constant.ErrFileTooLarge, uploadEntity, uc.UploadMaxBytes)
	}

	contentType, ext, err := DetectUploadType(kind, content)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Rejected upload content", err)

		return nil, err
	}

	key := storage.ObjectKey(kind, principal.UserID, ext)

	if _, err := uc.Storage.Upload(ctx, key, bytes.NewReader(content), contentType); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to upload file", err)

		logger.Errorf("Failed to upload %s for %s: %v", kind, principal.UserID, err)

		return nil, storageError(err)
	}

	url, err := uc.Storage.GeneratePresignedURL(ctx, key, constant.PresignedURLExpiry)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to presign uploaded file", err)

		return nil, storageError(err)
	}

	logger.Infof("Stored %s %s (%s, %d bytes)", kind, key, contentType, len(content))

	return &model.UploadResponse{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        int64(len(content)),
		ExpiresAt:   time.Now().UTC().Add(constant.PresignedURLExpiry),
	}, nil
}

// GetUploadURL presigns a fresh download URL. Non-admins may only access keys under their own id.
func (uc *UseCase) GetUploadURL(ctx context.Context, principal *pkg.Principal, key string) (*model.PresignedURLResponse, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.upload.get_url")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	if key == "" {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, uploadEntity, "key")
	}

	if !principal.HasRole(constant.RoleAdmin) && !storage.OwnedBy(key, principal.UserID) {
		return nil, pkg.ValidateBusinessError(constant.ErrNotResourceOwner, uploadEntity)
	}

	exists, err := uc.Storage.Exists(ctx, key)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to check object", err)

		return nil, storageError(err)
	}

	if !exists {
		return nil, pkg.ValidateBusinessError(constant.ErrEntityNotFound, uploadEntity)
	}

	url, err := uc.Storage.GeneratePresignedURL(ctx, key, constant.PresignedURLExpiry)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to presign object", err)

		return nil, storageError(err)
	}

	return &model.PresignedURLResponse{
		Key:       key,
		URL:       url,
		ExpiresAt: time.Now().UTC().Add(constant.PresignedURLExpiry),
	}, nil
}

// storageError turns an open breaker into a service-unavailable error and hides other storage failures.
func storageError(err error) error {
	if errors.Is(err, pkg.ErrCircuitOpen) {
		return pkg.ValidateBusinessError(constant.ErrServiceUnavailable, uploadEntity)
	}

	return pkg.ValidateInternalError(err, uploadEntity)
}
