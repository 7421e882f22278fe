// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"errors"
	"strings"

	"github.com/dlt-talenthub/talenthub/components/api/internal/services"
	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// UploadHandler handles resume, avatar and logo uploads.
type UploadHandler struct {
	service *services.UseCase
}

// NewUploadHandler creates a new UploadHandler with the given service dependency.
// It returns an error if service is nil.
func NewUploadHandler(service *services.UseCase) (*UploadHandler, error) {
	if service == nil {
		return nil, errors.New("service must not be nil for UploadHandler")
	}

	return &UploadHandler{service: service}, nil
}

// UploadFile stores an uploaded file.
//
//	@Summary		Upload a file
//	@Description	Stores a resume (pdf, doc, docx), avatar or logo (png, jpeg, webp). The type is sniffed from the content.
//	@Tags			Uploads
//	@Accept			mpfd
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			file			formData	file	true	"File"
//	@Param			kind			formData	string	true	"Upload kind"	Enums(resume,avatar,logo)
//	@Success		201				{object}	model.UploadResponse
//	@Failure		400				{object}	pkg.ResponseError
//	@Failure		503				{object}	pkg.ResponseError
//	@Router			/v1/uploads [post]
func (uh *UploadHandler) UploadFile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.upload.create")
	defer span.End()

	kind := strings.ToLower(strings.TrimSpace(c.FormValue("kind")))

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.kind", kind),
	)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Missing upload file", err)

		return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "upload"))
	}

	content, err := http.ReadMultipartFile(fileHeader, uh.service.UploadMaxBytes)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Unreadable upload file", err)

		return http.WithError(c, err)
	}

	result, err := uh.service.UploadFile(ctx, principalFrom(c), kind, content)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to store upload", err)

		logger.Errorf("Failed to store %s upload %q, Error: %s", kind, fileHeader.Filename, err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.Created(c, result)
}

// GetUploadURL presigns a download URL for a stored file.
//
//	@Summary		Get a download URL
//	@Description	Non-admins may only request keys of their own uploads.
//	@Tags			Uploads
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Param			key				query		string	true	"Object key"
//	@Success		200				{object}	model.PresignedURLResponse
//	@Failure		403				{object}	pkg.ResponseError
//	@Failure		404				{object}	pkg.ResponseError
//	@Router			/v1/uploads/url [get]
func (uh *UploadHandler) GetUploadURL(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.upload.get_url")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	result, err := uh.service.GetUploadURL(ctx, principalFrom(c), strings.TrimSpace(c.Query("key")))
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to presign upload", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, result)
}
