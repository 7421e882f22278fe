// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"errors"

	"github.com/dlt-talenthub/talenthub/pkg"

	"github.com/gofiber/fiber/v2"
)

// WithError renders err with the status code matching its type. Unknown errors become a generic 500.
func WithError(c *fiber.Ctx, err error) error {
	var (
		notFound      pkg.EntityNotFoundError
		conflict      pkg.EntityConflictError
		validation    pkg.ValidationError
		unprocessable pkg.UnprocessableOperationError
		unauthorized  pkg.UnauthorizedError
		forbidden     pkg.ForbiddenError
		unavailable   pkg.ServiceUnavailableError
		knownFields   pkg.ValidationKnownFieldsError
		unknownFields pkg.ValidationUnknownFieldsError
		response      pkg.ResponseError
	)

	switch {
	case errors.As(err, &notFound):
		return NotFound(c, notFound.Code, notFound.Title, notFound.Message)
	case errors.As(err, &conflict):
		return Conflict(c, conflict.Code, conflict.Title, conflict.Message)
	case errors.As(err, &validation):
		return BadRequest(c, pkg.ValidationKnownFieldsError{
			Code:    validation.Code,
			Title:   validation.Title,
			Message: validation.Message,
		})
	case errors.As(err, &unprocessable):
		return UnprocessableEntity(c, unprocessable.Code, unprocessable.Title, unprocessable.Message)
	case errors.As(err, &unauthorized):
		return Unauthorized(c, unauthorized.Code, unauthorized.Title, unauthorized.Message)
	case errors.As(err, &forbidden):
		return Forbidden(c, forbidden.Code, forbidden.Title, forbidden.Message)
	case errors.As(err, &unavailable):
		return ServiceUnavailable(c, unavailable.Code, unavailable.Title, unavailable.Message)
	case errors.As(err, &knownFields):
		return BadRequest(c, knownFields)
	case errors.As(err, &unknownFields):
		return BadRequest(c, unknownFields)
	case errors.As(err, &response):
		return JSONResponseError(c, response)
	default:
		var iErr pkg.InternalServerError

		_ = errors.As(pkg.ValidateInternalError(err, ""), &iErr)

		return InternalServerError(c, iErr.Code, iErr.Title, iErr.Message)
	}
}
