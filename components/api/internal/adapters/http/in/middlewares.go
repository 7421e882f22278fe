// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// UUIDPathParameter is the default path parameter holding a resource id.
const UUIDPathParameter = "id"

// SecurityHeaders returns a Fiber middleware that sets standard HTTP security
// headers on every response.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "0")
		c.Set("Referrer-Policy", "no-referrer")

		return c.Next()
	}
}

// RecoverMiddleware turns handler panics into 500 responses instead of crashing the process.
func RecoverMiddleware() fiber.Handler {
	return recover.New()
}

// ParseUUIDPathParam returns a Fiber middleware that validates the named path
// parameter as a UUID and stores the parsed value in c.Locals(paramName).
// Invalid values are answered with 400 and ErrInvalidPathParameter.
func ParseUUIDPathParam(paramName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathParam := c.Params(paramName)

		if pkg.IsNilOrEmpty(&pathParam) {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidPathParameter, "", paramName))
		}

		parsed, err := uuid.Parse(pathParam)
		if err != nil {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidPathParameter, "", paramName))
		}

		c.Locals(paramName, parsed)

		return c.Next()
	}
}

// ParsePathParametersUUID validates the "id" path parameter.
func ParsePathParametersUUID(c *fiber.Ctx) error {
	return ParseUUIDPathParam(UUIDPathParameter)(c)
}

// pathID returns the id stored by ParsePathParametersUUID.
func pathID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(UUIDPathParameter).(uuid.UUID)

	return id
}
