// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"errors"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"
	"github.com/dlt-talenthub/talenthub/pkg/security"

	"github.com/gofiber/fiber/v2"
)

const (
	bearerPrefix = "Bearer "
	principalKey = "principal"
)

// AccessTokenParser verifies access tokens. *security.TokenManager satisfies it.
type AccessTokenParser interface {
	ParseAccess(token string) (*security.Claims, error)
}

// Authenticate requires a valid "Authorization: Bearer <access token>" header and stores
// the caller in the request context and in c.Locals("principal").
func Authenticate(tokens AccessTokenParser) fiber.Handler {
	if tokens == nil {
		panic(errors.New("in.Authenticate: token parser must not be nil"))
	}

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrMissingAuthorization, ""))
		}

		claims, err := tokens.ParseAccess(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidToken, ""))
		}

		userID, err := claims.UserID()
		if err != nil {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInvalidToken, ""))
		}

		principal := &pkg.Principal{UserID: userID, Email: claims.Email, Role: claims.Role}

		c.Locals(principalKey, principal)
		c.SetUserContext(pkg.ContextWithPrincipal(c.UserContext(), principal))

		return c.Next()
	}
}

// RequireRoles lets the request through only when the authenticated caller holds one of roles.
// It must run after Authenticate.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := principalFrom(c)
		if principal == nil {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrMissingAuthorization, ""))
		}

		if !principal.HasRole(roles...) {
			return http.WithError(c, pkg.ValidateBusinessError(constant.ErrInsufficientRole, ""))
		}

		return c.Next()
	}
}

func principalFrom(c *fiber.Ctx) *pkg.Principal {
	principal, _ := c.Locals(principalKey).(*pkg.Principal)

	return principal
}
