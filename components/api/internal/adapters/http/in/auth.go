// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"errors"

	"github.com/dlt-talenthub/talenthub/components/api/internal/services"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// AuthHandler handles registration, sign-in and token rotation.
type AuthHandler struct {
	service *services.UseCase
}

// NewAuthHandler creates a new AuthHandler with the given service dependency.
// It returns an error if service is nil.
func NewAuthHandler(service *services.UseCase) (*AuthHandler, error) {
	if service == nil {
		return nil, errors.New("service must not be nil for AuthHandler")
	}

	return &AuthHandler{service: service}, nil
}

// Register creates a talent or recruiter account.
//
//	@Summary		Register an account
//	@Description	Creates a talent or recruiter account and returns the user with a token pair
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			account	body		model.RegisterInput	true	"Account"
//	@Success		201		{object}	services.AuthResult
//	@Failure		400		{object}	pkg.ResponseError
//	@Failure		409		{object}	pkg.ResponseError
//	@Failure		429		{object}	pkg.ResponseError
//	@Router			/v1/auth/register [post]
func (ah *AuthHandler) Register(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.auth.register")
	defer span.End()

	payload := p.(*model.RegisterInput)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.role", payload.Role),
	)

	result, err := ah.service.Register(ctx, payload)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to register account", err)

		logger.Errorf("Failed to register account, Error: %s", err.Error())

		return http.WithError(c, err)
	}

	return commonsHttp.Created(c, result)
}

// Login signs a user in.
//
//	@Summary		Sign in
//	@Description	Verifies credentials and returns the user with a token pair
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		model.LoginInput	true	"Credentials"
//	@Success		200			{object}	services.AuthResult
//	@Failure		401			{object}	pkg.ResponseError
//	@Failure		403			{object}	pkg.ResponseError
//	@Failure		429			{object}	pkg.ResponseError
//	@Router			/v1/auth/login [post]
func (ah *AuthHandler) Login(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.auth.login")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	result, err := ah.service.Login(ctx, p.(*model.LoginInput))
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to sign in", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, result)
}

// Refresh rotates a refresh token.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token for a new token pair. The presented token cannot be used again.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		model.RefreshInput	true	"Refresh token"
//	@Success		200		{object}	model.TokenPair
//	@Failure		401		{object}	pkg.ResponseError
//	@Router			/v1/auth/refresh [post]
func (ah *AuthHandler) Refresh(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.auth.refresh")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	tokens, err := ah.service.Refresh(ctx, p.(*model.RefreshInput).RefreshToken)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Failed to refresh tokens", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, tokens)
}

// Logout revokes a refresh token.
//
//	@Summary		Sign out
//	@Description	Revokes the given refresh token
//	@Tags			Auth
//	@Accept			json
//	@Param			token	body	model.RefreshInput	true	"Refresh token"
//	@Success		204
//	@Failure		401	{object}	pkg.ResponseError
//	@Router			/v1/auth/logout [post]
func (ah *AuthHandler) Logout(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.auth.logout")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	if err := ah.service.Logout(ctx, p.(*model.RefreshInput).RefreshToken); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to sign out", err)

		return http.WithError(c, err)
	}

	return commonsHttp.NoContent(c)
}

// Me returns the authenticated user.
//
//	@Summary		Current user
//	@Description	Returns the account of the access token's subject
//	@Tags			Auth
//	@Produce		json
//	@Param			Authorization	header		string	true	"The authorization token in the 'Bearer	access_token' format."
//	@Success		200				{object}	user.User
//	@Failure		401				{object}	pkg.ResponseError
//	@Router			/v1/auth/me [get]
func (ah *AuthHandler) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()

	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "handler.auth.me")
	defer span.End()

	principal := principalFrom(c)

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.user_id", principal.UserID.String()),
	)

	account, err := ah.service.Me(ctx, principal.UserID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to load current user", err)

		return http.WithError(c, err)
	}

	return commonsHttp.OK(c, account)
}
