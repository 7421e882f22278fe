// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/user"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
)

// AuthResult is the body returned by register and login.
type AuthResult struct {
	User   *user.User      `json:"user"`
	Tokens model.TokenPair `json:"tokens"`
} // @name AuthResult

// Register creates a talent or recruiter account and signs the new user in.
func (uc *UseCase) Register(ctx context.Context, input *model.RegisterInput) (*AuthResult, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.auth.register")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.role", input.Role),
	)

	if input.Role != constant.RoleTalent && input.Role != constant.RoleRecruiter {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidRole, constant.MongoCollectionUser)
	}

	hash, err := uc.Passwords.Hash(input.Password)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to hash password", err)

		return nil, pkg.ValidateInternalError(err, constant.MongoCollectionUser)
	}

	account, err := user.NewUser(uuid.New(), input.Name, input.Email, hash, input.Role, input.Company)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid user", err)

		return nil, pkg.ValidateBusinessError(constant.ErrBadRequest, constant.MongoCollectionUser, err.Error())
	}

	created, err := uc.UserRepo.Create(ctx, account)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to create user", err)

		logger.Errorf("Failed to register user: %v", err)

		return nil, err
	}

	tokens, err := uc.issueTokens(ctx, created)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to issue tokens", err)

		return nil, err
	}

	logger.Infof("Registered %s %s", created.Role, created.ID)

	return &AuthResult{User: created, Tokens: tokens}, nil
}

// Login verifies credentials and issues a token pair. Unknown emails and wrong passwords are indistinguishable.
func (uc *UseCase) Login(ctx context.Context, input *model.LoginInput) (*AuthResult, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.auth.login")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	account, err := uc.UserRepo.FindByEmail(ctx, pkg.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Unknown email", err)

			return nil, pkg.ValidateBusinessError(constant.ErrInvalidCredentials, constant.MongoCollectionUser)
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to find user by email", err)

		return nil, err
	}

	if err := uc.Passwords.Compare(account.PasswordHash, input.Password); err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Password mismatch", err)

		logger.Warnf("Failed login attempt for user %s", account.ID)

		return nil, pkg.ValidateBusinessError(constant.ErrInvalidCredentials, constant.MongoCollectionUser)
	}

	if !account.IsActive() {
		return nil, pkg.ValidateBusinessError(constant.ErrAccountInactive, constant.MongoCollectionUser)
	}

	tokens, err := uc.issueTokens(ctx, account)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to issue tokens", err)

		return nil, err
	}

	return &AuthResult{User: account, Tokens: tokens}, nil
}

// Refresh rotates a refresh token. The presented token is revoked before a new pair is issued,
// so replaying it fails.
func (uc *UseCase) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.auth.refresh")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	claims, err := uc.Tokens.ParseRefresh(refreshToken)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid refresh token", err)

		return nil, pkg.ValidateBusinessError(constant.ErrInvalidRefreshToken, constant.MongoCollectionUser)
	}

	revoked, err := uc.TokenRepo.Revoke(ctx, claims.ID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to revoke refresh token", err)

		return nil, err
	}

	if !revoked {
		logger.Warnf("Refresh token %s reused or expired", claims.ID)

		return nil, pkg.ValidateBusinessError(constant.ErrInvalidRefreshToken, constant.MongoCollectionUser)
	}

	userID, _ := claims.UserID()

	account, err := uc.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pkg.ValidateBusinessError(constant.ErrInvalidRefreshToken, constant.MongoCollectionUser)
		}

		libOpentelemetry.HandleSpanError(&span, "Failed to find user", err)

		return nil, err
	}

	if !account.IsActive() {
		return nil, pkg.ValidateBusinessError(constant.ErrAccountInactive, constant.MongoCollectionUser)
	}

	tokens, err := uc.issueTokens(ctx, account)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to issue tokens", err)

		return nil, err
	}

	return &tokens, nil
}

// Logout revokes a refresh token. Unknown or already revoked tokens are not an error.
func (uc *UseCase) Logout(ctx context.Context, refreshToken string) error {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.auth.logout")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	claims, err := uc.Tokens.ParseRefresh(refreshToken)
	if err != nil {
		libOpentelemetry.HandleSpanBusinessErrorEvent(&span, "Invalid refresh token", err)

		return pkg.ValidateBusinessError(constant.ErrInvalidRefreshToken, constant.MongoCollectionUser)
	}

	if _, err := uc.TokenRepo.Revoke(ctx, claims.ID); err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to revoke refresh token", err)

		return err
	}

	return nil
}

// Me returns the account of the authenticated caller.
func (uc *UseCase) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.auth.me")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.user_id", userID.String()),
	)

	account, err := uc.UserRepo.FindByID(ctx, userID)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to find user", err)

		return nil, notFound(err, constant.MongoCollectionUser)
	}

	return account, nil
}

func (uc *UseCase) issueTokens(ctx context.Context, account *user.User) (model.TokenPair, error) {
	access, err := uc.Tokens.IssueAccess(account.ID, account.Email, account.Role)
	if err != nil {
		return model.TokenPair{}, pkg.ValidateInternalError(err, constant.MongoCollectionUser)
	}

	refresh, err := uc.Tokens.IssueRefresh(account.ID, account.Email, account.Role)
	if err != nil {
		return model.TokenPair{}, pkg.ValidateInternalError(err, constant.MongoCollectionUser)
	}

	if err := uc.TokenRepo.Save(ctx, refresh.ID, account.ID, uc.Tokens.RefreshTTL()); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  access.Value,
		RefreshToken: refresh.Value,
		TokenType:    "Bearer",
		ExpiresIn:    int64(uc.Tokens.AccessTTL().Seconds()),
	}, nil
}
