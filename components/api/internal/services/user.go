// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/user"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"
	"github.com/dlt-talenthub/talenthub/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel/attribute"
)

// GetAllTalents lists the public profiles of active talents.
func (uc *UseCase) GetAllTalents(ctx context.Context, filters http.QueryHeader) ([]user.Profile, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.talent.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	talents, total, err := uc.UserRepo.FindTalents(ctx, filters)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list talents", err)

		return nil, 0, err
	}

	profiles := make([]user.Profile, 0, len(talents))
	for _, t := range talents {
		profiles = append(profiles, t.PublicProfile())
	}

	uc.Metrics.RecordListRequest(ctx, "talents")

	return profiles, total, nil
}

// GetTalentByID returns the public profile of an active talent.
func (uc *UseCase) GetTalentByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.talent.get_by_id")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.talent_id", id.String()),
	)

	account, err := uc.UserRepo.FindByID(ctx, id)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to get talent", err)

		return nil, notFound(err, constant.MongoCollectionUser)
	}

	if account.Role != constant.RoleTalent || !account.IsActive() {
		return nil, pkg.ValidateBusinessError(constant.ErrEntityNotFound, constant.MongoCollectionUser)
	}

	profile := account.PublicProfile()

	return &profile, nil
}

// UpdateTalentProfile applies a partial update to the caller's talent profile.
// Resume and avatar keys must point at the caller's own uploads.
func (uc *UseCase) UpdateTalentProfile(ctx context.Context, principal *pkg.Principal, input *model.UpdateTalentProfileInput) (*user.User, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.talent.update_profile")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.talent_id", principal.UserID.String()),
	)

	fields := bson.M{}

	for key, value := range map[string]*string{
		"name":       input.Name,
		"headline":   input.Headline,
		"bio":        input.Bio,
		"location":   input.Location,
		"resume_key": input.ResumeKey,
		"avatar_key": input.AvatarKey,
	} {
		if value != nil {
			fields[key] = strings.TrimSpace(*value)
		}
	}

	for _, key := range []*string{input.ResumeKey, input.AvatarKey} {
		if key != nil && *key != "" && !storage.OwnedBy(strings.TrimSpace(*key), principal.UserID) {
			return nil, pkg.ValidateBusinessError(constant.ErrNotResourceOwner, constant.MongoCollectionUser)
		}
	}

	if name, ok := fields["name"].(string); ok && name == "" {
		return nil, pkg.ValidateBusinessError(constant.ErrBadRequest, constant.MongoCollectionUser, "name must not be empty")
	}

	if input.Skills != nil {
		fields["skills"] = normalizeSkills(*input.Skills)
	}

	if input.ExperienceYears != nil {
		fields["experience_years"] = *input.ExperienceYears
	}

	updated, err := uc.UserRepo.Update(ctx, principal.UserID, fields)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update talent profile", err)

		return nil, notFound(err, constant.MongoCollectionUser)
	}

	logger.Infof("Talent %s updated profile", principal.UserID)

	return updated, nil
}

// GetAllUsers lists accounts for administrators.
func (uc *UseCase) GetAllUsers(ctx context.Context, filters http.QueryHeader) ([]*user.User, int64, error) {
	_, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.user.get_all")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.request_id", reqId))

	users, total, err := uc.UserRepo.FindList(ctx, filters)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to list users", err)

		return nil, 0, err
	}

	uc.Metrics.RecordListRequest(ctx, "users")

	return users, total, nil
}

// UpdateUserStatus activates or deactivates an account. Admins cannot deactivate themselves.
func (uc *UseCase) UpdateUserStatus(ctx context.Context, principal *pkg.Principal, id uuid.UUID, status string) (*user.User, error) {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "service.user.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.user_id", id.String()),
		attribute.String("app.request.status", status),
	)

	if status != constant.UserStatusActive && status != constant.UserStatusInactive {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidUserStatus, constant.MongoCollectionUser)
	}

	if id == principal.UserID && status == constant.UserStatusInactive {
		return nil, pkg.ValidateBusinessError(constant.ErrBadRequest, constant.MongoCollectionUser, "administrators cannot deactivate their own account")
	}

	updated, err := uc.UserRepo.Update(ctx, id, bson.M{"status": status})
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to update user status", err)

		return nil, notFound(err, constant.MongoCollectionUser)
	}

	logger.Infof("User %s is now %s", id, status)

	return updated, nil
}
