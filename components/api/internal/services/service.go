// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"errors"

	"github.com/dlt-talenthub/talenthub/components/api/internal/adapters/redis"
	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/metrics"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/application"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/job"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/notification"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/user"
	"github.com/dlt-talenthub/talenthub/pkg/rabbitmq"
	"github.com/dlt-talenthub/talenthub/pkg/security"
	"github.com/dlt-talenthub/talenthub/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// UseCase is a struct to implement the services methods
type UseCase struct {
	// UserRepo provides an abstraction on top of the user collection.
	UserRepo user.Repository

	// JobRepo provides an abstraction on top of the job collection.
	JobRepo job.Repository

	// ApplicationRepo provides an abstraction on top of the application collection.
	ApplicationRepo application.Repository

	// NotificationRepo provides an abstraction on top of the notification collection.
	NotificationRepo notification.Repository

	// TokenRepo tracks live refresh tokens.
	TokenRepo redis.TokenRepository

	// Tokens signs and verifies access and refresh tokens.
	Tokens *security.TokenManager

	// Passwords hashes and verifies account passwords.
	Passwords *security.PasswordHasher

	// Producer publishes notification events.
	Producer rabbitmq.ProducerRepository

	// Storage holds uploaded resumes, avatars and logos.
	Storage storage.ObjectStorage

	Metrics *metrics.Metrics

	NotificationExchange   string
	NotificationRoutingKey string

	// UploadMaxBytes caps a single uploaded file.
	UploadMaxBytes int64
}

// notFound maps mongo.ErrNoDocuments to the entity-not-found business error and returns other errors unchanged.
func notFound(err error, entityType string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pkg.ValidateBusinessError(constant.ErrEntityNotFound, entityType)
	}

	return err
}

// requireOwner allows the owner of a resource or an administrator.
func requireOwner(principal *pkg.Principal, ownerID uuid.UUID, entityType string) error {
	if principal == nil {
		return pkg.ValidateBusinessError(constant.ErrMissingAuthorization, entityType)
	}

	if principal.HasRole(constant.RoleAdmin) || principal.UserID == ownerID {
		return nil
	}

	return pkg.ValidateBusinessError(constant.ErrNotResourceOwner, entityType)
}
