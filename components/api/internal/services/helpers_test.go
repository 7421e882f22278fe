// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"testing"
	"time"

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
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testDeps struct {
	uc            *UseCase
	users         *user.MockRepository
	jobs          *job.MockRepository
	applications  *application.MockRepository
	notifications *notification.MockRepository
	tokens        *redis.MockTokenRepository
	producer      *rabbitmq.MockProducerRepository
	storage       *storage.MockObjectStorage
}

func newTestUseCase(t *testing.T) *testDeps {
	t.Helper()

	ctrl := gomock.NewController(t)

	tokens, err := security.NewTokenManager(security.TokenManagerConfig{
		Secret:     testSecret,
		Issuer:     "talenthub-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	d := &testDeps{
		users:         user.NewMockRepository(ctrl),
		jobs:          job.NewMockRepository(ctrl),
		applications:  application.NewMockRepository(ctrl),
		notifications: notification.NewMockRepository(ctrl),
		tokens:        redis.NewMockTokenRepository(ctrl),
		producer:      rabbitmq.NewMockProducerRepository(ctrl),
		storage:       storage.NewMockObjectStorage(ctrl),
	}

	d.uc = &UseCase{
		UserRepo:               d.users,
		JobRepo:                d.jobs,
		ApplicationRepo:        d.applications,
		NotificationRepo:       d.notifications,
		TokenRepo:              d.tokens,
		Tokens:                 tokens,
		Passwords:              security.NewPasswordHasher(bcrypt.MinCost),
		Producer:               d.producer,
		Storage:                d.storage,
		Metrics:                metrics.NoopMetrics(),
		NotificationExchange:   "talenthub.events",
		NotificationRoutingKey: "notification",
		UploadMaxBytes:         constant.DefaultUploadMaxBytes,
	}

	return d
}

func principalFor(role string) *pkg.Principal {
	return &pkg.Principal{UserID: uuid.New(), Email: role + "@example.com", Role: role}
}

func testUser(t *testing.T, role, password string) *user.User {
	t.Helper()

	hash, err := security.NewPasswordHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)

	u, err := user.NewUser(uuid.New(), "Ada Lovelace", "ada@example.com", hash, role, "DLT")
	require.NoError(t, err)

	return u
}

func testJob(t *testing.T, recruiterID uuid.UUID) *job.Job {
	t.Helper()

	j, err := job.NewJob(uuid.New(), recruiterID, "Go Engineer", "Build services", "engineering", "Lisbon", constant.EmploymentFullTime)
	require.NoError(t, err)

	return j
}
