//go:build integration

// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package notification

import (
	"context"
	"testing"
	"time"

	"github.com/dlt-talenthub/talenthub/internal/testutil/containers"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libMongo "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNotificationRepository_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	mongoC, err := containers.StartMongoDB(ctx, "")
	require.NoError(t, err)

	t.Cleanup(func() { _ = mongoC.Terminate(context.Background()) })

	repo, err := NewNotificationMongoDBRepository(&libMongo.MongoConnection{
		ConnectionStringSource: mongoC.ConnectionString,
		Database:               containers.MongoDatabase,
		Logger:                 &log.NoneLogger{},
		MaxPoolSize:            5,
	})
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndexes(ctx))

	recipient := uuid.New()

	newNotification := func(t *testing.T, title string) *Notification {
		t.Helper()

		n, err := NewNotification(uuid.New(), recipient, "application.submitted", title, "body", "/applications/1")
		require.NoError(t, err)

		return n
	}

	first := newNotification(t, "First")
	_, err = repo.Create(ctx, first)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newNotification(t, "Second"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, &Notification{ID: uuid.New(), RecipientID: uuid.New(), Type: "job.closed", Title: "Other", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	t.Run("redelivered notification is reported as already delivered", func(t *testing.T) {
		_, err := repo.Create(ctx, first)
		assert.ErrorIs(t, err, ErrAlreadyDelivered)
	})

	t.Run("list is scoped to the recipient", func(t *testing.T) {
		items, total, err := repo.FindList(ctx, recipient, http.QueryHeader{Page: 1, Limit: 10})
		require.NoError(t, err)

		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
	})

	t.Run("mark read keeps the first read time", func(t *testing.T) {
		read, err := repo.MarkRead(ctx, first.ID, recipient)
		require.NoError(t, err)
		require.NotNil(t, read.ReadAt)
		assert.True(t, read.Read)

		again, err := repo.MarkRead(ctx, first.ID, recipient)
		require.NoError(t, err)
		assert.Equal(t, read.ReadAt.Unix(), again.ReadAt.Unix())

		unread, total, err := repo.FindList(ctx, recipient, http.QueryHeader{Page: 1, Limit: 10, Unread: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Second", unread[0].Title)
	})

	t.Run("mark read of another recipient's notification", func(t *testing.T) {
		_, err := repo.MarkRead(ctx, first.ID, uuid.New())
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})

	t.Run("mark all read", func(t *testing.T) {
		changed, err := repo.MarkAllRead(ctx, recipient)
		require.NoError(t, err)
		assert.Equal(t, int64(1), changed)

		changed, err = repo.MarkAllRead(ctx, recipient)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})
}
