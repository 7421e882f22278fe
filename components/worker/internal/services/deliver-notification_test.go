// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/metrics"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/notification"
	"github.com/dlt-talenthub/talenthub/pkg/pongo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUseCase(t *testing.T) (*UseCase, *notification.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := notification.NewMockRepository(ctrl)

	renderer, err := pongo.NewNotificationRenderer(nil)
	require.NoError(t, err)

	return &UseCase{
		NotificationRepo: repo,
		Renderer:         renderer,
		Metrics:          metrics.NoopMetrics(),
	}, repo
}

func mustEvent(t *testing.T, event model.NotificationEvent) []byte {
	t.Helper()

	body, err := json.Marshal(event)
	require.NoError(t, err)

	return body
}

func TestUseCase_DeliverNotification(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUseCase(t)

	occurredAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	event := model.NotificationEvent{
		ID:          uuid.New(),
		Type:        constant.EventApplicationSubmitted,
		RecipientID: uuid.New(),
		Data:        map[string]string{"jobTitle": "Go Engineer", "talentName": "Ada", "applicationId": "a1"},
		OccurredAt:  occurredAt,
	}

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *notification.Notification) (*notification.Notification, error) {
			assert.Equal(t, event.ID, n.ID)
			assert.Equal(t, event.RecipientID, n.RecipientID)
			assert.Equal(t, constant.EventApplicationSubmitted, n.Type)
			assert.Equal(t, "New application for Go Engineer", n.Title)
			assert.Equal(t, "Ada applied to Go Engineer.", n.Body)
			assert.Equal(t, "/applications/a1", n.Link)
			assert.False(t, n.Read)
			assert.Equal(t, occurredAt, n.CreatedAt)

			return n, nil
		})

	require.NoError(t, uc.DeliverNotification(context.Background(), mustEvent(t, event)))
}

func TestUseCase_DeliverNotification_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     func(t *testing.T) []byte
		wantCode string
	}{
		{
			name:     "malformed json",
			body:     func(*testing.T) []byte { return []byte(`{"id":`) },
			wantCode: constant.ErrBadRequest.Error(),
		},
		{
			name: "missing recipient",
			body: func(t *testing.T) []byte {
				return mustEvent(t, model.NotificationEvent{ID: uuid.New(), Type: constant.EventJobClosed})
			},
			wantCode: constant.ErrMissingRequiredFields.Error(),
		},
		{
			name: "missing type",
			body: func(t *testing.T) []byte {
				return mustEvent(t, model.NotificationEvent{ID: uuid.New(), RecipientID: uuid.New()})
			},
			wantCode: constant.ErrMissingRequiredFields.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc, _ := newTestUseCase(t)

			err := uc.DeliverNotification(context.Background(), tt.body(t))
			require.Error(t, err)

			var validationErr pkg.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantCode, validationErr.Code)
		})
	}
}

func TestUseCase_DeliverNotification_UnknownTypeIsDropped(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase(t)

	body := mustEvent(t, model.NotificationEvent{ID: uuid.New(), RecipientID: uuid.New(), Type: "talent.birthday"})

	assert.NoError(t, uc.DeliverNotification(context.Background(), body))
}

func TestUseCase_DeliverNotification_Redelivery(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUseCase(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, notification.ErrAlreadyDelivered)

	body := mustEvent(t, model.NotificationEvent{
		ID:          uuid.New(),
		RecipientID: uuid.New(),
		Type:        constant.EventJobClosed,
		Data:        map[string]string{"jobTitle": "SRE", "jobId": "j1"},
	})

	assert.NoError(t, uc.DeliverNotification(context.Background(), body))
}

func TestUseCase_DeliverNotification_StorageFailureIsReturned(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUseCase(t)

	storeErr := errors.New("server selection timeout")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	body := mustEvent(t, model.NotificationEvent{
		ID:          uuid.New(),
		RecipientID: uuid.New(),
		Type:        constant.EventApplicationStatusChanged,
		Data:        map[string]string{"jobTitle": "SRE", "status": "accepted", "applicationId": "a9"},
	})

	err := uc.DeliverNotification(context.Background(), body)
	assert.ErrorIs(t, err, storeErr)
}
