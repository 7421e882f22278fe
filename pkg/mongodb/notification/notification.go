// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
)

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID          uuid.UUID  `json:"id" example:"00000000-0000-0000-0000-000000000000"`
	RecipientID uuid.UUID  `json:"recipientId" example:"00000000-0000-0000-0000-000000000000"`
	Type        string     `json:"type" example:"application.submitted"`
	Title       string     `json:"title" example:"New application"`
	Body        string     `json:"body" example:"Ada applied to Senior Go Engineer"`
	Link        string     `json:"link,omitempty" example:"/applications/00000000-0000-0000-0000-000000000000"`
	Read        bool       `json:"read" example:"false"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" example:"2021-01-01T00:00:00Z"`
} // @name Notification

// NewNotification creates an unread notification.
func NewNotification(id, recipientID uuid.UUID, eventType, title, body, link string) (*Notification, error) {
	if id == uuid.Nil || recipientID == uuid.Nil {
		return nil, fmt.Errorf("notification ids must not be nil: %w", constant.ErrMissingRequiredFields)
	}

	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(eventType) == "" {
		return nil, fmt.Errorf("notification title and type are required: %w", constant.ErrMissingRequiredFields)
	}

	return &Notification{
		ID:          id,
		RecipientID: recipientID,
		Type:        eventType,
		Title:       title,
		Body:        strings.TrimSpace(body),
		Link:        link,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NotificationMongoDBModel is the document stored in the notification collection.
type NotificationMongoDBModel struct {
	ID          uuid.UUID  `bson:"_id"`
	RecipientID uuid.UUID  `bson:"recipient_id"`
	Type        string     `bson:"type"`
	Title       string     `bson:"title"`
	Body        string     `bson:"body"`
	Link        string     `bson:"link,omitempty"`
	Read        bool       `bson:"read"`
	ReadAt      *time.Time `bson:"read_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
}

// ToEntity converts the document to a Notification.
func (m *NotificationMongoDBModel) ToEntity() *Notification {
	return &Notification{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		Type:        m.Type,
		Title:       m.Title,
		Body:        m.Body,
		Link:        m.Link,
		Read:        m.Read,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

// FromEntity fills the document from a Notification.
func (m *NotificationMongoDBModel) FromEntity(n *Notification) {
	m.ID = n.ID
	m.RecipientID = n.RecipientID
	m.Type = n.Type
	m.Title = n.Title
	m.Body = n.Body
	m.Link = n.Link
	m.Read = n.Read
	m.ReadAt = n.ReadAt
	m.CreatedAt = n.CreatedAt
}
