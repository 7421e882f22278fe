// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package application

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
)

var (
	openStatuses     = []string{constant.ApplicationPending, constant.ApplicationReviewed, constant.ApplicationShortlisted}
	reviewStatuses   = []string{constant.ApplicationReviewed, constant.ApplicationShortlisted, constant.ApplicationRejected, constant.ApplicationAccepted}
	withdrawStatuses = []string{constant.ApplicationPending, constant.ApplicationReviewed}
	terminalStatuses = []string{constant.ApplicationRejected, constant.ApplicationAccepted}
)

// Application is a talent's application to a job.
type Application struct {
	ID          uuid.UUID      `json:"id" example:"00000000-0000-0000-0000-000000000000"`
	JobID       uuid.UUID      `json:"jobId" example:"00000000-0000-0000-0000-000000000000"`
	JobTitle    string         `json:"jobTitle" example:"Senior Go Engineer"`
	TalentID    uuid.UUID      `json:"talentId" example:"00000000-0000-0000-0000-000000000000"`
	TalentName  string         `json:"talentName" example:"Ada Lovelace"`
	RecruiterID uuid.UUID      `json:"recruiterId" example:"00000000-0000-0000-0000-000000000000"`
	CoverLetter string         `json:"coverLetter,omitempty"`
	ResumeKey   string         `json:"resumeKey,omitempty"`
	Status      string         `json:"status" example:"pending"`
	History     []StatusChange `json:"history"`
	CreatedAt   time.Time      `json:"createdAt" example:"2021-01-01T00:00:00Z"`
	UpdatedAt   time.Time      `json:"updatedAt" example:"2021-01-01T00:00:00Z"`
} // @name Application

// StatusChange records one review decision.
type StatusChange struct {
	Status    string    `json:"status" bson:"status"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	ChangedBy uuid.UUID `json:"changedBy" bson:"changed_by"`
	ChangedAt time.Time `json:"changedAt" bson:"changed_at"`
} // @name ApplicationStatusChange

// NewApplication creates a pending application.
func NewApplication(id, jobID, talentID, recruiterID uuid.UUID, jobTitle, talentName, coverLetter, resumeKey string) (*Application, error) {
	if id == uuid.Nil || jobID == uuid.Nil || talentID == uuid.Nil || recruiterID == uuid.Nil {
		return nil, fmt.Errorf("application ids must not be nil: %w", constant.ErrMissingRequiredFields)
	}

	now := time.Now().UTC()

	return &Application{
		ID:          id,
		JobID:       jobID,
		JobTitle:    jobTitle,
		TalentID:    talentID,
		TalentName:  talentName,
		RecruiterID: recruiterID,
		CoverLetter: strings.TrimSpace(coverLetter),
		ResumeKey:   strings.TrimSpace(resumeKey),
		Status:      constant.ApplicationPending,
		History: []StatusChange{{
			Status:    constant.ApplicationPending,
			ChangedBy: talentID,
			ChangedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanTransition reports whether a reviewer may move an application from one status to another.
// Only pending, reviewed and shortlisted applications can change, and never to their current status.
func CanTransition(from, to string) bool {
	return slices.Contains(openStatuses, from) && slices.Contains(reviewStatuses, to) && from != to
}

// CanWithdraw reports whether the talent may still withdraw an application in status.
func CanWithdraw(status string) bool {
	return slices.Contains(withdrawStatuses, status)
}

// IsTerminal reports whether status is a final decision.
func IsTerminal(status string) bool {
	return slices.Contains(terminalStatuses, status)
}

// WithdrawableStatuses returns the statuses from which a talent can withdraw.
func WithdrawableStatuses() []string {
	return slices.Clone(withdrawStatuses)
}

// OpenStatuses returns the statuses of applications still under consideration.
func OpenStatuses() []string {
	return slices.Clone(openStatuses)
}

// Scope restricts which applications a caller can list. Zero ids mean no restriction.
type Scope struct {
	TalentID    uuid.UUID
	RecruiterID uuid.UUID
}

// ApplicationMongoDBModel is the document stored in the application collection.
type ApplicationMongoDBModel struct {
	ID          uuid.UUID      `bson:"_id"`
	JobID       uuid.UUID      `bson:"job_id"`
	JobTitle    string         `bson:"job_title"`
	TalentID    uuid.UUID      `bson:"talent_id"`
	TalentName  string         `bson:"talent_name"`
	RecruiterID uuid.UUID      `bson:"recruiter_id"`
	CoverLetter string         `bson:"cover_letter,omitempty"`
	ResumeKey   string         `bson:"resume_key,omitempty"`
	Status      string         `bson:"status"`
	History     []StatusChange `bson:"history"`
	CreatedAt   time.Time      `bson:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at"`
}

// ToEntity converts the document to an Application.
func (m *ApplicationMongoDBModel) ToEntity() *Application {
	history := m.History
	if history == nil {
		history = []StatusChange{}
	}

	return &Application{
		ID:          m.ID,
		JobID:       m.JobID,
		JobTitle:    m.JobTitle,
		TalentID:    m.TalentID,
		TalentName:  m.TalentName,
		RecruiterID: m.RecruiterID,
		CoverLetter: m.CoverLetter,
		ResumeKey:   m.ResumeKey,
		Status:      m.Status,
		History:     history,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromEntity fills the document from an Application.
func (m *ApplicationMongoDBModel) FromEntity(a *Application) {
	m.ID = a.ID
	m.JobID = a.JobID
	m.JobTitle = a.JobTitle
	m.TalentID = a.TalentID
	m.TalentName = a.TalentName
	m.RecruiterID = a.RecruiterID
	m.CoverLetter = a.CoverLetter
	m.ResumeKey = a.ResumeKey
	m.Status = a.Status
	m.History = a.History
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}
