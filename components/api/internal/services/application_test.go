// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/application"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"
)

func testApplication(t *testing.T, jobID, talentID, recruiterID uuid.UUID, status string) *application.Application {
	t.Helper()

	a, err := application.NewApplication(uuid.New(), jobID, talentID, recruiterID, "Go Engineer", "Ada", "", "")
	require.NoError(t, err)

	a.Status = status

	return a
}

func TestCreateApplication(t *testing.T) {
	talentPrincipal := principalFor(constant.RoleTalent)

	talent := testUser(t, constant.RoleTalent, "pw-123456")
	talent.ID = talentPrincipal.UserID
	talent.ResumeKey = "resumes/" + talent.ID.String() + "/cv.pdf"

	recruiterID := uuid.New()

	tests := []struct {
		name      string
		input     model.CreateApplicationInput
		jobStatus string
		mockSetup func(d *testDeps, jobID uuid.UUID)
		errCode   string
	}{
		{
			name:      "Success - profile resume used and recruiter notified",
			input:     model.CreateApplicationInput{CoverLetter: "Hire me"},
			jobStatus: constant.JobStatusOpen,
			mockSetup: func(d *testDeps, jobID uuid.UUID) {
				d.users.EXPECT().FindByID(gomock.Any(), talent.ID).Return(talent, nil)
				d.applications.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *application.Application) (*application.Application, error) {
						assert.Equal(t, talent.ResumeKey, a.ResumeKey)
						assert.Equal(t, constant.ApplicationPending, a.Status)
						assert.Equal(t, recruiterID, a.RecruiterID)

						return a, nil
					})
				d.producer.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, event model.NotificationEvent) error {
						assert.Equal(t, constant.EventApplicationSubmitted, event.Type)
						assert.Equal(t, recruiterID, event.RecipientID)
						assert.Equal(t, jobID.String(), event.Data["jobId"])

						return nil
					})
			},
		},
		{
			name:      "Error - job closed",
			jobStatus: constant.JobStatusClosed,
			mockSetup: func(_ *testDeps, _ uuid.UUID) {},
			errCode:   constant.ErrJobNotOpen.Error(),
		},
		{
			name:      "Error - resume of another talent",
			input:     model.CreateApplicationInput{ResumeKey: "resumes/" + uuid.NewString() + "/cv.pdf"},
			jobStatus: constant.JobStatusOpen,
			mockSetup: func(d *testDeps, _ uuid.UUID) {
				d.users.EXPECT().FindByID(gomock.Any(), talent.ID).Return(talent, nil)
			},
			errCode: constant.ErrNotResourceOwner.Error(),
		},
		{
			name:      "Error - duplicate application",
			jobStatus: constant.JobStatusOpen,
			mockSetup: func(d *testDeps, _ uuid.UUID) {
				d.users.EXPECT().FindByID(gomock.Any(), talent.ID).Return(talent, nil)
				d.applications.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, pkg.ValidateBusinessError(constant.ErrDuplicateApplication, constant.MongoCollectionApplication))
			},
			errCode: constant.ErrDuplicateApplication.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestUseCase(t)

			posting := testJob(t, recruiterID)
			posting.Status = tt.jobStatus

			d.jobs.EXPECT().FindByID(gomock.Any(), posting.ID).Return(posting, nil)
			tt.mockSetup(d, posting.ID)

			created, err := d.uc.CreateApplication(context.Background(), talentPrincipal, posting.ID, &tt.input)

			if tt.errCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errCode, errorCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, posting.ID, created.JobID)
		})
	}
}

func TestCreateApplication_PublishFailureDoesNotFailRequest(t *testing.T) {
	talentPrincipal := principalFor(constant.RoleTalent)
	talent := testUser(t, constant.RoleTalent, "pw-123456")
	talent.ID = talentPrincipal.UserID

	posting := testJob(t, uuid.New())

	d := newTestUseCase(t)
	d.jobs.EXPECT().FindByID(gomock.Any(), posting.ID).Return(posting, nil)
	d.users.EXPECT().FindByID(gomock.Any(), talent.ID).Return(talent, nil)
	d.applications.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *application.Application) (*application.Application, error) { return a, nil })
	d.producer.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

	_, err := d.uc.CreateApplication(context.Background(), talentPrincipal, posting.ID, &model.CreateApplicationInput{})
	assert.NoError(t, err)
}

func TestGetAllApplications_ScopedByRole(t *testing.T) {
	tests := []struct {
		role      string
		wantScope func(p *pkg.Principal) application.Scope
	}{
		{role: constant.RoleAdmin, wantScope: func(_ *pkg.Principal) application.Scope { return application.Scope{} }},
		{role: constant.RoleRecruiter, wantScope: func(p *pkg.Principal) application.Scope { return application.Scope{RecruiterID: p.UserID} }},
		{role: constant.RoleTalent, wantScope: func(p *pkg.Principal) application.Scope { return application.Scope{TalentID: p.UserID} }},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			d := newTestUseCase(t)
			principal := principalFor(tt.role)

			d.applications.EXPECT().FindList(gomock.Any(), gomock.Any(), tt.wantScope(principal)).
				Return([]*application.Application{}, int64(0), nil)

			_, _, err := d.uc.GetAllApplications(context.Background(), principal, http.QueryHeader{Page: 1, Limit: 10})
			require.NoError(t, err)
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		d := newTestUseCase(t)

		_, _, err := d.uc.GetAllApplications(context.Background(), nil, http.QueryHeader{})
		assert.Equal(t, constant.ErrMissingAuthorization.Error(), errorCode(err))
	})
}

func TestGetJobApplications_RequiresJobOwner(t *testing.T) {
	owner := principalFor(constant.RoleRecruiter)
	posting := testJob(t, owner.UserID)

	d := newTestUseCase(t)
	d.jobs.EXPECT().FindByID(gomock.Any(), posting.ID).Return(posting, nil).Times(2)
	d.applications.EXPECT().FindList(gomock.Any(), gomock.Any(), application.Scope{}).
		DoAndReturn(func(_ context.Context, filters http.QueryHeader, _ application.Scope) ([]*application.Application, int64, error) {
			assert.Equal(t, posting.ID, filters.JobID)

			return []*application.Application{}, 0, nil
		})

	_, _, err := d.uc.GetJobApplications(context.Background(), owner, posting.ID, http.QueryHeader{Page: 1, Limit: 10})
	require.NoError(t, err)

	_, _, err = d.uc.GetJobApplications(context.Background(), principalFor(constant.RoleRecruiter), posting.ID, http.QueryHeader{})
	assert.Equal(t, constant.ErrNotResourceOwner.Error(), errorCode(err))
}

func TestGetApplicationByID_Visibility(t *testing.T) {
	talent := principalFor(constant.RoleTalent)
	recruiter := principalFor(constant.RoleRecruiter)
	candidate := testApplication(t, uuid.New(), talent.UserID, recruiter.UserID, constant.ApplicationPending)

	tests := []struct {
		name    string
		caller  *pkg.Principal
		allowed bool
	}{
		{name: "talent owner", caller: talent, allowed: true},
		{name: "job recruiter", caller: recruiter, allowed: true},
		{name: "admin", caller: principalFor(constant.RoleAdmin), allowed: true},
		{name: "other talent", caller: principalFor(constant.RoleTalent)},
		{name: "other recruiter", caller: principalFor(constant.RoleRecruiter)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestUseCase(t)
			d.applications.EXPECT().FindByID(gomock.Any(), candidate.ID).Return(candidate, nil)

			got, err := d.uc.GetApplicationByID(context.Background(), tt.caller, candidate.ID)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, candidate.ID, got.ID)

				return
			}

			assert.Equal(t, constant.ErrNotResourceOwner.Error(), errorCode(err))
		})
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	recruiter := principalFor(constant.RoleRecruiter)
	talentID := uuid.New()

	tests := []struct {
		name      string
		from      string
		to        string
		caller    *pkg.Principal
		mockSetup func(d *testDeps, a *application.Application)
		errCode   string
	}{
		{
			name:   "Success - pending to shortlisted notifies talent",
			from:   constant.ApplicationPending,
			to:     constant.ApplicationShortlisted,
			caller: recruiter,
			mockSetup: func(d *testDeps, a *application.Application) {
				updated := *a
				updated.Status = constant.ApplicationShortlisted

				d.applications.EXPECT().UpdateStatus(gomock.Any(), a.ID, constant.ApplicationPending, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, _ string, change application.StatusChange) (*application.Application, error) {
						assert.Equal(t, constant.ApplicationShortlisted, change.Status)
						assert.Equal(t, recruiter.UserID, change.ChangedBy)
						assert.Equal(t, "great fit", change.Note)

						return &updated, nil
					})
				d.producer.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, event model.NotificationEvent) error {
						assert.Equal(t, constant.EventApplicationStatusChanged, event.Type)
						assert.Equal(t, talentID, event.RecipientID)
						assert.Equal(t, constant.ApplicationShortlisted, event.Data["status"])

						return nil
					})
			},
		},
		{
			name:      "Error - terminal status cannot change",
			from:      constant.ApplicationAccepted,
			to:        constant.ApplicationRejected,
			caller:    recruiter,
			mockSetup: func(_ *testDeps, _ *application.Application) {},
			errCode:   constant.ErrInvalidStatusTransition.Error(),
		},
		{
			name:      "Error - same status",
			from:      constant.ApplicationReviewed,
			to:        constant.ApplicationReviewed,
			caller:    recruiter,
			mockSetup: func(_ *testDeps, _ *application.Application) {},
			errCode:   constant.ErrInvalidStatusTransition.Error(),
		},
		{
			name:   "Error - concurrent change lost the compare and set",
			from:   constant.ApplicationPending,
			to:     constant.ApplicationRejected,
			caller: recruiter,
			mockSetup: func(d *testDeps, a *application.Application) {
				d.applications.EXPECT().UpdateStatus(gomock.Any(), a.ID, constant.ApplicationPending, gomock.Any()).
					Return(nil, mongo.ErrNoDocuments)
			},
			errCode: constant.ErrInvalidStatusTransition.Error(),
		},
		{
			name:      "Error - not the job owner",
			from:      constant.ApplicationPending,
			to:        constant.ApplicationReviewed,
			caller:    principalFor(constant.RoleRecruiter),
			mockSetup: func(_ *testDeps, _ *application.Application) {},
			errCode:   constant.ErrNotResourceOwner.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestUseCase(t)

			candidate := testApplication(t, uuid.New(), talentID, recruiter.UserID, tt.from)
			d.applications.EXPECT().FindByID(gomock.Any(), candidate.ID).Return(candidate, nil)
			tt.mockSetup(d, candidate)

			input := &model.UpdateApplicationStatusInput{Status: tt.to, Note: "great fit"}

			updated, err := d.uc.UpdateApplicationStatus(context.Background(), tt.caller, candidate.ID, input)

			if tt.errCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errCode, errorCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, updated.Status)
		})
	}
}

func TestWithdrawApplication(t *testing.T) {
	talent := principalFor(constant.RoleTalent)

	tests := []struct {
		name      string
		status    string
		caller    *pkg.Principal
		mockSetup func(d *testDeps, a *application.Application)
		errCode   string
	}{
		{
			name:   "Success - pending",
			status: constant.ApplicationPending,
			caller: talent,
			mockSetup: func(d *testDeps, a *application.Application) {
				d.applications.EXPECT().Delete(gomock.Any(), a.ID, application.WithdrawableStatuses()).Return(nil)
			},
		},
		{
			name:      "Error - shortlisted",
			status:    constant.ApplicationShortlisted,
			caller:    talent,
			mockSetup: func(_ *testDeps, _ *application.Application) {},
			errCode:   constant.ErrWithdrawNotAllowed.Error(),
		},
		{
			name:   "Error - reviewed concurrently moved on",
			status: constant.ApplicationReviewed,
			caller: talent,
			mockSetup: func(d *testDeps, a *application.Application) {
				d.applications.EXPECT().Delete(gomock.Any(), a.ID, gomock.Any()).Return(mongo.ErrNoDocuments)
			},
			errCode: constant.ErrWithdrawNotAllowed.Error(),
		},
		{
			name:      "Error - admin cannot withdraw for the talent",
			status:    constant.ApplicationPending,
			caller:    principalFor(constant.RoleAdmin),
			mockSetup: func(_ *testDeps, _ *application.Application) {},
			errCode:   constant.ErrNotResourceOwner.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestUseCase(t)

			candidate := testApplication(t, uuid.New(), talent.UserID, uuid.New(), tt.status)
			d.applications.EXPECT().FindByID(gomock.Any(), candidate.ID).Return(candidate, nil)
			tt.mockSetup(d, candidate)

			err := d.uc.WithdrawApplication(context.Background(), tt.caller, candidate.ID)

			if tt.errCode != "" {
				assert.Equal(t, tt.errCode, errorCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
