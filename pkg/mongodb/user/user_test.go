// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package user

import (
	"errors"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name        string
		id          uuid.UUID
		userName    string
		email       string
		hash        string
		role        string
		expectedErr error
	}{
		{name: "valid talent", id: id, userName: "Ada", email: " Ada@Example.com ", hash: "hash", role: constant.RoleTalent},
		{name: "valid recruiter", id: id, userName: "Grace", email: "grace@example.com", hash: "hash", role: constant.RoleRecruiter},
		{name: "nil id", id: uuid.Nil, userName: "Ada", email: "ada@example.com", hash: "hash", role: constant.RoleTalent, expectedErr: constant.ErrMissingRequiredFields},
		{name: "blank name", id: id, userName: "  ", email: "ada@example.com", hash: "hash", role: constant.RoleTalent, expectedErr: constant.ErrMissingRequiredFields},
		{name: "missing hash", id: id, userName: "Ada", email: "ada@example.com", role: constant.RoleTalent, expectedErr: constant.ErrMissingRequiredFields},
		{name: "unknown role", id: id, userName: "Ada", email: "ada@example.com", hash: "hash", role: "owner", expectedErr: constant.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.id, tt.userName, tt.email, tt.hash, tt.role, "")

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
				assert.Nil(t, u)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, constant.UserStatusActive, u.Status)
			assert.True(t, u.IsActive())
			assert.NotNil(t, u.Skills)
			assert.Equal(t, u.CreatedAt, u.UpdatedAt)
		})
	}
}

func TestNewUser_NormalisesEmail(t *testing.T) {
	u, err := NewUser(uuid.New(), "Ada", " Ada@Example.COM ", "hash", constant.RoleTalent, " DLT ")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "DLT", u.Company)
}

func TestUserMongoDBModel_RoundTrip(t *testing.T) {
	u, err := NewUser(uuid.New(), "Ada", "ada@example.com", "hash", constant.RoleTalent, "")
	require.NoError(t, err)

	u.Skills = []string{"go", "mongodb"}
	u.ExperienceYears = 7
	u.ResumeKey = "resumes/x/cv.pdf"

	var record UserMongoDBModel
	record.FromEntity(u)

	assert.Nil(t, record.DeletedAt)
	assert.Equal(t, u, record.ToEntity())
}

func TestUserMongoDBModel_NilSkills(t *testing.T) {
	record := UserMongoDBModel{ID: uuid.New(), Name: "Ada"}

	assert.Equal(t, []string{}, record.ToEntity().Skills)
}

func TestUser_PublicProfile(t *testing.T) {
	u, err := NewUser(uuid.New(), "Ada", "ada@example.com", "hash", constant.RoleTalent, "")
	require.NoError(t, err)

	u.Headline = "Engineer"
	u.Skills = nil

	profile := u.PublicProfile()

	assert.Equal(t, u.ID, profile.ID)
	assert.Equal(t, "Engineer", profile.Headline)
	assert.Equal(t, []string{}, profile.Skills)
}
