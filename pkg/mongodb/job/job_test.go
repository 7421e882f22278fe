// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package job

import (
	"errors"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func amount(t *testing.T, s string) *decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return &d
}

func TestNewJob(t *testing.T) {
	tests := []struct {
		name           string
		id             uuid.UUID
		recruiterID    uuid.UUID
		title          string
		employmentType string
		expectedErr    error
	}{
		{name: "valid", id: uuid.New(), recruiterID: uuid.New(), title: "Go Engineer", employmentType: constant.EmploymentFullTime},
		{name: "nil recruiter", id: uuid.New(), recruiterID: uuid.Nil, title: "Go Engineer", employmentType: constant.EmploymentFullTime, expectedErr: constant.ErrMissingRequiredFields},
		{name: "blank title", id: uuid.New(), recruiterID: uuid.New(), title: " ", employmentType: constant.EmploymentFullTime, expectedErr: constant.ErrMissingRequiredFields},
		{name: "unknown employment type", id: uuid.New(), recruiterID: uuid.New(), title: "Go Engineer", employmentType: "gig", expectedErr: constant.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := NewJob(tt.id, tt.recruiterID, tt.title, "Build things", "engineering", "Lisbon", tt.employmentType)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))

				return
			}

			require.NoError(t, err)
			assert.True(t, j.IsOpen())
			assert.NotNil(t, j.Skills)
		})
	}
}

func TestValidateSalaryRange(t *testing.T) {
	tests := []struct {
		name    string
		minimum *decimal.Decimal
		maximum *decimal.Decimal
		wantErr bool
	}{
		{name: "both absent"},
		{name: "only minimum", minimum: amount(t, "1000")},
		{name: "equal bounds", minimum: amount(t, "1000.50"), maximum: amount(t, "1000.5")},
		{name: "ordered bounds", minimum: amount(t, "1000"), maximum: amount(t, "2000")},
		{name: "inverted bounds", minimum: amount(t, "3000"), maximum: amount(t, "2000"), wantErr: true},
		{name: "negative minimum", minimum: amount(t, "-1"), wantErr: true},
		{name: "negative maximum", maximum: amount(t, "-1"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSalaryRange(tt.minimum, tt.maximum)
			if tt.wantErr {
				assert.ErrorIs(t, err, constant.ErrInvalidSalaryRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSalary(t *testing.T) {
	d, err := ParseSalary(" ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseSalary("65000.75")
	require.NoError(t, err)
	assert.Equal(t, "65000.75", d.String())

	_, err = ParseSalary("lots")
	assert.ErrorIs(t, err, constant.ErrInvalidSalaryRange)
}

func TestJobMongoDBModel_RoundTrip(t *testing.T) {
	j, err := NewJob(uuid.New(), uuid.New(), "Go Engineer", "Build things", "engineering", "Lisbon", constant.EmploymentRemote)
	require.NoError(t, err)

	require.NoError(t, j.SetSalary(amount(t, "50000"), amount(t, "80000.25"), "eur"))
	j.Skills = []string{"go"}

	var record JobMongoDBModel
	require.NoError(t, record.FromEntity(j))

	require.NotNil(t, record.SalaryMin)
	assert.Equal(t, "80000.25", record.SalaryMax.String())

	back := record.ToEntity()
	assert.True(t, j.SalaryMin.Equal(*back.SalaryMin))
	assert.True(t, j.SalaryMax.Equal(*back.SalaryMax))
	assert.Equal(t, "EUR", back.Currency)
	assert.Equal(t, j.Skills, back.Skills)
}

func TestJob_SetSalaryRejectsInvertedRange(t *testing.T) {
	j, err := NewJob(uuid.New(), uuid.New(), "Go Engineer", "Build things", "engineering", "Lisbon", constant.EmploymentRemote)
	require.NoError(t, err)

	err = j.SetSalary(amount(t, "9"), amount(t, "1"), "EUR")
	assert.ErrorIs(t, err, constant.ErrInvalidSalaryRange)
	assert.Nil(t, j.SalaryMin)
}

func TestListFilter(t *testing.T) {
	recruiter := uuid.New()

	filter := ListFilter(http.QueryHeader{
		Q:              "go",
		Category:       "engineering",
		EmploymentType: constant.EmploymentFullTime,
		Status:         constant.JobStatusOpen,
		RecruiterID:    recruiter,
	})

	assert.Contains(t, filter, "$or")
	assert.Equal(t, constant.JobStatusOpen, filter["status"])
	assert.Equal(t, recruiter, filter["recruiter_id"])
	assert.Equal(t, constant.EmploymentFullTime, filter["employment_type"])
	assert.Equal(t, bson.M{"$regex": "^engineering$", "$options": "i"}, filter["category"])
	assert.NotContains(t, filter, "location")
}

func TestListFilter_EscapesSearchText(t *testing.T) {
	filter := ListFilter(http.QueryHeader{Q: "c++ (senior)"})

	or := filter["$or"].(bson.A)
	title := or[0].(bson.M)["title"].(bson.M)

	assert.Equal(t, `c\+\+ \(senior\)`, title["$regex"])
}
