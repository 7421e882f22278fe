// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package job

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmploymentTypes lists the accepted employment types.
var EmploymentTypes = []string{
	constant.EmploymentFullTime,
	constant.EmploymentPartTime,
	constant.EmploymentContract,
	constant.EmploymentInternship,
	constant.EmploymentRemote,
}

// Job is a job posting owned by a recruiter.
type Job struct {
	ID             uuid.UUID        `json:"id" example:"00000000-0000-0000-0000-000000000000"`
	RecruiterID    uuid.UUID        `json:"recruiterId" example:"00000000-0000-0000-0000-000000000000"`
	Company        string           `json:"company,omitempty" example:"DLT"`
	Title          string           `json:"title" example:"Senior Go Engineer"`
	Description    string           `json:"description"`
	Category       string           `json:"category" example:"engineering"`
	Location       string           `json:"location" example:"Lisbon"`
	EmploymentType string           `json:"employmentType" example:"full-time"`
	SalaryMin      *decimal.Decimal `json:"salaryMin,omitempty" swaggertype:"string" example:"50000"`
	SalaryMax      *decimal.Decimal `json:"salaryMax,omitempty" swaggertype:"string" example:"80000"`
	Currency       string           `json:"currency,omitempty" example:"EUR"`
	Skills         []string         `json:"skills"`
	Status         string           `json:"status" example:"open"`
	CreatedAt      time.Time        `json:"createdAt" example:"2021-01-01T00:00:00Z"`
	UpdatedAt      time.Time        `json:"updatedAt" example:"2021-01-01T00:00:00Z"`
} // @name Job

// NewJob creates an open job posting with invariant validation.
func NewJob(id, recruiterID uuid.UUID, title, description, category, location, employmentType string) (*Job, error) {
	if id == uuid.Nil || recruiterID == uuid.Nil {
		return nil, fmt.Errorf("job id and recruiter id must not be nil: %w", constant.ErrMissingRequiredFields)
	}

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" || description == "" {
		return nil, fmt.Errorf("job title and description must not be empty: %w", constant.ErrMissingRequiredFields)
	}

	if !slices.Contains(EmploymentTypes, employmentType) {
		return nil, fmt.Errorf("job employment type %q: %w", employmentType, constant.ErrBadRequest)
	}

	now := time.Now().UTC()

	return &Job{
		ID:             id,
		RecruiterID:    recruiterID,
		Title:          title,
		Description:    description,
		Category:       strings.TrimSpace(category),
		Location:       strings.TrimSpace(location),
		EmploymentType: employmentType,
		Skills:         []string{},
		Status:         constant.JobStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// SetSalary sets the salary range after validating it.
func (j *Job) SetSalary(minimum, maximum *decimal.Decimal, currency string) error {
	if err := ValidateSalaryRange(minimum, maximum); err != nil {
		return err
	}

	j.SalaryMin = minimum
	j.SalaryMax = maximum
	j.Currency = strings.ToUpper(strings.TrimSpace(currency))

	return nil
}

// IsOpen reports whether the job accepts applications.
func (j *Job) IsOpen() bool {
	return j.Status == constant.JobStatusOpen
}

// ValidateSalaryRange checks that both bounds are non-negative and minimum does not exceed maximum.
// Either bound may be absent.
func ValidateSalaryRange(minimum, maximum *decimal.Decimal) error {
	if minimum != nil && minimum.IsNegative() {
		return constant.ErrInvalidSalaryRange
	}

	if maximum != nil && maximum.IsNegative() {
		return constant.ErrInvalidSalaryRange
	}

	if minimum != nil && maximum != nil && minimum.GreaterThan(*maximum) {
		return constant.ErrInvalidSalaryRange
	}

	return nil
}

// ParseSalary parses an optional decimal amount. Empty input yields nil.
func ParseSalary(value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, constant.ErrInvalidSalaryRange
	}

	return &d, nil
}

// JobMongoDBModel is the document stored in the job collection.
type JobMongoDBModel struct {
	ID             uuid.UUID             `bson:"_id"`
	RecruiterID    uuid.UUID             `bson:"recruiter_id"`
	Company        string                `bson:"company,omitempty"`
	Title          string                `bson:"title"`
	Description    string                `bson:"description"`
	Category       string                `bson:"category"`
	Location       string                `bson:"location"`
	EmploymentType string                `bson:"employment_type"`
	SalaryMin      *primitive.Decimal128 `bson:"salary_min,omitempty"`
	SalaryMax      *primitive.Decimal128 `bson:"salary_max,omitempty"`
	Currency       string                `bson:"currency,omitempty"`
	Skills         []string              `bson:"skills"`
	Status         string                `bson:"status"`
	CreatedAt      time.Time             `bson:"created_at"`
	UpdatedAt      time.Time             `bson:"updated_at"`
	DeletedAt      *time.Time            `bson:"deleted_at"`
}

// ToEntity converts the document to a Job.
func (m *JobMongoDBModel) ToEntity() *Job {
	skills := m.Skills
	if skills == nil {
		skills = []string{}
	}

	return &Job{
		ID:             m.ID,
		RecruiterID:    m.RecruiterID,
		Company:        m.Company,
		Title:          m.Title,
		Description:    m.Description,
		Category:       m.Category,
		Location:       m.Location,
		EmploymentType: m.EmploymentType,
		SalaryMin:      fromDecimal128(m.SalaryMin),
		SalaryMax:      fromDecimal128(m.SalaryMax),
		Currency:       m.Currency,
		Skills:         skills,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromEntity fills the document from a Job.
func (m *JobMongoDBModel) FromEntity(j *Job) error {
	minimum, err := ToDecimal128(j.SalaryMin)
	if err != nil {
		return err
	}

	maximum, err := ToDecimal128(j.SalaryMax)
	if err != nil {
		return err
	}

	m.ID = j.ID
	m.RecruiterID = j.RecruiterID
	m.Company = j.Company
	m.Title = j.Title
	m.Description = j.Description
	m.Category = j.Category
	m.Location = j.Location
	m.EmploymentType = j.EmploymentType
	m.SalaryMin = minimum
	m.SalaryMax = maximum
	m.Currency = j.Currency
	m.Skills = j.Skills
	m.Status = j.Status
	m.CreatedAt = j.CreatedAt
	m.UpdatedAt = j.UpdatedAt

	return nil
}

// ToDecimal128 converts an optional amount into its BSON representation.
func ToDecimal128(d *decimal.Decimal) (*primitive.Decimal128, error) {
	if d == nil {
		return nil, nil
	}

	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return nil, fmt.Errorf("convert %s to decimal128: %w", d.String(), err)
	}

	return &v, nil
}

func fromDecimal128(v *primitive.Decimal128) *decimal.Decimal {
	if v == nil {
		return nil
	}

	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return nil
	}

	return &d
}
