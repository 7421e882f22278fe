// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

// CreateJobInput is the payload to post a job.
//
// swagger:model CreateJobInput
// @Description CreateJobInput is the input payload to create a job posting.
type CreateJobInput struct {
	Title          string   `json:"title" validate:"required,max=120" example:"Senior Go Engineer"`
	Description    string   `json:"description" validate:"required,max=10000" example:"Build distributed systems."`
	Category       string   `json:"category" validate:"required,max=60" example:"engineering"`
	Location       string   `json:"location" validate:"required,max=120" example:"Lisbon"`
	EmploymentType string   `json:"employmentType" validate:"required,oneof=full-time part-time contract internship remote" example:"full-time"`
	SalaryMin      string   `json:"salaryMin,omitempty" validate:"omitempty,numeric" example:"50000"`
	SalaryMax      string   `json:"salaryMax,omitempty" validate:"omitempty,numeric" example:"80000"`
	Currency       string   `json:"currency,omitempty" validate:"omitempty,len=3,alpha" example:"EUR"`
	Skills         []string `json:"skills" validate:"max=30,dive,required,max=50"`
	Status         string   `json:"status,omitempty" validate:"omitempty,oneof=open closed" example:"open"`
} // @name CreateJobInput

// UpdateJobInput is a partial update of a job. Absent fields are left unchanged.
//
// swagger:model UpdateJobInput
// @Description UpdateJobInput is the input payload to update a job posting.
type UpdateJobInput struct {
	Title          *string   `json:"title,omitempty" validate:"omitempty,max=120"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=10000"`
	Category       *string   `json:"category,omitempty" validate:"omitempty,max=60"`
	Location       *string   `json:"location,omitempty" validate:"omitempty,max=120"`
	EmploymentType *string   `json:"employmentType,omitempty" validate:"omitempty,oneof=full-time part-time contract internship remote"`
	SalaryMin      *string   `json:"salaryMin,omitempty" validate:"omitempty,numeric"`
	SalaryMax      *string   `json:"salaryMax,omitempty" validate:"omitempty,numeric"`
	Currency       *string   `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	Skills         *[]string `json:"skills,omitempty" validate:"omitempty,max=30,dive,required,max=50"`
} // @name UpdateJobInput

// UpdateJobStatusInput opens or closes a job.
//
// swagger:model UpdateJobStatusInput
// @Description UpdateJobStatusInput sets the job status.
type UpdateJobStatusInput struct {
	Status string `json:"status" validate:"required,oneof=open closed" example:"closed"`
} // @name UpdateJobStatusInput
