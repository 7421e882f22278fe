// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

// CreateApplicationInput is the payload a talent sends to apply to a job.
//
// swagger:model CreateApplicationInput
// @Description CreateApplicationInput is the input payload to apply to a job.
type CreateApplicationInput struct {
	CoverLetter string `json:"coverLetter,omitempty" validate:"omitempty,max=5000" example:"I would love to join."`
	ResumeKey   string `json:"resumeKey,omitempty" validate:"omitempty,max=512" example:"resumes/00000000-0000-0000-0000-000000000000/cv.pdf"`
} // @name CreateApplicationInput

// UpdateApplicationStatusInput moves an application through the review pipeline.
//
// swagger:model UpdateApplicationStatusInput
// @Description UpdateApplicationStatusInput sets the review status of an application.
type UpdateApplicationStatusInput struct {
	Status string `json:"status" validate:"required,oneof=reviewed shortlisted rejected accepted" example:"shortlisted"`
	Note   string `json:"note,omitempty" validate:"omitempty,max=1000"`
} // @name UpdateApplicationStatusInput
