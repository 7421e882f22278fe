// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

// UpdateTalentProfileInput is a partial update of the caller's talent profile.
//
// swagger:model UpdateTalentProfileInput
// @Description UpdateTalentProfileInput is the input payload to update a talent profile.
type UpdateTalentProfileInput struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,max=120"`
	Headline        *string   `json:"headline,omitempty" validate:"omitempty,max=120"`
	Bio             *string   `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location        *string   `json:"location,omitempty" validate:"omitempty,max=120"`
	Skills          *[]string `json:"skills,omitempty" validate:"omitempty,max=50,dive,required,max=50"`
	ExperienceYears *int      `json:"experienceYears,omitempty" validate:"omitempty,gte=0,lte=60"`
	ResumeKey       *string   `json:"resumeKey,omitempty" validate:"omitempty,max=512"`
	AvatarKey       *string   `json:"avatarKey,omitempty" validate:"omitempty,max=512"`
} // @name UpdateTalentProfileInput

// UpdateUserStatusInput activates or deactivates an account.
//
// swagger:model UpdateUserStatusInput
// @Description UpdateUserStatusInput sets the account status.
type UpdateUserStatusInput struct {
	Status string `json:"status" validate:"required,oneof=active inactive" example:"inactive"`
} // @name UpdateUserStatusInput
