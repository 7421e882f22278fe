// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package user

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
)

// User is an account on the platform. Talents carry a public profile, recruiters a company.
type User struct {
	ID              uuid.UUID `json:"id" example:"00000000-0000-0000-0000-000000000000"`
	Name            string    `json:"name" example:"Ada Lovelace"`
	Email           string    `json:"email" example:"ada@example.com"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role" example:"talent"`
	Status          string    `json:"status" example:"active"`
	Company         string    `json:"company,omitempty" example:"DLT"`
	Headline        string    `json:"headline,omitempty" example:"Backend engineer"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty" example:"Lisbon"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experienceYears"`
	ResumeKey       string    `json:"resumeKey,omitempty"`
	AvatarKey       string    `json:"avatarKey,omitempty"`
	CreatedAt       time.Time `json:"createdAt" example:"2021-01-01T00:00:00Z"`
	UpdatedAt       time.Time `json:"updatedAt" example:"2021-01-01T00:00:00Z"`
} // @name User

// NewUser creates an active user, normalising the email and validating the role.
func NewUser(id uuid.UUID, name, email, passwordHash, role, company string) (*User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("user id must not be nil: %w", constant.ErrMissingRequiredFields)
	}

	name = strings.TrimSpace(name)
	email = pkg.NormalizeEmail(email)

	if name == "" || email == "" || passwordHash == "" {
		return nil, fmt.Errorf("user name, email and password must not be empty: %w", constant.ErrMissingRequiredFields)
	}

	if !slices.Contains([]string{constant.RoleTalent, constant.RoleRecruiter, constant.RoleAdmin}, role) {
		return nil, fmt.Errorf("user role %q: %w", role, constant.ErrInvalidRole)
	}

	now := time.Now().UTC()

	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       constant.UserStatusActive,
		Company:      strings.TrimSpace(company),
		Skills:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return u.Status == constant.UserStatusActive
}

// Profile is the public view of a talent, without account details.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Headline        string    `json:"headline,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experienceYears"`
	AvatarKey       string    `json:"avatarKey,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
} // @name TalentProfile

// PublicProfile projects the user onto its public talent profile.
func (u *User) PublicProfile() Profile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	return Profile{
		ID:              u.ID,
		Name:            u.Name,
		Headline:        u.Headline,
		Bio:             u.Bio,
		Location:        u.Location,
		Skills:          skills,
		ExperienceYears: u.ExperienceYears,
		AvatarKey:       u.AvatarKey,
		CreatedAt:       u.CreatedAt,
	}
}

// UserMongoDBModel is the document stored in the user collection.
type UserMongoDBModel struct {
	ID              uuid.UUID  `bson:"_id"`
	Name            string     `bson:"name"`
	Email           string     `bson:"email"`
	PasswordHash    string     `bson:"password_hash"`
	Role            string     `bson:"role"`
	Status          string     `bson:"status"`
	Company         string     `bson:"company,omitempty"`
	Headline        string     `bson:"headline,omitempty"`
	Bio             string     `bson:"bio,omitempty"`
	Location        string     `bson:"location,omitempty"`
	Skills          []string   `bson:"skills"`
	ExperienceYears int        `bson:"experience_years"`
	ResumeKey       string     `bson:"resume_key,omitempty"`
	AvatarKey       string     `bson:"avatar_key,omitempty"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
	DeletedAt       *time.Time `bson:"deleted_at"`
}

// ToEntity converts the document to a User.
func (m *UserMongoDBModel) ToEntity() *User {
	skills := m.Skills
	if skills == nil {
		skills = []string{}
	}

	return &User{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Role:            m.Role,
		Status:          m.Status,
		Company:         m.Company,
		Headline:        m.Headline,
		Bio:             m.Bio,
		Location:        m.Location,
		Skills:          skills,
		ExperienceYears: m.ExperienceYears,
		ResumeKey:       m.ResumeKey,
		AvatarKey:       m.AvatarKey,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromEntity fills the document from a User.
func (m *UserMongoDBModel) FromEntity(u *User) {
	m.ID = u.ID
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Status = u.Status
	m.Company = u.Company
	m.Headline = u.Headline
	m.Bio = u.Bio
	m.Location = u.Location
	m.Skills = u.Skills
	m.ExperienceYears = u.ExperienceYears
	m.ResumeKey = u.ResumeKey
	m.AvatarKey = u.AvatarKey
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}
