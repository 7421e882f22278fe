// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

// RegisterInput is the payload to create an account.
//
// swagger:model RegisterInput
// @Description RegisterInput is the input payload to register a talent or recruiter.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=120" example:"Ada Lovelace"`
	Email    string `json:"email" validate:"required,email,max=254" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"s3cretPassw0rd"`
	Role     string `json:"role" validate:"required,oneof=talent recruiter" example:"talent"`
	Company  string `json:"company,omitempty" validate:"omitempty,max=120" example:"DLT"`
} // @name RegisterInput

// LoginInput is the payload to exchange credentials for tokens.
//
// swagger:model LoginInput
// @Description LoginInput holds the credentials of an account.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"s3cretPassw0rd"`
} // @name LoginInput

// RefreshInput carries a refresh token to rotate or revoke.
//
// swagger:model RefreshInput
// @Description RefreshInput carries a refresh token.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
} // @name RefreshInput

// TokenPair is the pair of tokens returned on sign in and refresh.
//
// swagger:model TokenPair
// @Description TokenPair holds an access token and its refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType" example:"Bearer"`
	ExpiresIn    int64  `json:"expiresIn" example:"900"`
} // @name TokenPair
