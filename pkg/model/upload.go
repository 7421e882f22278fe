// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package model

import "time"

// UploadResponse describes a stored object.
//
// swagger:model UploadResponse
// @Description UploadResponse is returned after a file upload.
type UploadResponse struct {
	Key         string    `json:"key" example:"resumes/00000000-0000-0000-0000-000000000000/9b2c.pdf"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType" example:"application/pdf"`
	Size        int64     `json:"size" example:"20480"`
	ExpiresAt   time.Time `json:"expiresAt"`
} // @name UploadResponse

// PresignedURLResponse is a temporary download link for a stored object.
//
// swagger:model PresignedURLResponse
// @Description PresignedURLResponse holds a temporary download URL.
type PresignedURLResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
} // @name PresignedURLResponse
