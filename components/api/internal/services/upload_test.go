// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
	pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
)

func TestDetectUploadType(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		content  []byte
		wantMIME string
		wantExt  string
		errCode  string
	}{
		{name: "pdf resume", kind: constant.UploadKindResume, content: pdfContent, wantMIME: "application/pdf", wantExt: ".pdf"},
		{name: "png avatar", kind: constant.UploadKindAvatar, content: pngContent, wantMIME: "image/png", wantExt: ".png"},
		{name: "png logo", kind: constant.UploadKindLogo, content: pngContent, wantMIME: "image/png", wantExt: ".png"},
		{name: "png is not a resume", kind: constant.UploadKindResume, content: pngContent, errCode: constant.ErrInvalidFileFormat.Error()},
		{name: "text is not an avatar", kind: constant.UploadKindAvatar, content: []byte("hello world"), errCode: constant.ErrInvalidFileFormat.Error()},
		{name: "unknown kind", kind: "video", content: pngContent, errCode: constant.ErrInvalidUploadKind.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, ext, err := DetectUploadType(tt.kind, tt.content)

			if tt.errCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errCode, errorCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMIME, mime)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestUploadFile(t *testing.T) {
	principal := principalFor(constant.RoleTalent)

	tests := []struct {
		name      string
		content   []byte
		mockSetup func(d *testDeps)
		errCode   string
	}{
		{
			name:    "Success",
			content: pdfContent,
			mockSetup: func(d *testDeps) {
				d.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), "application/pdf").
					DoAndReturn(func(_ context.Context, key string, r io.Reader, _ string) (string, error) {
						assert.True(t, strings.HasPrefix(key, "resumes/"+principal.UserID.String()+"/"))
						assert.True(t, strings.HasSuffix(key, ".pdf"))

						body, err := io.ReadAll(r)
						require.NoError(t, err)
						assert.Equal(t, pdfContent, body)

						return key, nil
					})
				d.storage.EXPECT().GeneratePresignedURL(gomock.Any(), gomock.Any(), constant.PresignedURLExpiry).
					Return("https://storage.local/presigned", nil)
			},
		},
		{
			name:      "Error - empty file",
			content:   []byte{},
			mockSetup: func(_ *testDeps) {},
			errCode:   constant.ErrEmptyFile.Error(),
		},
		{
			name:      "Error - too large",
			content:   append(append([]byte{}, pdfContent...), make([]byte, constant.DefaultUploadMaxBytes)...),
			mockSetup: func(_ *testDeps) {},
			errCode:   constant.ErrFileTooLarge.Error(),
		},
		{
			name:    "Error - breaker open maps to service unavailable",
			content: pdfContent,
			mockSetup: func(d *testDeps) {
				d.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", fmt.Errorf("storage.upload: %w", pkg.ErrCircuitOpen))
			},
			errCode: constant.ErrServiceUnavailable.Error(),
		},
		{
			name:    "Error - storage failure is internal",
			content: pdfContent,
			mockSetup: func(d *testDeps) {
				d.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", assert.AnError)
			},
			errCode: constant.ErrInternalServer.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestUseCase(t)
			tt.mockSetup(d)

			result, err := d.uc.UploadFile(context.Background(), principal, constant.UploadKindResume, tt.content)

			if tt.errCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errCode, errorCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://storage.local/presigned", result.URL)
			assert.Equal(t, int64(len(pdfContent)), result.Size)
		})
	}
}

func TestGetUploadURL(t *testing.T) {
	owner := principalFor(constant.RoleTalent)
	ownKey := "resumes/" + owner.UserID.String() + "/cv.pdf"
	foreignKey := "resumes/" + uuid.NewString() + "/cv.pdf"

	t.Run("owner gets a fresh url", func(t *testing.T) {
		d := newTestUseCase(t)
		d.storage.EXPECT().Exists(gomock.Any(), ownKey).Return(true, nil)
		d.storage.EXPECT().GeneratePresignedURL(gomock.Any(), ownKey, constant.PresignedURLExpiry).Return("https://u", nil)

		got, err := d.uc.GetUploadURL(context.Background(), owner, ownKey)
		require.NoError(t, err)
		assert.Equal(t, "https://u", got.URL)
	})

	t.Run("admin may read any key", func(t *testing.T) {
		d := newTestUseCase(t)
		d.storage.EXPECT().Exists(gomock.Any(), foreignKey).Return(true, nil)
		d.storage.EXPECT().GeneratePresignedURL(gomock.Any(), foreignKey, gomock.Any()).Return("https://u", nil)

		_, err := d.uc.GetUploadURL(context.Background(), principalFor(constant.RoleAdmin), foreignKey)
		require.NoError(t, err)
	})

	t.Run("foreign key rejected", func(t *testing.T) {
		d := newTestUseCase(t)

		_, err := d.uc.GetUploadURL(context.Background(), owner, foreignKey)
		assert.Equal(t, constant.ErrNotResourceOwner.Error(), errorCode(err))
	})

	t.Run("traversal rejected", func(t *testing.T) {
		d := newTestUseCase(t)

		_, err := d.uc.GetUploadURL(context.Background(), owner, "resumes/"+owner.UserID.String()+"/../x")
		assert.Equal(t, constant.ErrNotResourceOwner.Error(), errorCode(err))
	})

	t.Run("missing object", func(t *testing.T) {
		d := newTestUseCase(t)
		d.storage.EXPECT().Exists(gomock.Any(), ownKey).Return(false, nil)

		_, err := d.uc.GetUploadURL(context.Background(), owner, ownKey)
		assert.Equal(t, constant.ErrEntityNotFound.Error(), errorCode(err))
	})

	t.Run("empty key", func(t *testing.T) {
		d := newTestUseCase(t)

		_, err := d.uc.GetUploadURL(context.Background(), owner, "")
		assert.Equal(t, constant.ErrInvalidQueryParameter.Error(), errorCode(err))
	})
}
