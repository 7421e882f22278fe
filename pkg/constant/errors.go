// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package constant

import (
	"errors"
)

// List of errors that can be returned.
var (
	ErrMissingRequiredFields        = errors.New("THB-0001")
	ErrInvalidFileFormat            = errors.New("THB-0002")
	ErrInvalidUploadKind            = errors.New("THB-0003")
	ErrFileTooLarge                 = errors.New("THB-0004")
	ErrInvalidFileUploaded          = errors.New("THB-0005")
	ErrEmptyFile                    = errors.New("THB-0006")
	ErrInvalidPathParameter         = errors.New("THB-0011")
	ErrEntityNotFound               = errors.New("THB-0013")
	ErrUnexpectedFieldsInTheRequest = errors.New("THB-0017")
	ErrMissingFieldsInRequest       = errors.New("THB-0018")
	ErrBadRequest                   = errors.New("THB-0019")
	ErrInternalServer               = errors.New("THB-0020")
	ErrInvalidQueryParameter        = errors.New("THB-0021")
	ErrPaginationLimitExceeded      = errors.New("THB-0022")
	ErrServiceUnavailable           = errors.New("THB-0023")
	ErrMissingAuthorization         = errors.New("THB-0030")
	ErrInvalidToken                 = errors.New("THB-0031")
	ErrInsufficientRole             = errors.New("THB-0032")
	ErrNotResourceOwner             = errors.New("THB-0033")
	ErrEmailAlreadyRegistered       = errors.New("THB-0040")
	ErrInvalidCredentials           = errors.New("THB-0041")
	ErrInvalidRefreshToken          = errors.New("THB-0042")
	ErrAccountInactive              = errors.New("THB-0043")
	ErrInvalidRole                  = errors.New("THB-0044")
	ErrInvalidSalaryRange           = errors.New("THB-0045")
	ErrInvalidJobStatus             = errors.New("THB-0046")
	ErrJobNotOpen                   = errors.New("THB-0050")
	ErrDuplicateApplication         = errors.New("THB-0051")
	ErrInvalidStatusTransition      = errors.New("THB-0052")
	ErrWithdrawNotAllowed           = errors.New("THB-0053")
	ErrInvalidUserStatus            = errors.New("THB-0054")
)
