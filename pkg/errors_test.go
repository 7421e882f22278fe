// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"errors"
	"testing"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/stretchr/testify/assert"
)

func TestValidateBusinessError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		args     []any
		wantType any
		wantCode string
	}{
		{name: "duplicate email is conflict", err: constant.ErrEmailAlreadyRegistered, wantType: EntityConflictError{}, wantCode: "THB-0040"},
		{name: "bad credentials is unauthorized", err: constant.ErrInvalidCredentials, wantType: UnauthorizedError{}, wantCode: "THB-0041"},
		{name: "job not open is unprocessable", err: constant.ErrJobNotOpen, wantType: UnprocessableOperationError{}, wantCode: "THB-0050"},
		{name: "duplicate application is conflict", err: constant.ErrDuplicateApplication, wantType: EntityConflictError{}, wantCode: "THB-0051"},
		{name: "not found", err: constant.ErrEntityNotFound, wantType: EntityNotFoundError{}, wantCode: "THB-0013"},
		{name: "limit exceeded", err: constant.ErrPaginationLimitExceeded, args: []any{100}, wantType: ValidationError{}, wantCode: "THB-0022"},
		{name: "role forbidden", err: constant.ErrInsufficientRole, wantType: ForbiddenError{}, wantCode: "THB-0032"},
		{name: "storage unavailable", err: constant.ErrServiceUnavailable, wantType: ServiceUnavailableError{}, wantCode: "THB-0023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateBusinessError(tt.err, "Entity", tt.args...)

			assert.IsType(t, tt.wantType, got)
			assert.Contains(t, codeOf(got), tt.wantCode)
		})
	}
}

func TestValidateBusinessError_Unmapped(t *testing.T) {
	raw := errors.New("raw")

	assert.Equal(t, raw, ValidateBusinessError(raw, ""))
}

func TestValidateBadRequestFieldsError(t *testing.T) {
	err := ValidateBadRequestFieldsError(nil, nil, "", map[string]any{"extra": 1})
	assert.IsType(t, ValidationUnknownFieldsError{}, err)

	err = ValidateBadRequestFieldsError(map[string]string{"email": "email is a required field"}, map[string]string{"email": "email is a required field"}, "", nil)
	assert.Equal(t, constant.ErrMissingFieldsInRequest.Error(), err.(ValidationKnownFieldsError).Code)

	err = ValidateBadRequestFieldsError(nil, map[string]string{"role": "invalid"}, "", nil)
	assert.Equal(t, constant.ErrBadRequest.Error(), err.(ValidationKnownFieldsError).Code)

	assert.Error(t, ValidateBadRequestFieldsError(nil, nil, "", nil))
}

func TestValidateInternalError(t *testing.T) {
	cause := errors.New("mongo down")
	err := ValidateInternalError(cause, "Job")

	var iErr InternalServerError
	assert.True(t, errors.As(err, &iErr))
	assert.Equal(t, constant.ErrInternalServer.Error(), iErr.Code)
	assert.NotContains(t, iErr.Message, "mongo")
}

func codeOf(err error) string {
	switch e := err.(type) {
	case EntityConflictError:
		return e.Code
	case UnauthorizedError:
		return e.Code
	case UnprocessableOperationError:
		return e.Code
	case EntityNotFoundError:
		return e.Code
	case ValidationError:
		return e.Code
	case ForbiddenError:
		return e.Code
	case ServiceUnavailableError:
		return e.Code
	default:
		return ""
	}
}
