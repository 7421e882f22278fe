// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg/constant"
)

// EntityNotFoundError records an error indicating an entity was not found in any case that caused it.
// You can use it to representing a Database not found, cache not found or any other repository.
type EntityNotFoundError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityNotFoundError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		if strings.TrimSpace(e.EntityType) != "" {
			return fmt.Sprintf("Entity %s not found", e.EntityType)
		}

		if e.Err != nil {
			return e.Err.Error()
		}

		return "entity not found"
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityNotFoundError) Unwrap() error {
	return e.Err
}

// ValidationError records an error indicating the request payload or parameters are invalid.
type ValidationError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string
	Message    string
	Code       string
	Err        error `json:"err,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if strings.TrimSpace(e.Code) != "" {
		return fmt.Sprintf("%s - %s", e.Code, e.Message)
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// EntityConflictError records an error indicating an entity already exists in some repository
// You can use it to representing a Database conflict, cache or any other repository.
type EntityConflictError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

// Error implements the error interface.
func (e EntityConflictError) Error() string {
	if e.Err != nil && strings.TrimSpace(e.Message) == "" {
		return e.Err.Error()
	}

	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e EntityConflictError) Unwrap() error {
	return e.Err
}

// UnauthorizedError indicates an operation that couldn't be performed because there's no user authenticated.
type UnauthorizedError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e UnauthorizedError) Error() string {
	return e.Message
}

// ForbiddenError indicates an operation that couldn't be performed because the authenticated user has no sufficient privileges.
type ForbiddenError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e ForbiddenError) Error() string {
	return e.Message
}

// UnprocessableOperationError indicates an operation that couldn't be performed because it's invalid.
type UnprocessableOperationError struct {
	EntityType string
	Title      string
	Message    string
	Code       string
	Err        error
}

func (e UnprocessableOperationError) Error() string {
	return e.Message
}

// ServiceUnavailableError indicates a dependency is temporarily unable to serve the request.
type ServiceUnavailableError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e ServiceUnavailableError) Error() string {
	return e.Message
}

// Unwrap implements the error interface introduced in Go 1.13 to unwrap the internal error.
func (e ServiceUnavailableError) Unwrap() error {
	return e.Err
}

// InternalServerError indicates an unexpected failure while serving the request.
type InternalServerError struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e InternalServerError) Error() string {
	return e.Message
}

// ResponseError is a struct used to return errors to the client.
type ResponseError struct {
	Code    int    `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns the message of the ResponseError.
func (r ResponseError) Error() string {
	return r.Message
}

// ValidationKnownFieldsError records an error that occurred during a validation of known fields.
type ValidationKnownFieldsError struct {
	EntityType string           `json:"entityType,omitempty"`
	Title      string           `json:"title,omitempty"`
	Code       string           `json:"code,omitempty"`
	Message    string           `json:"message,omitempty"`
	Fields     FieldValidations `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationKnownFieldsError.
func (r ValidationKnownFieldsError) Error() string {
	return r.Message
}

// FieldValidations is a map of known fields and their validation errors.
type FieldValidations map[string]string

// ValidationUnknownFieldsError records an error that occurred because the payload carried unexpected fields.
type ValidationUnknownFieldsError struct {
	EntityType string        `json:"entityType,omitempty"`
	Title      string        `json:"title,omitempty"`
	Code       string        `json:"code,omitempty"`
	Message    string        `json:"message,omitempty"`
	Fields     UnknownFields `json:"fields,omitempty"`
}

// Error returns the error message for a ValidationUnknownFieldsError.
func (r ValidationUnknownFieldsError) Error() string {
	return r.Message
}

// UnknownFields is a map of unknown fields and their error messages.
type UnknownFields map[string]any

// ValidateInternalError wraps err into an InternalServerError that never leaks the cause to clients.
func ValidateInternalError(err error, entityType string) error {
	return InternalServerError{
		EntityType: entityType,
		Code:       constant.ErrInternalServer.Error(),
		Title:      "Internal Server Error",
		Message:    "The server encountered an unexpected error. Please try again later or contact support.",
		Err:        err,
	}
}

// ValidateBadRequestFieldsError validates the error and returns the appropriate bad request error code, title, message, and the invalid fields.
//
// Parameters:
// - requiredFields: A map of missing required fields and their error messages.
// - knownInvalidFields: A map of known invalid fields and their validation errors.
// - entityType: The type of the entity associated with the error.
// - unknownFields: A map of unknown fields and their error messages.
func ValidateBadRequestFieldsError(requiredFields, knownInvalidFields map[string]string, entityType string, unknownFields map[string]any) error {
	if len(unknownFields) == 0 && len(knownInvalidFields) == 0 && len(requiredFields) == 0 {
		return errors.New("expected knownInvalidFields, unknownFields and requiredFields to be non-empty")
	}

	if len(unknownFields) > 0 {
		return ValidationUnknownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrUnexpectedFieldsInTheRequest.Error(),
			Title:      "Unexpected Fields in the Request",
			Message:    "The request body contains more fields than expected. Please send only the allowed fields as per the documentation. The unexpected fields are listed in the fields object.",
			Fields:     unknownFields,
		}
	}

	if len(requiredFields) > 0 {
		return ValidationKnownFieldsError{
			EntityType: entityType,
			Code:       constant.ErrMissingFieldsInRequest.Error(),
			Title:      "Missing Fields in Request",
			Message:    "Your request is missing one or more required fields. Please refer to the documentation to ensure all necessary fields are included in your request.",
			Fields:     requiredFields,
		}
	}

	return ValidationKnownFieldsError{
		EntityType: entityType,
		Code:       constant.ErrBadRequest.Error(),
		Title:      "Bad Request",
		Message:    "The server could not understand the request due to malformed syntax. Please check the listed fields and try again.",
		Fields:     knownInvalidFields,
	}
}

// ValidateBusinessError maps a THB business error code to its typed error with title and message.
// Errors without a mapping are returned unchanged.
func ValidateBusinessError(err error, entityType string, args ...any) error {
	errorMap := map[error]error{
		constant.ErrMissingRequiredFields: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrMissingRequiredFields.Error(),
			Title:      "Missing Required Fields",
			Message:    "The request body is empty or missing required fields. Please provide a valid JSON payload.",
		},
		constant.ErrInvalidFileFormat: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidFileFormat.Error(),
			Title:      "Invalid File Format",
			Message:    fmt.Sprintf("The uploaded file type %v is not accepted for %v uploads.", args...),
		},
		constant.ErrInvalidUploadKind: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidUploadKind.Error(),
			Title:      "Invalid Upload Kind",
			Message:    "The 'kind' field must be one of resume, avatar or logo.",
		},
		constant.ErrFileTooLarge: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrFileTooLarge.Error(),
			Title:      "File Too Large",
			Message:    fmt.Sprintf("The uploaded file exceeds the maximum allowed size of %v bytes.", args...),
		},
		constant.ErrInvalidFileUploaded: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidFileUploaded.Error(),
			Title:      "Invalid File Uploaded",
			Message:    "The uploaded file could not be read. Please verify the file and try again.",
		},
		constant.ErrEmptyFile: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrEmptyFile.Error(),
			Title:      "Empty File",
			Message:    "The uploaded file is empty.",
		},
		constant.ErrInvalidPathParameter: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidPathParameter.Error(),
			Title:      "Invalid Path Parameter",
			Message:    fmt.Sprintf("The path parameter %v is not a valid identifier.", args...),
		},
		constant.ErrEntityNotFound: EntityNotFoundError{
			EntityType: entityType,
			Code:       constant.ErrEntityNotFound.Error(),
			Title:      "Entity Not Found",
			Message:    "No entity was found for the given ID. Please make sure to use the correct ID for the entity you are trying to manage.",
		},
		constant.ErrBadRequest: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrBadRequest.Error(),
			Title:      "Bad Request",
			Message:    fmt.Sprintf("The request could not be understood: %v", args...),
		},
		constant.ErrInvalidQueryParameter: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidQueryParameter.Error(),
			Title:      "Invalid Query Parameter",
			Message:    fmt.Sprintf("One or more query parameters are in an incorrect format. Please check the following parameters '%v' and ensure they meet the required format before trying again.", args),
		},
		constant.ErrPaginationLimitExceeded: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrPaginationLimitExceeded.Error(),
			Title:      "Pagination Limit Exceeded",
			Message:    fmt.Sprintf("The pagination limit exceeds the maximum allowed of %v items per page. Please verify the limit and try again.", args...),
		},
		constant.ErrServiceUnavailable: ServiceUnavailableError{
			EntityType: entityType,
			Code:       constant.ErrServiceUnavailable.Error(),
			Title:      "Service Unavailable",
			Message:    "A backing service is temporarily unavailable. Please try again in a few moments.",
		},
		constant.ErrMissingAuthorization: UnauthorizedError{
			EntityType: entityType,
			Code:       constant.ErrMissingAuthorization.Error(),
			Title:      "Missing Authorization",
			Message:    "The request requires a Bearer access token in the Authorization header.",
		},
		constant.ErrInvalidToken: UnauthorizedError{
			EntityType: entityType,
			Code:       constant.ErrInvalidToken.Error(),
			Title:      "Invalid Token",
			Message:    "The access token is invalid or has expired. Please sign in again.",
		},
		constant.ErrInsufficientRole: ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrInsufficientRole.Error(),
			Title:      "Insufficient Role",
			Message:    "Your account role does not allow this operation.",
		},
		constant.ErrNotResourceOwner: ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrNotResourceOwner.Error(),
			Title:      "Not Resource Owner",
			Message:    "Only the owner of this resource or an administrator can perform this operation.",
		},
		constant.ErrEmailAlreadyRegistered: EntityConflictError{
			EntityType: entityType,
			Code:       constant.ErrEmailAlreadyRegistered.Error(),
			Title:      "Email Already Registered",
			Message:    "An account with this email already exists. Please sign in or use a different email.",
		},
		constant.ErrInvalidCredentials: UnauthorizedError{
			EntityType: entityType,
			Code:       constant.ErrInvalidCredentials.Error(),
			Title:      "Invalid Credentials",
			Message:    "The email or password is incorrect.",
		},
		constant.ErrInvalidRefreshToken: UnauthorizedError{
			EntityType: entityType,
			Code:       constant.ErrInvalidRefreshToken.Error(),
			Title:      "Invalid Refresh Token",
			Message:    "The refresh token is invalid, expired or has already been used.",
		},
		constant.ErrAccountInactive: ForbiddenError{
			EntityType: entityType,
			Code:       constant.ErrAccountInactive.Error(),
			Title:      "Account Inactive",
			Message:    "This account has been deactivated. Please contact support.",
		},
		constant.ErrInvalidRole: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidRole.Error(),
			Title:      "Invalid Role",
			Message:    "The role must be either talent or recruiter.",
		},
		constant.ErrInvalidSalaryRange: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidSalaryRange.Error(),
			Title:      "Invalid Salary Range",
			Message:    "The 'salaryMin' must be a non-negative amount lower than or equal to 'salaryMax'.",
		},
		constant.ErrInvalidJobStatus: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidJobStatus.Error(),
			Title:      "Invalid Job Status",
			Message:    "The job status must be either open or closed.",
		},
		constant.ErrJobNotOpen: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrJobNotOpen.Error(),
			Title:      "Job Not Open",
			Message:    "This job is no longer accepting applications.",
		},
		constant.ErrDuplicateApplication: EntityConflictError{
			EntityType: entityType,
			Code:       constant.ErrDuplicateApplication.Error(),
			Title:      "Duplicate Application",
			Message:    "You have already applied to this job.",
		},
		constant.ErrInvalidStatusTransition: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidStatusTransition.Error(),
			Title:      "Invalid Status Transition",
			Message:    fmt.Sprintf("The application cannot move from %v to %v.", args...),
		},
		constant.ErrWithdrawNotAllowed: UnprocessableOperationError{
			EntityType: entityType,
			Code:       constant.ErrWithdrawNotAllowed.Error(),
			Title:      "Withdraw Not Allowed",
			Message:    "Only pending or reviewed applications can be withdrawn.",
		},
		constant.ErrInvalidUserStatus: ValidationError{
			EntityType: entityType,
			Code:       constant.ErrInvalidUserStatus.Error(),
			Title:      "Invalid User Status",
			Message:    "The user status must be either active or inactive.",
		},
	}

	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}
