// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"bytes"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/pagination"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/google/uuid"
)

// QueryHeader holds the pagination and filter parameters of a list request.
type QueryHeader struct {
	Limit          int
	Page           int
	Q              string
	Category       string
	Location       string
	EmploymentType string
	Status         string
	Role           string
	Skill          string
	RecruiterID    uuid.UUID
	JobID          uuid.UUID
	Unread         bool
}

// Descriptor builds the pagination descriptor of this query for the given total.
func (qh QueryHeader) Descriptor(total int64) pagination.Descriptor {
	return pagination.NewDescriptor(qh.Page, qh.Limit, total)
}

// Skip is the number of documents to skip for the requested page.
func (qh QueryHeader) Skip() int64 {
	return qh.Descriptor(0).Offset()
}

// parsePositiveInt parses a string as an integer and validates that the result
// is at least 1. It returns a validation error referencing paramName on failure.
func parsePositiveInt(value, paramName string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 1 {
		return 0, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", paramName)
	}

	return parsed, nil
}

func parseUUIDParam(value, paramName string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", paramName)
	}

	return id, nil
}

// MaxPaginationLimit is the largest page size accepted, read from MAX_PAGINATION_LIMIT.
func MaxPaginationLimit() int {
	return pkg.SafeInt64ToInt(libCommons.GetenvIntOrDefault("MAX_PAGINATION_LIMIT", constant.DefaultMaxPaginationLimit))
}

// ValidateParameters validates list query parameters. Missing page defaults to 1 and
// missing limit to defaultLimit. Unrecognised parameters are ignored.
func ValidateParameters(params map[string]string, defaultLimit int) (*QueryHeader, error) {
	query := &QueryHeader{
		Limit: defaultLimit,
		Page:  constant.DefaultPaginationPage,
	}

	if query.Limit <= 0 {
		query.Limit = constant.DefaultPaginationLimit
	}

	for key, value := range params {
		var err error

		switch key {
		case "limit":
			query.Limit, err = parsePositiveInt(value, "limit")
		case "page":
			query.Page, err = parsePositiveInt(value, "page")
		case "q":
			query.Q = strings.TrimSpace(value)
		case "category":
			query.Category = strings.TrimSpace(value)
		case "location":
			query.Location = strings.TrimSpace(value)
		case "employmentType":
			query.EmploymentType = strings.TrimSpace(value)
		case "status":
			query.Status = strings.ToLower(strings.TrimSpace(value))
		case "role":
			query.Role = strings.ToLower(strings.TrimSpace(value))
		case "skill":
			query.Skill = strings.TrimSpace(value)
		case "recruiterId":
			query.RecruiterID, err = parseUUIDParam(value, "recruiterId")
		case "jobId":
			query.JobID, err = parseUUIDParam(value, "jobId")
		case "unread":
			query.Unread, err = strconv.ParseBool(value)
			if err != nil {
				err = pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", "unread")
			}
		}

		if err != nil {
			return nil, err
		}
	}

	if maxLimit := MaxPaginationLimit(); query.Limit > maxLimit {
		return nil, pkg.ValidateBusinessError(constant.ErrPaginationLimitExceeded, "", maxLimit)
	}

	return query, nil
}

// ReadMultipartFile reads an uploaded file, refusing files larger than maxBytes.
func ReadMultipartFile(fileHeader *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fileHeader.Size == 0 {
		return nil, pkg.ValidateBusinessError(constant.ErrEmptyFile, "")
	}

	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return nil, pkg.ValidateBusinessError(constant.ErrFileTooLarge, "", maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "")
	}

	defer file.Close()

	var reader io.Reader = file
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes+1)
	}

	buf := new(bytes.Buffer)

	n, err := io.Copy(buf, reader)
	if err != nil {
		return nil, pkg.ValidateBusinessError(constant.ErrInvalidFileUploaded, "")
	}

	if maxBytes > 0 && n > maxBytes {
		return nil, pkg.ValidateBusinessError(constant.ErrFileTooLarge, "", maxBytes)
	}

	if n == 0 {
		return nil, pkg.ValidateBusinessError(constant.ErrEmptyFile, "")
	}

	return buf.Bytes(), nil
}
