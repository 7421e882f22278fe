// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dlt-talenthub/talenthub/pkg"
	cn "github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en2 "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// DecodeHandlerFunc is a handler which works with withBody decorator.
// It receives a struct which was decoded by withBody decorator before.
// Ex: json -> withBody -> DecodeHandlerFunc.
type DecodeHandlerFunc func(p any, c *fiber.Ctx) error

// decoderHandler decodes payload coming from requests.
type decoderHandler struct {
	handler      DecodeHandlerFunc
	structSource any
}

func newOfType(s any) any {
	t := reflect.TypeOf(s)
	v := reflect.New(t.Elem())

	return v.Interface()
}

// WithBody decodes the request body into a fresh value of the same type as s, rejects
// unknown fields and validation failures, and then calls h with the decoded value.
func WithBody(s any, h DecodeHandlerFunc) fiber.Handler {
	d := &decoderHandler{
		handler:      h,
		structSource: s,
	}

	return d.FiberHandlerFunc
}

// FiberHandlerFunc decodes the body, checks for extraneous fields, validates and calls the wrapped handler.
func (d *decoderHandler) FiberHandlerFunc(c *fiber.Ctx) error {
	s := newOfType(d.structSource)

	bodyBytes := c.Body()

	trimmedBody := strings.TrimSpace(string(bodyBytes))
	if len(trimmedBody) == 0 || trimmedBody == "null" {
		return WithError(c, pkg.ValidateBusinessError(cn.ErrMissingRequiredFields, ""))
	}

	var originalMap map[string]any
	if err := json.Unmarshal(bodyBytes, &originalMap); err != nil {
		return WithError(c, pkg.ValidateBusinessError(cn.ErrBadRequest, "", "body must be a JSON object"))
	}

	if err := validateTypeMismatches(originalMap, s); err != nil {
		return WithError(c, err)
	}

	if err := json.Unmarshal(bodyBytes, s); err != nil {
		fieldName := extractFieldNameFromUnmarshalError(err.Error())
		if fieldName == "" {
			return WithError(c, pkg.ValidateBusinessError(cn.ErrBadRequest, "", err.Error()))
		}

		return BadRequest(c, pkg.ValidateBadRequestFieldsError(nil, pkg.FieldValidations{fieldName: "Invalid type for this field"}, "", nil))
	}

	marshaled, err := json.Marshal(s)
	if err != nil {
		return err
	}

	var marshaledMap map[string]any
	if err := json.Unmarshal(marshaled, &marshaledMap); err != nil {
		return err
	}

	if diffFields := findUnknownFields(originalMap, marshaledMap); len(diffFields) > 0 {
		return BadRequest(c, pkg.ValidateBadRequestFieldsError(nil, nil, "", diffFields))
	}

	if err := ValidateStruct(s); err != nil {
		return BadRequest(c, err)
	}

	return d.handler(s, c)
}

// findUnknownFields finds fields that are present in the original map but not in the marshaled map.
func findUnknownFields(original, marshaled map[string]any) map[string]any {
	diffFields := make(map[string]any)

	numKinds := pkg.GetMapNumKinds()

	for key, value := range original {
		if numKinds[reflect.ValueOf(value).Kind()] && value == 0.0 {
			continue
		}

		if isZeroJSONValue(value) {
			if _, ok := marshaled[key]; !ok {
				continue
			}
		}

		marshaledValue, ok := marshaled[key]
		if !ok {
			diffFields[key] = value
			continue
		}

		switch originalValue := value.(type) {
		case map[string]any:
			if marshaledMap, ok := marshaledValue.(map[string]any); ok {
				if nestedDiff := findUnknownFields(originalValue, marshaledMap); len(nestedDiff) > 0 {
					diffFields[key] = nestedDiff
				}
			} else if !reflect.DeepEqual(originalValue, marshaledValue) {
				diffFields[key] = value
			}
		case []any:
			if marshaledArray, ok := marshaledValue.([]any); ok {
				if arrayDiff := compareSlices(originalValue, marshaledArray); len(arrayDiff) > 0 {
					diffFields[key] = arrayDiff
				}
			} else if !reflect.DeepEqual(originalValue, marshaledValue) {
				diffFields[key] = value
			}
		default:
			if !reflect.DeepEqual(value, marshaledValue) {
				diffFields[key] = value
			}
		}
	}

	return diffFields
}

// isZeroJSONValue reports whether value is a JSON zero value that omitempty drops on re-marshal.
func isZeroJSONValue(value any) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case bool:
		return !v
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	return false
}

// compareSlices compares two slices and returns differences.
func compareSlices(original, marshaled []any) []any {
	var diff []any

	for i, item := range original {
		if i >= len(marshaled) {
			diff = append(diff, item)
			continue
		}

		if originalMap, ok := item.(map[string]any); ok {
			if marshaledMap, ok := marshaled[i].(map[string]any); ok {
				if nestedDiff := findUnknownFields(originalMap, marshaledMap); len(nestedDiff) > 0 {
					diff = append(diff, nestedDiff)
				}
			}
		} else if !reflect.DeepEqual(item, marshaled[i]) {
			diff = append(diff, item)
		}
	}

	for i := len(original); i < len(marshaled); i++ {
		diff = append(diff, marshaled[i])
	}

	return diff
}

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
)

// ValidateStruct validates a struct against its validate tags.
func ValidateStruct(s any) error {
	v, trans := newValidator()

	k := reflect.ValueOf(s).Kind()
	if k == reflect.Ptr {
		k = reflect.ValueOf(s).Elem().Kind()
	}

	if k != reflect.Struct {
		return nil
	}

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	return malformedRequestErr(vErrs, trans)
}

func fields(errs validator.ValidationErrors, trans ut.Translator) pkg.FieldValidations {
	if len(errs) == 0 {
		return nil
	}

	out := make(pkg.FieldValidations, len(errs))
	for _, e := range errs {
		out[formatErrorFieldName(e.Namespace())] = e.Translate(trans)
	}

	return out
}

func fieldsRequired(myMap pkg.FieldValidations) pkg.FieldValidations {
	result := make(pkg.FieldValidations)

	for key, value := range myMap {
		if strings.Contains(value, "required") {
			result[key] = value
		}
	}

	return result
}

func malformedRequestErr(err validator.ValidationErrors, trans ut.Translator) pkg.ValidationKnownFieldsError {
	invalidFieldsMap := fields(err, trans)

	var vErr pkg.ValidationKnownFieldsError

	_ = errors.As(pkg.ValidateBadRequestFieldsError(fieldsRequired(invalidFieldsMap), invalidFieldsMap, "", nil), &vErr)

	return vErr
}

func newValidator() (*validator.Validate, ut.Translator) {
	validatorOnce.Do(func() {
		locale := en.New()
		uni := ut.New(locale, locale)

		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		if err := en2.RegisterDefaultTranslations(v, trans); err != nil {
			panic(err)
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}

			return name
		})

		_ = v.RegisterTranslation("required", trans, func(ut ut.Translator) error {
			return ut.Add("required", "{0} is a required field", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("required", formatErrorFieldName(fe.Namespace()))

			return t
		})

		_ = v.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
			return ut.Add("oneof", "{0} must be one of [{1}]", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("oneof", formatErrorFieldName(fe.Namespace()), fe.Param())

			return t
		})

		validate, translator = v, trans
	})

	return validate, translator
}

var fieldNamePattern = regexp.MustCompile(`^[^.]+\.(.+)$`)

// formatErrorFieldName drops the struct name prefix from a validator namespace, e.g. "CreateJobInput.title" -> "title".
func formatErrorFieldName(text string) string {
	if matches := fieldNamePattern.FindStringSubmatch(text); len(matches) > 1 {
		return matches[1]
	}

	return text
}

// validateTypeMismatches checks whether the JSON payload has values whose type cannot fit the struct fields.
func validateTypeMismatches(originalMap map[string]any, s any) error {
	val := reflect.ValueOf(s)
	if val.Kind() != reflect.Ptr {
		return nil
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)

		jsonTag := fieldType.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		jsonName := strings.Split(jsonTag, ",")[0]

		originalValue, exists := originalMap[jsonName]
		if !exists || originalValue == nil {
			continue
		}

		kind := fieldType.Type.Kind()
		if kind == reflect.Ptr {
			kind = fieldType.Type.Elem().Kind()
		}

		if received := getTypeMismatch(originalValue, kind); received != "" {
			return pkg.ValidateBusinessError(cn.ErrBadRequest, "", fmt.Sprintf("field '%s' expects %s but received %s", jsonName, kind.String(), received))
		}
	}

	return nil
}

// getTypeMismatch returns the JSON type name of originalValue when it cannot decode into fieldKind.
func getTypeMismatch(originalValue any, fieldKind reflect.Kind) string {
	switch originalValue.(type) {
	case string:
		if fieldKind == reflect.Map || fieldKind == reflect.Slice || fieldKind == reflect.Bool || pkg.GetMapNumKinds()[fieldKind] {
			return "string"
		}
	case map[string]any:
		if fieldKind != reflect.Map && fieldKind != reflect.Struct && fieldKind != reflect.Interface {
			return "object"
		}
	case []any:
		if fieldKind != reflect.Slice && fieldKind != reflect.Array && fieldKind != reflect.Interface {
			return "array"
		}
	case float64:
		if !pkg.GetMapNumKinds()[fieldKind] && fieldKind != reflect.Interface {
			return "number"
		}
	case bool:
		if fieldKind != reflect.Bool && fieldKind != reflect.Interface {
			return "boolean"
		}
	}

	return ""
}

var unmarshalFieldPattern = regexp.MustCompile(`struct field \w+\.(\w+)`)

// extractFieldNameFromUnmarshalError extracts the field name from a JSON unmarshal error.
func extractFieldNameFromUnmarshalError(errorMsg string) string {
	if matches := unmarshalFieldPattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
		return matches[1]
	}

	return ""
}
