package util

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// credit: https://github.com/go-playground/validator/issues/559#issuecomment-976459959

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fe validator.FieldError, field string) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "oneof":
		return fmt.Sprintf("%v must be one of [%v]", field, fe.Param())
	case "docid":
		return fmt.Sprintf("%v is not a valid document id", field)
	case "cmin":
		return fmt.Sprintf("%v must be at least %v non-whitespace characters", field, fe.Param())
	case "cmax":
		return fmt.Sprintf("%v must be at most %v non-whitespace characters", field, fe.Param())
	case "strNotEmpty":
		return fmt.Sprintf("%v must not be empty or contain only whitespace charaters", field)
	}

	log.Printf("Unknown tag: %v with error: %v", fe.Tag(), fe.Error())
	return fe.Error()
}

/*
GenerateErrorMessages turns err into the "errors" list of a failed response.

Validation errors give one entry per field, any other error a single entry. Optional parameters:
  - map[string]string renames struct fields to their JSON names, e.g. {"PdfId": "pdfId"}
  - string names the field of a non-validation error, "Unknown" otherwise

Example output for a sign request without an id:

	[{"field": "pdfId", "message": "pdfId is required"}]
*/
func GenerateErrorMessages(err error, optionalParams ...interface{}) []ApiError {
	var customField map[string]string
	fieldName := "Unknown"

	for _, param := range optionalParams {
		switch v := param.(type) {
		case map[string]string:
			customField = v
		case string:
			fieldName = v
		}
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ApiError, len(ve))
		for i, fe := range ve {
			field := fe.Field()
			if renamed, ok := customField[field]; ok {
				field = renamed
			}
			out[i] = ApiError{Field: field, Message: msgForTag(fe, field)}
		}
		return out
	}

	return []ApiError{
		{
			Field:   fieldName,
			Message: err.Error(),
		},
	}
}

// GenerateErrorMessagesAsString returns the first message of GenerateErrorMessages.
// Usage: GenerateErrorMessagesAsString(err, map[string]string{"PdfId": "pdfId"})
func GenerateErrorMessagesAsString(err error, customField map[string]string) string {
	msgs := GenerateErrorMessages(err, customField)
	if len(msgs) == 0 {
		return err.Error()
	}
	return msgs[0].Message
}

func trimmedString(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return "", false
	}
	return strings.TrimSpace(field.String()), true
}

// check if string is empty, after trimming spaces
// Usage: `binding:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	str, ok := trimmedString(fl)
	return ok && len(str) > 0
}

// check if string has length of at least the minimum value, after trimming spaces
// Usage: `binding:"cmin=3"`
func CustomMin(fl validator.FieldLevel) bool {
	str, ok := trimmedString(fl)
	if !ok {
		return false
	}

	minLength, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(str) >= minLength
}

// check if string has length of at most the maximum value, after trimming spaces
// Usage: `binding:"cmax=200"`
func CustomMax(fl validator.FieldLevel) bool {
	str, ok := trimmedString(fl)
	if !ok {
		return false
	}

	maxLength, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(str) <= maxLength
}

// check if string is a stored document id
// Usage: `binding:"docid"`
func DocumentID(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	return IsDocumentID(field.String())
}

// RegisterValidations adds the custom tags of this package to v.
func RegisterValidations(v *validator.Validate) error {
	validations := map[string]validator.Func{
		"strNotEmpty": StrNotEmpty,
		"cmin":        CustomMin,
		"cmax":        CustomMax,
		"docid":       DocumentID,
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}

	return nil
}
