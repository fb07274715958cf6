package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks an input struct's validate tags and returns a
// per-field message map, nil when the input is valid. The service inputs
// only use required and oneof (test type).
func ValidateStruct(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	messages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			messages[fieldErr.Field()] = fieldMessage(fieldErr)
		}
	}

	return messages
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", " or ")
		return fmt.Sprintf("must be %s", options)
	default:
		return "is invalid"
	}
}

// FormatValidationErrors flattens the message map into one line for error
// wrapping and menu display. Fields are sorted so the output is stable.
func FormatValidationErrors(messages map[string]string) string {
	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, messages[field]))
	}
	return strings.Join(parts, "; ")
}
