// Package validation provides the field rules and record validator of the member registration form.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/member-form/internal/types"
)

// Kind classifies a validation failure.
type Kind string

const (
	// RequiredFieldMissing means a required field is empty.
	RequiredFieldMissing Kind = "required_field_missing"
	// FormatInvalid means a non-empty value does not have the expected format.
	FormatInvalid Kind = "format_invalid"
)

// FieldError represents a single failed field.
type FieldError struct {
	Field   types.FieldName
	Kind    Kind
	Message string
}

// ValidationError collects every failed field of a record, in canonical field order.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ErrorMap converts the collected failures to a field -> message mapping.
func (ve *ValidationError) ErrorMap() types.ErrorMap {
	m := make(types.ErrorMap, len(ve.Errors))
	for _, fe := range ve.Errors {
		m[fe.Field] = fe.Message
	}
	return m
}

// Messages returns the failure messages in field order.
func (ve *ValidationError) Messages() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		out = append(out, fe.Message)
	}
	return out
}
