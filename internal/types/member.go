// Package types provides type definitions for structured data used throughout the member form system.
package types

import (
	"fmt"
	"maps"
	"unicode/utf8"
)

// FieldName identifies one of the recognized form fields.
type FieldName string

// Recognized form fields. The string values double as JSON keys of a persisted record.
const (
	FieldFullName    FieldName = "fullName"
	FieldEmail       FieldName = "email"
	FieldPhone       FieldName = "phone"
	FieldJobPosition FieldName = "jobPosition"
	FieldLinkedIn    FieldName = "linkedin"
	FieldGitHub      FieldName = "github"
)

var fieldOrder = []FieldName{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldJobPosition,
	FieldLinkedIn,
	FieldGitHub,
}

// Fields returns every recognized field in canonical order.
func Fields() []FieldName {
	out := make([]FieldName, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Valid reports whether n names a recognized field.
func (n FieldName) Valid() bool {
	switch n {
	case FieldFullName, FieldEmail, FieldPhone, FieldJobPosition, FieldLinkedIn, FieldGitHub:
		return true
	}
	return false
}

// UnknownFieldError is returned when a field name is not part of the form.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown form field: %q", e.Field)
}

// InvalidValueError is returned when a field value is not valid UTF-8 text.
type InvalidValueError struct {
	Field string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("form field %q: value is not valid UTF-8", e.Field)
}

// FormRecord holds the current value of every form field.
// Every field is always present; an untouched field is the empty string.
type FormRecord struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	JobPosition string `json:"jobPosition"`
	LinkedIn    string `json:"linkedin"`
	GitHub      string `json:"github"`
}

// NewFormRecord returns a record with all fields empty.
func NewFormRecord() FormRecord {
	return FormRecord{}
}

// Get returns the value of the named field.
func (r FormRecord) Get(name FieldName) (string, error) {
	switch name {
	case FieldFullName:
		return r.FullName, nil
	case FieldEmail:
		return r.Email, nil
	case FieldPhone:
		return r.Phone, nil
	case FieldJobPosition:
		return r.JobPosition, nil
	case FieldLinkedIn:
		return r.LinkedIn, nil
	case FieldGitHub:
		return r.GitHub, nil
	}
	return "", &UnknownFieldError{Field: string(name)}
}

// Value returns the value of the named field, or "" for unknown names.
func (r FormRecord) Value(name FieldName) string {
	v, _ := r.Get(name)
	return v
}

// Set updates a single field in place. Values must be valid UTF-8 so the record
// survives serialization unchanged.
func (r *FormRecord) Set(name FieldName, value string) error {
	if name.Valid() && !utf8.ValidString(value) {
		return &InvalidValueError{Field: string(name)}
	}
	switch name {
	case FieldFullName:
		r.FullName = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldJobPosition:
		r.JobPosition = value
	case FieldLinkedIn:
		r.LinkedIn = value
	case FieldGitHub:
		r.GitHub = value
	default:
		return &UnknownFieldError{Field: string(name)}
	}
	return nil
}

// Map returns the record as a flat field -> value mapping containing all six keys.
func (r FormRecord) Map() map[string]string {
	m := make(map[string]string, len(fieldOrder))
	for _, name := range fieldOrder {
		m[string(name)] = r.Value(name)
	}
	return m
}

// Equal reports whether both records hold the same value in every field.
func (r FormRecord) Equal(other FormRecord) bool {
	return r == other
}

// CheckText returns an InvalidValueError for the first field, in canonical order,
// whose value is not valid UTF-8.
func (r FormRecord) CheckText() error {
	for _, name := range fieldOrder {
		if !utf8.ValidString(r.Value(name)) {
			return &InvalidValueError{Field: string(name)}
		}
	}
	return nil
}

// IsEmpty reports whether every field is the empty string.
func (r FormRecord) IsEmpty() bool {
	return r == FormRecord{}
}

// ErrorMap maps a field to its current validation message.
// A missing key and an empty message both mean "no error".
type ErrorMap map[FieldName]string

// Get returns the message for a field, or "".
func (m ErrorMap) Get(name FieldName) string {
	if m == nil {
		return ""
	}
	return m[name]
}

// Has reports whether the field carries a non-empty message.
func (m ErrorMap) Has(name FieldName) bool {
	return m.Get(name) != ""
}

// Clone returns a copy with empty messages dropped.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	maps.Copy(out, m)
	maps.DeleteFunc(out, func(_ FieldName, msg string) bool {
		return msg == ""
	})
	return out
}

// Len counts fields with a non-empty message.
func (m ErrorMap) Len() int {
	n := 0
	for _, msg := range m {
		if msg != "" {
			n++
		}
	}
	return n
}

// Strings converts the map to string keys for JSON responses.
func (m ErrorMap) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for name, msg := range m {
		if msg != "" {
			out[string(name)] = msg
		}
	}
	return out
}

// Phase is the lifecycle phase of a registration form.
type Phase string

// Form lifecycle phases. Transitions run editing -> submitted -> confirmed -> editing.
const (
	PhaseEditing   Phase = "editing"
	PhaseSubmitted Phase = "submitted"
	PhaseConfirmed Phase = "confirmed"
)

// JobPosition is one selectable option of the job position dropdown.
type JobPosition struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
