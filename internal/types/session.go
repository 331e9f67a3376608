package types

import (
	"github.com/go-playground/validator/v10"
)

// FieldChangeRequest is the body of a single field edit.
type FieldChangeRequest struct {
	// Value may be empty: clearing a field is a legitimate edit.
	Value *string `json:"value" validate:"required"`
}

// Validate validates the FieldChangeRequest using the validator.
func (r *FieldChangeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SessionState is the UI-facing snapshot of one form session.
type SessionState struct {
	SessionID  string            `json:"session_id"`
	Phase      Phase             `json:"phase"`
	Values     map[string]string `json:"values"`
	Errors     map[string]string `json:"errors"`
	Ready      bool              `json:"ready"`
	DialogOpen bool              `json:"dialog_open"`
}

// SessionCreated is returned when a new form session starts.
type SessionCreated struct {
	Token string `json:"token" validate:"required"`
	// IdleTimeoutSeconds is how long the session survives without requests.
	IdleTimeoutSeconds int          `json:"idle_timeout_seconds"`
	State              SessionState `json:"state"`
}

// SubmitResponse reports the outcome of a submit attempt.
type SubmitResponse struct {
	Submitted bool         `json:"submitted"`
	State     SessionState `json:"state"`
}

// CardView is the read-only confirmation card built from a persisted record.
type CardView struct {
	FullName         string `json:"full_name"`
	JobPosition      string `json:"job_position"`
	JobPositionLabel string `json:"job_position_label,omitempty"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	LinkedIn         string `json:"linkedin,omitempty"`
	GitHub           string `json:"github,omitempty"`
}

// ValidateResponse is returned by stateless record validation.
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}
