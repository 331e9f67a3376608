package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/member-form/internal/form"
	"github.com/jonathan/member-form/internal/session"
	"github.com/jonathan/member-form/internal/types"
	"github.com/jonathan/member-form/internal/validation"
)

// ErrBadRequest indicates a malformed request body or parameter.
type ErrBadRequest struct {
	Message string
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("bad request: %s", e.Message)
}

// ErrNoCard indicates the session has no confirmed record to display.
type ErrNoCard struct {
	Phase types.Phase
}

func (e *ErrNoCard) Error() string {
	return fmt.Sprintf("no member card available while form is %s", e.Phase)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		transitionErr *form.TransitionError
		unknownField  *types.UnknownFieldError
		invalidValue  *types.InvalidValueError
		validationErr *validation.ValidationError
		badRequest    *ErrBadRequest
		noCard        *ErrNoCard
	)

	switch {
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &unknownField), errors.As(err, &noCard), errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &badRequest), errors.As(err, &invalidValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
