package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/member-form/internal/form"
	"github.com/jonathan/member-form/internal/session"
	"github.com/jonathan/member-form/internal/types"
	"github.com/jonathan/member-form/internal/validation"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"transition", &form.TransitionError{Event: form.EventSubmit, Phase: types.PhaseSubmitted}, http.StatusConflict},
		{"unknown field", &types.UnknownFieldError{Field: "nickname"}, http.StatusNotFound},
		{"no card", &ErrNoCard{Phase: types.PhaseEditing}, http.StatusNotFound},
		{"session", session.ErrNotFound, http.StatusNotFound},
		{"wrapped session", fmt.Errorf("lookup: %w", session.ErrNotFound), http.StatusNotFound},
		{"validation", &validation.ValidationError{}, http.StatusUnprocessableEntity},
		{"bad request", &ErrBadRequest{Message: "invalid JSON"}, http.StatusBadRequest},
		{"invalid value", &types.InvalidValueError{Field: "fullName"}, http.StatusBadRequest},
		{"storage", errors.New("redis: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "bad request: invalid JSON", (&ErrBadRequest{Message: "invalid JSON"}).Error())
	assert.Equal(t, "no member card available while form is editing", (&ErrNoCard{Phase: types.PhaseEditing}).Error())
}
