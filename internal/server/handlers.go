package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/member-form/internal/types"
	"github.com/jonathan/member-form/internal/validation"
)

// handleJobPositions lists the catalog, filtered by the optional q parameter.
func (s *Server) handleJobPositions(w http.ResponseWriter, r *http.Request) {
	positions := s.catalog.Search(r.URL.Query().Get("q"))
	s.jsonResponse(w, http.StatusOK, map[string]any{"job_positions": positions})
}

// handleValidate checks a complete record without touching any session.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var record types.FormRecord
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&record); err != nil {
		s.fail(w, &ErrBadRequest{Message: "invalid JSON body"})
		return
	}

	err := s.validator.ValidateAll(record)
	if err == nil {
		s.jsonResponse(w, http.StatusOK, types.ValidateResponse{Valid: true})
		return
	}

	var ve *validation.ValidationError
	if !errors.As(err, &ve) {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, HTTPStatus(ve), types.ValidateResponse{
		Valid:  false,
		Errors: ve.ErrorMap().Strings(),
	})
}
