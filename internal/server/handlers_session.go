package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/member-form/internal/card"
	"github.com/jonathan/member-form/internal/form"
	"github.com/jonathan/member-form/internal/server/middleware"
	"github.com/jonathan/member-form/internal/session"
	"github.com/jonathan/member-form/internal/types"
)

// stateOf snapshots a machine for the UI. Callers hold the session lock.
func stateOf(id string, m *form.Machine) types.SessionState {
	return types.SessionState{
		SessionID:  id,
		Phase:      m.Phase(),
		Values:     m.Record().Map(),
		Errors:     m.Errors().Strings(),
		Ready:      m.Ready(),
		DialogOpen: m.DialogOpen(),
	}
}

// currentSession resolves the session named by the request's token.
func (s *Server) currentSession(r *http.Request) (*session.Session, error) {
	id, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, session.ErrNotFound
	}
	return s.registry.Get(id)
}

// transition runs op on the current session and responds with the resulting state.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(m *form.Machine) error) {
	sess, err := s.currentSession(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var state types.SessionState
	err = sess.Do(func(m *form.Machine) error {
		if err := op(m); err != nil {
			return err
		}
		state = stateOf(sess.ID, m)
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, state)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.registry.Create()

	token, err := s.tokens.GenerateToken(sess.ID)
	if err != nil {
		s.registry.Delete(sess.ID)
		s.fail(w, err)
		return
	}

	var state types.SessionState
	_ = sess.Do(func(m *form.Machine) error {
		state = stateOf(sess.ID, m)
		return nil
	})

	s.jsonResponse(w, http.StatusCreated, types.SessionCreated{
		Token:              token,
		IdleTimeoutSeconds: int(s.registry.TTL().Seconds()),
		State:              state,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(*form.Machine) error { return nil })
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.registry.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFieldChange(w http.ResponseWriter, r *http.Request) {
	var req types.FieldChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, &ErrBadRequest{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, &ErrBadRequest{Message: "value is required"})
		return
	}

	name := types.FieldName(r.PathValue("name"))
	s.transition(w, r, func(m *form.Machine) error {
		return m.OnFieldChange(r.Context(), name, *req.Value)
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var resp types.SubmitResponse
	err = sess.Do(func(m *form.Machine) error {
		ok, err := m.OnSubmit(r.Context())
		if err != nil {
			return err
		}
		resp = types.SubmitResponse{Submitted: ok, State: stateOf(sess.ID, m)}
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	status := http.StatusOK
	if !resp.Submitted {
		status = http.StatusUnprocessableEntity
	}
	s.jsonResponse(w, status, resp)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(m *form.Machine) error {
		return m.OnConfirmAck(r.Context())
	})
}

func (s *Server) handleNewRegistration(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(m *form.Machine) error {
		return m.OnNewRegistration(r.Context())
	})
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	sess, err := s.currentSession(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	var view types.CardView
	err = sess.Do(func(m *form.Machine) error {
		record := m.Card()
		if record == nil {
			return &ErrNoCard{Phase: m.Phase()}
		}
		if !s.catalog.Contains(record.JobPosition) {
			s.logger.Warnw("Stored job position is not in the catalog",
				"session_id", sess.ID,
				"job_position", record.JobPosition,
			)
		}
		view = card.Build(*record, s.catalog)
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}
