// Package form implements the lifecycle and mutation policy of the member registration form.
package form

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/jonathan/member-form/internal/metrics"
	"github.com/jonathan/member-form/internal/store"
	"github.com/jonathan/member-form/internal/types"
	"github.com/jonathan/member-form/internal/validation"
)

// Events of the form lifecycle.
const (
	EventEdit        = "edit"
	EventSubmit      = "submit"
	EventAcknowledge = "acknowledge"
	EventRestart     = "restart"
)

// Reveal decides which validation messages the UI sees while editing.
type Reveal string

const (
	// RevealAll shows the complete current ErrorMap once the form has been edited.
	RevealAll Reveal = "all"
	// RevealTouched shows messages only for edited fields until the first submit attempt.
	RevealTouched Reveal = "touched"
)

// ParseReveal maps a configuration value to a Reveal policy.
func ParseReveal(s string) (Reveal, error) {
	switch Reveal(s) {
	case "", RevealAll:
		return RevealAll, nil
	case RevealTouched:
		return RevealTouched, nil
	}
	return "", fmt.Errorf("invalid reveal policy: %q (must be %q or %q)", s, RevealAll, RevealTouched)
}

// Config wires a Machine to its collaborators.
type Config struct {
	Validator *validation.Validator
	Gateway   store.Gateway
	Logger    *zap.SugaredLogger
	Metrics   *metrics.Metrics
	Reveal    Reveal
}

// Machine owns the values, the error mapping and the phase of one form.
// It is not safe for concurrent use; callers serialize transitions.
type Machine struct {
	fsm       *fsm.FSM
	validator *validation.Validator
	gateway   store.Gateway
	logger    *zap.SugaredLogger
	metrics   *metrics.Metrics
	reveal    Reveal

	record  types.FormRecord
	errors  types.ErrorMap
	touched map[types.FieldName]bool

	// submitAttempted reveals every message regardless of policy.
	submitAttempted bool
	dialogOpen      bool
	card            *types.FormRecord
}

// New creates a Machine in the editing phase with an empty record.
func New(cfg Config) *Machine {
	if cfg.Validator == nil {
		cfg.Validator = validation.New()
	}
	if cfg.Gateway == nil {
		cfg.Gateway = store.NewMemory()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Reveal == "" {
		cfg.Reveal = RevealAll
	}

	m := &Machine{
		validator: cfg.Validator,
		gateway:   cfg.Gateway,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		reveal:    cfg.Reveal,
	}
	m.reset()

	editing := string(types.PhaseEditing)
	submitted := string(types.PhaseSubmitted)
	confirmed := string(types.PhaseConfirmed)

	m.fsm = fsm.NewFSM(
		editing,
		fsm.Events{
			{Name: EventEdit, Src: []string{editing}, Dst: editing},
			{Name: EventSubmit, Src: []string{editing}, Dst: submitted},
			{Name: EventAcknowledge, Src: []string{submitted}, Dst: confirmed},
			{Name: EventRestart, Src: []string{confirmed}, Dst: editing},
		},
		m.callbacks(),
	)
	return m
}

func (m *Machine) reset() {
	m.record = types.NewFormRecord()
	m.errors = types.ErrorMap{}
	m.touched = make(map[types.FieldName]bool)
	m.submitAttempted = false
	m.dialogOpen = false
	m.card = nil
}

// Phase returns the current lifecycle phase.
func (m *Machine) Phase() types.Phase {
	return types.Phase(m.fsm.Current())
}

// FieldValue returns the current value of a field.
func (m *Machine) FieldValue(name types.FieldName) (string, error) {
	return m.record.Get(name)
}

// FieldError returns the message the UI should show next to a field, or "".
func (m *Machine) FieldError(name types.FieldName) (string, error) {
	if !name.Valid() {
		return "", &types.UnknownFieldError{Field: string(name)}
	}
	if !m.visible(name) {
		return "", nil
	}
	return m.errors.Get(name), nil
}

func (m *Machine) visible(name types.FieldName) bool {
	if m.submitAttempted || m.reveal == RevealAll {
		return true
	}
	return m.touched[name]
}

// Record returns a copy of the current record.
func (m *Machine) Record() types.FormRecord {
	return m.record
}

// Errors returns the visible messages under the reveal policy.
func (m *Machine) Errors() types.ErrorMap {
	out := m.errors.Clone()
	maps.DeleteFunc(out, func(name types.FieldName, _ string) bool {
		return !m.visible(name)
	})
	return out
}

// Ready reports whether the current record would pass submit validation.
func (m *Machine) Ready() bool {
	return m.validator.ValidateAll(m.record) == nil
}

// DialogOpen reports whether the confirmation dialog is pending acknowledgment.
func (m *Machine) DialogOpen() bool {
	return m.dialogOpen
}

// Card returns the record loaded from the gateway on confirmation,
// or nil when none was found or the form is not confirmed.
func (m *Machine) Card() *types.FormRecord {
	if m.card == nil {
		return nil
	}
	c := *m.card
	return &c
}

// OnFieldChange sets a field and revalidates.
func (m *Machine) OnFieldChange(ctx context.Context, name types.FieldName, value string) error {
	if !m.fsm.Can(EventEdit) {
		return &TransitionError{Event: EventEdit, Phase: m.Phase()}
	}
	if err := m.record.Set(name, value); err != nil {
		return err
	}
	m.touched[name] = true

	res := m.validator.ValidateField(m.record, name)

	// Recompute every message so none describes an older value.
	m.errors = m.validator.Errors(m.record)
	m.metrics.IncrementFieldEdit(string(name))

	m.logger.Debugw("Field changed",
		"field", name,
		"valid", res.OK(),
		"errors", m.errors.Len(),
	)

	return translate(m.fsm.Event(ctx, EventEdit, name), EventEdit, m.Phase())
}

// OnSubmit validates the whole record and, when valid, persists it and moves to submitted.
// An invalid record is a normal outcome: it returns false and a nil error.
// A gateway failure returns the error and leaves phase, errors and the stored record as they were.
func (m *Machine) OnSubmit(ctx context.Context) (bool, error) {
	if !m.fsm.Can(EventSubmit) {
		return false, &TransitionError{Event: EventSubmit, Phase: m.Phase()}
	}

	if err := m.validator.ValidateAll(m.record); err != nil {
		var ve *validation.ValidationError
		if !errors.As(err, &ve) {
			return false, err
		}
		m.errors = ve.ErrorMap()
		m.submitAttempted = true
		for _, fe := range ve.Errors {
			m.metrics.IncrementValidationError(string(fe.Field), string(fe.Kind))
		}
		m.metrics.IncrementSubmission(metrics.OutcomeRejected)
		m.logger.Infow("Submit rejected", "errors", ve.Messages())
		return false, nil
	}

	snapshot := m.record
	if err := store.WriteRecord(ctx, m.gateway, snapshot); err != nil {
		m.metrics.IncrementSubmission(metrics.OutcomeFailed)
		m.logger.Errorw("Submit failed to persist record", "error", err)
		return false, err
	}

	m.metrics.IncrementSubmission(metrics.OutcomeAccepted)
	if err := m.fsm.Event(ctx, EventSubmit); err != nil {
		return false, translate(err, EventSubmit, m.Phase())
	}
	return true, nil
}

// OnConfirmAck acknowledges the confirmation and loads the stored record for the card.
func (m *Machine) OnConfirmAck(ctx context.Context) error {
	if !m.fsm.Can(EventAcknowledge) {
		return &TransitionError{Event: EventAcknowledge, Phase: m.Phase()}
	}

	var card *types.FormRecord
	r, err := store.ReadRecord(ctx, m.gateway)
	switch {
	case err == nil:
		card = &r
	case errors.Is(err, store.ErrNotFound):
		m.logger.Warnw("No stored record found for confirmation card")
	default:
		return err
	}

	return translate(m.fsm.Event(ctx, EventAcknowledge, card), EventAcknowledge, m.Phase())
}

// OnNewRegistration starts over with an empty record. The stored record is kept.
func (m *Machine) OnNewRegistration(ctx context.Context) error {
	return translate(m.fsm.Event(ctx, EventRestart), EventRestart, m.Phase())
}
