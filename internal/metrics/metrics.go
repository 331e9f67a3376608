// Package metrics provides prometheus collectors for the member form engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics groups the form collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Field edits by field name
	FieldEdits *prometheus.CounterVec

	// Validation failures reported at submit time by field and kind
	ValidationErrors *prometheus.CounterVec

	// Submit attempts by outcome: accepted, rejected (invalid), failed (storage)
	Submissions *prometheus.CounterVec

	// Phase transitions
	Transitions *prometheus.CounterVec

	// Live form sessions
	SessionsActive prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FieldEdits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "member_form_field_edits_total",
			Help: "Total field edits by field",
		}, []string{"field"}),

		ValidationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "member_form_validation_errors_total",
			Help: "Validation failures reported on submit by field and kind",
		}, []string{"field", "kind"}),

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "member_form_submissions_total",
			Help: "Submit attempts by outcome",
		}, []string{"outcome"}),

		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "member_form_transitions_total",
			Help: "Form phase transitions",
		}, []string{"from", "to"}),

		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "member_form_sessions_active",
			Help: "Number of live form sessions",
		}),
	}
}

// IncrementFieldEdit records an edit of a field.
func (m *Metrics) IncrementFieldEdit(field string) {
	if m != nil {
		m.FieldEdits.WithLabelValues(field).Inc()
	}
}

// IncrementValidationError records a field failure seen on submit.
func (m *Metrics) IncrementValidationError(field, kind string) {
	if m != nil {
		m.ValidationErrors.WithLabelValues(field, kind).Inc()
	}
}

// IncrementSubmission records a submit outcome.
func (m *Metrics) IncrementSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

// IncrementTransition records a phase change.
func (m *Metrics) IncrementTransition(from, to string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to).Inc()
	}
}

// SetSessionsActive records the number of live sessions.
func (m *Metrics) SetSessionsActive(n int) {
	if m != nil {
		m.SessionsActive.Set(float64(n))
	}
}
