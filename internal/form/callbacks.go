package form

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/jonathan/member-form/internal/types"
)

// callbacks registers the phase entry hooks.
// These callbacks are lightweight and cannot fail.
func (m *Machine) callbacks() fsm.Callbacks {
	return fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			m.metrics.IncrementTransition(e.Src, e.Dst)
			m.logger.Infow("Form phase changed", "event", e.Event, "from", e.Src, "to", e.Dst)
		},

		"enter_" + string(types.PhaseSubmitted): func(_ context.Context, _ *fsm.Event) {
			m.errors = types.ErrorMap{}
			m.dialogOpen = true
		},

		"enter_" + string(types.PhaseConfirmed): func(_ context.Context, e *fsm.Event) {
			m.dialogOpen = false
			m.card = nil
			if len(e.Args) > 0 {
				if card, ok := e.Args[0].(*types.FormRecord); ok && card != nil {
					m.card = card
				}
			}
		},

		"enter_" + string(types.PhaseEditing): func(_ context.Context, e *fsm.Event) {
			if e.Event == EventRestart {
				m.reset()
			}
		},
	}
}
