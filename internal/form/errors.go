package form

import (
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/jonathan/member-form/internal/types"
)

// TransitionError is returned when an operation is not allowed in the current phase.
type TransitionError struct {
	Event string
	Phase types.Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while form is %s", e.Event, e.Phase)
}

// translate maps looplab/fsm errors to form errors.
// A self-transition reports NoTransitionError, which is not a failure here.
func translate(err error, event string, phase types.Phase) error {
	if err == nil {
		return nil
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) && noTransition.Err == nil {
		return nil
	}

	var invalid fsm.InvalidEventError
	if errors.As(err, &invalid) {
		return &TransitionError{Event: event, Phase: phase}
	}

	return fmt.Errorf("form event %s: %w", event, err)
}
