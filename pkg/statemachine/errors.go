package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDefinition = errors.New("invalid state machine definition")
	ErrNoTransition      = errors.New("no transition for event")
)

// TransitionError reports an event fired in a state that does not accept it.
type TransitionError struct {
	State string
	Event string
	Final bool
}

func (e *TransitionError) Error() string {
	if e.Final {
		return fmt.Sprintf("state %q is final, cannot handle event %q", e.State, e.Event)
	}
	return fmt.Sprintf("no transition from state %q on event %q", e.State, e.Event)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrNoTransition
}
