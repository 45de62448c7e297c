package form

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for edges the workflow does not allow.
var ErrInvalidTransition = errors.New("form: invalid transition")

// Status is the workflow state of a form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
)

var transitions = map[Status][]Status{
	StatusIdle:       {StatusValidating},
	StatusValidating: {StatusIdle, StatusSubmitting},
	StatusSubmitting: {StatusIdle},
}

// Machine tracks the workflow state. The zero value is Idle.
type Machine struct {
	status Status
}

// Status returns the current state.
func (m *Machine) Status() Status {
	if m.status == "" {
		return StatusIdle
	}
	return m.status
}

// Can reports whether moving to next is allowed.
func (m *Machine) Can(next Status) bool {
	for _, allowed := range transitions[m.Status()] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves to next or returns ErrInvalidTransition.
func (m *Machine) Transition(next Status) error {
	if !m.Can(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.Status(), next)
	}
	m.status = next
	return nil
}
