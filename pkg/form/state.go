package form

import (
	"fmt"
	"maps"

	"github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/validation"
)

// State holds field values and the inline errors of the last validation.
// It performs no I/O and is not safe for concurrent use; Form serialises
// access to it.
type State struct {
	schema    model.FormSchema
	validator *validation.Validator
	initial   map[string]string
	values    map[string]string
	errors    map[string]string
}

// NewState builds state for schema. initial overrides schema defaults for
// the named fields; names outside the schema are rejected.
func NewState(schema model.FormSchema, initial map[string]string) (*State, error) {
	validator, err := validation.New(schema)
	if err != nil {
		return nil, fmt.Errorf("form: %s: %w", schema.ID, err)
	}
	start := schema.InitialValues()
	for name, value := range initial {
		if _, ok := start[name]; !ok {
			return nil, fmt.Errorf("form: %s: initial value for unknown field %q", schema.ID, name)
		}
		start[name] = value
	}
	return &State{
		schema:    schema,
		validator: validator,
		initial:   start,
		values:    maps.Clone(start),
		errors:    map[string]string{},
	}, nil
}

// SetValue updates a field and clears its error. Unknown names are ignored.
func (s *State) SetValue(name, value string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	s.values[name] = value
	delete(s.errors, name)
}

// Value returns the current value of name.
func (s *State) Value(name string) string {
	return s.values[name]
}

// Values returns a copy of every field value.
func (s *State) Values() map[string]string {
	return maps.Clone(s.values)
}

// Initial returns a copy of the values restored by Reset.
func (s *State) Initial() map[string]string {
	return maps.Clone(s.initial)
}

// Validate evaluates every field, records the failures for display and
// returns them in declaration order.
func (s *State) Validate() validation.Errors {
	errs := s.validator.Validate(s.values)
	s.errors = map[string]string{}
	for _, fe := range errs {
		s.errors[fe.Field] = fe.Message
	}
	return errs
}

// Reset restores initial values and clears errors.
func (s *State) Reset() {
	s.values = maps.Clone(s.initial)
	s.errors = map[string]string{}
}

// Errors returns a copy of the recorded field errors.
func (s *State) Errors() map[string]string {
	return maps.Clone(s.errors)
}

// ErrorFor returns the recorded error for name, if any.
func (s *State) ErrorFor(name string) (string, bool) {
	msg, ok := s.errors[name]
	return msg, ok
}

// SetErrors replaces the recorded errors. Entries for unknown fields are
// dropped.
func (s *State) SetErrors(errs map[string]string) {
	s.errors = make(map[string]string, len(errs))
	for name, msg := range errs {
		if _, ok := s.values[name]; ok && msg != "" {
			s.errors[name] = msg
		}
	}
}
