package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-leadform/pkg/model"
)

// FieldError pairs a failing field with its human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists failing fields in schema declaration order.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Map returns the errors keyed by field name.
func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// Validator evaluates the compiled rules of one form schema.
type Validator struct {
	order []string
	rules map[string][]Rule
}

// New compiles every field rule of schema. Required fields without an
// explicit nonEmpty rule get one prepended.
func New(schema model.FormSchema) (*Validator, error) {
	v := &Validator{
		order: make([]string, 0, len(schema.Fields)),
		rules: make(map[string][]Rule, len(schema.Fields)),
	}
	for _, field := range schema.Fields {
		if _, dup := v.rules[field.Name]; dup {
			return nil, fmt.Errorf("validation: duplicate field %q", field.Name)
		}
		rules := make([]Rule, 0, len(field.Validations)+1)
		if field.Required && !hasKind(field.Validations, model.ValidationRuleNonEmpty) {
			nonEmpty, _ := Compile(field, model.NonEmpty(""))
			rules = append(rules, nonEmpty)
		}
		for _, decl := range field.Validations {
			rule, err := Compile(field, decl)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		v.order = append(v.order, field.Name)
		v.rules[field.Name] = rules
	}
	return v, nil
}

// MustNew panics when the schema does not compile. Useful for init-time wiring.
func MustNew(schema model.FormSchema) *Validator {
	v, err := New(schema)
	if err != nil {
		panic(err)
	}
	return v
}

// Field evaluates the rules of a single field. It returns the message of the
// first failing rule and false, or "" and true when the value passes.
func (v *Validator) Field(name, value string) (string, bool) {
	if v == nil {
		return "", true
	}
	for _, rule := range v.rules[name] {
		if !rule.Check(value) {
			return rule.Message, false
		}
	}
	return "", true
}

// Validate evaluates every field against values. Missing values are treated
// as empty strings.
func (v *Validator) Validate(values map[string]string) Errors {
	if v == nil {
		return nil
	}
	var errs Errors
	for _, name := range v.order {
		if msg, ok := v.Field(name, values[name]); !ok {
			errs = append(errs, FieldError{Field: name, Message: msg})
		}
	}
	return errs
}

func hasKind(rules []model.ValidationRule, kind string) bool {
	for _, rule := range rules {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}
