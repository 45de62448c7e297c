package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-leadform/pkg/model"
)

var (
	// ErrUnknownRule is returned when a rule kind has no predicate.
	ErrUnknownRule = errors.New("validation: unknown rule kind")
	// ErrInvalidRule is returned when rule parameters cannot be interpreted.
	ErrInvalidRule = errors.New("validation: invalid rule parameters")
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+/=?^_{|}~-]+(\.[A-Za-z0-9!#$%&'*+/=?^_{|}~-]+)*@([A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?\.)+[A-Za-z]{2,}$`)

// Rule is a compiled ValidationRule. Check is a pure predicate over the
// field value.
type Rule struct {
	Kind    string
	Message string
	check   func(string) bool
}

// Check reports whether value satisfies the rule.
func (r Rule) Check(value string) bool {
	if r.check == nil {
		return true
	}
	return r.check(value)
}

// Compile turns a declarative rule into a predicate. Field supplies the
// option set for oneOf rules that do not list their own values.
func Compile(field model.Field, rule model.ValidationRule) (Rule, error) {
	compiled := Rule{Kind: rule.Kind, Message: strings.TrimSpace(rule.Message)}

	switch rule.Kind {
	case model.ValidationRuleNonEmpty:
		compiled.check = func(value string) bool {
			return strings.TrimSpace(value) != ""
		}
		if compiled.Message == "" {
			compiled.Message = "This field is required."
		}

	case model.ValidationRuleMinLength:
		n, err := strconv.Atoi(strings.TrimSpace(rule.Params["value"]))
		if err != nil || n < 0 {
			return Rule{}, fmt.Errorf("%w: %s on %q needs a non-negative value", ErrInvalidRule, rule.Kind, field.Name)
		}
		compiled.check = func(value string) bool {
			return utf8.RuneCountInString(value) >= n
		}
		if compiled.Message == "" {
			compiled.Message = fmt.Sprintf("Must be at least %d characters.", n)
		}

	case model.ValidationRuleEmail:
		compiled.check = IsEmail
		if compiled.Message == "" {
			compiled.Message = "Please enter a valid email address."
		}

	case model.ValidationRuleOneOf:
		values := rule.Values
		if len(values) == 0 {
			values = field.OptionValues()
		}
		if len(values) == 0 {
			return Rule{}, fmt.Errorf("%w: %s on %q has no values", ErrInvalidRule, rule.Kind, field.Name)
		}
		allowed := make(map[string]struct{}, len(values))
		for _, v := range values {
			allowed[v] = struct{}{}
		}
		compiled.check = func(value string) bool {
			_, ok := allowed[value]
			return ok
		}
		if compiled.Message == "" {
			compiled.Message = "Please select a valid option."
		}

	default:
		return Rule{}, fmt.Errorf("%w: %q on %q", ErrUnknownRule, rule.Kind, field.Name)
	}

	return compiled, nil
}

// IsEmail reports whether value looks like local@domain.tld.
func IsEmail(value string) bool {
	if len(value) > 254 {
		return false
	}
	return emailPattern.MatchString(value)
}
