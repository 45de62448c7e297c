package model

import "strconv"

// NonEmpty requires a value with at least one non-whitespace character.
func NonEmpty(message string) ValidationRule {
	return ValidationRule{Kind: ValidationRuleNonEmpty, Message: message}
}

// MinLength requires at least n characters.
func MinLength(n int, message string) ValidationRule {
	return ValidationRule{
		Kind:    ValidationRuleMinLength,
		Params:  map[string]string{"value": strconv.Itoa(n)},
		Message: message,
	}
}

// EmailFormat requires a local@domain.tld address.
func EmailFormat(message string) ValidationRule {
	return ValidationRule{Kind: ValidationRuleEmail, Message: message}
}

// OneOf requires the value to be one of values. Passing no values defers to
// the field options.
func OneOf(message string, values ...string) ValidationRule {
	rule := ValidationRule{Kind: ValidationRuleOneOf, Message: message}
	if len(values) > 0 {
		rule.Values = append([]string(nil), values...)
	}
	return rule
}
