// Package validation implements the declarative per-route field checks
// that run before mutation handlers. A route declares an ordered list
// of rules; all rules run against the request payload, every failure is
// collected, and the handler is short-circuited only when the list of
// failures is non-empty. Rules are not derived from the persisted
// schema - keeping them in sync with the models is a manual
// responsibility.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FieldError describes a single failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Payload is a field-value view of a request body. JSON bodies decode
// into it directly; multipart forms are converted by the handlers, with
// only the keys actually present in the form.
type Payload map[string]any

// Rule is a pure check against a payload. A nil result means the check
// passed.
type Rule func(p Payload) *FieldError

// Run evaluates every rule and collects all failures.
func Run(p Payload, rules []Rule) []FieldError {
	var failures []FieldError
	for _, rule := range rules {
		if fe := rule(p); fe != nil {
			failures = append(failures, *fe)
		}
	}
	return failures
}

// Required fails when the field is absent, nil, or an empty trimmed string.
func Required(field, label string) Rule {
	return func(p Payload) *FieldError {
		v, ok := p[field]
		if !ok || v == nil {
			return &FieldError{Field: field, Message: label + " is required"}
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return &FieldError{Field: field, Message: label + " is required"}
		}
		return nil
	}
}

// Between fails when a present string value falls outside [min, max]
// characters. Absence is left to Required.
func Between(field, label string, min, max int) Rule {
	return stringCheck(field, func(s string) *FieldError {
		if n := len(s); n < min || n > max {
			return &FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be between %d and %d characters", label, min, max),
			}
		}
		return nil
	})
}

// MaxLen fails when a present string value exceeds max characters.
func MaxLen(field, label string, max int) Rule {
	return stringCheck(field, func(s string) *FieldError {
		if len(s) > max {
			return &FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must not exceed %d characters", label, max),
			}
		}
		return nil
	})
}

// MinLen fails when a present string value is shorter than min characters.
func MinLen(field, label string, min int) Rule {
	return stringCheck(field, func(s string) *FieldError {
		if len(s) < min {
			return &FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least %d characters", label, min),
			}
		}
		return nil
	})
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email fails when a present string value is not a plausible address.
func Email(field string) Rule {
	return stringCheck(field, func(s string) *FieldError {
		if !emailPattern.MatchString(s) {
			return &FieldError{Field: field, Message: "Please provide a valid email"}
		}
		return nil
	})
}

// OneOf fails when a present string value is not in the allowed set.
func OneOf(field, message string, allowed ...string) Rule {
	return stringCheck(field, func(s string) *FieldError {
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return &FieldError{Field: field, Message: message}
	})
}

// Bool fails when a present value is neither a boolean nor the strings
// "true"/"false" (multipart forms carry booleans as strings).
func Bool(field, message string) Rule {
	return func(p Payload) *FieldError {
		v, ok := p[field]
		if !ok || v == nil {
			return nil
		}
		switch t := v.(type) {
		case bool:
			return nil
		case string:
			if t == "true" || t == "false" {
				return nil
			}
		}
		return &FieldError{Field: field, Message: message}
	}
}

// MinInt fails when a present value is not an integer >= min. JSON
// numbers arrive as float64 and form values as strings; both are
// accepted when they denote integers.
func MinInt(field, message string, min int) Rule {
	return func(p Payload) *FieldError {
		v, ok := p[field]
		if !ok || v == nil {
			return nil
		}
		fail := &FieldError{Field: field, Message: message}
		switch t := v.(type) {
		case int:
			if t >= min {
				return nil
			}
		case int64:
			if t >= int64(min) {
				return nil
			}
		case float64:
			if t == float64(int64(t)) && int(t) >= min {
				return nil
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= min {
				return nil
			}
		}
		return fail
	}
}

// StringArray fails when the field is not an array of non-empty strings.
// Unlike the other present-only checks, absence fails too: routes that
// declare it expect the array in every payload.
func StringArray(field, message, elementMessage string) Rule {
	return func(p Payload) *FieldError {
		v, ok := p[field]
		if !ok || v == nil {
			return &FieldError{Field: field, Message: message}
		}

		var elems []string
		switch t := v.(type) {
		case []string:
			elems = t
		case []any:
			for _, e := range t {
				s, isStr := e.(string)
				if !isStr {
					return &FieldError{Field: field, Message: elementMessage}
				}
				elems = append(elems, s)
			}
		default:
			return &FieldError{Field: field, Message: message}
		}

		for _, s := range elems {
			if strings.TrimSpace(s) == "" {
				return &FieldError{Field: field, Message: elementMessage}
			}
		}
		return nil
	}
}

// stringCheck runs fn only when the field holds a non-empty trimmed
// string, so optional and required-but-absent fields fall through to
// their own rules.
func stringCheck(field string, fn func(s string) *FieldError) Rule {
	return func(p Payload) *FieldError {
		v, ok := p[field]
		if !ok || v == nil {
			return nil
		}
		s, isStr := v.(string)
		if !isStr {
			return &FieldError{Field: field, Message: field + " must be a string"}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return fn(s)
	}
}
