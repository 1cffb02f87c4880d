package dialog

import (
	"sort"
	"strings"
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

type (
	// FieldRule is the validation config of one form field.
	FieldRule struct {
		Required bool
		Message  string
	}

	// Rules holds the per-field validation config passed at construction time.
	Rules struct {
		Username FieldRule
		Password FieldRule
	}

	// FieldErrors maps a field name to its user-facing error text.
	FieldErrors map[string]string

	// ValidationError is returned by Submit when a required field is empty.
	ValidationError struct {
		Fields FieldErrors
	}
)

func DefaultRules() Rules {
	return Rules{
		Username: FieldRule{Required: true, Message: "Username is required"},
		Password: FieldRule{Required: true, Message: "Password is required"},
	}
}

// Validate checks every field independently and returns the errors found, or nil.
func (r Rules) Validate(v FormValues) FieldErrors {
	var errs FieldErrors
	check := func(field string, rule FieldRule, value string) {
		if rule.Required && value == "" {
			if errs == nil {
				errs = FieldErrors{}
			}
			errs[field] = rule.Message
		}
	}
	check(FieldUsername, r.Username, v.Username)
	check(FieldPassword, r.Password, v.Password)
	return errs
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e.Fields[f])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
