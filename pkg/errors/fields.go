package errors

import (
	"strconv"
	"unicode/utf8"
)

// Fields collects per-field validation messages.
type Fields map[string]string

// Add records msg for field, keeping the first message per field.
func (f Fields) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Err returns a validation error carrying the collected fields, or nil when
// nothing was recorded.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return Validation(f)
}

// Validation builds a VALIDATION_ERROR whose details map each field to its
// message.
func Validation(fields map[string]string) *Error {
	details := make(map[string]string, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return New(CodeValidation, "invalid input").WithDetails(details)
}

// Required records "is required" when value is empty.
func (f Fields) Required(field, value string) {
	if value == "" {
		f.Add(field, "is required")
	}
}

// MaxLen records a length failure when value has more than limit runes.
func (f Fields) MaxLen(field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		f.Add(field, "must be at most "+strconv.Itoa(limit)+" characters")
	}
}
