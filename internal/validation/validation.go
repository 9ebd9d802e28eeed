// Package validation collects rule violations so callers can report all of
// them at once instead of stopping at the first.
package validation

import (
	"errors"
	"strings"
)

// Failure is a single violated rule on a named field.
type Failure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned when one or more rules fail. Failures keep the order in
// which the rules were evaluated.
type Error struct {
	Failures []Failure
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a failure for field.
func (e *Error) Add(field, message string) {
	e.Failures = append(e.Failures, Failure{Field: field, Message: message})
}

// Check adds a failure only when ok is false.
//
//	v.Check(book.Title != "", "title", "must not be empty")
func (e *Error) Check(ok bool, field, message string) {
	if !ok {
		e.Add(field, message)
	}
}

// Has reports whether field has at least one failure.
func (e *Error) Has(field string) bool {
	for _, f := range e.Failures {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns e as an error when it holds failures, nil otherwise.
func (e *Error) Err() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e
}

// New returns an Error holding a single failure.
func New(field, message string) *Error {
	return &Error{Failures: []Failure{{Field: field, Message: message}}}
}

// As unwraps err into an *Error when it is one.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
