package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the repository adapters, the services and the
// HTTP layer. Adapters wrap them with context; callers match with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnavailable      = errors.New("unavailable")
)

// ConflictError is returned when a client still owns financial records and
// the caller did not ask for cascading removal.
type ConflictError struct {
	ClientID int64
	Loans    int
	Deposits int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"client %d has %d loan(s) and %d deposit(s); delete with force=true to remove them together with the client",
		e.ClientID, e.Loans, e.Deposits,
	)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// FieldError describes a single rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every rejected field of one input.
type ValidationError struct {
	Fields []FieldError
}

// Validation builds a ValidationError for a single field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
