package models

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the core engine. Handlers map these to HTTP
// status codes; callers test with errors.Is.
var (
	// ErrNotFound marks operations referencing a non-existent
	// business, category, claim, lead, user, or page.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateClaim marks a claim submission while the same user
	// already has a pending or approved claim for the same business.
	ErrDuplicateClaim = errors.New("duplicate ownership claim")

	// ErrClaimReviewed marks a review attempt on a claim that has
	// already left the pending state.
	ErrClaimReviewed = errors.New("claim already reviewed")

	// ErrSlugConflict marks slug-uniqueness retry exhaustion. Transient:
	// the caller may retry the whole write.
	ErrSlugConflict = errors.New("could not allocate a unique slug")

	// ErrLastAdmin marks an attempt to delete the only remaining admin.
	ErrLastAdmin = errors.New("cannot delete the last admin user")
)

// FieldError is a single field-level validation failure
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationError aggregates field-level failures for one request. It is
// returned before any write happens.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

// NewValidationError builds a ValidationError from field failures
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
