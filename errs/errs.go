// Package errs defines the error taxonomy shared by every service
// operation: ValidationError for bad input rejected before any write,
// NotFoundError for references to ids that do not exist, and
// ConstraintViolation for integrity failures surfaced by the store.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing required field or a value outside a
// closed enumeration. The operation performed no write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a reference to a nonexistent record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NewNotFound builds a NotFoundError for a record kind and id.
func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConstraintViolation reports a foreign-key or uniqueness breach raised
// by the storage layer. The driver error is preserved in the chain.
type ConstraintViolation struct {
	Op  string
	Err error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation in %s: %v", e.Op, e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// NewConstraint wraps a storage error as a ConstraintViolation.
func NewConstraint(op string, err error) error {
	return &ConstraintViolation{Op: op, Err: err}
}

// IsValidation reports whether any error in the chain is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether any error in the chain is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsConstraint reports whether any error in the chain is a ConstraintViolation.
func IsConstraint(err error) bool {
	var ce *ConstraintViolation
	return errors.As(err, &ce)
}

// Wrap adds context and preserves the error chain (errors.Is/As works).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context and preserves the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	// Append the original err as the last arg for %w.
	args = append(args, err)
	return fmt.Errorf(format+": %w", args...)
}
