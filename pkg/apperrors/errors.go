package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel error kinds. Every repository and handler classifies failures into
// one of these before anything crosses the presentation boundary, so callers
// match with errors.Is instead of inspecting storage errors.
var (
	// ErrValidation marks malformed or missing required input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized marks a missing or invalid session.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrForbidden marks an authenticated caller acting outside their rights
	// (not the owner, not an admin, not verified).
	ErrForbidden = errors.New("not allowed")

	// ErrDuplicate marks a storage-layer uniqueness violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrForeignKey marks a dangling reference rejected by the storage layer.
	ErrForeignKey = errors.New("invalid reference")
)

// Validation wraps a message as a validation error.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound wraps an entity name as a not-found error.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// Forbidden wraps a message as an authorization error.
func Forbidden(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}

// IsNotFound reports whether err is a not-found error, including the raw
// gorm sentinel before classification.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// Classify translates a storage-layer error into the domain taxonomy.
// nil passes through; unknown errors are returned unchanged and treated as
// internal by the HTTP layer.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	default:
		return err
	}
}
