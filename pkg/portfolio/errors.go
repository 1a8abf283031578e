package portfolio

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error taxonomy. Handlers classify failures with errors.Is against these
// sentinels and map them to HTTP statuses.
var (
	// ErrInvalidInput indicates malformed or missing request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a referenced entity or parent is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique-constraint violation or a transactional
	// write conflict. Only reorder retries it automatically.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials indicates a failed login. It never distinguishes
	// an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRateLimited indicates upload throttling.
	ErrRateLimited = errors.New("rate limited")

	// ErrExternalService indicates the blob or mail provider is not
	// configured or failing.
	ErrExternalService = errors.New("external service unavailable")
)

// EntityError wraps a failure of one operation on one record.
type EntityError struct {
	Entity string
	ID     uuid.UUID
	Op     string
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s operation %s failed for %s: %v", e.Entity, e.Op, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// StorageError wraps a blob store failure.
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// invalidf builds an ErrInvalidInput with a caller-facing detail message.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
