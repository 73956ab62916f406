package inspection

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"p9e.in/tankinspect/pkg/validation"
)

var (
	// ErrNotFound is wrapped by every lookup miss.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is wrapped by ConflictError.
	ErrConflict = errors.New("conflict")
)

// ConflictError reports a write that would break a uniqueness rule.
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Message)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// StorageError wraps an unexpected failure of the database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// classify maps a gorm error onto the service error kinds. Errors that are
// already classified pass through unchanged.
func classify(resource, op string, err error) error {
	if err == nil {
		return nil
	}

	var conflict *ConflictError
	var storage *StorageError
	switch {
	case errors.Is(err, ErrNotFound), errors.As(err, &conflict), errors.As(err, &storage):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %s: %w", resource, op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Resource: resource, Message: "a record with the same unique fields already exists"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return validation.Single("tank", "Referenced tank does not exist.")
	}

	if _, ok := validation.FieldsOf(err); ok {
		return err
	}
	return &StorageError{Op: resource + " " + op, Err: err}
}

// Kind names the class of err for logs and metrics.
func Kind(err error) string {
	var conflict *ConflictError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &conflict):
		return "conflict"
	}
	if _, ok := validation.FieldsOf(err); ok {
		return "validation"
	}
	return "storage"
}
