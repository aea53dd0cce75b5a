package domain

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// InvalidStateError marks an operation attempted from a state that forbids it,
// e.g. booking a portaloo that is not Available.
type InvalidStateError struct {
	Resource string
	Msg      string
	Err      error
}

func (e InvalidStateError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s in invalid state", e.Resource)
	default:
		return "invalid state"
	}
}

func (e InvalidStateError) Unwrap() error { return e.Err }

// StorageError marks a failed signature upload or public-URL resolution.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("storage %s failed", e.Op)
	}
	return "storage error"
}

func (e StorageError) Unwrap() error { return e.Err }

// PersistenceError wraps any generic backend read/write failure.
type PersistenceError struct {
	Msg string
	Err error
}

func (e PersistenceError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "persistence error"
}

func (e PersistenceError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsInvalidState(err error) bool {
	var target InvalidStateError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target StorageError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}
