package usecase

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a referenced asset record does not exist.
var ErrNotFound = errors.New("asset not found")

// ValidationError reports a client-correctable problem with an
// upload batch. The whole batch is rejected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// StorageWriteError wraps a backend failure writing an object.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage write %q: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// StorageDeleteError wraps a backend failure deleting an object.
type StorageDeleteError struct {
	Key string
	Err error
}

func (e *StorageDeleteError) Error() string {
	return fmt.Sprintf("storage delete %q: %v", e.Key, e.Err)
}

func (e *StorageDeleteError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a database read or write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
