package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage matches every failure raised by a storage engine
	ErrStorage = errors.New("storage failure")
	// ErrClosed is wrapped in a StorageError when a closed store is used
	ErrClosed = errors.New("store is closed")
)

// StorageError wraps an engine failure with the operation that hit it
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorage) match any StorageError
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Wrap returns nil for a nil err, otherwise a StorageError for op.
// Errors that are already StorageErrors are returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
