package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrVehicleBusy       = errors.New("vehicle is locked by another release")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrContractImmutable = errors.New("contract is already signed")
	ErrAlreadyExists     = errors.New("already exists")
)

// ValidationError means a stored or submitted record is malformed.
type ValidationError struct {
	Entity string
	ID     int32
	Reason string
}

func NewValidationError(entity string, id int32, reason string) *ValidationError {
	return &ValidationError{Entity: entity, ID: id, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("invalid %s %d: %s", e.Entity, e.ID, e.Reason)
}

// StorageError wraps a failure of the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotificationDeliveryError is a failed notice for one waitlist entry.
type NotificationDeliveryError struct {
	EntryID int32
	UserID  int32
	Err     error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("notify user %d (waitlist entry %d): %v", e.UserID, e.EntryID, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error { return e.Err }

const (
	ErrorKindValidation   = "validation"
	ErrorKindStorage      = "storage"
	ErrorKindNotification = "notification"
	ErrorKindLock         = "lock"
	ErrorKindUnknown      = "unknown"
)

// ErrorKind classifies err for sweep reports.
func ErrorKind(err error) string {
	var ve *ValidationError
	var se *StorageError
	var ne *NotificationDeliveryError
	switch {
	case errors.As(err, &ve):
		return ErrorKindValidation
	case errors.Is(err, ErrVehicleBusy):
		return ErrorKindLock
	case errors.As(err, &se):
		return ErrorKindStorage
	case errors.As(err, &ne):
		return ErrorKindNotification
	}
	return ErrorKindUnknown
}
