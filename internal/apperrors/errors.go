package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested tenant-scoped resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates an operation was attempted against an entity whose
// current lifecycle state forbids it (e.g. posting a void transaction set).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrPeriodClosed indicates the posting date falls inside a hard-closed
// accounting period.
var ErrPeriodClosed = errors.New("accounting period is hard closed")

// ErrUnbalanced indicates journal lines do not balance debits against credits
// within the accepted tolerance.
var ErrUnbalanced = errors.New("journal entry lines do not balance")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries a transport-agnostic status code alongside a message and an
// optional wrapped cause, so repositories can classify failures without the
// handler layer guessing.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError wrapping cause (which may be nil).
func NewAppError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Err: cause}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
