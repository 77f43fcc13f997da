package common

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrSoldOut            = errors.New("room is sold out for the requested dates")
	ErrPaymentNotComplete = errors.New("payment has not completed")
)

// ValidationError reports malformed or missing input. Always a 4xx,
// never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PaymentProviderError wraps a failed or timed-out provider call. The
// caller must retry the whole quote-to-confirm flow.
type PaymentProviderError struct {
	Err error
}

func (e *PaymentProviderError) Error() string {
	return fmt.Sprintf("payment provider: %s", e.Err.Error())
}

func (e *PaymentProviderError) Unwrap() error {
	return e.Err
}

// StorageError wraps a catalog or ledger I/O failure.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s", e.Err.Error())
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
