package errors

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound       = "not_found"
	CodeInvalidPayload = "invalid_payload"
	CodeStorage        = "storage"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrStorage        = errors.New("storage failure")
)

// Error carries a machine readable code next to the wrapped cause.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(message string) error {
	return &Error{
		Message: message,
	}
}

func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Storage wraps a driver error so that it matches ErrStorage as well as the cause.
func Storage(err error, message string) error {
	if err == nil {
		return nil
	}
	return WrapWithCode(errors.Join(ErrStorage, err), CodeStorage, message)
}

// InvalidPayload wraps a validation error so that it matches ErrInvalidPayload.
func InvalidPayload(err error) error {
	if err == nil {
		return nil
	}
	return WrapWithCode(errors.Join(ErrInvalidPayload, err), CodeInvalidPayload, "invalid status payload")
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the outermost error code, or "" when err carries none.
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidPayload(err error) bool {
	return errors.Is(err, ErrInvalidPayload)
}

func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
