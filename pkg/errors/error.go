// Package errors carries coded errors shared by the backtest, diagram and run log tools.
//
// Codes are grouped by the component that raises them:
//   - 1-99: unknown
//   - 100-199: validation of signals, configs and parameters
//   - 200-299: state storage and queries
//   - 400-499: strategy
//   - 600-699: backtest engine
//   - 700-799: chart rendering
//   - 800-899: diagram rendering and viewing
//   - 900-999: run log CSV
//   - 1000-1099: lifecycle callbacks
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeInvalidSignal, "take profit %.2f is below entry", tp)
//	if errors.HasCode(err, errors.ErrCodeInvalidSignal) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is an error tagged with an ErrorCode.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the first *Error in err's chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError is returned when a calculation or render needs more points than it got.
type InsufficientDataError struct {
	Required int
	Actual   int
	Message  string
}

func NewInsufficientDataError(required, actual int, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Message:  message,
	}
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s (required %d, got %d)", e.Message, e.Required, e.Actual)
}

func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
