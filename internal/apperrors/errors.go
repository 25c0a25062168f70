package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrPersistence indicates that the key-value store could not be read, written or decoded.
var ErrPersistence = errors.New("persistence error")

// ErrSpecialCharacters is returned for amounts made only of punctuation.
var ErrSpecialCharacters = fmt.Errorf("%w: Invalid Input - Special characters are not allowed.", ErrValidation)

// ErrInvalidNumber is returned for any other amount that is not a finite decimal number.
var ErrInvalidNumber = fmt.Errorf("%w: Invalid Input Please enter a valid numeric value.", ErrValidation)

// ErrMissingAmount is returned when submitting without an amount.
var ErrMissingAmount = fmt.Errorf("%w: please enter an amount to convert", ErrValidation)

// ErrUndefinedConversion is returned when no rate can be applied to the selected currencies.
var ErrUndefinedConversion = fmt.Errorf("%w: undefined conversion", ErrValidation)

// AppError carries an HTTP-ish status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// Notice returns the user-facing part of a validation error, without the sentinel prefix.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && errors.Is(appErr.Err, ErrValidation) {
		return appErr.Message
	}
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	for len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		msg = msg[len(prefix):]
	}
	return msg
}
