// Package error defines domain-specific errors for the OKR bot.
package error

import "errors"

// Error kinds. Every OKRError wraps exactly one of them so callers can
// branch with errors.Is regardless of the concrete code.
var (
	// ErrValidation is returned when input is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced objective or key result does not exist.
	ErrNotFound = errors.New("not found")
)

// OKRErrorCode defines error codes for OKR errors.
// Format: XXX-CCYYYY where XXX is the area, CC the category and YYYY the specific error.
type OKRErrorCode string

// OKRError represents an OKR error with code and message.
type OKRError struct {
	Code    OKRErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OKRError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *OKRError) Unwrap() error {
	return e.Err
}

// NewOKRError creates a new OKRError with the given code and message.
func NewOKRError(code OKRErrorCode, message string, err error) *OKRError {
	return &OKRError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates an OKRError of the validation kind.
func NewValidationError(code OKRErrorCode, message string) *OKRError {
	return NewOKRError(code, message, ErrValidation)
}

// NewNotFoundError creates an OKRError of the not-found kind.
func NewNotFoundError(code OKRErrorCode, message string) *OKRError {
	return NewOKRError(code, message, ErrNotFound)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
