package client

import (
	"errors"
	"fmt"
)

// Common registry error types
var (
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrNetwork            = fmt.Errorf("network error")
	ErrHTTPStatus         = fmt.Errorf("unexpected http status")
	ErrDecode             = fmt.Errorf("decode error")
	ErrFilesystem         = fmt.Errorf("filesystem error")
	ErrChecksumMismatch   = fmt.Errorf("checksum mismatch")
	ErrPageLimitExceeded  = fmt.Errorf("page limit exceeded")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
)

// RegistryError provides detailed error information
type RegistryError struct {
	Type    error
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *RegistryError) Error() string {
	msg := e.Type.Error()
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the error type and the underlying cause, so
// errors.Is matches either.
func (e *RegistryError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Type}
	}
	return []error{e.Type, e.Err}
}

// NewRegistryError creates a new registry error
func NewRegistryError(errType error, message string) *RegistryError {
	return &RegistryError{
		Type:    errType,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// wrapError creates a registry error around a lower level cause
func wrapError(errType error, message string, cause error) *RegistryError {
	e := NewRegistryError(errType, message)
	e.Err = cause
	return e
}

// StatusCode returns the HTTP status carried by an ErrHTTPStatus error, or 0.
func StatusCode(err error) int {
	var regErr *RegistryError
	if errors.As(err, &regErr) {
		if code, ok := regErr.Details["status_code"].(int); ok {
			return code
		}
	}
	return 0
}
