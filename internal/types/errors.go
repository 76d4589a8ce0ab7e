package types

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input. Its message is returned to the
// caller verbatim.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "Resource not found"
	}
	return e.Resource + " not found"
}

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

var (
	// ErrForbidden is returned when an authenticated caller does not own the resource.
	ErrForbidden = errors.New("Not authorized")
	// ErrUnauthorized is returned when credentials are missing or invalid.
	ErrUnauthorized = errors.New("Not authenticated")
	// ErrServiceUnavailable is returned when an optional integration is not configured or is tripped.
	ErrServiceUnavailable = errors.New("Service unavailable")
	// ErrBadGateway is returned when an upstream API answers with an error.
	ErrBadGateway = errors.New("Upstream service error")
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

type unauthorizedError struct {
	msg string
}

func (e *unauthorizedError) Error() string { return e.msg }

func (e *unauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Unauthorized returns an error matching ErrUnauthorized that carries msg.
func Unauthorized(msg string) error {
	return &unauthorizedError{msg: msg}
}
