package errors

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing or invalid configuration value. It is fatal:
// the run must abort before any network call is attempted.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("config: %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("config: %s is not set", e.Key)
}

// NotFoundError reports that a platform entity (actor, build) does not exist.
type NotFoundError struct {
	Kind string // "actor", "build"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// MissingFieldError reports that a structurally mandatory field is absent
// from an otherwise well-formed platform response. It is fatal for the
// owning adapter's axis only, never for the whole run.
type MissingFieldError struct {
	Field string
	Actor string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("actor %q: required field %q is missing", e.Actor, e.Field)
}

// TransportError wraps any HTTP failure, non-2xx response, or malformed
// response body. There is no retry policy; it surfaces immediately.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransport wraps err as a TransportError for the named operation.
func NewTransport(op string, statusCode int, err error) *TransportError {
	return &TransportError{Op: op, StatusCode: statusCode, Err: err}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsMissingField reports whether err is (or wraps) a MissingFieldError.
func IsMissingField(err error) bool {
	var mf *MissingFieldError
	return errors.As(err, &mf)
}

// IsConfig reports whether err is (or wraps) a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
