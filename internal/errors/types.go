// Package errors provides structured error handling for clawctl.
package errors

import (
	"errors"
	"fmt"
)

// AppError is the application error carried across component boundaries.
// Suggestions hold the concrete remediation steps surfaced to the
// notification sink alongside the message.
type AppError struct {
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	Cause       error                  `json:"cause,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
	Suggestions []string               `json:"suggestions,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether the operation may be retried.
func (e *AppError) IsRetryable() bool {
	switch e.Code {
	case ErrPortCheckFailed:
		return true
	default:
		return false
	}
}

// WithField attaches a structured field to the error.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithCause sets the underlying cause.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// AsAppError extracts an AppError from an error chain, if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the error code in the chain, or ErrUnknown.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrUnknown
}

// Predefined error factories.

// NewPathNotFoundError reports a missing project directory.
func NewPathNotFoundError(path string) *AppError {
	return &AppError{
		Code:    ErrPathNotFound,
		Message: fmt.Sprintf("project path does not exist: %s", path),
		Fields:  map[string]interface{}{"path": path},
		Suggestions: []string{
			"check the configured project path in settings",
			"create the directory if the project has not been cloned yet",
		},
	}
}

// NewPortCheckFailedError reports a failed listener-table query.
func NewPortCheckFailedError(port int, cause error) *AppError {
	return &AppError{
		Code:    ErrPortCheckFailed,
		Message: fmt.Sprintf("could not query listeners for port %d", port),
		Cause:   cause,
		Fields:  map[string]interface{}{"port": port},
		Suggestions: []string{
			"verify netstat is available on this machine",
			"retry the operation; the port table query may be transiently failing",
		},
	}
}

// NewPortAllocationFailedError reports allocation exhaustion.
func NewPortAllocationFailedError(basePort int, cause error) *AppError {
	return &AppError{
		Code:    ErrPortAllocationFailed,
		Message: fmt.Sprintf("no usable port could be allocated near %d", basePort),
		Cause:   cause,
		Fields:  map[string]interface{}{"base_port": basePort},
		Suggestions: []string{
			"free up ports near the configured gateway port",
			"set a different gateway port in settings",
		},
	}
}

// NewSpawnFailedError reports a failed gateway launch.
func NewSpawnFailedError(runner string, cause error) *AppError {
	return &AppError{
		Code:    ErrProcessSpawnFailed,
		Message: fmt.Sprintf("failed to launch the gateway via %q", runner),
		Cause:   cause,
		Fields:  map[string]interface{}{"runner": runner},
		Suggestions: []string{
			fmt.Sprintf("verify %q is installed and on PATH", runner),
			"verify the openclaw CLI is installed (npm install -g openclaw)",
			"run the command manually in the project directory to see its output",
		},
	}
}

// NewReapPartialError reports that some listeners survived a reap pass.
func NewReapPartialError(port, failed int) *AppError {
	return &AppError{
		Code:    ErrProcessReapPartial,
		Message: fmt.Sprintf("%d process(es) on port %d could not be terminated", failed, port),
		Fields:  map[string]interface{}{"port": port, "failed": failed},
		Suggestions: []string{
			"the surviving process may be protected; stop it manually",
			"a follow-up port probe will route around the occupied port",
		},
	}
}
