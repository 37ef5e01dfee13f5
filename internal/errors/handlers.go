package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Handler recovers component errors at the controller boundary.
type Handler interface {
	Handle(ctx context.Context, err error) *AppError
	IsRetryable(err error) bool
	GetRetryConfig(err error) RetryConfig
}

// RetryConfig bounds a retry loop.
type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// AppErrorHandler is the concrete Handler implementation.
type AppErrorHandler struct {
	defaultRetryConfig RetryConfig
}

// NewAppErrorHandler creates a handler with default retry bounds.
func NewAppErrorHandler() *AppErrorHandler {
	return &AppErrorHandler{
		defaultRetryConfig: RetryConfig{
			MaxRetries:    3,
			BaseDelay:     100 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			BackoffFactor: 2.0,
		},
	}
}

// Handle normalizes any error into an AppError.
func (h *AppErrorHandler) Handle(ctx context.Context, err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return h.convertToAppError(err)
}

// IsRetryable reports whether the error class is worth retrying.
func (h *AppErrorHandler) IsRetryable(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsRetryable()
	}
	return false
}

// PortCheckRetry is the retry bound applied to listener-table queries.
func PortCheckRetry() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     150 * time.Millisecond,
		MaxDelay:      1 * time.Second,
		BackoffFactor: 1.5,
	}
}

// GetRetryConfig returns retry bounds tuned per error class. The listener
// table query is retried tightly; everything else gets the default.
func (h *AppErrorHandler) GetRetryConfig(err error) RetryConfig {
	if appErr, ok := AsAppError(err); ok {
		if appErr.Code == ErrPortCheckFailed {
			return PortCheckRetry()
		}
	}
	return h.defaultRetryConfig
}

func (h *AppErrorHandler) convertToAppError(err error) *AppError {
	switch {
	case os.IsNotExist(err):
		return &AppError{
			Code:    ErrPathNotFound,
			Message: "path does not exist",
			Cause:   err,
		}
	case errors.Is(err, os.ErrPermission):
		return &AppError{
			Code:    ErrProcessReapPartial,
			Message: "insufficient permissions",
			Cause:   err,
		}
	default:
		return &AppError{
			Code:    ErrUnknown,
			Message: fmt.Sprintf("unexpected error: %v", err),
			Cause:   err,
		}
	}
}
