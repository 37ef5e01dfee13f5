package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeCategory(t *testing.T) {
	assert.Equal(t, ErrorCategoryPath, ErrPathNotFound.Category())
	assert.Equal(t, ErrorCategoryPort, ErrPortCheckFailed.Category())
	assert.Equal(t, ErrorCategoryPort, ErrPortAllocationFailed.Category())
	assert.Equal(t, ErrorCategoryProcess, ErrProcessSpawnFailed.Category())
	assert.Equal(t, ErrorCategoryConfig, ErrConfigSaveFailed.Category())
	assert.Equal(t, ErrorCategoryUnknown, ErrUnknown.Category())
}

func TestAppError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPortCheckFailedError(18789, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "18789")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrPathNotFound, CodeOf(NewPathNotFoundError("/missing")))
	assert.Equal(t, ErrUnknown, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("starting gateway: %w", NewSpawnFailedError("npx", nil))
	assert.Equal(t, ErrProcessSpawnFailed, CodeOf(wrapped))
}

func TestFactoriesCarrySuggestions(t *testing.T) {
	for _, err := range []*AppError{
		NewPathNotFoundError("/missing"),
		NewPortCheckFailedError(18789, nil),
		NewPortAllocationFailedError(18789, nil),
		NewSpawnFailedError("npx", nil),
		NewReapPartialError(18789, 1),
	} {
		assert.NotEmpty(t, err.Suggestions, "code %s", err.Code)
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewPortCheckFailedError(18789, nil).IsRetryable())
	assert.False(t, NewPathNotFoundError("/missing").IsRetryable())
	assert.False(t, NewSpawnFailedError("npx", nil).IsRetryable())
}

func TestHandler_NormalizesUnknownErrors(t *testing.T) {
	h := NewAppErrorHandler()

	appErr := h.Handle(context.Background(), errors.New("boom"))
	require.NotNil(t, appErr)
	assert.Equal(t, ErrUnknown, appErr.Code)

	appErr = h.Handle(context.Background(), NewReapPartialError(18789, 2))
	assert.Equal(t, ErrProcessReapPartial, appErr.Code)
}

func TestHandler_RetryConfigPerClass(t *testing.T) {
	h := NewAppErrorHandler()

	cfg := h.GetRetryConfig(NewPortCheckFailedError(18789, nil))
	assert.Equal(t, PortCheckRetry(), cfg)

	cfg = h.GetRetryConfig(errors.New("plain"))
	assert.Equal(t, 3, cfg.MaxRetries)
}
