package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppErrorMapsErrbuilderCodes(t *testing.T) {
	tests := []struct {
		name             string
		code             errbuilder.ErrCode
		expectedStatus   int
		expectedCategory ErrorCategory
	}{
		{
			name:             "invalid argument maps to bad request",
			code:             errbuilder.CodeInvalidArgument,
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: CategoryValidation,
		},
		{
			name:             "resource exhausted maps to too many requests",
			code:             errbuilder.CodeResourceExhausted,
			expectedStatus:   http.StatusTooManyRequests,
			expectedCategory: CategoryRateLimit,
		},
		{
			name:             "anything else maps to internal",
			code:             errbuilder.CodeUnknown,
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: CategoryInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errbuilder.New().WithCode(tt.code).WithMsg("boom")

			appErr := ToAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.expectedStatus, appErr.HTTPStatus)
			assert.Equal(t, tt.expectedCategory, appErr.Category)
		})
	}
}

func TestToAppErrorPassesThroughAppError(t *testing.T) {
	original := NewStorageError("disk on fire", stderrors.New("io error"))
	assert.Same(t, original, ToAppError(original))
}

func TestToAppErrorNil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}

func TestToAppErrorContextErrors(t *testing.T) {
	cancelled := ToAppError(context.Canceled)
	require.NotNil(t, cancelled)
	assert.Equal(t, CategoryTimeout, cancelled.Category)
	assert.Equal(t, http.StatusGatewayTimeout, cancelled.HTTPStatus)

	deadline := ToAppError(context.DeadlineExceeded)
	require.NotNil(t, deadline)
	assert.Equal(t, CategoryTimeout, deadline.Category)
}

func TestToAppErrorUnknownError(t *testing.T) {
	appErr := ToAppError(stderrors.New("something odd"))
	require.NotNil(t, appErr)
	assert.Equal(t, CategoryInternal, appErr.Category)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
}

func TestNewStorageError(t *testing.T) {
	cause := stderrors.New("database is locked")
	appErr := NewStorageError("failed to persist score record", cause)

	assert.Equal(t, CategoryStorage, appErr.Category)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
	assert.Contains(t, appErr.Error(), "STORAGE_ERROR")
	assert.Contains(t, appErr.Error(), "failed to persist score record")
	assert.ErrorIs(t, appErr, cause)
}
