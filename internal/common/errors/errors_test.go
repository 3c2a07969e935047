package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidWallet, http.StatusBadRequest},
		{ErrCodeSignatureRequired, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidSignature, http.StatusUnauthorized},
		{ErrCodeExpired, http.StatusUnauthorized},
		{ErrCodeSessionNotFound, http.StatusUnauthorized},
		{ErrCodeUserNotFound, http.StatusNotFound},
		{ErrCodeWalletTaken, http.StatusConflict},
		{ErrCodeCacheError, http.StatusServiceUnavailable},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus(), string(tt.code))
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := Wrap(cause, ErrCodeDatabaseError, "Database operation failed")

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "DATABASE_ERROR")
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestWithDetail(t *testing.T) {
	appErr := NewUserNotFoundError(int64(42))
	assert.Equal(t, int64(42), appErr.Details["id"])
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus())
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(New(ErrCodeConflict, "taken"))
	assert.True(t, ok)
	assert.Equal(t, ErrCodeConflict, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
