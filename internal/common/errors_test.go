package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError_UnwrapsToClass(t *testing.T) {
	err := NewStatusError("signin", http.StatusUnauthorized, ErrAuthenticationFailed)

	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.False(t, errors.Is(err, ErrNotAuthenticated))
	assert.Contains(t, err.Error(), "401")

	var se *StatusError
	wrapped := fmt.Errorf("login: %w", err)
	if assert.True(t, errors.As(wrapped, &se)) {
		assert.Equal(t, http.StatusUnauthorized, se.Code)
	}
}

func TestServiceError_AuthCodes(t *testing.T) {
	tests := []struct {
		code     string
		authErr  bool
		svcError bool
	}{
		{"invalid-jwt", true, true},
		{"invalid-headers", true, true},
		{"access-denied", true, true},
		{"validation-failed", false, true},
		{"", false, true},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			err := &ServiceError{Message: "boom", Code: tc.code}
			assert.Equal(t, tc.authErr, IsAuthError(err))
			assert.Equal(t, tc.svcError, errors.Is(err, ErrServiceError))
			assert.Equal(t, "boom", err.Error())
		})
	}
}

func TestErrNoToken_IsMalformed(t *testing.T) {
	assert.ErrorIs(t, ErrNoToken, ErrMalformedResponse)
	assert.Equal(t, "malformed server response: no token in response", ErrNoToken.Error())
}
