package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthError(t *testing.T) {
	err := NewAuthError(ErrCodeAccountNotFound, "no account found", ErrStudentNotFound)

	assert.Equal(t, "no account found: student not found", err.Error())
	assert.True(t, errors.Is(err, ErrStudentNotFound))
}

func TestAuthErrorCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewAuthError(ErrCodeInvalidOrExpiredOTP, "invalid or expired OTP", nil))

	assert.Equal(t, ErrCodeInvalidOrExpiredOTP, AuthErrorCodeOf(wrapped))
	assert.Equal(t, ErrCodeInternal, AuthErrorCodeOf(errors.New("plain")))
}

func TestIsRetryableEmailError(t *testing.T) {
	temporary := NewEmailError(ErrCodeTemporaryEmailFailure, "temporary email failure", errors.New("503"))
	permanent := NewEmailError(ErrCodePermanentEmailFailure, "permanent email failure", errors.New("422"))

	assert.True(t, IsRetryableEmailError(fmt.Errorf("send: %w", temporary)))
	assert.False(t, IsRetryableEmailError(permanent))
	assert.False(t, IsRetryableEmailError(errors.New("plain")))
}
