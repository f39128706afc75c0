// Package error defines domain-specific errors for the DDU Connect backend.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrStudentNotFound is returned when no student matches the lookup key.
	ErrStudentNotFound = errors.New("student not found")

	// ErrDuplicateAccount is returned when a student ID or email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrPasswordTooLong is returned when a password exceeds entity.MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

	// ErrInvalidIdentity is returned when a student ID is not on the allowlist.
	ErrInvalidIdentity = errors.New("not a valid student ID")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a session token is invalid or expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidOrExpiredOTP is returned for any OTP consumption failure.
	// Wrong, expired and missing codes are deliberately indistinguishable.
	ErrInvalidOrExpiredOTP = errors.New("invalid or expired OTP")

	// ErrOTPDeliveryFailed is returned when the OTP email could not be sent.
	ErrOTPDeliveryFailed = errors.New("failed to deliver OTP")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Signup errors (01XXXX)
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidIdentity  AuthErrorCode = "AUTH-010002"
	ErrCodeDuplicateAccount AuthErrorCode = "AUTH-010003"

	// Login errors (02XXXX)
	ErrCodeAccountNotFound AuthErrorCode = "AUTH-020001"
	ErrCodeBadCredentials  AuthErrorCode = "AUTH-020002"

	// Session token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030002"

	// Password recovery errors (04XXXX)
	ErrCodeInvalidOrExpiredOTP AuthErrorCode = "AUTH-040001"
	ErrCodeDeliveryFailed      AuthErrorCode = "AUTH-040002"

	// Unexpected failures (90XXXX)
	ErrCodeInternal AuthErrorCode = "AUTH-900001"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AuthErrorCodeOf returns the code carried by err, or ErrCodeInternal when
// err is not an AuthError.
func AuthErrorCodeOf(err error) AuthErrorCode {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ErrCodeInternal
}
