package error

import "errors"

// Delivery failures reported by the email integration.
var (
	ErrTemplateRenderFailed  = errors.New("failed to render email template")
	ErrPermanentEmailFailure = errors.New("permanent email failure")
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode identifies an email failure. Format: EMAIL-XXYYYY.
type EmailErrorCode string

const (
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"
	ErrCodeTemplateRenderFailed  EmailErrorCode = "EMAIL-030002"
)

// EmailError is returned by email senders and the OTP email service.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// Retryable reports whether sending the same message again may succeed.
// Only provider-side transient failures qualify.
func (e *EmailError) Retryable() bool {
	return e.Code == ErrCodeTemporaryEmailFailure
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsRetryableEmailError reports whether err carries a retryable EmailError.
func IsRetryableEmailError(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Retryable()
}
