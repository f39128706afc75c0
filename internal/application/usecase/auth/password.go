package auth

import (
	"errors"
	"fmt"

	"github.com/ddu-connect/backend/internal/domain/entity"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

// checkPasswordLength rejects passwords bcrypt cannot hash. The limit is in
// bytes, so 37 two-byte characters already exceed it.
func checkPasswordLength(password string) error {
	if len(password) > entity.MaxPasswordBytes {
		return passwordTooLongError()
	}
	return nil
}

// hashError maps a PasswordService failure to the client or internal error.
func hashError(err error) error {
	if errors.Is(err, domainerror.ErrPasswordTooLong) {
		return passwordTooLongError()
	}
	return fmt.Errorf("failed to hash password: %w", err)
}

func passwordTooLongError() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeMissingFields,
		fmt.Sprintf("password must be at most %d bytes", entity.MaxPasswordBytes),
		domainerror.ErrPasswordTooLong,
	)
}
