// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ddu-connect/backend/internal/application/adapter"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

// ResetPasswordInput represents the input for password reset.
type ResetPasswordInput struct {
	StudentID   string
	Email       string
	OTP         string
	NewPassword string
}

// ResetPasswordOutput represents the output of password reset.
type ResetPasswordOutput struct {
	Message string
}

// ResetPasswordUseCase consumes a pending code and replaces the password.
type ResetPasswordUseCase struct {
	studentRepo     adapter.StudentRepository
	passwordService adapter.PasswordService
	locker          adapter.AccountLocker
	clock           adapter.Clock
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	studentRepo adapter.StudentRepository,
	passwordService adapter.PasswordService,
	locker adapter.AccountLocker,
	clock adapter.Clock,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		studentRepo:     studentRepo,
		passwordService: passwordService,
		locker:          locker,
		clock:           clock,
	}
}

// Execute performs the password reset. No session token is issued.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	// Checked before the code is looked at so a rejected password leaves it usable.
	if err := checkPasswordLength(input.NewPassword); err != nil {
		return nil, err
	}

	unlock, err := uc.locker.Lock(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	defer unlock()

	// Matching on both keys binds the code to one identity.
	student, err := uc.studentRepo.FindByStudentIDAndEmail(ctx, input.StudentID, input.Email)
	if err != nil {
		if errors.Is(err, domainerror.ErrStudentNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeAccountNotFound,
				"student not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	now := uc.clock.Now().UTC()
	if !student.CanConsumeOTP(input.OTP, now) {
		return nil, invalidOTPError()
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, hashError(err)
	}

	student.ChangePassword(passwordHash, now)
	student.ClearOTP(now)

	updated, err := uc.studentRepo.ResetPassword(ctx, student, input.OTP)
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	if !updated {
		// Superseded or consumed between read and write.
		return nil, invalidOTPError()
	}

	slog.Info("Password reset", "student_id", student.StudentID)

	return &ResetPasswordOutput{
		Message: "Password reset successfully",
	}, nil
}

func invalidOTPError() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidOrExpiredOTP,
		"invalid or expired OTP",
		domainerror.ErrInvalidOrExpiredOTP,
	)
}
