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

// IssueOTPInput represents the input for requesting or resending a reset code.
type IssueOTPInput struct {
	Email string
	// Resend only changes the wording of the email.
	Resend bool
}

// IssueOTPOutput represents the output of an OTP request.
type IssueOTPOutput struct {
	Message string
}

// IssueOTPUseCase issues a password reset code and emails it to the student.
type IssueOTPUseCase struct {
	studentRepo  adapter.StudentRepository
	otpService   adapter.OTPService
	emailService adapter.EmailService
	locker       adapter.AccountLocker
	clock        adapter.Clock
}

// NewIssueOTPUseCase creates a new IssueOTPUseCase instance.
func NewIssueOTPUseCase(
	studentRepo adapter.StudentRepository,
	otpService adapter.OTPService,
	emailService adapter.EmailService,
	locker adapter.AccountLocker,
	clock adapter.Clock,
) *IssueOTPUseCase {
	return &IssueOTPUseCase{
		studentRepo:  studentRepo,
		otpService:   otpService,
		emailService: emailService,
		locker:       locker,
		clock:        clock,
	}
}

// Execute issues a new code, replacing any pending one, then sends it.
// The stored code is not rolled back when delivery fails.
func (uc *IssueOTPUseCase) Execute(ctx context.Context, input IssueOTPInput) (*IssueOTPOutput, error) {
	student, err := uc.studentRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerror.ErrStudentNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeAccountNotFound,
				"no account found with this email",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	// Held across write and send so the newest email carries the stored code.
	unlock, err := uc.locker.Lock(ctx, student.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	defer unlock()

	now := uc.clock.Now().UTC()
	code, expiresAt := uc.otpService.Generate(now)

	student.SetOTP(code, expiresAt, now)
	if err := uc.studentRepo.SaveOTP(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to save OTP: %w", err)
	}

	err = uc.emailService.SendOTPEmail(ctx, adapter.SendOTPEmailInput{
		Email:    student.Email,
		Name:     student.Name,
		Code:     code,
		ValidFor: uc.otpService.ValidFor(),
		Resend:   input.Resend,
	})
	if err != nil {
		slog.Error("Failed to send OTP email",
			"error", err,
			"student_id", student.StudentID,
			"resend", input.Resend,
			"retryable", domainerror.IsRetryableEmailError(err),
		)
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeDeliveryFailed,
			"failed to send OTP email",
			errors.Join(domainerror.ErrOTPDeliveryFailed, err),
		)
	}

	slog.Info("OTP email sent", "student_id", student.StudentID, "resend", input.Resend)

	message := "OTP sent successfully to your email"
	if input.Resend {
		message = "New OTP sent successfully"
	}
	return &IssueOTPOutput{
		Message: message,
	}, nil
}
