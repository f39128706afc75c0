// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ddu-connect/backend/internal/application/adapter"
	"github.com/ddu-connect/backend/internal/domain/entity"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

// SignupStudentInput represents the input for student signup.
type SignupStudentInput struct {
	StudentID string
	Name      string
	Email     string
	Password  string
}

// SignupStudentOutput represents the output of student signup.
type SignupStudentOutput struct {
	Message string
}

// SignupStudentUseCase handles student registration logic.
type SignupStudentUseCase struct {
	studentRepo     adapter.StudentRepository
	passwordService adapter.PasswordService
	allowlist       adapter.IdentityAllowlist
	clock           adapter.Clock
}

// NewSignupStudentUseCase creates a new SignupStudentUseCase instance.
func NewSignupStudentUseCase(
	studentRepo adapter.StudentRepository,
	passwordService adapter.PasswordService,
	allowlist adapter.IdentityAllowlist,
	clock adapter.Clock,
) *SignupStudentUseCase {
	return &SignupStudentUseCase{
		studentRepo:     studentRepo,
		passwordService: passwordService,
		allowlist:       allowlist,
		clock:           clock,
	}
}

// Execute performs the student signup.
func (uc *SignupStudentUseCase) Execute(ctx context.Context, input SignupStudentInput) (*SignupStudentOutput, error) {
	if input.StudentID == "" || input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"studentId, name, email and password are required",
			nil,
		)
	}
	if err := checkPasswordLength(input.Password); err != nil {
		return nil, err
	}

	if !uc.allowlist.Contains(input.StudentID) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidIdentity,
			"not a valid student ID",
			domainerror.ErrInvalidIdentity,
		)
	}

	exists, err := uc.studentRepo.ExistsByStudentID(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeDuplicateAccount,
			"student ID already registered",
			domainerror.ErrDuplicateAccount,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, hashError(err)
	}

	student := entity.NewStudent(input.StudentID, input.Name, input.Email, passwordHash, uc.clock.Now().UTC())

	// Email uniqueness is enforced by the store.
	if err := uc.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, domainerror.ErrDuplicateAccount) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeDuplicateAccount,
				"student ID or email already registered",
				err,
			)
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	slog.Info("Student signed up", "student_id", student.StudentID)

	return &SignupStudentOutput{
		Message: "Signup successful",
	}, nil
}
