// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ddu-connect/backend/internal/application/adapter"
	"github.com/ddu-connect/backend/internal/domain/entity"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

// LoginStudentInput represents the input for student login.
type LoginStudentInput struct {
	StudentID string
	Password  string
}

// LoginStudentOutput represents the output of student login.
type LoginStudentOutput struct {
	Token   string
	Student entity.StudentProfile
}

// LoginStudentUseCase handles student login logic.
type LoginStudentUseCase struct {
	studentRepo     adapter.StudentRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginStudentUseCase creates a new LoginStudentUseCase instance.
func NewLoginStudentUseCase(
	studentRepo adapter.StudentRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginStudentUseCase {
	return &LoginStudentUseCase{
		studentRepo:     studentRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the student login.
func (uc *LoginStudentUseCase) Execute(ctx context.Context, input LoginStudentInput) (*LoginStudentOutput, error) {
	student, err := uc.studentRepo.FindByStudentID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrStudentNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeAccountNotFound,
				"student ID not registered",
				err,
			)
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	if err := uc.passwordService.VerifyPassword(student.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeBadCredentials,
			"incorrect password",
			domainerror.ErrInvalidCredentials,
		)
	}

	token, err := uc.tokenService.IssueSessionToken(student.StudentID, student.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &LoginStudentOutput{
		Token:   token,
		Student: student.Profile(),
	}, nil
}
