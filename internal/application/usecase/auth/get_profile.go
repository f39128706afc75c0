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

// GetProfileUseCase returns the public profile of an authenticated student.
type GetProfileUseCase struct {
	studentRepo adapter.StudentRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(studentRepo adapter.StudentRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		studentRepo: studentRepo,
	}
}

// Execute looks up the profile for studentID.
func (uc *GetProfileUseCase) Execute(ctx context.Context, studentID string) (*entity.StudentProfile, error) {
	student, err := uc.studentRepo.FindByStudentID(ctx, studentID)
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

	profile := student.Profile()
	return &profile, nil
}
