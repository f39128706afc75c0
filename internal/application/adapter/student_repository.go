// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/ddu-connect/backend/internal/domain/entity"
)

// StudentRepository defines the interface for student persistence operations.
type StudentRepository interface {
	// Create stores a new student. Returns ErrDuplicateAccount if the
	// student ID or email is already taken.
	Create(ctx context.Context, student *entity.Student) error

	// FindByStudentID retrieves a student by student ID.
	FindByStudentID(ctx context.Context, studentID string) (*entity.Student, error)

	// FindByEmail retrieves a student by email address.
	FindByEmail(ctx context.Context, email string) (*entity.Student, error)

	// FindByStudentIDAndEmail retrieves a student matching both keys.
	FindByStudentIDAndEmail(ctx context.Context, studentID, email string) (*entity.Student, error)

	// ExistsByStudentID checks if a student with the given student ID exists.
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)

	// SaveOTP persists the pending one-time code set on student by SetOTP.
	SaveOTP(ctx context.Context, student *entity.Student) error

	// ResetPassword persists the password hash and OTP state of student
	// (after ChangePassword and ClearOTP), but only while the stored code
	// still equals consumedOTP. Returns false when no row matched.
	ResetPassword(ctx context.Context, student *entity.Student, consumedOTP string) (bool, error)
}
