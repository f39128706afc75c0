// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/ddu-connect/backend/internal/application/adapter"
	"github.com/ddu-connect/backend/internal/domain/entity"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
	"github.com/ddu-connect/backend/internal/integration/persistence/model"
)

// studentRepository implements the adapter.StudentRepository interface.
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository instance.
func NewStudentRepository(db *gorm.DB) adapter.StudentRepository {
	return &studentRepository{
		db: db,
	}
}

// Create creates a new student in the database.
func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	studentModel := model.StudentFromEntity(student)
	result := r.db.WithContext(ctx).Create(studentModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrDuplicateAccount
		}
		return result.Error
	}
	return nil
}

// FindByStudentID retrieves a student by student ID.
func (r *studentRepository) FindByStudentID(ctx context.Context, studentID string) (*entity.Student, error) {
	return r.findOne(ctx, "student_id = ?", studentID)
}

// FindByEmail retrieves a student by email address.
func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*entity.Student, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByStudentIDAndEmail retrieves a student matching both student ID and email.
func (r *studentRepository) FindByStudentIDAndEmail(ctx context.Context, studentID, email string) (*entity.Student, error) {
	return r.findOne(ctx, "student_id = ? AND email = ?", studentID, email)
}

// ExistsByStudentID checks if a student with the given student ID exists.
func (r *studentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.StudentModel{}).Where("student_id = ?", studentID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// SaveOTP overwrites both OTP columns in a single update.
func (r *studentRepository) SaveOTP(ctx context.Context, student *entity.Student) error {
	if !student.HasPendingOTP() {
		return errors.New("student has no pending OTP to save")
	}
	result := r.db.WithContext(ctx).
		Model(&model.StudentModel{}).
		Where("student_id = ?", student.StudentID).
		Updates(map[string]any{
			"otp":        *student.OTP,
			"otp_expiry": *student.OTPExpiry,
			"updated_at": student.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrStudentNotFound
	}
	return nil
}

// ResetPassword writes the student's hash and OTP columns while the stored
// code still equals consumedOTP.
func (r *studentRepository) ResetPassword(ctx context.Context, student *entity.Student, consumedOTP string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.StudentModel{}).
		Where("student_id = ? AND email = ? AND otp = ?", student.StudentID, student.Email, consumedOTP).
		Updates(map[string]any{
			"password_hash": student.PasswordHash,
			"otp":           nullable(student.OTP),
			"otp_expiry":    nullable(student.OTPExpiry),
			"updated_at":    student.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// nullable turns a nil pointer into an untyped nil so the column is set to NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func (r *studentRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Student, error) {
	var studentModel model.StudentModel
	result := r.db.WithContext(ctx).Where(query, args...).First(&studentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStudentNotFound
		}
		return nil, result.Error
	}
	return studentModel.ToEntity(), nil
}

// isUniqueViolation recognises unique-key violations from Postgres and SQLite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
