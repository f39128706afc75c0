// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ddu-connect/backend/internal/domain/entity"
)

// StudentModel represents the students table in the database.
type StudentModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StudentID    string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	XP           int        `gorm:"not null;default:0"`
	OTP          *string    `gorm:"type:varchar(6)"`
	OTPExpiry    *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the StudentModel.
func (StudentModel) TableName() string {
	return "students"
}

// ToEntity converts a StudentModel to a domain Student entity.
func (m *StudentModel) ToEntity() *entity.Student {
	return &entity.Student{
		ID:           m.ID,
		StudentID:    m.StudentID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		XP:           m.XP,
		OTP:          m.OTP,
		OTPExpiry:    m.OTPExpiry,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// StudentFromEntity creates a StudentModel from a domain Student entity.
func StudentFromEntity(student *entity.Student) *StudentModel {
	return &StudentModel{
		ID:           student.ID,
		StudentID:    student.StudentID,
		Name:         student.Name,
		Email:        student.Email,
		PasswordHash: student.PasswordHash,
		XP:           student.XP,
		OTP:          student.OTP,
		OTPExpiry:    student.OTPExpiry,
		CreatedAt:    student.CreatedAt,
		UpdatedAt:    student.UpdatedAt,
	}
}
