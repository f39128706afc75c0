// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxPasswordBytes is the longest password bcrypt accepts, counted in bytes
// of its UTF-8 encoding.
const MaxPasswordBytes = 72

// Student represents a registered student account.
// OTP and OTPExpiry are always both nil or both set.
type Student struct {
	ID           uuid.UUID
	StudentID    string
	Name         string
	Email        string
	PasswordHash string
	XP           int
	OTP          *string
	OTPExpiry    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StudentProfile is the public projection of a Student.
type StudentProfile struct {
	StudentID string
	Name      string
	Email     string
	XP        int
}

// NewStudent creates a new Student with no experience and no pending OTP.
func NewStudent(studentID, name, email, passwordHash string, now time.Time) *Student {
	return &Student{
		ID:           uuid.New(),
		StudentID:    studentID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		XP:           0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// SetOTP replaces any pending one-time code with a new one.
func (s *Student) SetOTP(code string, expiresAt, now time.Time) {
	s.OTP = &code
	s.OTPExpiry = &expiresAt
	s.UpdatedAt = now
}

// ClearOTP removes the pending one-time code.
func (s *Student) ClearOTP(now time.Time) {
	s.OTP = nil
	s.OTPExpiry = nil
	s.UpdatedAt = now
}

// HasPendingOTP reports whether a one-time code has been issued and not consumed.
// An expired code is still pending until it is replaced or consumed.
func (s *Student) HasPendingOTP() bool {
	return s.OTP != nil && s.OTPExpiry != nil
}

// CanConsumeOTP reports whether code matches the pending one-time code and
// now is strictly before its expiry.
func (s *Student) CanConsumeOTP(code string, now time.Time) bool {
	if !s.HasPendingOTP() {
		return false
	}
	if *s.OTP != code {
		return false
	}
	return now.Before(*s.OTPExpiry)
}

// ChangePassword replaces the stored password hash.
func (s *Student) ChangePassword(passwordHash string, now time.Time) {
	s.PasswordHash = passwordHash
	s.UpdatedAt = now
}

// Profile returns the public projection of the student.
func (s *Student) Profile() StudentProfile {
	return StudentProfile{
		StudentID: s.StudentID,
		Name:      s.Name,
		Email:     s.Email,
		XP:        s.XP,
	}
}
