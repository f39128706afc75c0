// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/ddu-connect/backend/internal/domain/entity"

// SignupRequest represents the request body for student signup.
type SignupRequest struct {
	StudentID string `json:"studentId" binding:"required,max=64"`
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,max=254"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for student login.
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// OTPRequest represents the request body for sending or resending a reset code.
type OTPRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest represents the request body for password reset.
type ResetPasswordRequest struct {
	StudentID   string `json:"studentId" binding:"required"`
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Student StudentResponse `json:"student"`
}

// StudentResponse represents the public student data in API responses.
type StudentResponse struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	XP        int    `json:"xp"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ToStudentResponse converts a student profile to a StudentResponse DTO.
func ToStudentResponse(profile entity.StudentProfile) StudentResponse {
	return StudentResponse{
		StudentID: profile.StudentID,
		Name:      profile.Name,
		Email:     profile.Email,
		XP:        profile.XP,
	}
}
