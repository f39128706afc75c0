// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	MessageID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for composing and sending account emails.
type EmailService interface {
	// SendOTPEmail sends a password reset code. Delivery is attempted once.
	SendOTPEmail(ctx context.Context, input SendOTPEmailInput) error
}

// SendOTPEmailInput represents the input for sending a password reset code.
type SendOTPEmailInput struct {
	Email    string
	Name     string
	Code     string
	ValidFor time.Duration
	Resend   bool
}
