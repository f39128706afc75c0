package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ddu-connect/backend/internal/application/adapter"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
	"github.com/ddu-connect/backend/internal/integration/email/templates"
)

const (
	subjectOTP       = "Password Reset OTP - DDU Connect"
	subjectResentOTP = "Resent OTP - DDU Connect"
)

// Service composes account emails and delivers them synchronously.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
	}
}

// SendOTPEmail renders and sends a password reset code in a single attempt.
func (s *Service) SendOTPEmail(ctx context.Context, input adapter.SendOTPEmailInput) error {
	subject := subjectOTP
	if input.Resend {
		subject = subjectResentOTP
	}

	msg, err := s.renderer.OTP(templates.OTPData{
		Name:     input.Name,
		Code:     input.Code,
		ValidFor: validityText(input.ValidFor),
		Resend:   input.Resend,
	})
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render otp email",
			errors.Join(domainerror.ErrTemplateRenderFailed, err),
		)
	}

	result, err := s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.Email,
		Name:    input.Name,
		Subject: subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "OTP email sent",
		"to", input.Email,
		"message_id", result.MessageID,
		"resend", input.Resend,
	)
	return nil
}

// validityText renders a duration the way the email copy expects it.
func validityText(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "1 minute"
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	case d == time.Second:
		return "1 second"
	default:
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
}

var _ adapter.EmailService = (*Service)(nil)
