package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ddu-connect/backend/internal/application/adapter"
)

// LogSender is used when no email provider is configured. It records that a
// message would have been sent without writing its body to the log.
type LogSender struct {
	logger *slog.Logger
	count  atomic.Int64
}

// NewLogSender creates a sender that only logs.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the recipient and subject.
func (s *LogSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	n := s.count.Add(1)
	s.logger.InfoContext(ctx, "Email provider not configured, email not delivered",
		"to", input.To,
		"subject", input.Subject,
	)
	return &adapter.SendEmailResult{
		MessageID: fmt.Sprintf("log-%d", n),
	}, nil
}

var _ adapter.EmailSender = (*LogSender)(nil)
