// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ddu-connect/backend/internal/application/adapter"
)

const (
	// OTPValidity is how long a reset code can be consumed after issue.
	OTPValidity = 60 * time.Second

	otpDigits = 6
	otpSpace  = 1_000_000
)

// otpService implements the adapter.OTPService interface.
// Codes come from math/rand: they are short-lived and human-facing.
type otpService struct {
	intN func(n int) int
}

// NewOTPService creates a new OTP service instance.
func NewOTPService() adapter.OTPService {
	return &otpService{intN: rand.IntN}
}

// Generate returns a zero-padded 6-digit code and its expiry.
func (s *otpService) Generate(now time.Time) (string, time.Time) {
	code := fmt.Sprintf("%0*d", otpDigits, s.intN(otpSpace))
	return code, now.Add(OTPValidity)
}

// ValidFor returns the validity window of generated codes.
func (s *otpService) ValidFor() time.Duration {
	return OTPValidity
}
