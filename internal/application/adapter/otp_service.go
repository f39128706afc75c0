// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// OTPService defines the interface for one-time code generation.
type OTPService interface {
	// Generate returns a fixed-width numeric code and the instant it stops being valid.
	Generate(now time.Time) (code string, expiresAt time.Time)

	// ValidFor returns how long a generated code stays valid.
	ValidFor() time.Duration
}
