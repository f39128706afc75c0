// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// SessionClaims represents the claims asserted by a session token.
type SessionClaims struct {
	StudentID string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	// IssueSessionToken mints a signed session token for the given student.
	IssueSessionToken(studentID, name string) (string, error)

	// ValidateSessionToken validates a session token and returns its claims.
	ValidateSessionToken(token string) (*SessionClaims, error)
}
