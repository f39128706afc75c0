// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ddu-connect/backend/internal/application/adapter"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
)

const (
	// SessionTokenDuration is the fixed validity window of a session token.
	SessionTokenDuration = 7 * 24 * time.Hour

	tokenIssuer = "ddu-connect"
)

// SessionClaims represents the custom claims for session tokens.
type SessionClaims struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret []byte
	clock  adapter.Clock
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, clock adapter.Clock) adapter.TokenService {
	return &tokenService{
		secret: []byte(secret),
		clock:  clock,
	}
}

// IssueSessionToken mints an HS256 token valid for SessionTokenDuration.
func (s *tokenService) IssueSessionToken(studentID, name string) (string, error) {
	now := s.clock.Now().UTC()
	claims := SessionClaims{
		StudentID: studentID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   studentID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken parses and validates a session token.
func (s *tokenService) ValidateSessionToken(tokenString string) (*adapter.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	return &adapter.SessionClaims{
		StudentID: claims.StudentID,
		Name:      claims.Name,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
