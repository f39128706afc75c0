// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ddu-connect/backend/internal/application/adapter"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// StudentIDKey is the context key for the authenticated student's ID.
	StudentIDKey ContextKey = "student_id"
	// StudentNameKey is the context key for the authenticated student's name.
	StudentNameKey ContextKey = "student_name"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces session token authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			abort(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.tokenService.ValidateSessionToken(token)
		if err != nil {
			abort(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(string(StudentIDKey), claims.StudentID)
		c.Set(string(StudentNameKey), claims.Name)

		c.Next()
	}
}

func abort(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetStudentIDFromContext extracts the student ID from the Gin context.
func GetStudentIDFromContext(c *gin.Context) (string, bool) {
	studentID, exists := c.Get(string(StudentIDKey))
	if !exists {
		return "", false
	}
	id, ok := studentID.(string)
	return id, ok && id != ""
}

// GetStudentNameFromContext extracts the student name from the Gin context.
func GetStudentNameFromContext(c *gin.Context) (string, bool) {
	name, exists := c.Get(string(StudentNameKey))
	if !exists {
		return "", false
	}
	nameStr, ok := name.(string)
	return nameStr, ok
}
