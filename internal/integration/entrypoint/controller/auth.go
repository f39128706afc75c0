// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ddu-connect/backend/internal/application/usecase/auth"
	domainerror "github.com/ddu-connect/backend/internal/domain/error"
	"github.com/ddu-connect/backend/internal/infra/metrics"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/dto"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	signupUseCase        *auth.SignupStudentUseCase
	loginUseCase         *auth.LoginStudentUseCase
	issueOTPUseCase      *auth.IssueOTPUseCase
	resetPasswordUseCase *auth.ResetPasswordUseCase
	getProfileUseCase    *auth.GetProfileUseCase
	metrics              *metrics.Metrics
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	signupUseCase *auth.SignupStudentUseCase,
	loginUseCase *auth.LoginStudentUseCase,
	issueOTPUseCase *auth.IssueOTPUseCase,
	resetPasswordUseCase *auth.ResetPasswordUseCase,
	getProfileUseCase *auth.GetProfileUseCase,
	m *metrics.Metrics,
) *AuthController {
	return &AuthController{
		signupUseCase:        signupUseCase,
		loginUseCase:         loginUseCase,
		issueOTPUseCase:      issueOTPUseCase,
		resetPasswordUseCase: resetPasswordUseCase,
		getProfileUseCase:    getProfileUseCase,
		metrics:              m,
	}
}

// Signup handles POST /api/auth/signup requests.
func (c *AuthController) Signup(ctx *gin.Context) {
	defer c.record(ctx, metrics.OperationSignup, time.Now())

	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx)
		return
	}

	output, err := c.signupUseCase.Execute(ctx.Request.Context(), auth.SignupStudentInput{
		StudentID: req.StudentID,
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{
		Message: output.Message,
	})
}

// Login handles POST /api/auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	defer c.record(ctx, metrics.OperationLogin, time.Now())

	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx)
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginStudentInput{
		StudentID: req.StudentID,
		Password:  req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   output.Token,
		Student: dto.ToStudentResponse(output.Student),
	})
}

// SendOTP handles POST /api/auth/send-otp requests.
func (c *AuthController) SendOTP(ctx *gin.Context) {
	defer c.record(ctx, metrics.OperationSendOTP, time.Now())
	c.issueOTP(ctx, false)
}

// ResendOTP handles POST /api/auth/resend-otp requests.
func (c *AuthController) ResendOTP(ctx *gin.Context) {
	defer c.record(ctx, metrics.OperationResendOTP, time.Now())
	c.issueOTP(ctx, true)
}

func (c *AuthController) issueOTP(ctx *gin.Context, resend bool) {
	var req dto.OTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx)
		return
	}

	output, err := c.issueOTPUseCase.Execute(ctx.Request.Context(), auth.IssueOTPInput{
		Email:  req.Email,
		Resend: resend,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// ResetPassword handles POST /api/auth/reset-password requests.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	defer c.record(ctx, metrics.OperationResetPassword, time.Now())

	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx)
		return
	}

	output, err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		StudentID:   req.StudentID,
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// Me handles GET /api/auth/me requests.
func (c *AuthController) Me(ctx *gin.Context) {
	defer c.record(ctx, metrics.OperationProfile, time.Now())

	studentID, ok := middleware.GetStudentIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	profile, err := c.getProfileUseCase.Execute(ctx.Request.Context(), studentID)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStudentResponse(*profile))
}

func (c *AuthController) badRequest(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(domainerror.ErrCodeMissingFields),
	})
}

func (c *AuthController) record(ctx *gin.Context, operation string, start time.Time) {
	c.metrics.Record(operation, metrics.OutcomeForStatus(ctx.Writer.Status()), time.Since(start))
}

// handleAuthError handles authentication errors and returns appropriate HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("Unhandled auth error", "error", err, "path", ctx.FullPath())
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeInternal),
	})
}

// statusCodeForAuthError maps auth error codes to HTTP status codes.
func statusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidIdentity,
		domainerror.ErrCodeInvalidOrExpiredOTP:
		return http.StatusBadRequest
	case domainerror.ErrCodeDuplicateAccount:
		return http.StatusConflict
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBadCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeDeliveryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
