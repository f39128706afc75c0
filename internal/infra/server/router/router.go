// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ddu-connect/backend/internal/infra/metrics"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/controller"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	healthController *controller.HealthController
	authController   *controller.AuthController
	authMiddleware   *middleware.AuthMiddleware
	metrics          *metrics.Metrics
	allowedOrigins   []string
}

// NewRouter creates a new router instance with all dependencies.
// authController and authMiddleware may be nil when the database is unavailable.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController: healthController,
		authController:   authController,
		authMiddleware:   authMiddleware,
		metrics:          m,
		allowedOrigins:   allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Logger and recovery
	r.engine = gin.Default()
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	if r.authController == nil {
		return
	}

	auth := r.engine.Group("/api/auth")
	{
		auth.POST("/signup", r.authController.Signup)
		auth.POST("/login", r.authController.Login)
		auth.POST("/send-otp", r.authController.SendOTP)
		auth.POST("/resend-otp", r.authController.ResendOTP)
		auth.POST("/reset-password", r.authController.ResetPassword)

		if r.authMiddleware != nil {
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}
	}
}
