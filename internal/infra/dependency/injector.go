// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ddu-connect/backend/config"
	"github.com/ddu-connect/backend/internal/application/adapter"
	"github.com/ddu-connect/backend/internal/application/usecase/auth"
	infradb "github.com/ddu-connect/backend/internal/infra/db"
	"github.com/ddu-connect/backend/internal/infra/metrics"
	"github.com/ddu-connect/backend/internal/infra/server/router"
	"github.com/ddu-connect/backend/internal/integration/adapters"
	"github.com/ddu-connect/backend/internal/integration/email"
	"github.com/ddu-connect/backend/internal/integration/email/templates"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/controller"
	"github.com/ddu-connect/backend/internal/integration/entrypoint/middleware"
	"github.com/ddu-connect/backend/internal/integration/persistence"
)

// Dependencies are the collaborators selected by the caller per environment.
type Dependencies struct {
	EmailSender adapter.EmailSender
	Locker      adapter.AccountLocker
	Allowlist   adapter.IdentityAllowlist
	Clock       adapter.Clock
	Metrics     *metrics.Metrics
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, deps Dependencies) (*Injector, error) {
	clock := deps.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	studentRepo := persistence.NewStudentRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.Auth.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, clock)
	otpService := adapters.NewOTPService()

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailService := email.NewService(deps.EmailSender, renderer)

	// Create auth use cases
	signupUseCase := auth.NewSignupStudentUseCase(studentRepo, passwordService, deps.Allowlist, clock)
	loginUseCase := auth.NewLoginStudentUseCase(studentRepo, passwordService, tokenService)
	issueOTPUseCase := auth.NewIssueOTPUseCase(studentRepo, otpService, emailService, deps.Locker, clock)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(studentRepo, passwordService, deps.Locker, clock)
	getProfileUseCase := auth.NewGetProfileUseCase(studentRepo)

	// Create controllers
	healthController := controller.NewHealthController(func(ctx context.Context) error {
		return infradb.Ping(ctx, db)
	}, clock.Now)

	authController := controller.NewAuthController(
		signupUseCase,
		loginUseCase,
		issueOTPUseCase,
		resetPasswordUseCase,
		getProfileUseCase,
		deps.Metrics,
	)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		authMiddleware,
		deps.Metrics,
		cfg.CORS.AllowedOrigins,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		TokenService: tokenService,
	}, nil
}
