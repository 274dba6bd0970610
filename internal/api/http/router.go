package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Suspensions    *handlers.SuspensionHandler
	Directory      *handlers.DirectoryHandler
	Export         *handlers.ExportHandler
	Recovery       *handlers.RecoveryHandler
	AuthMiddleware *auth.Middleware
	IdentityGate   *auth.IdentityGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	identity := api.Group("/auth", cfg.IdentityGate.Handle)
	identity.Post("/register", cfg.Auth.Register)
	identity.Post("/login", cfg.Auth.Login)
	identity.Post("/admin/login", cfg.Auth.LoginAdmin)

	api.Post("/auth/forgot-password", cfg.Recovery.SendRecoveryLink)
	api.Post("/auth/recovery/confirm", cfg.Recovery.ConfirmRecovery)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/auth/admin/register", cfg.Auth.RegisterAdmin)

	protected.Get("/user/auth/profile", cfg.Profiles.GetUserProfile)
	protected.Put("/user/auth/profile", cfg.Profiles.UpdateUserProfile)
	protected.Get("/admin/auth/profile", cfg.Profiles.GetAdminProfile)
	protected.Put("/admin/auth/profile", cfg.Profiles.UpdateAdminProfile)

	protected.Post("/user/suspend", cfg.Suspensions.SuspendUser)
	protected.Get("/users/active", cfg.Directory.ListActive)
	protected.Get("/users/search", cfg.Directory.Search)
	protected.Get("/admin/exportUsersPDF", auth.RequireAdmin(), cfg.Export.ExportUsersPDF)
}
