package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/jhoicas/Souq-api/internal/application/auth"
	"github.com/jhoicas/Souq-api/internal/application/usecase"
	"github.com/jhoicas/Souq-api/internal/domain/access"
	"github.com/jhoicas/Souq-api/internal/domain/entity"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	Cookie        SessionCookie
	SessionSecret string
	SessionIssuer string
	DefaultLang   language.Tag
	Log           *logger.Logger
}

// Router registra middlewares globales, el gate y las rutas.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(Language(deps.DefaultLang))
	app.Use(RequestLogger(deps.Log))
	app.Use(EdgeGate(EdgeGateConfig{
		Secret: deps.SessionSecret,
		Issuer: deps.SessionIssuer,
		Cookie: deps.Cookie,
		Log:    deps.Log,
	}))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie, deps.SessionSecret, deps.SessionIssuer, deps.Log)
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Get("/oauth/:provider", authHandler.OAuthStart)
	authGroup.Get("/callback/:provider", authHandler.OAuthCallback)
	app.Get("/auth/logout", authHandler.LogoutPage)

	// Administración de usuarios (API, solo super_admin)
	if deps.UserUC != nil {
		userHandler := NewUserHandler(deps.UserUC, deps.Log)
		admin := app.Group("/api/admin", RequireRole(entity.RoleSuperAdmin))
		admin.Get("/users/:id", userHandler.GetByID)
		admin.Patch("/users/:id/role", userHandler.ChangeRole)
	}

	pages := NewPageHandler()
	for _, p := range []string{"/", "/auth/login", "/auth/register"} {
		app.Get(p, pages.Page)
	}
	app.Get(ErrorPath, pages.AuthError)

	// Back office (admin-only). Las rutas con guard propio van antes que los comodines.
	app.Get("/permissions", pages.Permissions())
	app.Get("/settings/roles", pages.RolesSection)
	for _, p := range access.AdminOnlyPaths() {
		if p == "/permissions" {
			continue
		}
		app.Get(p, pages.Page)
		app.Get(p+"/*", pages.Page)
	}

	// Cuenta de cliente (customer-only)
	for _, p := range access.CustomerOnlyPaths() {
		app.Get(p, pages.Page)
		app.Get(p+"/*", pages.Page)
	}
}
