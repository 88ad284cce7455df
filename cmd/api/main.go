package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Souq-api/internal/application/auth"
	"github.com/jhoicas/Souq-api/internal/application/ports"
	"github.com/jhoicas/Souq-api/internal/application/usecase"
	"github.com/jhoicas/Souq-api/internal/domain/repository"
	"github.com/jhoicas/Souq-api/internal/infrastructure/cache"
	"github.com/jhoicas/Souq-api/internal/infrastructure/oauth"
	"github.com/jhoicas/Souq-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Souq-api/internal/interfaces/http"
	"github.com/jhoicas/Souq-api/pkg/config"
	"github.com/jhoicas/Souq-api/pkg/i18n"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	// OAuth: Redis solo hace falta para el state de un solo uso; sin credenciales de
	// Google el login queda limitado a email/password.
	var (
		states    repository.OAuthStateStore
		providers []ports.OAuthProvider
	)
	if cfg.OAuth.GoogleEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		states = cache.NewOAuthStateStore(rdb)
		providers = append(providers, oauth.NewGoogleProvider(cfg.OAuth))
		log.Info().Msg("login con Google habilitado")
	}

	authUC := auth.NewAuthUseCase(userRepo, states, auth.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL(),
		Issuer: cfg.Session.Issuer,
	}, log, providers...)
	userUC := usecase.NewUserUseCase(userRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Souq API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		Cookie:        httpRouter.NewSessionCookie(cfg.App.IsProduction()),
		SessionSecret: cfg.Session.Secret,
		SessionIssuer: cfg.Session.Issuer,
		DefaultLang:   i18n.Parse(cfg.App.DefaultLang),
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
