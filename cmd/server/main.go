package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/config"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/database"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/handlers"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/live"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/logging"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/middleware"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/policy"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/routes"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/services"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store/memory"
	pgstore "github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/store/postgres"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking; ERROR+ log records are reported as events too
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			slog.SetDefault(slog.New(logging.NewMultiHandler(
				slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(cfg.LogLevel)}),
				logging.NewSentryHandler(sentry.CurrentHub()),
			)))
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		slog.Error("content store unavailable", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("content store ready", "driver", cfg.StoreDriver)

	// Live snapshot hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := live.NewHub(st)
	go hub.Run(hubCtx)

	// Services
	posterService := services.NewPosterService(cfg.PosterAPIURL, cfg.PosterAPIKey, cfg.PosterTimeout)
	if !posterService.Enabled() {
		slog.Warn("POSTER_API_KEY not set, posters disabled")
	}
	contentService := services.NewContentService(st, posterService, hub, policy.Policy{OwnerOnlyDelete: cfg.StrictDelete})
	issuer := identity.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)

	// Handlers
	identityHandler := handlers.NewIdentityHandler(issuer)
	contentHandler := handlers.NewContentHandler(contentService)
	liveHandler := handlers.NewLiveHandler(hub, contentService)
	healthHandler := handlers.NewHealthHandler(cfg.StoreDriver, hub)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, issuer, identityHandler, contentHandler, liveHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "strict_delete", cfg.StrictDelete)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	// closes live subscriptions so websocket handlers return
	stopHub()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver != config.StorePostgres {
		return memory.New(), nil
	}
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	if err := database.MigrateModels(pgstore.Models()); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return pgstore.New(database.DB), nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only client errors (4xx) carry their message
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "request_id", c.GetRespHeader(fiber.HeaderXRequestID), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
