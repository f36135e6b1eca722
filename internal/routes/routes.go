package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/config"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/handlers"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	issuer *identity.Issuer,
	identityHandler *handlers.IdentityHandler,
	contentHandler *handlers.ContentHandler,
	liveHandler *handlers.LiveHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter, per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMin,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Live snapshot feed (websocket only)
	api.Get("/live", liveHandler.Upgrade, liveHandler.Stream())

	withIdentity := middleware.IdentityOptional(issuer)
	requireIdentity := middleware.IdentityRequired()

	// Identity: claims are unauthenticated display names
	api.Post("/identity/claim", identityHandler.Claim)
	api.Post("/identity/release", withIdentity, identityHandler.Release)
	api.Get("/identity/me", withIdentity, identityHandler.Me)

	// Contents: reads are public, writes need a claimed identity
	api.Get("/contents", contentHandler.List)
	api.Get("/contents/:id", contentHandler.Get)
	api.Post("/contents", withIdentity, requireIdentity, contentHandler.Submit)
	api.Post("/contents/:id/ratings", withIdentity, requireIdentity, contentHandler.Rate)
	api.Delete("/contents/:id", withIdentity, requireIdentity, contentHandler.Delete)

	api.Get("/leaderboard/:year", contentHandler.Leaderboard)
}
