package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/config"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/database"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
)

type subscriberCounter interface {
	Subscribers() int
}

type HealthHandler struct {
	driver string
	live   subscriberCounter
	ping   func() error
}

func NewHealthHandler(driver string, live subscriberCounter) *HealthHandler {
	return &HealthHandler{driver: driver, live: live, ping: database.Ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     h.driver,
	}
	if h.live != nil {
		resp.Subscribers = h.live.Subscribers()
	}

	if h.driver == config.StorePostgres {
		resp.DB = "ok"
		if err := h.ping(); err != nil {
			resp.Status = "degraded"
			resp.DB = "unhealthy: " + err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
	}
	return c.JSON(resp)
}
