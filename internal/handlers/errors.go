package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/services"
)

// writeServiceError maps the content service error taxonomy onto HTTP.
func writeServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrInvalidInput):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrExternalUnavailable):
		// store details are logged by the service, not returned
		status, message = fiber.StatusServiceUnavailable, services.ErrExternalUnavailable.Error()
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}
