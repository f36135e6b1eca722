package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/listing"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/services"
)

type ContentHandler struct {
	service *services.ContentService
}

func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// List handles GET /contents?mode=&page=.
func (h *ContentHandler) List(c *fiber.Ctx) error {
	mode, err := listing.ParseMode(c.Query("mode"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	p, err := h.service.List(c.UserContext(), mode, c.QueryInt("page", 1))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := dto.NewPageResponse(p)
	resp.Mode = string(mode)
	return c.JSON(resp)
}

func (h *ContentHandler) Get(c *fiber.Ctx) error {
	item, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.NewContentResponse(*item))
}

func (h *ContentHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.service.Submit(c.UserContext(), identity.Current(c), &req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewContentResponse(*item))
}

// Rate appends a rating and returns the item with its new aggregate.
func (h *ContentHandler) Rate(c *fiber.Ctx) error {
	var req dto.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := c.Params("id")
	if err := h.service.Rate(c.UserContext(), identity.Current(c), id, req.Value); err != nil {
		return writeServiceError(c, err)
	}

	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dto.NewContentResponse(*item))
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), identity.Current(c), c.Params("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Leaderboard handles GET /leaderboard/:year?page=.
func (h *ContentHandler) Leaderboard(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return badRequest(c, "year must be a number")
	}

	p, err := h.service.Leaderboard(c.UserContext(), year, c.QueryInt("page", 1))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := dto.NewPageResponse(p)
	resp.Year = year
	return c.JSON(resp)
}
