package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
)

type IdentityHandler struct {
	issuer *identity.Issuer
}

func NewIdentityHandler(issuer *identity.Issuer) *IdentityHandler {
	return &IdentityHandler{issuer: issuer}
}

func (h *IdentityHandler) Claim(c *fiber.Ctx) error {
	var req dto.ClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id, token, err := h.issuer.Claim(req.Username)
	if err != nil {
		if errors.Is(err, identity.ErrEmptyUsername) || errors.Is(err, identity.ErrLongUsername) {
			return badRequest(c, err.Error())
		}
		slog.Error("identity claim failed", "action", "claim", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	slog.Info("identity claimed", "action", "claim", "user_id", id.ID, "username", id.Username)
	return c.Status(fiber.StatusCreated).JSON(dto.ClaimResponse{Identity: id, Token: token})
}

// Release forgets nothing server side; the client drops its token.
func (h *IdentityHandler) Release(c *fiber.Ctx) error {
	if id := identity.Current(c); id != nil {
		slog.Info("identity released", "action", "release", "user_id", id.ID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *IdentityHandler) Me(c *fiber.Ctx) error {
	id := identity.Current(c)
	if id == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "no identity claimed",
		})
	}
	return c.JSON(id)
}
