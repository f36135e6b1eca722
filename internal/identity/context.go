package identity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalsKey is where the identity middleware leaves the verified token.
const LocalsKey = "identity"

// Current returns the identity claimed by the request, or nil.
func Current(c *fiber.Ctx) *Identity {
	token, ok := c.Locals(LocalsKey).(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	id, err := FromToken(token)
	if err != nil {
		return nil
	}
	return &id
}
