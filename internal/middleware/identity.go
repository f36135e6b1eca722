package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/dto"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/identity"
)

// IdentityOptional verifies a claimed identity token when one is presented.
// Requests without a token pass through anonymously; a bad token is a 401.
// Browsers cannot set headers on websocket upgrades, so ?token= is accepted too.
func IdentityOptional(issuer *identity.Issuer) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: issuer.Secret()},
		ContextKey:  identity.LocalsKey,
		TokenLookup: "header:Authorization,query:token",
		Filter: func(c *fiber.Ctx) bool {
			return c.Get(fiber.HeaderAuthorization) == "" && c.Query("token") == ""
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired identity token",
			})
		},
	})
}

// IdentityRequired rejects requests that carry no verified identity. It runs
// after IdentityOptional.
func IdentityRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity.Current(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "claim a username first",
			})
		}
		return c.Next()
	}
}
