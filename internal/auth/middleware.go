package auth

import (
	"strings"

	"github.com/Kyz7/storefront/internal/access"
	"github.com/Kyz7/storefront/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// JWTProtected rejects requests without a valid bearer token and stores the
// authenticated actor for later handlers.
func JWTProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "UNAUTHORIZED",
					"message": "Missing authorization token",
				},
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INVALID_TOKEN_FORMAT",
					"message": "Invalid token format",
				},
			})
		}

		userID, err := utils.ParseJWT(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
		}

		c.Locals(actorKey, access.User(userID))
		return c.Next()
	}
}

// CurrentActor returns the request's actor, or access.Anonymous.
func CurrentActor(c *fiber.Ctx) access.Actor {
	if a, ok := c.Locals(actorKey).(access.Actor); ok {
		return a
	}
	return access.Anonymous
}
