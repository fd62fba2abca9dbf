package auth

import (
	"github.com/Kyz7/storefront/internal/access"
	"github.com/Kyz7/storefront/internal/response"

	"github.com/gofiber/fiber/v2"
)

// PermissionsHandler reports the caller's effective permissions.
func PermissionsHandler(eval *access.Evaluator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return response.Success(c, eval.Describe(c.UserContext(), CurrentActor(c)), "")
	}
}
