package middleware

import (
	"github.com/Kyz7/storefront/internal/access"
	"github.com/Kyz7/storefront/internal/auth"
	"github.com/Kyz7/storefront/internal/permission"
	"github.com/Kyz7/storefront/internal/response"

	"github.com/gofiber/fiber/v2"
)

// PermissionRequired lets the request through when the actor reaches the
// required tier. Mount it after auth.JWTProtected.
func PermissionRequired(eval *access.Evaluator, required permission.Set) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := eval.Require(c.UserContext(), auth.CurrentActor(c), required); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}

func AdminRequired(eval *access.Evaluator) fiber.Handler {
	return PermissionRequired(eval, permission.Administer)
}

// LoginRequired passes any authenticated actor, whatever its roles.
func LoginRequired(eval *access.Evaluator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := eval.RequireLogin(auth.CurrentActor(c)); err != nil {
			return response.FromError(c, err)
		}
		return c.Next()
	}
}
