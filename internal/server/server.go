package server

import (
	"errors"

	"github.com/Kyz7/storefront/internal/access"
	"github.com/Kyz7/storefront/internal/cart"
	"github.com/Kyz7/storefront/internal/catalog"
	"github.com/Kyz7/storefront/internal/logger"
	"github.com/Kyz7/storefront/internal/response"
	"github.com/Kyz7/storefront/internal/role"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Deps are the components the HTTP surface is wired to.
type Deps struct {
	Roles     *role.Store
	Evaluator *access.Evaluator
	Catalog   *catalog.Tree
	Cart      *cart.Composer
	Log       *zap.Logger
}

func New(deps Deps) *fiber.App {
	log := logger.OrNop(deps.Log).Named("http")

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return response.Error(c, fe.Code, "HTTP_ERROR", fe.Message, nil)
			}
			log.Error("unhandled request error",
				zap.String("path", c.Path()), zap.String("method", c.Method()), zap.Error(err))
			return response.FromError(c, err)
		},
	})

	SetupRoutes(app, deps)

	return app
}
