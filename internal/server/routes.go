package server

import (
	"strconv"
	"time"

	"github.com/Kyz7/storefront/internal/auth"
	"github.com/Kyz7/storefront/internal/cart"
	"github.com/Kyz7/storefront/internal/catalog"
	"github.com/Kyz7/storefront/internal/middleware"
	"github.com/Kyz7/storefront/internal/role"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func SetupRoutes(app *fiber.App, deps Deps) {
	// Middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Storefront API is running",
		})
	})

	login := []fiber.Handler{auth.JWTProtected(), middleware.LoginRequired(deps.Evaluator)}

	// ==========================================
	// CATALOG (public)
	// ==========================================
	catalogHandler := catalog.NewHandler(deps.Catalog)
	cartHandler := cart.NewHandler(deps.Cart)

	products := app.Group("/products")
	// fixed paths first so they are not captured by /:ref
	products.Get("/featured", catalogHandler.FeaturedHandler)
	products.Get("/api/variant_price/:ref", catalogHandler.VariantPriceHandler)
	products.Get("/:id/choices", catalogHandler.ChoicesHandler)
	products.Get("/:id/resolve", catalogHandler.ResolveHandler)
	products.Post("/:id/add",
		auth.JWTProtected(),
		middleware.LoginRequired(deps.Evaluator),
		limiter.New(limiter.Config{
			Max:        60,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return strconv.FormatUint(uint64(auth.CurrentActor(c).ID), 10)
			},
		}),
		cartHandler.AddToCartHandler)
	products.Get("/:ref", catalogHandler.ShowProductHandler)

	// ==========================================
	// CART (login required)
	// ==========================================
	cartGroup := app.Group("/cart", login...)
	cartGroup.Get("/", cartHandler.ShowCartHandler)
	cartGroup.Patch("/lines/:id", cartHandler.UpdateLineHandler)
	cartGroup.Delete("/lines/:id", cartHandler.RemoveLineHandler)

	// ==========================================
	// ACCOUNT
	// ==========================================
	account := app.Group("/account", login...)
	account.Get("/permissions", auth.PermissionsHandler(deps.Evaluator))

	// ==========================================
	// ROLE MANAGEMENT (Administer only)
	// ==========================================
	roleHandler := role.NewHandler(deps.Roles)

	roleGroup := app.Group("/roles")
	roleGroup.Use(auth.JWTProtected())
	roleGroup.Use(middleware.AdminRequired(deps.Evaluator))
	roleGroup.Get("/", roleHandler.ListRolesHandler)
	roleGroup.Post("/", roleHandler.CreateRoleHandler)
	roleGroup.Put("/:id", roleHandler.UpdatePermissionsHandler)
	roleGroup.Put("/:id/users/:user_id", roleHandler.AssignRoleHandler)
	roleGroup.Delete("/:id/users/:user_id", roleHandler.RevokeRoleHandler)
}
