package cart

import (
	"github.com/Kyz7/storefront/internal/auth"
	"github.com/Kyz7/storefront/internal/catalog"
	"github.com/Kyz7/storefront/internal/response"
	"github.com/Kyz7/storefront/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	composer *Composer
}

func NewHandler(composer *Composer) *Handler {
	return &Handler{composer: composer}
}

type addToCartRequest struct {
	Variant          uint `json:"variant" validate:"required"`
	ChildVariant     uint `json:"child_variant" validate:"required"`
	LastChildVariant uint `json:"last_child_variant" validate:"required"`
	Quantity         *int `json:"quantity"`
}

// AddToCartHandler serves POST /products/:id/add. The route is mounted
// behind the login gate.
func (h *Handler) AddToCartHandler(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return response.BadRequest(c, "Invalid product id", nil)
	}

	var body addToCartRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if errs := utils.ValidateStruct(body); errs != nil {
		return response.ValidationError(c, errs)
	}
	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	actor := auth.CurrentActor(c)
	line, err := h.composer.AddToCart(c.UserContext(), actor.ID, uint(productID), quantity, catalog.Path{
		Level1: body.Variant,
		Level2: body.ChildVariant,
		Level3: body.LastChildVariant,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, line, "Added to cart")
}

func (h *Handler) ShowCartHandler(c *fiber.Ctx) error {
	summary, err := h.composer.Summary(c.UserContext(), auth.CurrentActor(c).ID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, summary, "")
}

func (h *Handler) UpdateLineHandler(c *fiber.Ctx) error {
	lineID, err := c.ParamsInt("id")
	if err != nil || lineID <= 0 {
		return response.BadRequest(c, "Invalid line id", nil)
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	line, err := h.composer.UpdateQuantity(c.UserContext(), auth.CurrentActor(c).ID, uint(lineID), body.Quantity)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, line, "Cart line updated")
}

func (h *Handler) RemoveLineHandler(c *fiber.Ctx) error {
	lineID, err := c.ParamsInt("id")
	if err != nil || lineID <= 0 {
		return response.BadRequest(c, "Invalid line id", nil)
	}
	if err := h.composer.RemoveLine(c.UserContext(), auth.CurrentActor(c).ID, uint(lineID)); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}
