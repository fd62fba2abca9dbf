package catalog

import (
	"net/url"

	"github.com/Kyz7/storefront/internal/response"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	tree *Tree
}

func NewHandler(tree *Tree) *Handler {
	return &Handler{tree: tree}
}

func (h *Handler) FeaturedHandler(c *fiber.Ctx) error {
	products, err := h.tree.FeaturedProducts(c.UserContext(), c.QueryInt("limit", 8))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, products, "Featured products retrieved")
}

// VariantPriceHandler answers /products/api/variant_price/:ref where ref is
// a variant id or a variant title.
func (h *Handler) VariantPriceHandler(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("ref"))
	if err != nil {
		return response.BadRequest(c, "Invalid variant reference", nil)
	}

	quote, err := h.tree.VariantPrice(c.UserContext(), ParseRef(raw))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, quote, "")
}

// ShowProductHandler serves /products/:ref, ref being an id or a hyphenated title.
func (h *Handler) ShowProductHandler(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("ref"))
	if err != nil {
		return response.BadRequest(c, "Invalid product reference", nil)
	}

	product, err := h.tree.FindProduct(c.UserContext(), ParseRef(TitleFromSlug(raw)))
	if err != nil {
		return response.FromError(c, err)
	}
	choices, err := h.tree.ListChoices(c.UserContext(), product.ID)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, fiber.Map{
		"product": product,
		"slug":    Slug(product.Title),
		"choices": choices,
	}, "")
}

func (h *Handler) ChoicesHandler(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return response.BadRequest(c, "Invalid product id", nil)
	}
	level1, ok1 := queryID(c, "variant")
	level2, ok2 := queryID(c, "child_variant")
	if !ok1 || !ok2 {
		return response.BadRequest(c, "Invalid variant id", nil)
	}

	choices, err := h.tree.ScopedChoices(c.UserContext(), uint(productID), level1, level2)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, choices, "")
}

func (h *Handler) ResolveHandler(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil || productID <= 0 {
		return response.BadRequest(c, "Invalid product id", nil)
	}
	level1, ok1 := queryID(c, "variant")
	level2, ok2 := queryID(c, "child_variant")
	level3, ok3 := queryID(c, "last_child_variant")
	if !ok1 || !ok2 || !ok3 {
		return response.BadRequest(c, "Invalid variant id", nil)
	}

	resolved, err := h.tree.Resolve(c.UserContext(), uint(productID), Path{Level1: level1, Level2: level2, Level3: level3})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, resolved, "")
}

func queryID(c *fiber.Ctx, key string) (uint, bool) {
	n := c.QueryInt(key, 0)
	if n < 0 {
		return 0, false
	}
	return uint(n), true
}
