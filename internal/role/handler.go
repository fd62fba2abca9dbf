package role

import (
	"github.com/Kyz7/storefront/internal/permission"
	"github.com/Kyz7/storefront/internal/response"
	"github.com/Kyz7/storefront/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type roleView struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Mask        permission.Set `json:"mask"`
	Permissions []string       `json:"permissions"`
}

func (h *Handler) ListRolesHandler(c *fiber.Ctx) error {
	roles, err := h.store.ListRoles(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}

	out := make([]roleView, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleView{ID: r.ID, Name: r.Name, Description: r.Description, Mask: r.Permissions, Permissions: r.Permissions.Names()})
	}
	return response.Success(c, out, "Roles retrieved")
}

func (h *Handler) CreateRoleHandler(c *fiber.Ctx) error {
	var body struct {
		Name        string   `json:"name" validate:"required,max=80"`
		Description string   `json:"description"`
		Permissions []string `json:"permissions"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if errs := utils.ValidateStruct(body); errs != nil {
		return response.ValidationError(c, errs)
	}

	perms, err := permission.ParseList(body.Permissions)
	if err != nil {
		return response.ValidationError(c, map[string]string{"permissions": err.Error()})
	}

	r, err := h.store.CreateRole(c.UserContext(), body.Name, body.Description, perms)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, roleView{ID: r.ID, Name: r.Name, Description: r.Description, Mask: r.Permissions, Permissions: r.Permissions.Names()}, "Role created")
}

func (h *Handler) UpdatePermissionsHandler(c *fiber.Ctx) error {
	roleID, err := c.ParamsInt("id")
	if err != nil || roleID <= 0 {
		return response.BadRequest(c, "Invalid role id", nil)
	}

	var body struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	perms, err := permission.ParseList(body.Permissions)
	if err != nil {
		return response.ValidationError(c, map[string]string{"permissions": err.Error()})
	}

	if err := h.store.UpdatePermissions(c.UserContext(), uint(roleID), perms); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"id": roleID, "mask": perms, "permissions": perms.Names()}, "Role permissions updated")
}

func (h *Handler) AssignRoleHandler(c *fiber.Ctx) error {
	roleID, userID, ok := assignmentParams(c)
	if !ok {
		return response.BadRequest(c, "Invalid role or user id", nil)
	}
	if err := h.store.AssignRole(c.UserContext(), userID, roleID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"role_id": roleID, "user_id": userID}, "Role assigned")
}

func (h *Handler) RevokeRoleHandler(c *fiber.Ctx) error {
	roleID, userID, ok := assignmentParams(c)
	if !ok {
		return response.BadRequest(c, "Invalid role or user id", nil)
	}
	if err := h.store.RevokeRole(c.UserContext(), userID, roleID); err != nil {
		return response.FromError(c, err)
	}
	return response.NoContent(c)
}

func assignmentParams(c *fiber.Ctx) (roleID, userID uint, ok bool) {
	r, err := c.ParamsInt("id")
	if err != nil || r <= 0 {
		return 0, 0, false
	}
	u, err := c.ParamsInt("user_id")
	if err != nil || u <= 0 {
		return 0, 0, false
	}
	return uint(r), uint(u), true
}
