package access

import "context"

// PermissionsView is the per-actor summary served on /account/permissions.
type PermissionsView struct {
	UserID        uint     `json:"user_id"`
	Mask          uint32   `json:"mask"`
	Permissions   []string `json:"permissions"`
	CanAdminister bool     `json:"can_administer"`
	CanEdit       bool     `json:"can_edit"`
	CanOperate    bool     `json:"can_operate"`
}

func (e *Evaluator) Describe(ctx context.Context, actor Actor) PermissionsView {
	mask := e.EffectivePermissions(ctx, actor)
	return PermissionsView{
		UserID:        actor.ID,
		Mask:          uint32(mask),
		Permissions:   mask.Names(),
		CanAdminister: e.CanAdminister(ctx, actor),
		CanEdit:       e.CanEdit(ctx, actor),
		CanOperate:    e.CanOperate(ctx, actor),
	}
}
