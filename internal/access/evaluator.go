package access

import (
	"context"

	"github.com/Kyz7/storefront/internal/logger"
	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/permission"
	"github.com/Kyz7/storefront/internal/shared"

	"go.uber.org/zap"
)

// Actor is the authentication context handed in by the session layer.
type Actor struct {
	ID            uint
	Authenticated bool
}

// Anonymous is the actor of a request without a valid login.
var Anonymous = Actor{}

func User(id uint) Actor { return Actor{ID: id, Authenticated: true} }

// RoleSource loads the roles assigned to an actor.
type RoleSource interface {
	RolesOf(ctx context.Context, userID uint) ([]models.Role, error)
}

type Evaluator struct {
	roles RoleSource
	log   *zap.Logger
}

func NewEvaluator(roles RoleSource, log *zap.Logger) *Evaluator {
	return &Evaluator{roles: roles, log: logger.OrNop(log).Named("access")}
}

// rolesOf treats every lookup failure as "no roles".
func (e *Evaluator) rolesOf(ctx context.Context, actor Actor) []models.Role {
	if !actor.Authenticated {
		return nil
	}
	roles, err := e.roles.RolesOf(ctx, actor.ID)
	if err != nil {
		e.log.Warn("role lookup failed, treating actor as roleless",
			zap.Uint("user_id", actor.ID), zap.Error(err))
		return nil
	}
	return roles
}

func aggregate(roles []models.Role) permission.Set {
	var mask permission.Set
	for _, r := range roles {
		mask |= r.Permissions
	}
	return mask
}

// EffectivePermissions is the OR of the actor's role masks, or None.
func (e *Evaluator) EffectivePermissions(ctx context.Context, actor Actor) permission.Set {
	return aggregate(e.rolesOf(ctx, actor))
}

// Can reports whether the actor reaches the required tier. An actor with no
// roles is refused whatever is required, including None.
func (e *Evaluator) Can(ctx context.Context, actor Actor, required permission.Set) bool {
	roles := e.rolesOf(ctx, actor)
	if len(roles) == 0 {
		return false
	}
	return aggregate(roles).Satisfies(required)
}

func (e *Evaluator) CanAdminister(ctx context.Context, actor Actor) bool {
	return e.Can(ctx, actor, permission.Administer)
}

func (e *Evaluator) CanEdit(ctx context.Context, actor Actor) bool {
	return e.Can(ctx, actor, permission.Editor)
}

func (e *Evaluator) CanOperate(ctx context.Context, actor Actor) bool {
	return e.Can(ctx, actor, permission.Operator)
}

// Require is Can as an error: shared.ErrUnauthenticated for anonymous
// actors, shared.ErrUnauthorized otherwise.
func (e *Evaluator) Require(ctx context.Context, actor Actor, required permission.Set) error {
	if err := e.RequireLogin(actor); err != nil {
		return err
	}
	if !e.Can(ctx, actor, required) {
		return shared.ErrUnauthorized
	}
	return nil
}

// RequireLogin is the gate in front of cart operations: any logged-in actor
// passes, no permission bit is consulted.
func (e *Evaluator) RequireLogin(actor Actor) error {
	if !actor.Authenticated || actor.ID == 0 {
		return shared.ErrUnauthenticated
	}
	return nil
}
