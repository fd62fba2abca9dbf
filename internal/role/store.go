package role

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kyz7/storefront/internal/logger"
	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/permission"
	"github.com/Kyz7/storefront/internal/shared"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store maps actors to roles. Without a cache every lookup queries the
// database; with one, lookups are served from Redis and collapsed per actor.
type Store struct {
	db    *gorm.DB
	cache *Cache
	group singleflight.Group
	log   *zap.Logger
}

type Option func(*Store)

func WithCache(c *Cache) Option { return func(s *Store) { s.cache = c } }

func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

func NewStore(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log).Named("role")
	return s
}

// RolesOf returns every role assigned to userID, in no particular order.
func (s *Store) RolesOf(ctx context.Context, userID uint) ([]models.Role, error) {
	if s.cache == nil {
		return s.loadRoles(ctx, userID)
	}

	gen, err := s.cache.generation(ctx, userID)
	if err != nil {
		s.log.Warn("role cache unavailable, reading database", zap.Uint("user_id", userID), zap.Error(err))
		return s.loadRoles(ctx, userID)
	}
	if roles, ok, err := s.cache.get(ctx, userID, gen); err != nil {
		s.log.Warn("role cache read failed", zap.Uint("user_id", userID), zap.Error(err))
	} else if ok {
		return roles, nil
	}

	// the shared load outlives any single caller; each caller waits on its own ctx
	key := fmt.Sprintf("%d:%d", userID, gen)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		loadCtx := context.WithoutCancel(ctx)
		roles, err := s.loadRoles(loadCtx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.set(loadCtx, userID, gen, roles); err != nil {
			s.log.Warn("role cache write failed", zap.Uint("user_id", userID), zap.Error(err))
		}
		return roles, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.Role), nil
	}
}

func (s *Store) loadRoles(ctx context.Context, userID uint) ([]models.Role, error) {
	var roles []models.Role
	err := s.db.WithContext(ctx).
		Table("roles").
		Select("roles.*").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.id ASC").
		Scan(&roles).Error
	if err != nil {
		return nil, shared.Storage("role: roles of user", err)
	}
	return roles, nil
}

func (s *Store) CreateRole(ctx context.Context, name, description string, perms permission.Set) (*models.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("role: name is required: %w", shared.ErrInvalidInput)
	}

	// the unique index on name decides races between concurrent creators
	role := models.Role{Name: name, Description: description, Permissions: perms}
	err := s.db.WithContext(ctx).Create(&role).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("role %q: %w", name, shared.ErrConflict)
	}
	if err != nil {
		return nil, shared.Storage("role: create", err)
	}
	return &role, nil
}

func (s *Store) FindRole(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("role %q: %w", name, shared.ErrNotFound)
	}
	if err != nil {
		return nil, shared.Storage("role: find", err)
	}
	return &role, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, shared.Storage("role: list", err)
	}
	return roles, nil
}

// UpdatePermissions replaces a role's mask and invalidates every holder.
func (s *Store) UpdatePermissions(ctx context.Context, roleID uint, perms permission.Set) error {
	var holders []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Role{}).Where("id = ?", roleID).Update("permissions", perms)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Model(&models.UserRole{}).Where("role_id = ?", roleID).Pluck("user_id", &holders).Error
	})
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("role %d: %w", roleID, shared.ErrNotFound)
	}
	if err != nil {
		return shared.Storage("role: update permissions", err)
	}
	s.invalidate(ctx, holders...)
	return nil
}

// AssignRole links userID to roleID. Assigning an already held role is a no-op.
func (s *Store) AssignRole(ctx context.Context, userID, roleID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			return err
		}
		ur := models.UserRole{UserID: userID, RoleID: roleID}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
			DoNothing: true,
		}).Create(&ur).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("role %d: %w", roleID, shared.ErrNotFound)
	}
	if err != nil {
		return shared.Storage("role: assign", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Store) RevokeRole(ctx context.Context, userID, roleID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&models.UserRole{}).Error
	if err != nil {
		return shared.Storage("role: revoke", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Store) invalidate(ctx context.Context, userIDs ...uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.bump(ctx, userIDs...); err != nil {
		// entries stay readable until their TTL runs out
		s.log.Error("role cache invalidation failed", zap.Uints("user_ids", userIDs), zap.Error(err))
	}
}
