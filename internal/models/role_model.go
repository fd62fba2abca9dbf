package models

import (
	"time"

	"github.com/Kyz7/storefront/internal/permission"
)

type Role struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:80;uniqueIndex" json:"name"`
	Description string         `json:"description"`
	Permissions permission.Set `gorm:"not null" json:"permissions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// UserRole is the many-to-many edge between an actor and a role.
type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_role" json:"user_id"`
	RoleID    uint      `gorm:"uniqueIndex:idx_user_role;index" json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}
