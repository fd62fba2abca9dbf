package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:80;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:80;uniqueIndex" json:"email"`
	NickName  string    `gorm:"size:255" json:"nick_name,omitempty"`
	IsActive  bool      `gorm:"default:false" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
