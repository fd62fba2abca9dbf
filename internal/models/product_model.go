package models

import (
	"time"
)

type Artist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;uniqueIndex" json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255;uniqueIndex" json:"title"`
	ArtistID   *uint     `gorm:"index" json:"artist_id,omitempty"`
	Artist     *Artist   `gorm:"foreignKey:ArtistID;constraint:OnDelete:SET NULL" json:"artist,omitempty"`
	IsFeatured bool      `gorm:"index" json:"is_featured"`
	Variants   []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Variant is one node of a product's variant forest. Roots have no parent;
// their children are the second level and grandchildren are the priced leaves.
type Variant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	ParentID      *uint     `gorm:"index" json:"parent_id,omitempty"`
	Title         string    `gorm:"size:255;index" json:"title"`
	PriceOverride *int64    `json:"price_override,omitempty"` // minor currency units
	Stock         int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (v Variant) IsRoot() bool { return v.ParentID == nil }
