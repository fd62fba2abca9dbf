package models

import (
	"time"

	"gorm.io/datatypes"
)

// CartLine is keyed by (user, product, variant path); the unique index is what
// makes repeat additions merge instead of duplicating.
type CartLine struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;uniqueIndex:idx_cart_line_key,priority:1" json:"user_id"`
	ProductID          uint           `gorm:"not null;uniqueIndex:idx_cart_line_key,priority:2" json:"product_id"`
	VariantID          uint           `gorm:"not null;uniqueIndex:idx_cart_line_key,priority:3" json:"variant_id"`
	ChildVariantID     uint           `gorm:"not null;uniqueIndex:idx_cart_line_key,priority:4" json:"child_variant_id"`
	LastChildVariantID uint           `gorm:"not null;uniqueIndex:idx_cart_line_key,priority:5" json:"last_child_variant_id"`
	Quantity           int            `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice          int64          `gorm:"not null" json:"unit_price"`
	Snapshot           datatypes.JSON `json:"snapshot,omitempty"` // {"titles": [...], "title": "..."}
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// LineSnapshot is the JSON body stored in CartLine.Snapshot.
type LineSnapshot struct {
	Title  string   `json:"title"`
	Titles []string `json:"titles"`
}

func (l CartLine) Subtotal() int64 { return l.UnitPrice * int64(l.Quantity) }
