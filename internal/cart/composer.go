package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Kyz7/storefront/internal/catalog"
	"github.com/Kyz7/storefront/internal/logger"
	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/shared"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resolver prices a variant path.
type Resolver interface {
	Resolve(ctx context.Context, productID uint, path catalog.Path) (*catalog.Resolved, error)
}

// Composer turns variant selections into cart lines. It does not check
// permissions; callers gate it with access.Evaluator.RequireLogin.
type Composer struct {
	db   *gorm.DB
	tree Resolver
	log  *zap.Logger
}

func NewComposer(db *gorm.DB, tree Resolver, log *zap.Logger) *Composer {
	return &Composer{db: db, tree: tree, log: logger.OrNop(log).Named("cart")}
}

var lineKey = []clause.Column{
	{Name: "user_id"},
	{Name: "product_id"},
	{Name: "variant_id"},
	{Name: "child_variant_id"},
	{Name: "last_child_variant_id"},
}

// AddToCart adds quantity of the leaf selected by path. A repeat add of the
// same path increments the existing line; the insert-or-increment runs as a
// single statement against the line's unique key, so concurrent adds from
// any number of processes end in one line.
func (c *Composer) AddToCart(ctx context.Context, actorID, productID uint, quantity int, path catalog.Path) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("cart: quantity %d: %w", quantity, shared.ErrInvalidQuantity)
	}

	resolved, err := c.tree.Resolve(ctx, productID, path)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(models.LineSnapshot{Title: resolved.Title, Titles: resolved.Titles})
	if err != nil {
		return nil, fmt.Errorf("cart: snapshot: %w", err)
	}

	var line models.CartLine
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := models.CartLine{
			UserID:             actorID,
			ProductID:          productID,
			VariantID:          path.Level1,
			ChildVariantID:     path.Level2,
			LastChildVariantID: path.Level3,
			Quantity:           quantity,
			UnitPrice:          resolved.Price,
			Snapshot:           snapshot,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: lineKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
				"updated_at": time.Now(),
			}),
		}).Create(&insert).Error
		if err != nil {
			return err
		}
		return tx.Where(
			"user_id = ? AND product_id = ? AND variant_id = ? AND child_variant_id = ? AND last_child_variant_id = ?",
			actorID, productID, path.Level1, path.Level2, path.Level3,
		).First(&line).Error
	})
	if err != nil {
		return nil, shared.Storage("cart: add", err)
	}

	c.log.Info("cart line upserted",
		zap.Uint("user_id", actorID),
		zap.Uint("product_id", productID),
		zap.Stringer("path", path),
		zap.Int("added", quantity),
		zap.Int("quantity", line.Quantity))
	return &line, nil
}

func (c *Composer) Lines(ctx context.Context, actorID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := c.db.WithContext(ctx).Where("user_id = ?", actorID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, shared.Storage("cart: lines", err)
	}
	return lines, nil
}

type Summary struct {
	Lines    []models.CartLine `json:"lines"`
	Count    int               `json:"count"`    // distinct lines
	Items    int               `json:"items"`    // sum of quantities
	Subtotal int64             `json:"subtotal"` // minor currency units
}

func (c *Composer) Summary(ctx context.Context, actorID uint) (*Summary, error) {
	lines, err := c.Lines(ctx, actorID)
	if err != nil {
		return nil, err
	}
	s := &Summary{Lines: lines, Count: len(lines)}
	for _, l := range lines {
		s.Items += l.Quantity
		s.Subtotal += l.Subtotal()
	}
	return s, nil
}

// UpdateQuantity sets an owned line's quantity outright.
func (c *Composer) UpdateQuantity(ctx context.Context, actorID, lineID uint, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("cart: quantity %d: %w", quantity, shared.ErrInvalidQuantity)
	}

	var line models.CartLine
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartLine{}).
			Where("id = ? AND user_id = ?", lineID, actorID).
			Update("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&line, lineID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart: line %d: %w", lineID, shared.ErrNotFound)
	}
	if err != nil {
		return nil, shared.Storage("cart: update quantity", err)
	}
	return &line, nil
}

func (c *Composer) RemoveLine(ctx context.Context, actorID, lineID uint) error {
	res := c.db.WithContext(ctx).Where("id = ? AND user_id = ?", lineID, actorID).Delete(&models.CartLine{})
	if res.Error != nil {
		return shared.Storage("cart: remove line", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart: line %d: %w", lineID, shared.ErrNotFound)
	}
	return nil
}
