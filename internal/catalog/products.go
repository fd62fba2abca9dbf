package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/shared"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (t *Tree) cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(t.sanitizer.Sanitize(title))
	if title == "" {
		return "", errors.New("catalog: title is required")
	}
	return title, nil
}

func (t *Tree) CreateArtist(ctx context.Context, title string) (*models.Artist, error) {
	title, err := t.cleanTitle(title)
	if err != nil {
		return nil, err
	}
	artist := models.Artist{Title: title}
	if err := t.db.WithContext(ctx).Create(&artist).Error; err != nil {
		return nil, shared.Storage("catalog: create artist", err)
	}
	return &artist, nil
}

func (t *Tree) CreateProduct(ctx context.Context, p *models.Product) error {
	title, err := t.cleanTitle(p.Title)
	if err != nil {
		return err
	}
	p.Title = title
	p.Variants = nil
	if err := t.db.WithContext(ctx).Create(p).Error; err != nil {
		return shared.Storage("catalog: create product", err)
	}
	return nil
}

// AddVariant attaches v under its parent. The parent must exist in the same
// product and sit above the leaf level, so the forest never grows past
// MaxDepth and a node can never become its own ancestor.
func (t *Tree) AddVariant(ctx context.Context, v *models.Variant) error {
	title, err := t.cleanTitle(v.Title)
	if err != nil {
		return err
	}
	v.Title = title
	if v.Stock < 0 {
		return errors.New("catalog: stock cannot be negative")
	}

	err = t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, v.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("catalog: product %d: %w", v.ProductID, shared.ErrNotFound)
			}
			return err
		}

		if v.ParentID != nil {
			depth, err := parentDepth(tx, v.ProductID, *v.ParentID)
			if err != nil {
				return err
			}
			if depth >= MaxDepth {
				return fmt.Errorf("catalog: variant %d is a leaf: %w", *v.ParentID, shared.ErrInvalidVariantPath)
			}
		}
		return tx.Create(v).Error
	})
	if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrInvalidVariantPath) {
		return err
	}
	if err != nil {
		return shared.Storage("catalog: add variant", err)
	}

	t.log.Debug("variant added", zap.Uint("product_id", v.ProductID), zap.Uint("variant_id", v.ID))
	return nil
}

// parentDepth walks from parentID to its root inside productID.
func parentDepth(tx *gorm.DB, productID, parentID uint) (int, error) {
	depth := 0
	next := &parentID
	for next != nil {
		if depth >= MaxDepth {
			return 0, fmt.Errorf("catalog: variant %d is too deep: %w", parentID, shared.ErrInvalidVariantPath)
		}
		var node models.Variant
		err := tx.Select("id", "product_id", "parent_id").First(&node, *next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("catalog: parent variant %d: %w", *next, shared.ErrInvalidVariantPath)
		}
		if err != nil {
			return 0, err
		}
		if node.ProductID != productID {
			return 0, fmt.Errorf("catalog: parent variant %d belongs to product %d: %w", node.ID, node.ProductID, shared.ErrInvalidVariantPath)
		}
		depth++
		next = node.ParentID
	}
	return depth, nil
}

// FindProduct loads a product by id or title, with its artist.
func (t *Tree) FindProduct(ctx context.Context, ref Ref) (*models.Product, error) {
	if !ref.valid() {
		return nil, fmt.Errorf("catalog: product %s: %w", ref, shared.ErrNotFound)
	}

	q := t.db.WithContext(ctx).Preload("Artist")
	var p models.Product
	var err error
	switch ref.kind {
	case refByID:
		err = q.First(&p, ref.id).Error
	case refByTitle:
		err = q.Where("title = ?", ref.title).First(&p).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("catalog: product %s: %w", ref, shared.ErrNotFound)
	}
	if err != nil {
		return nil, shared.Storage("catalog: find product", err)
	}
	return &p, nil
}

func (t *Tree) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	var products []models.Product
	err := t.db.WithContext(ctx).
		Preload("Artist").
		Where("is_featured = ?", true).
		Order("id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, shared.Storage("catalog: featured products", err)
	}
	return products, nil
}
