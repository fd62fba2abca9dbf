package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kyz7/storefront/internal/logger"
	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/shared"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxDepth is the number of variant levels a product may have. Only nodes
// at this depth carry a price.
const MaxDepth = 3

// Path selects one node per level; zero means "not selected".
type Path struct {
	Level1 uint `json:"variant"`
	Level2 uint `json:"child_variant"`
	Level3 uint `json:"last_child_variant"`
}

func (p Path) ids() []uint {
	ids := make([]uint, 0, MaxDepth)
	for _, id := range []uint{p.Level1, p.Level2, p.Level3} {
		if id == 0 {
			break
		}
		ids = append(ids, id)
	}
	return ids
}

// wellFormed rejects an empty selection and gaps such as (1, 0, 3).
func (p Path) wellFormed() bool {
	if p.Level1 == 0 {
		return false
	}
	return !(p.Level2 == 0 && p.Level3 != 0)
}

func (p Path) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.Level1, p.Level2, p.Level3)
}

// Resolved is a priced leaf reached through a valid path.
type Resolved struct {
	ProductID uint     `json:"product_id"`
	Path      Path     `json:"path"`
	VariantID uint     `json:"variant_id"`
	Title     string   `json:"title"`
	Titles    []string `json:"titles"`
	Price     int64    `json:"price"`
	Stock     int      `json:"stock"`
}

type Tree struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
	log       *zap.Logger
}

func NewTree(db *gorm.DB, log *zap.Logger) *Tree {
	return &Tree{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(),
		log:       logger.OrNop(log).Named("catalog"),
	}
}

// Resolve checks that path is a parent chain inside productID and returns
// the leaf it ends on. A chain that stops above the leaf level, or a leaf
// without a price, is not priceable.
func (t *Tree) Resolve(ctx context.Context, productID uint, path Path) (*Resolved, error) {
	if !path.wellFormed() {
		return nil, fmt.Errorf("catalog: path %s: %w", path, shared.ErrInvalidVariantPath)
	}

	ids := path.ids()
	var found []models.Variant
	if err := t.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, shared.Storage("catalog: resolve", err)
	}
	byID := make(map[uint]models.Variant, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}

	chain := make([]models.Variant, 0, len(ids))
	var parent *uint
	for _, id := range ids {
		v, ok := byID[id]
		if !ok || v.ProductID != productID || !sameParent(v.ParentID, parent) {
			return nil, fmt.Errorf("catalog: path %s of product %d: %w", path, productID, shared.ErrInvalidVariantPath)
		}
		chain = append(chain, v)
		parent = &chain[len(chain)-1].ID
	}

	if len(chain) < MaxDepth {
		return nil, fmt.Errorf("catalog: variant %d is not a leaf: %w", chain[len(chain)-1].ID, shared.ErrNotPriceable)
	}
	leaf := chain[len(chain)-1]
	if leaf.PriceOverride == nil {
		return nil, fmt.Errorf("catalog: variant %d has no price: %w", leaf.ID, shared.ErrNotPriceable)
	}

	titles := make([]string, len(chain))
	for i, v := range chain {
		titles[i] = v.Title
	}
	return &Resolved{
		ProductID: productID,
		Path:      path,
		VariantID: leaf.ID,
		Title:     leaf.Title,
		Titles:    titles,
		Price:     *leaf.PriceOverride,
		Stock:     leaf.Stock,
	}, nil
}

func sameParent(got, want *uint) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	return *got == *want
}

// Quote is the price answer for a single variant looked up by reference.
type Quote struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// Lookup finds a variant by id or by title. Titles are not unique; the
// oldest match wins.
func (t *Tree) Lookup(ctx context.Context, ref Ref) (*models.Variant, error) {
	if !ref.valid() {
		return nil, fmt.Errorf("catalog: variant %s: %w", ref, shared.ErrNotFound)
	}

	q := t.db.WithContext(ctx)
	var v models.Variant
	var err error
	switch ref.kind {
	case refByID:
		err = q.First(&v, ref.id).Error
	case refByTitle:
		err = q.Where("title = ?", ref.title).Order("id ASC").First(&v).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("catalog: variant %s: %w", ref, shared.ErrNotFound)
	}
	if err != nil {
		return nil, shared.Storage("catalog: lookup variant", err)
	}
	return &v, nil
}

func (t *Tree) VariantPrice(ctx context.Context, ref Ref) (*Quote, error) {
	v, err := t.Lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	if v.PriceOverride == nil {
		return nil, fmt.Errorf("catalog: variant %d has no price: %w", v.ID, shared.ErrNotPriceable)
	}
	return &Quote{ID: v.ID, Title: v.Title, Price: *v.PriceOverride, Stock: v.Stock}, nil
}

func (t *Tree) productVariants(ctx context.Context, productID uint) ([]models.Variant, error) {
	var variants []models.Variant
	err := t.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, shared.Storage("catalog: product variants", err)
	}
	return variants, nil
}

// depths assigns each variant its level. Nodes whose ancestry leaves the
// product or runs deeper than MaxDepth are left out.
func depths(variants []models.Variant) map[uint]int {
	byID := make(map[uint]models.Variant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}

	out := make(map[uint]int, len(variants))
	for _, v := range variants {
		depth, cur := 1, v
		for cur.ParentID != nil && depth <= MaxDepth {
			p, ok := byID[*cur.ParentID]
			if !ok {
				depth = MaxDepth + 1
				break
			}
			cur = p
			depth++
		}
		if depth <= MaxDepth {
			out[v.ID] = depth
		}
	}
	return out
}
