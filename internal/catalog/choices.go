package catalog

import (
	"context"
	"fmt"

	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/shared"
)

type Choice struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	ParentID *uint  `json:"parent_id,omitempty"`
	Price    *int64 `json:"price,omitempty"`
	Stock    int    `json:"stock"`
}

// Choices are the options offered for each level of the add-to-cart form.
type Choices struct {
	Level1 []Choice `json:"variant"`
	Level2 []Choice `json:"child_variant"`
	Level3 []Choice `json:"last_child_variant"`
}

func newChoice(v models.Variant) Choice {
	return Choice{ID: v.ID, Title: v.Title, ParentID: v.ParentID, Price: v.PriceOverride, Stock: v.Stock}
}

// ListChoices offers every node of each level across the whole product.
// The second and third levels are not narrowed to the selected parent;
// ScopedChoices does that.
func (t *Tree) ListChoices(ctx context.Context, productID uint) (*Choices, error) {
	variants, err := t.productVariants(ctx, productID)
	if err != nil {
		return nil, err
	}

	level := depths(variants)
	out := &Choices{Level1: []Choice{}, Level2: []Choice{}, Level3: []Choice{}}
	for _, v := range variants {
		switch level[v.ID] {
		case 1:
			out.Level1 = append(out.Level1, newChoice(v))
		case 2:
			out.Level2 = append(out.Level2, newChoice(v))
		case 3:
			out.Level3 = append(out.Level3, newChoice(v))
		}
	}
	return out, nil
}

// ScopedChoices lists the roots of the product, the children of level1 and
// the children of level2. A zero selection yields an empty level below it.
func (t *Tree) ScopedChoices(ctx context.Context, productID, level1, level2 uint) (*Choices, error) {
	if level1 == 0 && level2 != 0 {
		return nil, fmt.Errorf("catalog: child variant %d without parent: %w", level2, shared.ErrInvalidVariantPath)
	}

	variants, err := t.productVariants(ctx, productID)
	if err != nil {
		return nil, err
	}

	level := depths(variants)
	if level1 != 0 && level[level1] != 1 {
		return nil, fmt.Errorf("catalog: variant %d is not a root of product %d: %w", level1, productID, shared.ErrInvalidVariantPath)
	}

	out := &Choices{Level1: []Choice{}, Level2: []Choice{}, Level3: []Choice{}}
	level2Valid := level2 == 0
	for _, v := range variants {
		switch {
		case level[v.ID] == 1:
			out.Level1 = append(out.Level1, newChoice(v))
		case level1 != 0 && level[v.ID] == 2 && *v.ParentID == level1:
			out.Level2 = append(out.Level2, newChoice(v))
			if v.ID == level2 {
				level2Valid = true
			}
		case level2 != 0 && level[v.ID] == 3 && *v.ParentID == level2:
			out.Level3 = append(out.Level3, newChoice(v))
		}
	}
	if !level2Valid {
		return nil, fmt.Errorf("catalog: variant %d is not a child of %d: %w", level2, level1, shared.ErrInvalidVariantPath)
	}
	return out, nil
}
