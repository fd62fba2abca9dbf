package catalog_test

import (
	"context"
	"testing"

	"github.com/Kyz7/storefront/internal/catalog"
	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/shared"
	"github.com/Kyz7/storefront/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T) (*catalog.Tree, *testutils.Catalog) {
	db := testutils.TestDB(t)
	tree := catalog.NewTree(db, nil)
	return tree, testutils.SeedCatalog(t, tree)
}

func TestResolve(t *testing.T) {
	tree, fx := setupTree(t)
	ctx := context.Background()

	t.Run("Success - Leaf with price", func(t *testing.T) {
		got, err := tree.Resolve(ctx, fx.Product.ID, testutils.Path(fx.Vinyl, fx.Inch12, fx.Deluxe))
		require.NoError(t, err)
		assert.Equal(t, fx.Deluxe.ID, got.VariantID)
		assert.Equal(t, int64(4000), got.Price)
		assert.Equal(t, "Deluxe", got.Title)
		assert.Equal(t, []string{"Vinyl", "12 inch", "Deluxe"}, got.Titles)
	})

	t.Run("Success - Same path resolves the same way twice", func(t *testing.T) {
		path := testutils.Path(fx.CD, fx.SingleDisc, fx.JewelCase)
		first, err := tree.Resolve(ctx, fx.Product.ID, path)
		require.NoError(t, err)
		second, err := tree.Resolve(ctx, fx.Product.ID, path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	invalid := []struct {
		name string
		path catalog.Path
	}{
		{"Empty path", catalog.Path{}},
		{"Gap in path", catalog.Path{Level1: fx.Vinyl.ID, Level3: fx.Standard.ID}},
		{"Leaf of another product", testutils.Path(fx.Vinyl, fx.Inch12, fx.OtherStandard)},
		{"Root of another product", testutils.Path(fx.OtherVinyl, fx.OtherInch12, fx.OtherStandard)},
		{"Broken chain", testutils.Path(fx.Vinyl, fx.Inch10, fx.Standard)},
		{"Child under the wrong root", testutils.Path(fx.CD, fx.Inch12, fx.Standard)},
		{"Non-root in first position", testutils.Path(fx.Inch12, fx.Standard)},
		{"Unknown variant", catalog.Path{Level1: fx.Vinyl.ID, Level2: fx.Inch12.ID, Level3: 9999}},
	}
	for _, tc := range invalid {
		t.Run("Error - "+tc.name, func(t *testing.T) {
			_, err := tree.Resolve(ctx, fx.Product.ID, tc.path)
			assert.ErrorIs(t, err, shared.ErrInvalidVariantPath)
		})
	}

	t.Run("Error - Path stops above the leaf", func(t *testing.T) {
		_, err := tree.Resolve(ctx, fx.Product.ID, testutils.Path(fx.Vinyl, fx.Inch12))
		assert.ErrorIs(t, err, shared.ErrNotPriceable)

		_, err = tree.Resolve(ctx, fx.Product.ID, testutils.Path(fx.Vinyl))
		assert.ErrorIs(t, err, shared.ErrNotPriceable)
	})

	t.Run("Error - Leaf without price", func(t *testing.T) {
		_, err := tree.Resolve(ctx, fx.Product.ID, testutils.Path(fx.Vinyl, fx.Inch10, fx.Mono))
		assert.ErrorIs(t, err, shared.ErrNotPriceable)
	})
}

func TestChoices(t *testing.T) {
	tree, fx := setupTree(t)
	ctx := context.Background()

	ids := func(cs []catalog.Choice) []uint {
		out := make([]uint, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	t.Run("Flat listing spans every branch", func(t *testing.T) {
		got, err := tree.ListChoices(ctx, fx.Product.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{fx.Vinyl.ID, fx.CD.ID}, ids(got.Level1))
		assert.ElementsMatch(t, []uint{fx.Inch12.ID, fx.Inch10.ID, fx.SingleDisc.ID}, ids(got.Level2))
		assert.ElementsMatch(t, []uint{fx.Standard.ID, fx.Deluxe.ID, fx.Mono.ID, fx.JewelCase.ID}, ids(got.Level3))
	})

	t.Run("Flat listing stays inside the product", func(t *testing.T) {
		got, err := tree.ListChoices(ctx, fx.Other.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{fx.OtherVinyl.ID}, ids(got.Level1))
		assert.Equal(t, []uint{fx.OtherStandard.ID}, ids(got.Level3))
	})

	t.Run("Scoped listing follows the selection", func(t *testing.T) {
		got, err := tree.ScopedChoices(ctx, fx.Product.ID, fx.Vinyl.ID, fx.Inch12.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint{fx.Vinyl.ID, fx.CD.ID}, ids(got.Level1))
		assert.ElementsMatch(t, []uint{fx.Inch12.ID, fx.Inch10.ID}, ids(got.Level2))
		assert.ElementsMatch(t, []uint{fx.Standard.ID, fx.Deluxe.ID}, ids(got.Level3))
	})

	t.Run("Scoped listing without selection offers roots only", func(t *testing.T) {
		got, err := tree.ScopedChoices(ctx, fx.Product.ID, 0, 0)
		require.NoError(t, err)
		assert.Len(t, got.Level1, 2)
		assert.Empty(t, got.Level2)
		assert.Empty(t, got.Level3)
	})

	t.Run("Error - Scoped listing under a mismatched parent", func(t *testing.T) {
		_, err := tree.ScopedChoices(ctx, fx.Product.ID, fx.CD.ID, fx.Inch12.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidVariantPath)

		_, err = tree.ScopedChoices(ctx, fx.Product.ID, fx.OtherVinyl.ID, 0)
		assert.ErrorIs(t, err, shared.ErrInvalidVariantPath)

		_, err = tree.ScopedChoices(ctx, fx.Product.ID, 0, fx.Inch12.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidVariantPath)
	})
}

func TestAddVariant(t *testing.T) {
	tree, fx := setupTree(t)
	ctx := context.Background()

	t.Run("Error - Below a leaf", func(t *testing.T) {
		v := models.Variant{ProductID: fx.Product.ID, ParentID: &fx.Standard.ID, Title: "Too deep"}
		assert.ErrorIs(t, tree.AddVariant(ctx, &v), shared.ErrInvalidVariantPath)
	})

	t.Run("Error - Parent from another product", func(t *testing.T) {
		v := models.Variant{ProductID: fx.Product.ID, ParentID: &fx.OtherVinyl.ID, Title: "Stray"}
		assert.ErrorIs(t, tree.AddVariant(ctx, &v), shared.ErrInvalidVariantPath)
	})

	t.Run("Error - Unknown product", func(t *testing.T) {
		v := models.Variant{ProductID: 9999, Title: "Orphan"}
		assert.ErrorIs(t, tree.AddVariant(ctx, &v), shared.ErrNotFound)
	})

	t.Run("Success - Title is sanitized", func(t *testing.T) {
		v := models.Variant{ProductID: fx.Product.ID, Title: "<b>Cassette</b>"}
		require.NoError(t, tree.AddVariant(ctx, &v))
		assert.Equal(t, "Cassette", v.Title)
		assert.True(t, v.IsRoot())
	})
}

func TestLookup(t *testing.T) {
	tree, fx := setupTree(t)
	ctx := context.Background()

	t.Run("Success - Price by id", func(t *testing.T) {
		q, err := tree.VariantPrice(ctx, catalog.ByID(fx.Standard.ID))
		require.NoError(t, err)
		assert.Equal(t, int64(2500), q.Price)
	})

	t.Run("Success - Price by title takes the oldest match", func(t *testing.T) {
		q, err := tree.VariantPrice(ctx, catalog.ByTitle("Standard"))
		require.NoError(t, err)
		assert.Equal(t, fx.Standard.ID, q.ID)
	})

	t.Run("Error - Unpriced variant", func(t *testing.T) {
		_, err := tree.VariantPrice(ctx, catalog.ByID(fx.Vinyl.ID))
		assert.ErrorIs(t, err, shared.ErrNotPriceable)
	})

	t.Run("Error - Unknown reference", func(t *testing.T) {
		_, err := tree.VariantPrice(ctx, catalog.ByTitle("Reel to reel"))
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = tree.Lookup(ctx, catalog.ByTitle("   "))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("Success - Product by slug", func(t *testing.T) {
		p, err := tree.FindProduct(ctx, catalog.ParseRef(catalog.TitleFromSlug("Kind-of-Blue")))
		require.NoError(t, err)
		assert.Equal(t, fx.Other.ID, p.ID)
	})

	t.Run("Success - Featured products carry their artist", func(t *testing.T) {
		ps, err := tree.FeaturedProducts(ctx, 0)
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, fx.Product.ID, ps[0].ID)
		require.NotNil(t, ps[0].Artist)
		assert.Equal(t, "John Coltrane", ps[0].Artist.Title)
	})
}

func TestParseRef(t *testing.T) {
	assert.True(t, catalog.ParseRef("42").IsID())
	assert.Equal(t, uint(42), catalog.ParseRef("42").ID())

	ref := catalog.ParseRef("Blue Train")
	assert.False(t, ref.IsID())
	assert.Equal(t, "Blue Train", ref.Title())

	assert.False(t, catalog.ParseRef("0").IsID())
	assert.False(t, catalog.ParseRef("-3").IsID())

	assert.Equal(t, "Blue-Train", catalog.Slug("Blue Train"))
	assert.Equal(t, "Blue Train", catalog.TitleFromSlug(catalog.Slug("Blue Train")))
}
