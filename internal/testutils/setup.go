package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Kyz7/storefront/internal/access"
	"github.com/Kyz7/storefront/internal/cart"
	"github.com/Kyz7/storefront/internal/catalog"
	"github.com/Kyz7/storefront/internal/database"
	"github.com/Kyz7/storefront/internal/models"
	"github.com/Kyz7/storefront/internal/role"
	"github.com/Kyz7/storefront/internal/server"
	"github.com/Kyz7/storefront/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestDB opens a fresh file-backed sqlite database for the test. The pool
// holds a single connection, so concurrent callers take turns.
func TestDB(t *testing.T) *gorm.DB {
	path := filepath.Join(t.TempDir(), "storefront.db")
	return openTestDB(t, path, 1)
}

// TestDBPool is TestDB with conns connections sharing one WAL-mode file.
// Writers queue on the sqlite lock instead of failing with SQLITE_BUSY.
func TestDBPool(t *testing.T, conns int) *gorm.DB {
	path := filepath.Join(t.TempDir(), "storefront.db")
	dsn := path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	return openTestDB(t, dsn, conns)
}

func openTestDB(t *testing.T, dsn string, conns int) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = database.Migrate(db)
	require.NoError(t, err, "Failed to migrate test database")

	return db
}

// TestApp is a fully wired server over a test database.
type TestApp struct {
	App       *fiber.App
	DB        *gorm.DB
	Roles     *role.Store
	Evaluator *access.Evaluator
	Catalog   *catalog.Tree
	Cart      *cart.Composer
}

func SetupTestApp(t *testing.T) *TestApp {
	db := TestDB(t)

	roles := role.NewStore(db)
	require.NoError(t, role.SeedDefaultRoles(context.Background(), roles), "Failed to seed roles")

	tree := catalog.NewTree(db, nil)
	ta := &TestApp{
		DB:        db,
		Roles:     roles,
		Evaluator: access.NewEvaluator(roles, nil),
		Catalog:   tree,
		Cart:      cart.NewComposer(db, tree, nil),
	}
	ta.App = server.New(server.Deps{
		Roles:     ta.Roles,
		Evaluator: ta.Evaluator,
		Catalog:   ta.Catalog,
		Cart:      ta.Cart,
	})
	return ta
}

// CreateTestUser inserts a user and assigns the named roles.
func CreateTestUser(t *testing.T, db *gorm.DB, roles *role.Store, username string, roleNames ...string) *models.User {
	user := &models.User{
		Username: username,
		Email:    username + "@test.com",
		IsActive: true,
	}
	err := db.Create(user).Error
	require.NoError(t, err, "Failed to create test user")

	for _, name := range roleNames {
		r, err := roles.FindRole(context.Background(), name)
		require.NoError(t, err, "Failed to find role '%s'. Make sure SeedDefaultRoles was called.", name)
		require.NoError(t, roles.AssignRole(context.Background(), user.ID, r.ID))
	}

	return user
}

func GetAuthToken(t *testing.T, userID uint) string {
	token, err := utils.GenerateJWT(userID, time.Hour)
	assert.NoError(t, err, "Failed to generate test token")
	return token
}

// Catalog is a small two-product fixture.
//
//	Blue Train (featured)
//	  Vinyl -> 12 inch -> Standard (2500), Deluxe (4000)
//	  Vinyl -> 10 inch -> Mono (no price)
//	  CD    -> Single Disc -> Jewel Case (1200)
//	Kind of Blue
//	  Vinyl -> 12 inch -> Standard (2200)
type Catalog struct {
	Product models.Product
	Other   models.Product

	Vinyl, Inch12, Standard, Deluxe models.Variant
	Inch10, Mono                    models.Variant
	CD, SingleDisc, JewelCase       models.Variant

	OtherVinyl, OtherInch12, OtherStandard models.Variant
}

func SeedCatalog(t *testing.T, tree *catalog.Tree) *Catalog {
	ctx := context.Background()
	artist, err := tree.CreateArtist(ctx, "John Coltrane")
	require.NoError(t, err)

	fx := &Catalog{
		Product: models.Product{Title: "Blue Train", ArtistID: &artist.ID, IsFeatured: true},
		Other:   models.Product{Title: "Kind of Blue"},
	}
	require.NoError(t, tree.CreateProduct(ctx, &fx.Product))
	require.NoError(t, tree.CreateProduct(ctx, &fx.Other))

	add := func(v *models.Variant, product models.Product, parent *models.Variant, title string, price *int64) {
		*v = models.Variant{ProductID: product.ID, Title: title, PriceOverride: price, Stock: 10}
		if parent != nil {
			v.ParentID = &parent.ID
		}
		require.NoError(t, tree.AddVariant(ctx, v), "Failed to add variant %q", title)
	}

	add(&fx.Vinyl, fx.Product, nil, "Vinyl", nil)
	add(&fx.Inch12, fx.Product, &fx.Vinyl, "12 inch", nil)
	add(&fx.Standard, fx.Product, &fx.Inch12, "Standard", Price(2500))
	add(&fx.Deluxe, fx.Product, &fx.Inch12, "Deluxe", Price(4000))
	add(&fx.Inch10, fx.Product, &fx.Vinyl, "10 inch", nil)
	add(&fx.Mono, fx.Product, &fx.Inch10, "Mono", nil)
	add(&fx.CD, fx.Product, nil, "CD", nil)
	add(&fx.SingleDisc, fx.Product, &fx.CD, "Single Disc", nil)
	add(&fx.JewelCase, fx.Product, &fx.SingleDisc, "Jewel Case", Price(1200))

	add(&fx.OtherVinyl, fx.Other, nil, "Vinyl", nil)
	add(&fx.OtherInch12, fx.Other, &fx.OtherVinyl, "12 inch", nil)
	add(&fx.OtherStandard, fx.Other, &fx.OtherInch12, "Standard", Price(2200))

	return fx
}

func Price(minor int64) *int64 { return &minor }

// Path builds the selection ending on the given variants.
func Path(vs ...models.Variant) catalog.Path {
	var p catalog.Path
	ids := []*uint{&p.Level1, &p.Level2, &p.Level3}
	for i, v := range vs {
		*ids[i] = v.ID
	}
	return p
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode
	for k, v := range resp.Header {
		for _, val := range v {
			rec.Header().Add(k, val)
		}
	}

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(bytes.NewReader(resp.Body.Bytes())).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorDetail    `json:"error"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

// ParseData decodes the envelope's data field into v.
func ParseData(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	require.True(t, result.Success, "Expected success response, got %s", resp.Body.String())
	require.NoError(t, json.Unmarshal(result.Data, v))
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.False(t, result.Success, "Expected error response")
	if assert.NotNil(t, result.Error, "Expected error object") {
		assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
	}
}
