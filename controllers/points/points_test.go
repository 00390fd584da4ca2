package pointsControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.RedeemableProduct{},
	))
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/points/balance/:user_id", GetBalanceHandler(db))
	r.GET("/api/points/redeemable", ListRedeemableHandler(db))
	r.POST("/api/points/redeem", RedeemCartItemHandler(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type fixture struct {
	product models.Product
	cart    models.Cart
}

func seedRedeemScenario(t *testing.T, db *gorm.DB, points, pointCost int) fixture {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID: "u1", Email: "u1@example.com", PasswordHash: "x", Points: points,
	}).Error)
	product := models.Product{
		Name: "Snail Doom", Category: models.CategoryMolluscicide, Price: 50.00, Stock: 10,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.RedeemableProduct{
		ProductID: product.ID, PointCost: pointCost,
	}).Error)
	cart := models.Cart{UserID: "u1"}
	require.NoError(t, db.Create(&cart).Error)
	return fixture{product: product, cart: cart}
}

func addLine(t *testing.T, db *gorm.DB, f fixture, quantity int) models.CartItem {
	t.Helper()
	item := models.CartItem{
		CartID: f.cart.CartID, ProductID: f.product.ID, ProductName: f.product.Name,
		UnitPrice: f.product.Price, Quantity: quantity,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func TestRedeemWithSufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	f := seedRedeemScenario(t, db, 100, 80)
	item := addLine(t, db, f, 1)

	r := newTestRouter(db)
	w := doJSON(r, http.MethodPost, "/api/points/redeem",
		gin.H{"user_id": "u1", "cart_item_id": item.ID})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.True(t, reloaded.Redeemed)
	assert.Equal(t, 0.0, reloaded.UnitPrice)
	assert.Equal(t, 80, reloaded.PointsSpent)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, 20, user.Points)
}

func TestRedeemInsufficientBalanceChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	// Two units at 80 points each need 160; the balance is 100.
	f := seedRedeemScenario(t, db, 100, 80)
	item := addLine(t, db, f, 2)

	r := newTestRouter(db)
	w := doJSON(r, http.MethodPost, "/api/points/redeem",
		gin.H{"user_id": "u1", "cart_item_id": item.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var reloaded models.CartItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.False(t, reloaded.Redeemed)
	assert.Equal(t, 50.00, reloaded.UnitPrice)
	assert.Equal(t, 0, reloaded.PointsSpent)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, 100, user.Points)
}

func TestRedeemNonRedeemableProduct(t *testing.T) {
	db := setupTestDB(t)
	f := seedRedeemScenario(t, db, 100, 80)

	other := models.Product{
		Name: "Urea 46-0-0", Category: models.CategoryFertilizer, Price: 100.00, Stock: 10,
	}
	require.NoError(t, db.Create(&other).Error)
	item := models.CartItem{
		CartID: f.cart.CartID, ProductID: other.ID, ProductName: other.Name,
		UnitPrice: other.Price, Quantity: 1,
	}
	require.NoError(t, db.Create(&item).Error)

	r := newTestRouter(db)
	w := doJSON(r, http.MethodPost, "/api/points/redeem",
		gin.H{"user_id": "u1", "cart_item_id": item.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRedeemTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	f := seedRedeemScenario(t, db, 200, 80)
	item := addLine(t, db, f, 1)

	r := newTestRouter(db)
	w := doJSON(r, http.MethodPost, "/api/points/redeem",
		gin.H{"user_id": "u1", "cart_item_id": item.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/points/redeem",
		gin.H{"user_id": "u1", "cart_item_id": item.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Only the first redemption charged points.
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, 120, user.Points)
}

func TestRedeemRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	f := seedRedeemScenario(t, db, 100, 80)
	item := addLine(t, db, f, 1)
	require.NoError(t, db.Create(&models.User{
		ID: "u2", Email: "u2@example.com", PasswordHash: "x", Points: 500,
	}).Error)

	r := newTestRouter(db)
	w := doJSON(r, http.MethodPost, "/api/points/redeem",
		gin.H{"user_id": "u2", "cart_item_id": item.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetBalance(t *testing.T) {
	db := setupTestDB(t)
	seedRedeemScenario(t, db, 42, 80)

	r := newTestRouter(db)
	w := doJSON(r, http.MethodGet, "/api/points/balance/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Points int `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.Points)

	w = doJSON(r, http.MethodGet, "/api/points/balance/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
