package orderControllers

import (
	"testing"

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
		&models.Order{}, &models.OrderItem{},
	))
	return db
}

func seedUserWithCart(t *testing.T, db *gorm.DB, id string) models.Cart {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "x",
	}).Error)
	cart := models.Cart{UserID: id}
	require.NoError(t, db.Create(&cart).Error)
	return cart
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Name:     name,
		Category: models.CategoryFertilizer,
		Price:    price,
		Stock:    stock,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestCreateOrderTotalsMatchItems(t *testing.T) {
	db := setupTestDB(t)
	seedUserWithCart(t, db, "u1")
	p1 := seedProduct(t, db, "Urea 46-0-0", 100.00, 10)
	p2 := seedProduct(t, db, "Snail Doom", 50.00, 10)

	order, err := CreateOrder(db, CreateOrderInput{
		UserID: "u1",
		Lines: []OrderLine{
			{ProductID: p1.ID, Quantity: 2, UnitPrice: 10000},
			{ProductID: p2.ID, Quantity: 1, UnitPrice: 5000},
		},
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		OrderRef:      GenerateOrderRef(),
	})
	require.NoError(t, err)

	// Scenario: qty 2 @ P100.00 plus qty 1 @ P50.00 = 25000 centavos.
	assert.Equal(t, int64(25000), order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(20000), order.Items[0].Subtotal)
	assert.Equal(t, int64(5000), order.Items[1].Subtotal)

	var sum int64
	for _, item := range order.Items {
		assert.Equal(t, item.UnitPrice*int64(item.Quantity), item.Subtotal)
		sum += item.Subtotal
	}
	assert.Equal(t, order.TotalAmount, sum)
	assert.Equal(t, models.ShippingToShip, order.ShippingStatus)
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	seedUserWithCart(t, db, "u1")
	p := seedProduct(t, db, "Roundup", 350.00, 5)

	_, err := CreateOrder(db, CreateOrderInput{
		UserID:        "u1",
		Lines:         []OrderLine{{ProductID: p.ID, Quantity: 3, UnitPrice: 35000}},
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		OrderRef:      GenerateOrderRef(),
	})
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, 2, reloaded.Stock)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	seedUserWithCart(t, db, "u1")
	p1 := seedProduct(t, db, "Urea 46-0-0", 100.00, 10)
	p2 := seedProduct(t, db, "Snail Doom", 50.00, 1)

	_, err := CreateOrder(db, CreateOrderInput{
		UserID: "u1",
		Lines: []OrderLine{
			{ProductID: p1.ID, Quantity: 2, UnitPrice: 10000},
			{ProductID: p2.ID, Quantity: 5, UnitPrice: 5000},
		},
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		OrderRef:      GenerateOrderRef(),
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The whole transaction rolled back: no order, first product untouched.
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, p1.ID).Error)
	assert.Equal(t, 10, reloaded.Stock)
}

func TestCreateOrderRejectsEmptyAndUnknown(t *testing.T) {
	db := setupTestDB(t)
	seedUserWithCart(t, db, "u1")

	_, err := CreateOrder(db, CreateOrderInput{UserID: "u1", OrderRef: GenerateOrderRef()})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = CreateOrder(db, CreateOrderInput{
		UserID:   "u1",
		Lines:    []OrderLine{{ProductID: 999, Quantity: 1, UnitPrice: 100}},
		OrderRef: GenerateOrderRef(),
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestCreateOrderClearsCartWhenAsked(t *testing.T) {
	db := setupTestDB(t)
	cart := seedUserWithCart(t, db, "u1")
	p := seedProduct(t, db, "Urea 46-0-0", 100.00, 10)
	require.NoError(t, db.Create(&models.CartItem{
		CartID: cart.CartID, ProductID: p.ID, ProductName: p.Name,
		UnitPrice: p.Price, Quantity: 2,
	}).Error)

	_, err := CreateOrder(db, CreateOrderInput{
		UserID:        "u1",
		Lines:         []OrderLine{{ProductID: p.ID, Quantity: 2, UnitPrice: 10000}},
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		OrderRef:      GenerateOrderRef(),
		ClearCart:     true,
	})
	require.NoError(t, err)

	var remaining int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&remaining)
	assert.Equal(t, int64(0), remaining)
}

func TestGenerateOrderRefIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GenerateOrderRef()
		assert.False(t, seen[ref])
		seen[ref] = true
	}
}
