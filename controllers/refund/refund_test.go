package refundControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
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
		&models.User{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.RefundRequest{},
	))
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/orders/cancel", SubmitCancellationHandler(db))
	r.POST("/api/orders/refund", SubmitRefundHandler(db))
	r.GET("/api/admin/refunds", ListRefundsHandler(db))
	r.PUT("/api/admin/refunds/:refundId/approve", ApproveRefundHandler(db))
	r.PUT("/api/admin/refunds/:refundId/reject", RejectRefundHandler(db))
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

func seedOrder(t *testing.T, db *gorm.DB, userID string, shipping models.ShippingStatus, pointsSpent int) models.Order {
	t.Helper()
	var count int64
	db.Model(&models.User{}).Where("id = ?", userID).Count(&count)
	if count == 0 {
		require.NoError(t, db.Create(&models.User{
			ID: userID, Email: userID + "@example.com", PasswordHash: "x",
		}).Error)
	}
	order := models.Order{
		OrderRef:       fmt.Sprintf("ref-%s-%s", userID, shipping),
		UserID:         userID,
		TotalAmount:    25000,
		PaymentStatus:  models.PaymentStatusPaid,
		ShippingStatus: shipping,
		PointsSpent:    pointsSpent,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestCancellationFlow(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.ShippingToShip, 0)
	r := newTestRouter(db)

	w := doJSON(r, http.MethodPost, "/api/orders/cancel",
		gin.H{"user_id": "u1", "order_id": order.ID, "reason": "changed my mind"})
	require.Equal(t, http.StatusCreated, w.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.ShippingForCancellation, reloaded.ShippingStatus)

	var request models.RefundRequest
	require.NoError(t, db.First(&request, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.RefundStatusPending, request.Status)
	assert.Equal(t, models.RefundKindCancellation, request.Kind)
	assert.Equal(t, models.ShippingToShip, request.PriorShippingStatus)

	// Approval drives the cancellation branch to its terminal state.
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/refunds/%d/approve", request.ID),
		gin.H{"admin_notes": "ok"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.ShippingCancelled, reloaded.ShippingStatus)
}

func TestIneligibleSubmitCreatesNothing(t *testing.T) {
	db := setupTestDB(t)
	shipped := seedOrder(t, db, "u1", models.ShippingToReceive, 0)
	r := newTestRouter(db)

	// Cancellation only while To Ship.
	w := doJSON(r, http.MethodPost, "/api/orders/cancel",
		gin.H{"user_id": "u1", "order_id": shipped.ID, "reason": "too slow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Refund only after delivery.
	w = doJSON(r, http.MethodPost, "/api/orders/refund",
		gin.H{"user_id": "u1", "order_id": shipped.ID, "reason": "leaking bottle"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.RefundRequest{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.ShippingToShip, 0)
	require.NoError(t, db.Create(&models.User{
		ID: "u2", Email: "u2@example.com", PasswordHash: "x",
	}).Error)
	r := newTestRouter(db)

	w := doJSON(r, http.MethodPost, "/api/orders/cancel",
		gin.H{"user_id": "u2", "order_id": order.ID, "reason": "not mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/api/orders/cancel",
		gin.H{"user_id": "u1", "order_id": 9999, "reason": "ghost order"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOnlyOnePendingRequestPerOrder(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.ShippingToShip, 0)
	r := newTestRouter(db)

	w := doJSON(r, http.MethodPost, "/api/orders/cancel",
		gin.H{"user_id": "u1", "order_id": order.ID, "reason": "first"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Second submit is rejected: the order is no longer To Ship, and even a
	// matching state would hit the pending-uniqueness check.
	w = doJSON(r, http.MethodPost, "/api/orders/cancel",
		gin.H{"user_id": "u1", "order_id": order.ID, "reason": "second"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.RefundRequest{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRefundApprovalRestoresPoints(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.ShippingReceived, 80)
	r := newTestRouter(db)

	w := doJSON(r, http.MethodPost, "/api/orders/refund",
		gin.H{"user_id": "u1", "order_id": order.ID, "reason": "damaged"})
	require.Equal(t, http.StatusCreated, w.Code)

	var request models.RefundRequest
	require.NoError(t, db.First(&request, "order_id = ?", order.ID).Error)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/refunds/%d/approve", request.ID),
		gin.H{"admin_notes": "verified damage"})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.ShippingRefunded, reloaded.ShippingStatus)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, 80, user.Points)

	// Re-approving keeps the terminal state and does not double-credit.
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/refunds/%d/approve", request.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.ShippingRefunded, reloaded.ShippingStatus)
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, 80, user.Points)
}

func TestRejectionRestoresPriorStatus(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, "u1", models.ShippingReceived, 0)
	r := newTestRouter(db)

	w := doJSON(r, http.MethodPost, "/api/orders/refund",
		gin.H{"user_id": "u1", "order_id": order.ID, "reason": "wrong shade of green"})
	require.Equal(t, http.StatusCreated, w.Code)

	var request models.RefundRequest
	require.NoError(t, db.First(&request, "order_id = ?", order.ID).Error)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/refunds/%d/reject", request.ID),
		gin.H{"admin_notes": "product as described"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&request, request.ID).Error)
	assert.Equal(t, models.RefundStatusRejected, request.Status)
	assert.Equal(t, "product as described", request.AdminNotes)

	// Out of the holding state, back exactly where it was.
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.ShippingReceived, reloaded.ShippingStatus)

	// A resolved request cannot be rejected again.
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/refunds/%d/reject", request.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
