package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

type FinalizeOrderRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type UpdateShippingStatusRequest struct {
	ShippingStatus string `json:"shipping_status" binding:"required"`
}

type ConfirmReceiptRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	OrderID uint   `json:"order_id" binding:"required"`
}

// POST /api/orders/finalize
// Converts the user's current cart into a paid order through the same
// creation transaction the checkout endpoints use, then clears the cart.
func FinalizeOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FinalizeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", req.UserID).First(&cart).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		lines := make([]OrderLine, 0, len(cart.Items))
		pointsSpent := 0
		for _, item := range cart.Items {
			lines = append(lines, OrderLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: models.Centavos(item.UnitPrice),
			})
			pointsSpent += item.PointsSpent
		}

		order, err := CreateOrder(db, CreateOrderInput{
			UserID:        req.UserID,
			Lines:         lines,
			PaymentMethod: models.PaymentMethodOnline,
			PaymentStatus: models.PaymentStatusPaid,
			OrderRef:      GenerateOrderRef(),
			PointsSpent:   pointsSpent,
			ClearCart:     true,
		})
		if err != nil {
			if errors.Is(err, ErrInsufficientStock) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize order"})
			return
		}

		BroadcastOrderEvent("order.created", *order)
		c.JSON(http.StatusOK, gin.H{"orderId": order.ID, "order_ref": order.OrderRef})
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/user/:user_id
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/detail/:order_id
// Accepts the numeric id or the order reference token. Reference tokens never
// touch the integer id column; Postgres rejects non-numeric text there.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("order_id")

		query := db.Preload("User").Preload("Items")
		if id, err := strconv.ParseUint(token, 10, 64); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("order_ref = ?", token)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/admin/orders/:orderId
// Admin edits are restricted to To Ship / To Receive / Cancelled and must be
// legal moves; the refund workflow owns everything else. Terminal orders
// reject all edits.
func UpdateShippingStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderId")
		var req UpdateShippingStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !models.ValidShippingStatus(req.ShippingStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping status"})
			return
		}
		newStatus := models.ShippingStatus(req.ShippingStatus)
		if !models.AdminEditableShipping(newStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping status not editable by admin"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if models.IsTerminalShipping(order.ShippingStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is in a terminal state"})
			return
		}
		if !models.CanTransitionShipping(order.ShippingStatus, newStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Illegal shipping status transition"})
			return
		}

		if err := db.Model(&order).Update("shipping_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shipping status"})
			return
		}

		order.ShippingStatus = newStatus
		BroadcastOrderEvent("order.status_updated", order)
		c.JSON(http.StatusOK, order)
	}
}

// POST /api/orders/receive
// Customer confirms delivery: To Receive -> Received.
func ConfirmReceiptHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfirmReceiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		if order.UserID != req.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Order does not belong to user"})
			return
		}
		if order.ShippingStatus != models.ShippingToReceive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not out for delivery"})
			return
		}

		if err := db.Model(&order).Update("shipping_status", models.ShippingReceived).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shipping status"})
			return
		}

		order.ShippingStatus = models.ShippingReceived
		BroadcastOrderEvent("order.status_updated", order)
		c.JSON(http.StatusOK, order)
	}
}
