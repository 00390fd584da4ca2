package checkoutControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/order"
	paymongoControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/paymongo"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

type CheckoutItem struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price"` // major units; zero for point-redeemed lines
}

type CreatePaymentLinkRequest struct {
	UserID        string         `json:"user_id" binding:"required"`
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"paymentMethod" binding:"required,oneof=ONLINE COD"`
}

// POST /api/checkout/create-payment-link
// ONLINE asks PayMongo for a hosted checkout session and records a pending
// order; COD records the pending order directly and clears the cart. Both go
// through the single order-creation transaction.
func CreatePaymentLinkHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePaymentLinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", req.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Totals live in centavos from here on. The client total is checked
		// against the recomputed sum, never trusted.
		var computed int64
		lines := make([]orderControllers.OrderLine, 0, len(req.Items))
		gatewayLines := make([]paymongoControllers.CheckoutLineItem, 0, len(req.Items))
		for _, item := range req.Items {
			var product models.Product
			if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			unitPrice := models.Centavos(item.Price)
			computed += unitPrice * int64(item.Quantity)
			lines = append(lines, orderControllers.OrderLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			})
			if unitPrice > 0 {
				gatewayLines = append(gatewayLines, paymongoControllers.CheckoutLineItem{
					Name:     product.Name,
					Amount:   unitPrice,
					Currency: "PHP",
					Quantity: item.Quantity,
				})
			}
		}
		if models.Centavos(req.Total) != computed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Submitted total does not match line items"})
			return
		}

		// Points already deducted at redemption time ride along on the order
		// so a refund approval can reverse them.
		pointsSpent := 0
		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", req.UserID).First(&cart).Error; err == nil {
			for _, item := range cart.Items {
				pointsSpent += item.PointsSpent
			}
		}

		orderRef := orderControllers.GenerateOrderRef()
		input := orderControllers.CreateOrderInput{
			UserID:        req.UserID,
			Lines:         lines,
			PaymentStatus: models.PaymentStatusPending,
			OrderRef:      orderRef,
			PointsSpent:   pointsSpent,
		}

		// A fully point-redeemed order owes nothing; PayMongo rejects an
		// empty line_items, so settle it directly.
		if req.PaymentMethod == string(models.PaymentMethodOnline) && computed == 0 {
			input.PaymentMethod = models.PaymentMethodOnline
			input.PaymentStatus = models.PaymentStatusPaid
			input.ClearCart = true

			order, err := orderControllers.CreateOrder(db, input)
			if err != nil {
				respondCreateError(c, err)
				return
			}
			orderControllers.BroadcastOrderEvent("order.created", *order)
			c.JSON(http.StatusOK, gin.H{"order_ref": order.OrderRef})
			return
		}

		if req.PaymentMethod == string(models.PaymentMethodCOD) {
			input.PaymentMethod = models.PaymentMethodCOD
			input.ClearCart = true

			order, err := orderControllers.CreateOrder(db, input)
			if err != nil {
				respondCreateError(c, err)
				return
			}
			orderControllers.BroadcastOrderEvent("order.created", *order)
			c.JSON(http.StatusOK, gin.H{"order_ref": order.OrderRef})
			return
		}

		checkoutURL, sessionID, err := paymongoControllers.CreateCheckoutSession(orderRef, "SoilTrack order "+orderRef, gatewayLines)
		if err != nil {
			log.Printf("PayMongo session creation failed: %v", err)
			if errors.Is(err, paymongoControllers.ErrConfigMissing) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway is not configured"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment session"})
			return
		}
		log.Printf("PayMongo session %s created for order %s", sessionID, orderRef)

		input.PaymentMethod = models.PaymentMethodOnline
		input.CheckoutURL = checkoutURL

		order, err := orderControllers.CreateOrder(db, input)
		if err != nil {
			// The hosted session already exists at the gateway; nothing local
			// references it. Logged for reconciliation.
			log.Printf("Order persistence failed after gateway session %s: %v", sessionID, err)
			respondCreateError(c, err)
			return
		}

		orderControllers.BroadcastOrderEvent("order.created", *order)
		c.JSON(http.StatusOK, gin.H{"url": checkoutURL, "order_ref": order.OrderRef})
	}
}

func respondCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orderControllers.ErrInsufficientStock),
		errors.Is(err, orderControllers.ErrUnknownProduct),
		errors.Is(err, orderControllers.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
	}
}
