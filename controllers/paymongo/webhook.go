package paymongoControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/order"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

// WebhookEvent mirrors the PayMongo event envelope: the inner data block is
// the checkout session the event is about.
type WebhookEvent struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Type string `json:"type"`
			Data struct {
				ID         string `json:"id"`
				Attributes struct {
					ReferenceNumber string `json:"reference_number"`
					PaymentStatus   string `json:"payment_status"`
				} `json:"attributes"`
			} `json:"data"`
		} `json:"attributes"`
	} `json:"data"`
}

// POST /api/payment/webhook
// Runs behind the signature middleware. Duplicate event ids are acknowledged
// without re-running side effects; an unknown order reference mutates nothing.
func WebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event WebhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse webhook payload"})
			return
		}

		eventID := event.Data.ID
		eventType := event.Data.Attributes.Type
		orderRef := event.Data.Attributes.Data.Attributes.ReferenceNumber
		if eventID == "" || orderRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing event id or reference number"})
			return
		}

		// Dedupe by gateway event id.
		var seen models.GatewayEvent
		if err := db.First(&seen, "event_id = ?", eventID).Error; err == nil {
			log.Printf("Duplicate PayMongo event %s, skipping", eventID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		var order models.Order
		if err := db.First(&order, "order_ref = ?", orderRef).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown order reference"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up order"})
			return
		}

		// Payment status only ever moves off pending. A late or replayed
		// failure event must not demote an order that already settled.
		if order.PaymentStatus != models.PaymentStatusPending {
			log.Printf("Order %s already %s, ignoring PayMongo event %s", orderRef, order.PaymentStatus, eventID)
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		newStatus := models.PaymentStatusFailed
		if eventType == "checkout_session.payment.paid" {
			newStatus = models.PaymentStatusPaid
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&models.GatewayEvent{
				EventID:    eventID,
				EventType:  eventType,
				OrderRef:   orderRef,
				ReceivedAt: time.Now(),
			}).Error; err != nil {
				return err
			}
			if err := tx.Model(&order).Update("payment_status", newStatus).Error; err != nil {
				return err
			}
			if newStatus == models.PaymentStatusPaid {
				var cart models.Cart
				if err := tx.Where("user_id = ?", order.UserID).First(&cart).Error; err == nil {
					if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("Failed to process PayMongo event %s: %v", eventID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
			return
		}

		order.PaymentStatus = newStatus
		orderControllers.BroadcastOrderEvent("order.payment_updated", order)
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
