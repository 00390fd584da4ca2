package refundControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/order"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

type SubmitRequestInput struct {
	UserID  string `json:"user_id" binding:"required"`
	OrderID uint   `json:"order_id" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

type ResolveInput struct {
	AdminNotes string `json:"admin_notes"`
}

// SubmitCancellationHandler handles POST /api/orders/cancel: pre-fulfillment,
// order must still be To Ship.
func SubmitCancellationHandler(db *gorm.DB) gin.HandlerFunc {
	return submitHandler(db, models.RefundKindCancellation)
}

// SubmitRefundHandler handles POST /api/orders/refund: post-delivery, order
// must be Received.
func SubmitRefundHandler(db *gorm.DB) gin.HandlerFunc {
	return submitHandler(db, models.RefundKindRefund)
}

func submitHandler(db *gorm.DB, kind models.RefundKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubmitRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", input.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		if order.UserID != input.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Order does not belong to user"})
			return
		}

		eligible, holding := kind.EligibleShippingStatus()
		if order.ShippingStatus != eligible {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not eligible for " + string(kind)})
			return
		}

		var request models.RefundRequest
		err := db.Transaction(func(tx *gorm.DB) error {
			// Only one actionable request per order.
			var pending models.RefundRequest
			if err := tx.Where("order_id = ? AND status = ?", order.ID, models.RefundStatusPending).
				First(&pending).Error; err == nil {
				return errPendingExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			request = models.RefundRequest{
				OrderID:             order.ID,
				UserID:              input.UserID,
				Kind:                kind,
				Reason:              input.Reason,
				Status:              models.RefundStatusPending,
				PriorShippingStatus: order.ShippingStatus,
				CreatedAt:           time.Now(),
			}
			if err := tx.Create(&request).Error; err != nil {
				return err
			}
			return tx.Model(&order).Update("shipping_status", holding).Error
		})
		if err != nil {
			if errors.Is(err, errPendingExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "A pending request already exists for this order"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
			return
		}

		order.ShippingStatus = holding
		orderControllers.BroadcastOrderEvent("order.status_updated", order)
		c.JSON(http.StatusCreated, request)
	}
}

var errPendingExists = errors.New("pending refund request exists")

// GET /api/admin/refunds
func ListRefundsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var requests []models.RefundRequest
		if err := db.Preload("Order").Preload("Order.Items").
			Order("created_at DESC").Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch refund requests"})
			return
		}
		c.JSON(http.StatusOK, requests)
	}
}

// PUT /api/admin/refunds/:refundId/approve
// Approval, the order's terminal move, and the points reversal commit
// together. Re-approving an approved request is a no-op success.
func ApproveRefundHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		refundID := c.Param("refundId")
		var input ResolveInput
		_ = c.ShouldBindJSON(&input)

		var request models.RefundRequest
		if err := db.First(&request, "id = ?", refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Refund request not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch refund request"})
			return
		}

		if request.Status == models.RefundStatusApproved {
			c.JSON(http.StatusOK, request)
			return
		}
		if request.Status == models.RefundStatusRejected {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Refund request already rejected"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", request.OrderID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		resolved := request.Kind.ResolvedShippingStatus()
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&request).Updates(map[string]interface{}{
				"status":      models.RefundStatusApproved,
				"admin_notes": input.AdminNotes,
			}).Error; err != nil {
				return err
			}
			if err := tx.Model(&order).Update("shipping_status", resolved).Error; err != nil {
				return err
			}
			if order.PointsSpent > 0 {
				if err := tx.Model(&models.User{}).Where("id = ?", order.UserID).
					Update("points", gorm.Expr("points + ?", order.PointsSpent)).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve refund"})
			return
		}

		request.Status = models.RefundStatusApproved
		request.AdminNotes = input.AdminNotes
		order.ShippingStatus = resolved
		orderControllers.BroadcastOrderEvent("order.status_updated", order)
		c.JSON(http.StatusOK, request)
	}
}

// PUT /api/admin/refunds/:refundId/reject
// Rejection restores the shipping status snapshotted at submit time.
func RejectRefundHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		refundID := c.Param("refundId")
		var input ResolveInput
		_ = c.ShouldBindJSON(&input)

		var request models.RefundRequest
		if err := db.First(&request, "id = ?", refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Refund request not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch refund request"})
			return
		}

		if request.Status != models.RefundStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Refund request already resolved"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", request.OrderID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&request).Updates(map[string]interface{}{
				"status":      models.RefundStatusRejected,
				"admin_notes": input.AdminNotes,
			}).Error; err != nil {
				return err
			}
			return tx.Model(&order).Update("shipping_status", request.PriorShippingStatus).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject refund"})
			return
		}

		request.Status = models.RefundStatusRejected
		request.AdminNotes = input.AdminNotes
		order.ShippingStatus = request.PriorShippingStatus
		orderControllers.BroadcastOrderEvent("order.status_updated", order)
		c.JSON(http.StatusOK, request)
	}
}
