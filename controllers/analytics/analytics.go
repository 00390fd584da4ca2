package analyticsControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

type statusCount struct {
	ShippingStatus string `json:"shipping_status"`
	Count          int64  `json:"count"`
}

type topProduct struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Revenue     int64  `json:"revenue"` // centavos
}

// GET /api/admin/analytics/summary
// Read-only reporting over orders and items; revenue counts paid orders only.
func SummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var revenue int64
		if err := db.Model(&models.Order{}).
			Where("payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		var byStatus []statusCount
		if err := db.Model(&models.Order{}).
			Select("shipping_status, COUNT(*) as count").
			Group("shipping_status").
			Scan(&byStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		var top []topProduct
		if err := db.Model(&models.OrderItem{}).
			Select("product_id, product_name, SUM(quantity) as quantity, SUM(subtotal) as revenue").
			Group("product_id, product_name").
			Order("quantity DESC").
			Limit(10).
			Scan(&top).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank products"})
			return
		}

		// Gross margin: paid revenue minus the snapshot-era base cost of the
		// units sold. Products without a base cost contribute full price.
		var cost float64
		if err := db.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("orders.payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(products.base_cost * order_items.quantity), 0)").
			Scan(&cost).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute margin"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"revenue":          revenue,
			"orders_by_status": byStatus,
			"top_products":     top,
			"gross_margin":     revenue - models.Centavos(cost),
		})
	}
}
