package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/cache"
	analyticsControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/analytics"
	orderControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/order"
	productcontroller "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/product"
	refundControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/refund"
	userControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/user"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, pc *cache.Cache) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, pc))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, pc))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db, pc))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderId", orderControllers.UpdateShippingStatusHandler(db))
		}

		// ─────────── Refund Workflow ───────────
		refundAdmin := adminGroup.Group("/refunds")
		{
			refundAdmin.GET("", refundControllers.ListRefundsHandler(db))
			refundAdmin.PUT("/:refundId/approve", refundControllers.ApproveRefundHandler(db))
			refundAdmin.PUT("/:refundId/reject", refundControllers.RejectRefundHandler(db))
		}

		// ─────────── Users & Analytics ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/analytics/summary", analyticsControllers.SummaryHandler(db))
		adminGroup.GET("/analytics/sales-export", analyticsControllers.ExportSalesToExcel(db))
	}
}
