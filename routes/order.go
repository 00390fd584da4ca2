package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/order"
	refundControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/refund"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	// Live feed for the admin dashboard; the upgrade request carries no JSON
	// body so it sits outside the JWT group.
	r.GET("/api/orders/ws", orderControllers.OrderWebSocketHandler)

	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Convert the current cart into a paid order (non-gateway path)
		orders.POST("/finalize", orderControllers.FinalizeOrderHandler(db))

		// Customer confirms delivery
		orders.POST("/receive", orderControllers.ConfirmReceiptHandler(db))

		// Cancellation (pre-fulfillment) and refund (post-delivery) requests
		orders.POST("/cancel", refundControllers.SubmitCancellationHandler(db))
		orders.POST("/refund", refundControllers.SubmitRefundHandler(db))

		// Order history
		orders.GET("/user/:user_id", orderControllers.GetUserOrdersHandler(db))
		orders.GET("/detail/:order_id", orderControllers.GetOrderByIDHandler(db))
	}
}
