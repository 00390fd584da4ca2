package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymongoControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/paymongo"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/api/payment")
	{
		// Webhook endpoint: middleware handles signature verification,
		// sandbox mode skips it.
		payment.POST("/webhook",
			middleware.PayMongoWebhookAuth(),
			paymongoControllers.WebhookHandler(db),
		)
	}
}
