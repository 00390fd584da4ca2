package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/cache"
)

// SetupRoutes is the single entry point that wires up the auth, customer,
// admin, order, and payment route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, pc *cache.Cache) {
	SetupAuthRoutes(r, db)
	SetupCustomerRoutes(r, db, pc)
	SetupAdminRoutes(r, db, pc)
	SetupOrderRoutes(r, db)
	SetupPaymentRoutes(r, db)
}
