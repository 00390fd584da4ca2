package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/auth"
)

// SetupAuthRoutes registers the public "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
	}
}
