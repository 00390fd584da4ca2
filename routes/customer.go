package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/cache"
	cartControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/cart"
	checkoutControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/checkout"
	pointsControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/points"
	productcontroller "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/product"
	userControllers "github.com/HanzChrisrome/soiltrack-commerce-sub000/controllers/user"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/middleware"
)

// SetupCustomerRoutes registers the storefront endpoints. Catalog browsing is
// public; cart, checkout, points, and profile are JWT-protected.
func SetupCustomerRoutes(r *gin.Engine, db *gorm.DB, pc *cache.Cache) {
	// ──────────────── Browse Products (public) ────────────────
	r.GET("/api/products", productcontroller.GetProducts(db, pc))
	r.GET("/api/products/:id", productcontroller.GetProductByID(db))

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/api/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.POST("/add", cartControllers.AddCartItem(db))
		cartGroup.GET("/:user_id", cartControllers.GetUserCart(db))
		cartGroup.PUT("/:cart_item_id", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/:cart_item_id", cartControllers.DeleteCartItem(db))
	}

	// ──────────────── Checkout ────────────────
	checkoutGroup := r.Group("/api/checkout")
	checkoutGroup.Use(middleware.ValidateToken)
	{
		checkoutGroup.POST("/create-payment-link", checkoutControllers.CreatePaymentLinkHandler(db))
	}

	// ──────────────── Loyalty Points ────────────────
	pointsGroup := r.Group("/api/points")
	pointsGroup.Use(middleware.ValidateToken)
	{
		pointsGroup.GET("/redeemable", pointsControllers.ListRedeemableHandler(db))
		pointsGroup.GET("/balance/:user_id", pointsControllers.GetBalanceHandler(db))
		pointsGroup.POST("/redeem", pointsControllers.RedeemCartItemHandler(db))
	}

	// ──────────────── User Profile ────────────────
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/:user_id", userControllers.GetUser(db))
		userGroup.PUT("/:user_id", userControllers.UpdateUser(db))
	}
}
