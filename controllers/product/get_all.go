package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/cache"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

// GetProducts lists the catalog, optionally filtered by ?category=.
// The unfiltered listing is served through the Redis cache (60s TTL,
// invalidated on every admin mutation).
func GetProducts(db *gorm.DB, pc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.Query("category")

		var products []models.Product
		if category == "" {
			if pc.GetJSON(c.Request.Context(), cache.KeyProductList, &products) {
				c.JSON(http.StatusOK, products)
				return
			}
		} else if !models.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}

		query := db.Order("created_at DESC")
		if category != "" {
			query = query.Where("category = ?", category)
		}
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		if category == "" {
			pc.SetJSON(c.Request.Context(), cache.KeyProductList, products, cache.TTLProductList)
		}
		c.JSON(http.StatusOK, products)
	}
}
