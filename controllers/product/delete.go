package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/cache"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

// DeleteProduct soft-deletes a product. Order items keep their snapshots, so
// open orders are unaffected.
func DeleteProduct(db *gorm.DB, pc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		pc.Invalidate(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
