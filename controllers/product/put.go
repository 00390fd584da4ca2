package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/cache"
	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

// UpdateProduct updates catalog fields; every field is optional, image included.
func UpdateProduct(db *gorm.DB, pc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		updates := make(map[string]interface{})

		if name := c.PostForm("product_name"); name != "" {
			updates["name"] = name
		}
		if category := c.PostForm("product_category"); category != "" {
			if !models.ValidCategory(category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_category"})
				return
			}
			updates["category"] = category
		}
		if priceStr := c.PostForm("product_price"); priceStr != "" {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_price"})
				return
			}
			updates["price"] = price
		}
		if baseCostStr := c.PostForm("product_base_cost"); baseCostStr != "" {
			baseCost, err := strconv.ParseFloat(baseCostStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_base_cost"})
				return
			}
			updates["base_cost"] = baseCost
		}
		if quantityStr := c.PostForm("product_quantity"); quantityStr != "" {
			quantity, err := strconv.Atoi(quantityStr)
			if err != nil || quantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_quantity"})
				return
			}
			updates["stock"] = quantity
		}
		if description := c.PostForm("product_description"); description != "" {
			updates["description"] = description
		}

		if file, err := c.FormFile("image"); err == nil {
			filename := strings.ReplaceAll(file.Filename, " ", "_")
			saveDir := filepath.Join(UploadsDir(), "products")
			if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
				return
			}
			if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
			updates["image"] = fmt.Sprintf("/uploads/products/%s", filename)
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		pc.Invalidate(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusOK, product)
	}
}
