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

// UploadsDir resolves where product images land on disk.
func UploadsDir() string {
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// CreateProduct creates a new catalog product with an optional image upload.
func CreateProduct(db *gorm.DB, pc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("product_name")
		category := c.PostForm("product_category")
		priceStr := c.PostForm("product_price")
		quantityStr := c.PostForm("product_quantity")
		if name == "" || category == "" || priceStr == "" || quantityStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_name, product_category, product_price, and product_quantity are required"})
			return
		}

		if !models.ValidCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_category"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_price"})
			return
		}
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_quantity"})
			return
		}

		var baseCost float64
		if baseCostStr := c.PostForm("product_base_cost"); baseCostStr != "" {
			if bc, parseErr := strconv.ParseFloat(baseCostStr, 64); parseErr == nil {
				baseCost = bc
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_base_cost"})
				return
			}
		}

		// Image upload (optional)
		var imageURL string
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
			imageURL = fmt.Sprintf("/uploads/products/%s", filename)
		}

		product := models.Product{
			Name:        name,
			Category:    models.ProductCategory(category),
			Price:       price,
			BaseCost:    baseCost,
			Stock:       quantity,
			Description: c.PostForm("product_description"),
			Image:       imageURL,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		pc.Invalidate(c.Request.Context(), cache.KeyProductList)
		c.JSON(http.StatusCreated, product)
	}
}
