package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

type AddCartItemInput struct {
	UserID    string `json:"user_id" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type SetQuantityInput struct {
	UserID   string `json:"user_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CartLine is the typed projection returned to clients: the persisted line
// plus the live product fields the storefront joins in.
type CartLine struct {
	CartItemID   uint    `json:"cart_item_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Redeemed     bool    `json:"redeemed_with_points"`
	PointsSpent  int     `json:"points_spent"`
	Stock        int     `json:"product_quantity"`
}

// POST /api/cart/add
// Adding a product already in the cart increments its quantity; there is at
// most one line per (cart, product).
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		var cart models.Cart
		if err := db.Where(models.Cart{UserID: input.UserID}).FirstOrCreate(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		var item models.CartItem
		err := db.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).First(&item).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
				return
			}
			item = models.CartItem{
				CartID:       cart.CartID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				UnitPrice:    product.Price,
				Quantity:     input.Quantity,
				AddedAt:      time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, item)
			return
		}

		item.Quantity += input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// GET /api/cart/:user_id
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, []CartLine{})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		lines := make([]CartLine, 0, len(cart.Items))
		for _, item := range cart.Items {
			line := CartLine{
				CartItemID:   item.ID,
				ProductID:    item.ProductID,
				ProductName:  item.ProductName,
				ProductImage: item.ProductImage,
				UnitPrice:    item.UnitPrice,
				Quantity:     item.Quantity,
				Redeemed:     item.Redeemed,
				PointsSpent:  item.PointsSpent,
			}
			var product models.Product
			if err := db.First(&product, "id = ?", item.ProductID).Error; err == nil {
				line.Stock = product.Stock
			}
			lines = append(lines, line)
		}
		c.JSON(http.StatusOK, lines)
	}
}

// PUT /api/cart/:cart_item_id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("cart_item_id")

		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var item models.CartItem
		if err := db.First(&item, "id = ?", itemID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			}
			return
		}
		if !ownsCartItem(db, c, item, input.UserID) {
			return
		}

		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// ownsCartItem verifies the line's cart belongs to userID, writing the error
// response on failure.
func ownsCartItem(db *gorm.DB, c *gin.Context, item models.CartItem, userID string) bool {
	var cart models.Cart
	if err := db.First(&cart, "cart_id = ?", item.CartID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return false
	}
	if cart.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cart item does not belong to user"})
		return false
	}
	return true
}

// DELETE /api/cart/:cart_item_id?user_id=...
// Removing a point-redeemed line re-credits its points in the same transaction.
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("cart_item_id")
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var item models.CartItem
		if err := db.First(&item, "id = ?", itemID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			}
			return
		}
		if !ownsCartItem(db, c, item, userID) {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if item.Redeemed && item.PointsSpent > 0 {
				var cart models.Cart
				if err := tx.First(&cart, "cart_id = ?", item.CartID).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.User{}).Where("id = ?", cart.UserID).
					Update("points", gorm.Expr("points + ?", item.PointsSpent)).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&item).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}
