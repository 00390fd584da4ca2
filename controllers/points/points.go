package pointsControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

type RedeemInput struct {
	UserID     string `json:"user_id" binding:"required"`
	CartItemID uint   `json:"cart_item_id" binding:"required"`
}

var (
	errNotRedeemable      = errors.New("product is not redeemable with points")
	errInsufficientPoints = errors.New("insufficient points balance")
	errAlreadyRedeemed    = errors.New("cart item already redeemed")
	errItemNotOwnedByUser = errors.New("cart item does not belong to user")
)

// GET /api/points/balance/:user_id
func GetBalanceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		var user models.User
		if err := db.Select("id", "points").First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch balance"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "points": user.Points})
	}
}

// GET /api/points/redeemable
func ListRedeemableHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var redeemables []models.RedeemableProduct
		if err := db.Find(&redeemables).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch redeemable products"})
			return
		}
		c.JSON(http.StatusOK, redeemables)
	}
}

// POST /api/points/redeem
// Eligibility check, balance deduction, and the cart-line price zeroing are
// one transaction: either the line is redeemed and the balance covers it, or
// nothing changes.
func RedeemCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RedeemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var item models.CartItem
		var cost int
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&item, "id = ?", input.CartItemID).Error; err != nil {
				return err
			}
			if item.Redeemed {
				return errAlreadyRedeemed
			}

			var cart models.Cart
			if err := tx.First(&cart, "cart_id = ?", item.CartID).Error; err != nil {
				return err
			}
			if cart.UserID != input.UserID {
				return errItemNotOwnedByUser
			}

			var redeemable models.RedeemableProduct
			if err := tx.First(&redeemable, "product_id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errNotRedeemable
				}
				return err
			}

			cost = redeemable.PointCost * item.Quantity

			// Conditional decrement guards the balance without a row lock.
			res := tx.Model(&models.User{}).
				Where("id = ? AND points >= ?", input.UserID, cost).
				Update("points", gorm.Expr("points - ?", cost))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientPoints
			}

			return tx.Model(&item).Updates(map[string]interface{}{
				"unit_price":   0.0,
				"redeemed":     true,
				"points_spent": cost,
			}).Error
		})
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			case errors.Is(err, errItemNotOwnedByUser):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			case errors.Is(err, errNotRedeemable), errors.Is(err, errInsufficientPoints), errors.Is(err, errAlreadyRedeemed):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem cart item"})
			}
			return
		}

		item.UnitPrice = 0
		item.Redeemed = true
		item.PointsSpent = cost
		c.JSON(http.StatusOK, item)
	}
}
