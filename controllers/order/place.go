package orderControllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

var (
	ErrEmptyOrder        = errors.New("order has no line items")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownProduct    = errors.New("product does not exist")
	ErrTotalMismatch     = errors.New("submitted total does not match line items")
)

// OrderLine is one line of an order about to be created, price in centavos.
type OrderLine struct {
	ProductID uint
	Quantity  int
	UnitPrice int64
}

// CreateOrderInput feeds the single order-creation path. Both the checkout
// endpoints and the cart finalize endpoint funnel through it.
type CreateOrderInput struct {
	UserID        string
	Lines         []OrderLine
	PaymentMethod models.PaymentMethod
	PaymentStatus models.PaymentStatus
	OrderRef      string
	CheckoutURL   string
	PointsSpent   int
	ClearCart     bool // drop the user's cart rows in the same transaction
}

// GenerateOrderRef builds the opaque reference token embedded in redirect
// URLs and webhook payloads, distinct from the order's primary key.
func GenerateOrderRef() string {
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102150405"),
		strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// CreateOrder persists an order, its items, and the stock decrement in one
// transaction. The stored total is always recomputed from the lines, so the
// invariant total = sum(subtotals) holds by construction.
func CreateOrder(db *gorm.DB, input CreateOrderInput) (*models.Order, error) {
	if len(input.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", input.UserID).Error; err != nil {
			return err
		}

		var total int64
		items := make([]models.OrderItem, 0, len(input.Lines))
		for _, line := range input.Lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUnknownProduct
				}
				return err
			}

			// Conditional decrement keeps stock >= 0 without row locks.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			subtotal := line.UnitPrice * int64(line.Quantity)
			total += subtotal
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Subtotal:    subtotal,
			})
		}

		newOrder := models.Order{
			OrderRef:       input.OrderRef,
			UserID:         input.UserID,
			Items:          items,
			TotalAmount:    total,
			PaymentMethod:  input.PaymentMethod,
			PaymentStatus:  input.PaymentStatus,
			ShippingStatus: models.ShippingToShip,
			CheckoutURL:    input.CheckoutURL,
			PointsSpent:    input.PointsSpent,
			CreatedAt:      time.Now(),
		}
		if err := tx.Create(&newOrder).Error; err != nil {
			return err
		}

		if input.ClearCart {
			if err := clearUserCart(tx, input.UserID); err != nil {
				return err
			}
		}

		order = &newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func clearUserCart(tx *gorm.DB, userID string) error {
	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}
