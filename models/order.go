package models

import (
	"math"
	"time"
)

type PaymentStatus string
type ShippingStatus string
type PaymentMethod string

const (
	// Payment axis
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"

	// Shipping axis
	ShippingToShip          ShippingStatus = "To Ship"
	ShippingToReceive       ShippingStatus = "To Receive"
	ShippingReceived        ShippingStatus = "Received"
	ShippingForCancellation ShippingStatus = "For Cancellation"
	ShippingCancelled       ShippingStatus = "Cancelled"
	ShippingForRefund       ShippingStatus = "For Refund"
	ShippingRefunded        ShippingStatus = "Refunded"

	PaymentMethodOnline PaymentMethod = "ONLINE"
	PaymentMethodCOD    PaymentMethod = "COD"
)

// shippingTransitions is the single authority on the fulfillment state
// machine. Cancelled and Refunded are terminal.
var shippingTransitions = map[ShippingStatus][]ShippingStatus{
	ShippingToShip:          {ShippingToReceive, ShippingForCancellation, ShippingCancelled},
	ShippingToReceive:       {ShippingReceived},
	ShippingReceived:        {ShippingForRefund},
	ShippingForCancellation: {ShippingCancelled, ShippingToShip},
	ShippingForRefund:       {ShippingRefunded, ShippingReceived},
}

// CanTransitionShipping reports whether from -> to is a legal fulfillment move.
func CanTransitionShipping(from, to ShippingStatus) bool {
	for _, next := range shippingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalShipping reports whether no further fulfillment moves are accepted.
func IsTerminalShipping(s ShippingStatus) bool {
	return s == ShippingCancelled || s == ShippingRefunded
}

// AdminEditableShipping is the subset admins may set by hand. The "For ..."
// holding states and Refunded are only reachable through the refund workflow.
func AdminEditableShipping(s ShippingStatus) bool {
	return s == ShippingToShip || s == ShippingToReceive || s == ShippingCancelled
}

// ValidShippingStatus reports whether s names a known fulfillment state.
func ValidShippingStatus(s string) bool {
	switch ShippingStatus(s) {
	case ShippingToShip, ShippingToReceive, ShippingReceived,
		ShippingForCancellation, ShippingCancelled,
		ShippingForRefund, ShippingRefunded:
		return true
	}
	return false
}

// Centavos converts a major-unit amount to minor units. All persisted order
// money is integer centavos; floats only exist at the API edge.
func Centavos(pesos float64) int64 {
	return int64(math.Round(pesos * 100))
}

type Order struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrderRef       string         `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID         string         `gorm:"not null;index" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user"`
	Items          []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount    int64          `gorm:"not null" json:"total_amount"` // centavos
	PaymentMethod  PaymentMethod  `gorm:"type:VARCHAR(10)" json:"payment_method"`
	PaymentStatus  PaymentStatus  `gorm:"type:VARCHAR(10);default:'pending'" json:"payment_status"`
	ShippingStatus ShippingStatus `gorm:"type:VARCHAR(20);default:'To Ship'" json:"shipping_status"`
	CheckoutURL    string         `json:"checkout_url,omitempty"`
	PointsSpent    int            `gorm:"not null;default:0" json:"points_spent"`
	CreatedAt      time.Time      `json:"created_at"`
}

// OrderItem snapshots the product at purchase time; catalog edits after the
// fact do not touch it.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderID     uint   `gorm:"index" json:"order_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"` // centavos
	Subtotal    int64  `gorm:"not null" json:"subtotal"`   // quantity * unit price, centavos
}
