package models

import "time"

type RefundStatus string
type RefundKind string

const (
	RefundStatusPending  RefundStatus = "Pending"
	RefundStatusApproved RefundStatus = "Approved"
	RefundStatusRejected RefundStatus = "Rejected"

	// RefundKindCancellation is the pre-fulfillment path (order still To Ship);
	// RefundKindRefund is the post-delivery path (order Received).
	RefundKindCancellation RefundKind = "cancellation"
	RefundKindRefund       RefundKind = "refund"
)

type RefundRequest struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	OrderID    uint         `gorm:"index;not null" json:"order_id"`
	Order      Order        `gorm:"foreignKey:OrderID" json:"order"`
	UserID     string       `gorm:"not null" json:"user_id"`
	Kind       RefundKind   `gorm:"type:VARCHAR(15);not null" json:"kind"`
	Reason     string       `json:"reason"`
	Status     RefundStatus `gorm:"type:VARCHAR(10);default:'Pending'" json:"status"`
	AdminNotes string       `json:"admin_notes"`
	// PriorShippingStatus is the order's state when the request was filed;
	// rejection restores it.
	PriorShippingStatus ShippingStatus `gorm:"type:VARCHAR(20)" json:"prior_shipping_status"`
	CreatedAt           time.Time      `json:"created_at"`
}

// EligibleShippingStatus returns the only fulfillment state an order may be in
// for a request of the given kind, and the holding state it moves to.
func (k RefundKind) EligibleShippingStatus() (from, holding ShippingStatus) {
	if k == RefundKindCancellation {
		return ShippingToShip, ShippingForCancellation
	}
	return ShippingReceived, ShippingForRefund
}

// ResolvedShippingStatus is the terminal state an approved request drives the
// order into.
func (k RefundKind) ResolvedShippingStatus() ShippingStatus {
	if k == RefundKindCancellation {
		return ShippingCancelled
	}
	return ShippingRefunded
}
