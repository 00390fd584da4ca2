package models

// RedeemableProduct is the fixed price list of catalog items that can be paid
// for with loyalty points instead of currency.
type RedeemableProduct struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"uniqueIndex;not null" json:"product_id"`
	PointCost int  `gorm:"not null" json:"point_cost"` // per unit
}
