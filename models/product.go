package models

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryInsecticide  ProductCategory = "Insecticide"
	CategoryHerbicide    ProductCategory = "Herbicide"
	CategoryPesticide    ProductCategory = "Pesticide"
	CategoryMolluscicide ProductCategory = "Molluscicide"
	CategoryFertilizer   ProductCategory = "Fertilizer"
)

// ValidCategory reports whether s is one of the fixed catalog categories.
func ValidCategory(s string) bool {
	switch ProductCategory(s) {
	case CategoryInsecticide, CategoryHerbicide, CategoryPesticide,
		CategoryMolluscicide, CategoryFertilizer:
		return true
	}
	return false
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"product_name"`
	Category    ProductCategory `gorm:"type:VARCHAR(20);not null" json:"product_category"`
	Price       float64         `gorm:"not null" json:"product_price"` // major units (pesos)
	BaseCost    float64         `json:"product_base_cost"`             // optional, margin reporting
	Stock       int             `gorm:"not null;default:0" json:"product_quantity"`
	Description string          `json:"product_description"`
	Image       string          `json:"product_image"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
