package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      Address   `gorm:"embedded" json:"address"`
	Points       int       `gorm:"not null;default:0" json:"points"` // loyalty balance; no transaction log, only the running total
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address model embedded in User
type Address struct {
	Province   string `json:"province"`
	City       string `json:"city"`
	Barangay   string `json:"barangay"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}
