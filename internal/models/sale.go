package models

import "time"

// Sale records the disposal of one or more copies of a card. The card's
// name and unit purchase price are denormalized onto the row at sale time
// so that tax reporting stays correct even if the card is later edited
// or deleted.
type Sale struct {
	Base
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	CardID        uint      `gorm:"index" json:"card_id"`
	ItemName      string    `gorm:"not null" json:"item_name"`
	PurchasePrice float64   `gorm:"not null" json:"purchase_price"`
	SalePrice     float64   `gorm:"not null" json:"sale_price"`
	QuantitySold  int       `gorm:"not null" json:"quantity_sold"`
	AcquiredAt    time.Time `gorm:"not null" json:"acquired_at"`
	SaleDate      time.Time `gorm:"not null;index" json:"sale_date"`
	Fees          float64   `json:"fees"`
	Notes         string    `json:"notes,omitempty"`

	// Relationships
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
}
