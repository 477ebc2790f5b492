package models

import "time"

// PriceSnapshot records a market price observation for a card.
type PriceSnapshot struct {
	Base
	CardID     uint      `gorm:"not null;index" json:"card_id"`
	Source     string    `gorm:"not null" json:"source"`
	Price      float64   `gorm:"not null" json:"price"`
	Currency   string    `gorm:"not null;default:'USD'" json:"currency"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
}
