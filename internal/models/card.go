package models

import "time"

// Game represents the trading card game a card belongs to.
type Game string

const (
	GamePokemon Game = "pokemon"
	GameMagic   Game = "magic"
	GameYugioh  Game = "yugioh"
	GameSports  Game = "sports"
	GameOther   Game = "other"
)

// Condition represents the physical condition of a raw card.
type Condition string

const (
	ConditionMint             Condition = "mint"
	ConditionNearMint         Condition = "near_mint"
	ConditionLightlyPlayed    Condition = "lightly_played"
	ConditionModeratelyPlayed Condition = "moderately_played"
	ConditionHeavilyPlayed    Condition = "heavily_played"
	ConditionDamaged          Condition = "damaged"
	ConditionGraded           Condition = "graded"
)

// GradingCompany represents a third-party grading service.
type GradingCompany string

const (
	GradingCompanyPSA GradingCompany = "PSA"
	GradingCompanyBGS GradingCompany = "BGS"
	GradingCompanyCGC GradingCompany = "CGC"
	GradingCompanySGC GradingCompany = "SGC"
	GradingCompanyTAG GradingCompany = "TAG"
)

// Card represents a trading card (or a stack of identical copies) in a
// user's collection.
type Card struct {
	Base
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Name          string         `gorm:"not null" json:"name"`
	SetName       string         `gorm:"index" json:"set_name"`
	CardNumber    string         `json:"card_number"`
	Game          Game           `gorm:"not null;index" json:"game"`
	Condition     Condition      `gorm:"not null" json:"condition"`
	GradingCo     GradingCompany `json:"grading_company,omitempty"`
	Grade         float64        `json:"grade,omitempty"`
	PurchasePrice float64        `gorm:"not null" json:"purchase_price"`
	Quantity      int            `gorm:"not null;default:1" json:"quantity"`
	MarketPrice   float64        `json:"market_price"`
	ImageURL      string         `json:"image_url,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	AcquiredAt    time.Time      `gorm:"not null" json:"acquired_at"`

	// Relationships
	PriceSnapshots []PriceSnapshot `gorm:"foreignKey:CardID" json:"price_snapshots,omitempty"`
}
