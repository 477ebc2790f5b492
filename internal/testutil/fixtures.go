package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cardfolio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCard creates a raw near-mint Pokémon card with 4 copies,
// acquired two years ago.
func CreateTestCard(t *testing.T, db *gorm.DB, userID uint) *models.Card {
	t.Helper()

	card := &models.Card{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Card %d", nextID()),
		SetName:       "Test Set",
		CardNumber:    "001",
		Game:          models.GamePokemon,
		Condition:     models.ConditionNearMint,
		PurchasePrice: 25.00,
		Quantity:      4,
		MarketPrice:   40.00,
		AcquiredAt:    time.Now().AddDate(-2, 0, 0),
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestCardWithQuantity creates a card holding the given number of copies.
func CreateTestCardWithQuantity(t *testing.T, db *gorm.DB, userID uint, quantity int) *models.Card {
	t.Helper()

	card := CreateTestCard(t, db, userID)
	if err := db.Model(card).Update("quantity", quantity).Error; err != nil {
		t.Fatalf("failed to set test card quantity: %v", err)
	}
	card.Quantity = quantity
	return card
}

// CreateTestSale records a sale of one copy of the given card.
func CreateTestSale(t *testing.T, db *gorm.DB, userID uint, card *models.Card, saleDate time.Time) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		UserID:        userID,
		CardID:        card.ID,
		ItemName:      card.Name,
		PurchasePrice: card.PurchasePrice,
		SalePrice:     card.MarketPrice,
		QuantitySold:  1,
		AcquiredAt:    card.AcquiredAt,
		SaleDate:      saleDate,
	}
	if err := db.Create(sale).Error; err != nil {
		t.Fatalf("failed to create test sale: %v", err)
	}
	return sale
}

// CreateTestSubmission creates a grading submission containing the given cards.
func CreateTestSubmission(t *testing.T, db *gorm.DB, userID uint, cardIDs ...uint) *models.GradingSubmission {
	t.Helper()

	submission := &models.GradingSubmission{
		UserID:          userID,
		Company:         models.GradingCompanyPSA,
		Reference:       fmt.Sprintf("PSA-TEST%06d", nextID()),
		Status:          models.SubmissionPreparing,
		StatusChangedAt: time.Now(),
	}
	for _, id := range cardIDs {
		submission.Cards = append(submission.Cards, models.SubmissionCard{
			CardID:        id,
			DeclaredValue: 100.00,
		})
	}
	if err := db.Create(submission).Error; err != nil {
		t.Fatalf("failed to create test submission: %v", err)
	}
	return submission
}

// CreateTestPriceSnapshot records a price snapshot for a card.
func CreateTestPriceSnapshot(t *testing.T, db *gorm.DB, cardID uint, price float64, recordedAt time.Time) *models.PriceSnapshot {
	t.Helper()

	snapshot := &models.PriceSnapshot{
		CardID:     cardID,
		Source:     "Test Source",
		Price:      price,
		Currency:   "USD",
		RecordedAt: recordedAt,
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test price snapshot: %v", err)
	}
	return snapshot
}
