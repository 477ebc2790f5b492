package services

import (
	"testing"
	"time"

	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
	"cardfolio/internal/testutil"
)

func TestCreateCard(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		card, err := svc.CreateCard(user.ID, CardInput{
			Name:          "Charizard",
			SetName:       "Base Set",
			CardNumber:    "4",
			Game:          models.GamePokemon,
			Condition:     models.ConditionNearMint,
			PurchasePrice: 250.00,
			Quantity:      1,
			AcquiredAt:    time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		testutil.AssertNoError(t, err)

		if card.ID == 0 {
			t.Fatal("expected non-zero card ID")
		}
		if card.UserID != user.ID {
			t.Errorf("expected user ID %d, got %d", user.ID, card.UserID)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCard(user.ID, CardInput{Quantity: 1})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_quantity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCard(user.ID, CardInput{Name: "Pikachu"})
		testutil.AssertAppError(t, err, "INVALID_QUANTITY")
	})

	t.Run("defaults_acquired_at_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		card, err := svc.CreateCard(user.ID, CardInput{Name: "Pikachu", Quantity: 1})
		testutil.AssertNoError(t, err)

		if card.AcquiredAt.IsZero() {
			t.Error("expected AcquiredAt to default to now")
		}
	})
}

func TestGetUserCards(t *testing.T) {
	t.Run("filters_by_game", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCard(t, db, user.ID)
		magic, err := svc.CreateCard(user.ID, CardInput{
			Name: "Black Lotus", Game: models.GameMagic,
			Condition: models.ConditionLightlyPlayed, Quantity: 1,
		})
		testutil.AssertNoError(t, err)

		game := models.GameMagic
		page, err := svc.GetUserCards(user.ID, pagination.PageRequest{}, CardFilter{Game: &game})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Fatalf("expected 1 magic card, got %d", page.TotalItems)
		}
		if page.Data[0].ID != magic.ID {
			t.Errorf("expected card %d, got %d", magic.ID, page.Data[0].ID)
		}
	})

	t.Run("does_not_leak_other_users_cards", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestCard(t, db, alice.ID)

		page, err := svc.GetUserCards(bob.ID, pagination.PageRequest{}, CardFilter{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 0 {
			t.Errorf("expected no cards for bob, got %d", page.TotalItems)
		}
	})
}

func TestUpdateCard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCardService(db)
	user := testutil.CreateTestUser(t, db)
	card := testutil.CreateTestCard(t, db, user.ID)

	updated, err := svc.UpdateCard(user.ID, card.ID, CardInput{
		Name:          card.Name,
		SetName:       card.SetName,
		Game:          card.Game,
		Condition:     models.ConditionMint,
		PurchasePrice: card.PurchasePrice,
		Quantity:      7,
	})
	testutil.AssertNoError(t, err)

	if updated.Condition != models.ConditionMint {
		t.Errorf("expected condition mint, got %s", updated.Condition)
	}
	if updated.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", updated.Quantity)
	}
}

func TestDeleteCard(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteCard(user.ID, card.ID))

		_, err := svc.GetCardByID(user.ID, card.ID)
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
	})

	t.Run("rejects_card_in_open_submission", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)
		testutil.CreateTestSubmission(t, db, user.ID, card.ID)

		err := svc.DeleteCard(user.ID, card.ID)
		testutil.AssertAppError(t, err, "CARD_IN_GRADING")
	})

	t.Run("allows_card_in_returned_submission", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		user := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, user.ID)
		submission := testutil.CreateTestSubmission(t, db, user.ID, card.ID)
		db.Model(submission).Update("status", models.SubmissionReturned)

		testutil.AssertNoError(t, svc.DeleteCard(user.ID, card.ID))
	})

	t.Run("not_found_for_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCardService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		card := testutil.CreateTestCard(t, db, alice.ID)

		err := svc.DeleteCard(bob.ID, card.ID)
		testutil.AssertAppError(t, err, "CARD_NOT_FOUND")
	})
}

func TestCollectionStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCardService(db)
	user := testutil.CreateTestUser(t, db)

	// 4 copies at $25 cost / $40 market (fixture) plus 2 copies at $10 / $8
	testutil.CreateTestCard(t, db, user.ID)
	_, err := svc.CreateCard(user.ID, CardInput{
		Name: "Dark Magician", Game: models.GameYugioh,
		Condition: models.ConditionNearMint,
		PurchasePrice: 10.00, MarketPrice: 8.00, Quantity: 2,
	})
	testutil.AssertNoError(t, err)

	stats, err := svc.CollectionStats(user.ID)
	testutil.AssertNoError(t, err)

	if stats.DistinctCards != 2 {
		t.Errorf("expected 2 distinct cards, got %d", stats.DistinctCards)
	}
	if stats.TotalCopies != 6 {
		t.Errorf("expected 6 copies, got %d", stats.TotalCopies)
	}
	if stats.TotalCostBasis != 120.00 {
		t.Errorf("expected cost basis 120.00, got %.2f", stats.TotalCostBasis)
	}
	if stats.EstimatedValue != 176.00 {
		t.Errorf("expected estimated value 176.00, got %.2f", stats.EstimatedValue)
	}
	if stats.UnrealizedGainLoss != 56.00 {
		t.Errorf("expected unrealized gain 56.00, got %.2f", stats.UnrealizedGainLoss)
	}
	if stats.CopiesByGame["pokemon"] != 4 || stats.CopiesByGame["yugioh"] != 2 {
		t.Errorf("unexpected game breakdown: %v", stats.CopiesByGame)
	}
}
