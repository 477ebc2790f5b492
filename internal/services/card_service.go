package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
)

// cardService handles inventory business logic.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// CreateCard adds a card (or a stack of identical copies) to the user's
// collection.
func (s *cardService) CreateCard(userID uint, input CardInput) (*models.Card, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card name is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	acquiredAt := input.AcquiredAt
	if acquiredAt.IsZero() {
		acquiredAt = time.Now()
	}

	card := &models.Card{
		UserID:        userID,
		Name:          input.Name,
		SetName:       input.SetName,
		CardNumber:    input.CardNumber,
		Game:          input.Game,
		Condition:     input.Condition,
		GradingCo:     input.GradingCo,
		Grade:         input.Grade,
		PurchasePrice: input.PurchasePrice,
		Quantity:      input.Quantity,
		MarketPrice:   input.MarketPrice,
		ImageURL:      input.ImageURL,
		Notes:         input.Notes,
		AcquiredAt:    acquiredAt,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// GetUserCards returns a paginated, filtered list of the user's cards.
func (s *cardService) GetUserCards(userID uint, page pagination.PageRequest, filter CardFilter) (*pagination.PageResponse[models.Card], error) {
	page.Defaults()

	query := s.db.Model(&models.Card{}).Where("user_id = ?", userID)
	if filter.Game != nil {
		query = query.Where("game = ?", *filter.Game)
	}
	if filter.SetName != nil {
		query = query.Where("set_name = ?", *filter.SetName)
	}
	if filter.Search != nil && *filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+*filter.Search+"%")
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var cards []models.Card
	if err := query.Order("name ASC, set_name ASC").
		Scopes(pagination.Paginate(page)).Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(cards, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCardByID returns a card if it belongs to the user.
func (s *cardService) GetCardByID(userID, cardID uint) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("user_id = ?", userID).First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}

// UpdateCard replaces the writable fields of a card.
func (s *cardService) UpdateCard(userID, cardID uint, input CardInput) (*models.Card, error) {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card name is required")
	}
	if input.Quantity < 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	updates := map[string]any{
		"name":           input.Name,
		"set_name":       input.SetName,
		"card_number":    input.CardNumber,
		"game":           input.Game,
		"condition":      input.Condition,
		"grading_co":     input.GradingCo,
		"grade":          input.Grade,
		"purchase_price": input.PurchasePrice,
		"quantity":       input.Quantity,
		"market_price":   input.MarketPrice,
		"image_url":      input.ImageURL,
		"notes":          input.Notes,
	}
	if !input.AcquiredAt.IsZero() {
		updates["acquired_at"] = input.AcquiredAt
	}

	if err := s.db.Model(card).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetCardByID(userID, cardID)
}

// DeleteCard soft-deletes a card. Cards sitting in an open grading
// submission cannot be deleted.
func (s *cardService) DeleteCard(userID, cardID uint) error {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return err
	}

	var open int64
	if err := s.db.Model(&models.SubmissionCard{}).
		Joins("JOIN grading_submissions ON grading_submissions.id = submission_cards.submission_id").
		Where("submission_cards.card_id = ? AND grading_submissions.status <> ? AND grading_submissions.deleted_at IS NULL",
			cardID, models.SubmissionReturned).
		Count(&open).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if open > 0 {
		return apperrors.ErrCardInGrading
	}

	if err := s.db.Delete(card).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CollectionStats aggregates the user's inventory for the dashboard.
func (s *cardService) CollectionStats(userID uint) (*CollectionStats, error) {
	var cards []models.Card
	if err := s.db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &CollectionStats{CopiesByGame: make(map[string]int)}
	for i := range cards {
		c := &cards[i]
		stats.DistinctCards++
		stats.TotalCopies += c.Quantity
		stats.TotalCostBasis += c.PurchasePrice * float64(c.Quantity)
		stats.EstimatedValue += c.MarketPrice * float64(c.Quantity)
		stats.CopiesByGame[string(c.Game)] += c.Quantity
	}
	stats.UnrealizedGainLoss = stats.EstimatedValue - stats.TotalCostBasis

	return stats, nil
}
