package services

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/logger"
	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
	"cardfolio/internal/pricing"
)

// priceService resolves market prices through the registered providers,
// caching quotes and recording a PriceSnapshot for every fresh fetch.
type priceService struct {
	db        *gorm.DB
	providers []pricing.Provider
	limiters  map[string]*rate.Limiter
	cache     *cache.Cache
}

// NewPriceService creates a new PriceServicer. Providers are consulted in
// order; the first one that supports a card's game wins. Each provider
// gets its own rate limiter so one hot game cannot starve the others.
func NewPriceService(db *gorm.DB, providers []pricing.Provider, cacheTTL time.Duration) PriceServicer {
	limiters := make(map[string]*rate.Limiter, len(providers))
	for _, p := range providers {
		// External card APIs allow on the order of one request per
		// second on free tiers.
		limiters[p.Name()] = rate.NewLimiter(rate.Every(time.Second), 5)
	}
	return &priceService{
		db:        db,
		providers: providers,
		limiters:  limiters,
		cache:     cache.New(cacheTTL, 2*cacheTTL),
	}
}

// providerFor returns the first provider that prices the given game.
func (s *priceService) providerFor(game models.Game) pricing.Provider {
	for _, p := range s.providers {
		if p.Supports(string(game)) {
			return p
		}
	}
	return nil
}

// fetchQuote pulls a fresh quote for a card, respecting the provider's
// rate limiter.
func (s *priceService) fetchQuote(ctx context.Context, card *models.Card) (*pricing.Quote, error) {
	provider := s.providerFor(card.Game)
	if provider == nil {
		return nil, apperrors.ErrPriceUnavailable
	}

	if err := s.limiters[provider.Name()].Wait(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderFailure, err)
	}

	quote, err := provider.FetchPrice(ctx, pricing.CardQuery{
		Name:       card.Name,
		SetName:    card.SetName,
		CardNumber: card.CardNumber,
		Game:       string(card.Game),
		Condition:  string(card.Condition),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderFailure, err)
	}
	return quote, nil
}

// GetCardPrice returns the current market price for a card, serving from
// cache when a recent quote exists. Fresh quotes are persisted as a
// PriceSnapshot and written back to the card's market price.
func (s *priceService) GetCardPrice(ctx context.Context, userID, cardID uint) (*models.PriceSnapshot, error) {
	var card models.Card
	if err := s.db.Where("user_id = ?", userID).First(&card, cardID).Error; err != nil {
		return nil, apperrors.ErrCardNotFound
	}

	key := fmt.Sprintf("card:%d", cardID)
	if cached, ok := s.cache.Get(key); ok {
		snapshot := cached.(models.PriceSnapshot)
		return &snapshot, nil
	}

	quote, err := s.fetchQuote(ctx, &card)
	if err != nil {
		return nil, err
	}

	snapshot := models.PriceSnapshot{
		CardID:     card.ID,
		Source:     quote.Source,
		Price:      quote.Price,
		Currency:   quote.Currency,
		RecordedAt: quote.FetchedAt,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(&snapshot).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Model(&card).Update("market_price", quote.Price).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(key, snapshot)
	return &snapshot, nil
}

// GetPriceHistory returns the recorded price snapshots for a card, newest
// first.
func (s *priceService) GetPriceHistory(userID, cardID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PriceSnapshot], error) {
	var card models.Card
	if err := s.db.Where("user_id = ?", userID).First(&card, cardID).Error; err != nil {
		return nil, apperrors.ErrCardNotFound
	}

	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.PriceSnapshot{}).Where("card_id = ?", cardID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.PriceSnapshot
	if err := base.Order("recorded_at DESC").
		Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// RefreshAllPrices refreshes the market price of every card in the
// database. Individual failures are logged and counted, not fatal; the
// loop stops early only when the context is cancelled.
func (s *priceService) RefreshAllPrices(ctx context.Context) (updated, failed int, err error) {
	var cards []models.Card
	if err := s.db.Find(&cards).Error; err != nil {
		return 0, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log := logger.Get()
	for i := range cards {
		card := &cards[i]
		if ctx.Err() != nil {
			return updated, failed, ctx.Err()
		}

		quote, qerr := s.fetchQuote(ctx, card)
		if qerr != nil {
			failed++
			log.Warnw("price refresh failed",
				"card_id", card.ID,
				"name", card.Name,
				"game", card.Game,
				"error", qerr,
			)
			continue
		}

		snapshot := models.PriceSnapshot{
			CardID:     card.ID,
			Source:     quote.Source,
			Price:      quote.Price,
			Currency:   quote.Currency,
			RecordedAt: quote.FetchedAt,
		}
		txErr := s.db.Transaction(func(tx *gorm.DB) error {
			if e := tx.Create(&snapshot).Error; e != nil {
				return e
			}
			return tx.Model(card).Update("market_price", quote.Price).Error
		})
		if txErr != nil {
			failed++
			log.Errorw("price snapshot write failed", "card_id", card.ID, "error", txErr)
			continue
		}

		s.cache.SetDefault(fmt.Sprintf("card:%d", card.ID), snapshot)
		updated++
	}

	return updated, failed, nil
}
