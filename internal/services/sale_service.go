package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
)

// saleService handles sale recording and lookup.
type saleService struct {
	db      *gorm.DB
	reports TaxReportServicer
}

// NewSaleService creates a new SaleServicer. The report service may be nil
// in tests; when present its caches are invalidated on every write.
func NewSaleService(db *gorm.DB, reports TaxReportServicer) SaleServicer {
	return &saleService{db: db, reports: reports}
}

// RecordSale sells quantity copies of a card at unitPrice each. The card's
// name, unit purchase price, and acquisition date are snapshotted onto the
// sale row, and the card's on-hand quantity is decremented in the same
// transaction.
func (s *saleService) RecordSale(userID, cardID uint, quantity int, unitPrice, fees float64, saleDate time.Time, notes string) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	var card models.Card
	if err := s.db.Where("user_id = ?", userID).First(&card, cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if quantity > card.Quantity {
		return nil, apperrors.ErrInsufficientStock
	}
	if saleDate.Before(card.AcquiredAt) {
		return nil, apperrors.ErrSaleBeforePurchase
	}

	sale := &models.Sale{
		UserID:        userID,
		CardID:        card.ID,
		ItemName:      card.Name,
		PurchasePrice: card.PurchasePrice,
		SalePrice:     unitPrice,
		QuantitySold:  quantity,
		AcquiredAt:    card.AcquiredAt,
		SaleDate:      saleDate,
		Fees:          fees,
		Notes:         notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(sale).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Model(&card).Update("quantity", card.Quantity-quantity).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.reports != nil {
		s.reports.Invalidate(userID)
	}

	return sale, nil
}

// GetUserSales returns a paginated list of the user's sales, newest first,
// optionally restricted to a calendar year.
func (s *saleService) GetUserSales(userID uint, page pagination.PageRequest, year *int) (*pagination.PageResponse[models.Sale], error) {
	page.Defaults()

	query := s.db.Model(&models.Sale{}).Where("user_id = ?", userID)
	if year != nil {
		start := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("sale_date >= ? AND sale_date < ?", start, start.AddDate(1, 0, 0))
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sales []models.Sale
	if err := query.Order("sale_date DESC").
		Scopes(pagination.Paginate(page)).Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(sales, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSaleByID returns a sale if it belongs to the user.
func (s *saleService) GetSaleByID(userID, saleID uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.Where("user_id = ?", userID).First(&sale, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSaleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sale, nil
}

// DeleteSale removes a sale and restores the sold copies to the card's
// on-hand quantity when the card still exists.
func (s *saleService) DeleteSale(userID, saleID uint) error {
	sale, err := s.GetSaleByID(userID, saleID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Delete(sale).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		var card models.Card
		txErr := tx.Where("user_id = ?", userID).First(&card, sale.CardID).Error
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			// Card was deleted after the sale; nothing to restore.
			return nil
		}
		if txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if txErr := tx.Model(&card).Update("quantity", card.Quantity+sale.QuantitySold).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.reports != nil {
		s.reports.Invalidate(userID)
	}
	return nil
}
