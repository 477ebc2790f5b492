package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/tax"
)

// taxReportService bridges recorded sales and the tax calculation engine.
// Computed summaries are cached per user and invalidated whenever a sale
// is recorded or deleted.
type taxReportService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewTaxReportService creates a new TaxReportServicer with the given
// cache TTL for computed reports.
func NewTaxReportService(db *gorm.DB, cacheTTL time.Duration) TaxReportServicer {
	return &taxReportService{
		db:    db,
		cache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

// loadTaxSales converts every sale the user has recorded into the engine's
// input shape. Dates are rendered as YYYY-MM-DD strings, which is the
// engine's primary date layout.
func (s *taxReportService) loadTaxSales(userID uint) ([]tax.Sale, error) {
	var sales []models.Sale
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&sales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	converted := make([]tax.Sale, len(sales))
	for i, sale := range sales {
		converted[i] = tax.Sale{
			ItemName:      sale.ItemName,
			PurchasePrice: sale.PurchasePrice,
			SalePrice:     sale.SalePrice,
			QuantitySold:  sale.QuantitySold,
			PurchaseDate:  sale.AcquiredAt.Format("2006-01-02"),
			SaleDate:      sale.SaleDate.Format("2006-01-02"),
			Fees:          sale.Fees,
		}
	}
	return converted, nil
}

func (s *taxReportService) cacheKey(userID uint, parts ...string) string {
	return fmt.Sprintf("u%d:%s", userID, strings.Join(parts, ":"))
}

// Summary computes (or returns a cached) capital gains summary for a
// user's tax year.
func (s *taxReportService) Summary(userID uint, year int, method tax.Method) (*tax.TaxSummary, error) {
	key := s.cacheKey(userID, "summary", fmt.Sprint(year), string(method))
	if cached, ok := s.cache.Get(key); ok {
		summary := cached.(tax.TaxSummary)
		return &summary, nil
	}

	sales, err := s.loadTaxSales(userID)
	if err != nil {
		return nil, err
	}

	summary := tax.GenerateTaxSummary(sales, year, method)
	s.cache.SetDefault(key, summary)
	return &summary, nil
}

// AvailableYears returns the distinct tax years the user has sales in,
// newest first.
func (s *taxReportService) AvailableYears(userID uint) ([]int, error) {
	key := s.cacheKey(userID, "years")
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]int), nil
	}

	sales, err := s.loadTaxSales(userID)
	if err != nil {
		return nil, err
	}

	years := tax.AvailableTaxYears(sales)
	s.cache.SetDefault(key, years)
	return years, nil
}

// ProfitLoss buckets the user's sales into the given period type.
func (s *taxReportService) ProfitLoss(userID uint, period tax.PeriodType) ([]tax.ProfitLossSummary, error) {
	key := s.cacheKey(userID, "pl", string(period))
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]tax.ProfitLossSummary), nil
	}

	sales, err := s.loadTaxSales(userID)
	if err != nil {
		return nil, err
	}

	summaries := tax.ProfitLossByPeriod(sales, period)
	s.cache.SetDefault(key, summaries)
	return summaries, nil
}

// ExportCSV renders the user's tax summary as a CSV document.
func (s *taxReportService) ExportCSV(userID uint, year int, method tax.Method) (string, error) {
	summary, err := s.Summary(userID, year, method)
	if err != nil {
		return "", err
	}
	return tax.ExportTaxReportCSV(*summary), nil
}

// ExportXLSX renders the user's tax summary as a spreadsheet with one
// row per transaction and a totals block underneath.
func (s *taxReportService) ExportXLSX(userID uint, year int, method tax.Method) (*excelize.File, error) {
	summary, err := s.Summary(userID, year, method)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := fmt.Sprintf("Tax %d", year)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	header := []any{"Sale Date", "Item Name", "Purchase Date", "Quantity",
		"Cost Basis", "Proceeds", "Gain/Loss", "Type", "Holding Period (Days)",
		"Fees", "Cost Basis Method"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i, g := range summary.Transactions {
		row := []any{g.SaleDate, g.ItemName, g.PurchaseDate, g.Quantity,
			g.CostBasis, g.Proceeds, g.GainLoss, string(g.GainType),
			g.HoldingPeriodDays, g.Fees, strings.ToUpper(string(g.CostBasisMethod))}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	totals := [][]any{
		{"Total Proceeds", summary.TotalProceeds},
		{"Total Cost Basis", summary.TotalCostBasis},
		{"Total Gain/Loss", summary.TotalGainLoss},
		{"Net Short-Term", summary.NetShortTerm},
		{"Net Long-Term", summary.NetLongTerm},
	}
	base := len(summary.Transactions) + 3
	for i, row := range totals {
		cell := fmt.Sprintf("A%d", base+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return f, nil
}

// Invalidate drops every cached report for the user. Called after any
// sale write so reports never serve stale numbers.
func (s *taxReportService) Invalidate(userID uint) {
	prefix := fmt.Sprintf("u%d:", userID)
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}
