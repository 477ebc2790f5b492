package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/services"
	"cardfolio/internal/tax"
)

// TaxHandler handles tax and profit/loss report requests
type TaxHandler struct {
	reportService services.TaxReportServicer
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(reportService services.TaxReportServicer) *TaxHandler {
	return &TaxHandler{reportService: reportService}
}

// parseReportParams extracts and validates the year and cost basis method
// query parameters shared by the summary and export endpoints.
func parseReportParams(c *gin.Context) (int, tax.Method, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1900 || year > 2200 {
		return 0, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
	}

	method, err := tax.ParseMethod(c.Query("method"))
	if err != nil {
		return 0, "", apperrors.ErrInvalidCostBasis
	}

	return year, method, nil
}

// GetSummary returns the capital gains summary for a tax year
// @Summary     Tax year summary
// @Description Capital gains summary for one tax year under FIFO or LIFO ordering
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Tax year"
// @Param       method query string false "Cost basis method (fifo or lifo)"
// @Success     200 {object} tax.TaxSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/tax [get]
func (h *TaxHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, method, err := parseReportParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.Summary(userID, year, method)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetAvailableYears returns the tax years the user has sales in
// @Summary     Available tax years
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]int "Years, newest first"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/tax/years [get]
func (h *TaxHandler) GetAvailableYears(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	years, err := h.reportService.AvailableYears(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"years": years})
}

// GetProfitLoss returns the profit/loss rollup by period
// @Summary     Profit and loss by period
// @Description Revenue, cost of goods, fees, and margin bucketed by month, quarter, or year
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Bucket size (month, quarter, or year)"
// @Success     200 {object} map[string][]tax.ProfitLossSummary "Period buckets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/profit-loss [get]
func (h *TaxHandler) GetProfitLoss(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period, err := tax.ParsePeriodType(c.Query("period"))
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidReportPeriod)
		return
	}

	periods, err := h.reportService.ProfitLoss(userID, period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

// ExportCSV downloads the tax summary as a CSV file
// @Summary     Export tax report as CSV
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year query int true "Tax year"
// @Param       method query string false "Cost basis method (fifo or lifo)"
// @Success     200 {string} string "CSV document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/tax/export [get]
func (h *TaxHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, method, err := parseReportParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	csv, err := h.reportService.ExportCSV(userID, year, method)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("tax-report-%d-%s.csv", year, method)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

// ExportXLSX downloads the tax summary as a spreadsheet
// @Summary     Export tax report as XLSX
// @Tags        reports
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Param       year query int true "Tax year"
// @Param       method query string false "Cost basis method (fifo or lifo)"
// @Success     200 {string} string "XLSX document"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/tax/export.xlsx [get]
func (h *TaxHandler) ExportXLSX(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, method, err := parseReportParams(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	f, err := h.reportService.ExportXLSX(userID, year, method)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("tax-report-%d-%s.xlsx", year, method)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}
}
