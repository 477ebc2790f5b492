package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/pagination"
	"cardfolio/internal/services"
)

// SaleHandler handles sale recording requests
type SaleHandler struct {
	saleService services.SaleServicer
	audit       services.AuditServicer
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService services.SaleServicer, audit services.AuditServicer) *SaleHandler {
	return &SaleHandler{saleService: saleService, audit: audit}
}

// RecordSaleRequest represents the sale recording payload
type RecordSaleRequest struct {
	CardID    uint       `json:"card_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required,min=1"`
	UnitPrice float64    `json:"unit_price" binding:"min=0"`
	Fees      float64    `json:"fees" binding:"min=0"`
	SaleDate  *time.Time `json:"sale_date"`
	Notes     string     `json:"notes" binding:"max=2000"`
}

// saleListQuery represents list filter query parameters
type saleListQuery struct {
	pagination.PageRequest
	Year *int `form:"year" binding:"omitempty,min=1900,max=2200"`
}

// RecordSale records a sale of card copies
// @Summary     Record a sale
// @Description Record the sale of one or more copies of a card
// @Tags        sales
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordSaleRequest true "Sale data"
// @Success     201 {object} models.Sale "Sale recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient stock"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /sales [post]
func (h *SaleHandler) RecordSale(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	saleDate := time.Now()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	sale, err := h.saleService.RecordSale(userID, req.CardID, req.Quantity, req.UnitPrice, req.Fees, saleDate, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "create", "sale", sale.ID, c.ClientIP(), map[string]any{
		"card_id":  req.CardID,
		"quantity": req.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{"sale": sale})
}

// ListSales lists the user's sales
// @Summary     List sales
// @Description List the user's sales, newest first, optionally for one tax year
// @Tags        sales
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       year query int false "Restrict to a calendar year"
// @Success     200 {object} pagination.PageResponse[models.Sale] "Sales"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query saleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	page, err := h.saleService.GetUserSales(userID, query.PageRequest, query.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetSale returns a single sale
// @Summary     Get a sale
// @Tags        sales
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sale ID"
// @Success     200 {object} models.Sale "Sale"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sales/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	saleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	sale, err := h.saleService.GetSaleByID(userID, saleID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sale": sale})
}

// DeleteSale deletes a sale and restores the sold copies
// @Summary     Delete a sale
// @Description Delete a sale, returning the sold copies to the card's quantity
// @Tags        sales
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sale ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /sales/{id} [delete]
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	saleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.saleService.DeleteSale(userID, saleID); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "delete", "sale", saleID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
