package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/pagination"
	"cardfolio/internal/services"
)

// PriceHandler handles market price requests
type PriceHandler struct {
	priceService services.PriceServicer
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(priceService services.PriceServicer) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// GetPrice returns the current market price for a card
// @Summary     Get a card's market price
// @Description Fetch the current market price, serving a cached quote when fresh
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Success     200 {object} models.PriceSnapshot "Price snapshot"
// @Failure     404 {object} ErrorResponse "Card or price not found"
// @Failure     502 {object} ErrorResponse "Price provider failure"
// @Router      /cards/{id}/price [get]
func (h *PriceHandler) GetPrice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.priceService.GetCardPrice(c.Request.Context(), userID, cardID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": snapshot})
}

// GetPriceHistory returns recorded price snapshots for a card
// @Summary     Get a card's price history
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.PriceSnapshot] "Snapshots, newest first"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /cards/{id}/price/history [get]
func (h *PriceHandler) GetPriceHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	history, err := h.priceService.GetPriceHistory(userID, cardID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
