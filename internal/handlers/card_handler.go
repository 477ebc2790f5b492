package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
	"cardfolio/internal/services"
)

// CardHandler handles inventory requests
type CardHandler struct {
	cardService services.CardServicer
	audit       services.AuditServicer
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService services.CardServicer, audit services.AuditServicer) *CardHandler {
	return &CardHandler{cardService: cardService, audit: audit}
}

// CardRequest represents the create/update card payload
type CardRequest struct {
	Name          string     `json:"name" binding:"required,max=255"`
	SetName       string     `json:"set_name" binding:"max=255"`
	CardNumber    string     `json:"card_number" binding:"max=50"`
	Game          string     `json:"game" binding:"required,card_game"`
	Condition     string     `json:"condition" binding:"required,card_condition"`
	GradingCo     string     `json:"grading_company" binding:"omitempty,grading_company"`
	Grade         float64    `json:"grade" binding:"omitempty,min=0,max=10"`
	PurchasePrice float64    `json:"purchase_price" binding:"min=0"`
	Quantity      int        `json:"quantity" binding:"required,min=1"`
	MarketPrice   float64    `json:"market_price" binding:"min=0"`
	ImageURL      string     `json:"image_url" binding:"omitempty,url"`
	Notes         string     `json:"notes" binding:"max=2000"`
	AcquiredAt    *time.Time `json:"acquired_at"`
}

// cardListQuery represents list filter query parameters
type cardListQuery struct {
	pagination.PageRequest
	Game    string `form:"game" binding:"omitempty,card_game"`
	SetName string `form:"set_name"`
	Search  string `form:"search"`
}

func (r *CardRequest) toInput() services.CardInput {
	input := services.CardInput{
		Name:          r.Name,
		SetName:       r.SetName,
		CardNumber:    r.CardNumber,
		Game:          models.Game(r.Game),
		Condition:     models.Condition(r.Condition),
		GradingCo:     models.GradingCompany(r.GradingCo),
		Grade:         r.Grade,
		PurchasePrice: r.PurchasePrice,
		Quantity:      r.Quantity,
		MarketPrice:   r.MarketPrice,
		ImageURL:      r.ImageURL,
		Notes:         r.Notes,
	}
	if r.AcquiredAt != nil {
		input.AcquiredAt = *r.AcquiredAt
	}
	return input
}

// CreateCard adds a card to the collection
// @Summary     Add a card
// @Description Add a card (or a stack of identical copies) to the collection
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CardRequest true "Card data"
// @Success     201 {object} models.Card "Card created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.CreateCard(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "create", "card", card.ID, c.ClientIP(), map[string]any{"name": card.Name})

	c.JSON(http.StatusCreated, gin.H{"card": card})
}

// ListCards lists the user's cards
// @Summary     List cards
// @Description List the user's cards with optional game, set, and name filters
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       game query string false "Filter by game"
// @Param       set_name query string false "Filter by set name"
// @Param       search query string false "Filter by name substring"
// @Success     200 {object} pagination.PageResponse[models.Card] "Cards"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query cardListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.CardFilter{}
	if query.Game != "" {
		game := models.Game(query.Game)
		filter.Game = &game
	}
	if query.SetName != "" {
		filter.SetName = &query.SetName
	}
	if query.Search != "" {
		filter.Search = &query.Search
	}

	page, err := h.cardService.GetUserCards(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetCard returns a single card
// @Summary     Get a card
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Success     200 {object} models.Card "Card"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
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

	card, err := h.cardService.GetCardByID(userID, cardID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// UpdateCard updates a card
// @Summary     Update a card
// @Tags        cards
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Param       request body CardRequest true "Card data"
// @Success     200 {object} models.Card "Updated card"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /cards/{id} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
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

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	card, err := h.cardService.UpdateCard(userID, cardID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "card", card.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"card": card})
}

// DeleteCard deletes a card
// @Summary     Delete a card
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Card ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Card is in an open grading submission"
// @Router      /cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
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

	if err := h.cardService.DeleteCard(userID, cardID); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "delete", "card", cardID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetCollectionStats returns dashboard statistics for the collection
// @Summary     Collection statistics
// @Description Aggregate copy counts, cost basis, and estimated value
// @Tags        cards
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.CollectionStats "Statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /cards/stats [get]
func (h *CardHandler) GetCollectionStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.cardService.CollectionStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
