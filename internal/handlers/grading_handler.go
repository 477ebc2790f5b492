package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
	"cardfolio/internal/services"
)

// GradingHandler handles grading submission requests
type GradingHandler struct {
	gradingService services.GradingServicer
	audit          services.AuditServicer
}

// NewGradingHandler creates a new GradingHandler
func NewGradingHandler(gradingService services.GradingServicer, audit services.AuditServicer) *GradingHandler {
	return &GradingHandler{gradingService: gradingService, audit: audit}
}

// SubmissionCardRequest names one card going into a submission
type SubmissionCardRequest struct {
	CardID        uint    `json:"card_id" binding:"required"`
	DeclaredValue float64 `json:"declared_value" binding:"min=0"`
}

// CreateSubmissionRequest represents the submission creation payload
type CreateSubmissionRequest struct {
	Company      string                  `json:"company" binding:"required,grading_company"`
	Cards        []SubmissionCardRequest `json:"cards" binding:"required,min=1,dive"`
	CostTotal    float64                 `json:"cost_total" binding:"min=0"`
	InsuredValue float64                 `json:"insured_value" binding:"min=0"`
	Notes        string                  `json:"notes" binding:"max=2000"`
}

// MoveSubmissionRequest represents a status change payload
type MoveSubmissionRequest struct {
	Status string `json:"status" binding:"required,submission_status"`
}

// GradeRequest records one returned grade
type GradeRequest struct {
	SubmissionCardID uint    `json:"submission_card_id" binding:"required"`
	Grade            float64 `json:"grade" binding:"required,min=0,max=10"`
	GradeLabel       string  `json:"grade_label" binding:"max=50"`
}

// RecordGradesRequest represents the grades payload
type RecordGradesRequest struct {
	Grades []GradeRequest `json:"grades" binding:"required,min=1,dive"`
}

// submissionListQuery represents list filter query parameters
type submissionListQuery struct {
	pagination.PageRequest
	Status string `form:"status" binding:"omitempty,submission_status"`
}

// CreateSubmission opens a grading submission
// @Summary     Create a grading submission
// @Description Open a submission of cards to a grading company
// @Tags        grading
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSubmissionRequest true "Submission data"
// @Success     201 {object} models.GradingSubmission "Submission created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Card not found"
// @Router      /grading [post]
func (h *GradingHandler) CreateSubmission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cards := make([]services.SubmissionCardInput, len(req.Cards))
	for i, entry := range req.Cards {
		cards[i] = services.SubmissionCardInput{
			CardID:        entry.CardID,
			DeclaredValue: entry.DeclaredValue,
		}
	}

	submission, err := h.gradingService.CreateSubmission(userID,
		models.GradingCompany(req.Company), cards, req.CostTotal, req.InsuredValue, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "create", "grading_submission", submission.ID, c.ClientIP(), map[string]any{
		"reference": submission.Reference,
		"cards":     len(cards),
	})

	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

// ListSubmissions lists the user's grading submissions
// @Summary     List grading submissions
// @Tags        grading
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by status"
// @Success     200 {object} pagination.PageResponse[models.GradingSubmission] "Submissions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /grading [get]
func (h *GradingHandler) ListSubmissions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query submissionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.SubmissionStatus
	if query.Status != "" {
		s := models.SubmissionStatus(query.Status)
		status = &s
	}

	page, err := h.gradingService.GetUserSubmissions(userID, query.PageRequest, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetSubmission returns a single submission with its cards
// @Summary     Get a grading submission
// @Tags        grading
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Submission ID"
// @Success     200 {object} models.GradingSubmission "Submission"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /grading/{id} [get]
func (h *GradingHandler) GetSubmission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	submissionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	submission, err := h.gradingService.GetSubmissionByID(userID, submissionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// MoveSubmission changes a submission's status
// @Summary     Move a submission to a new status
// @Description Update the pipeline stage of a submission
// @Tags        grading
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Submission ID"
// @Param       request body MoveSubmissionRequest true "New status"
// @Success     200 {object} models.GradingSubmission "Updated submission"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Submission already returned"
// @Router      /grading/{id}/status [put]
func (h *GradingHandler) MoveSubmission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	submissionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MoveSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	submission, err := h.gradingService.MoveSubmission(userID, submissionID, models.SubmissionStatus(req.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "grading_submission", submissionID, c.ClientIP(), map[string]any{
		"status": req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// RecordGrades stores the grades a company returned
// @Summary     Record returned grades
// @Description Store grades for submission cards and mark their cards graded
// @Tags        grading
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Submission ID"
// @Param       request body RecordGradesRequest true "Grades"
// @Success     200 {object} models.GradingSubmission "Graded submission"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /grading/{id}/grades [post]
func (h *GradingHandler) RecordGrades(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	submissionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	grades := make([]services.GradeInput, len(req.Grades))
	for i, g := range req.Grades {
		grades[i] = services.GradeInput{
			SubmissionCardID: g.SubmissionCardID,
			Grade:            g.Grade,
			GradeLabel:       g.GradeLabel,
		}
	}

	submission, err := h.gradingService.RecordGrades(userID, submissionID, grades)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "grading_submission", submissionID, c.ClientIP(), map[string]any{
		"grades": len(grades),
	})

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// DeleteSubmission deletes a submission
// @Summary     Delete a grading submission
// @Tags        grading
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Submission ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /grading/{id} [delete]
func (h *GradingHandler) DeleteSubmission(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	submissionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.gradingService.DeleteSubmission(userID, submissionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "delete", "grading_submission", submissionID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
