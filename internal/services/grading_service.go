package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "cardfolio/internal/errors"
	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
	"cardfolio/internal/uuid"
)

// gradingService handles grading submission business logic.
type gradingService struct {
	db *gorm.DB
}

// NewGradingService creates a new GradingServicer.
func NewGradingService(db *gorm.DB) GradingServicer {
	return &gradingService{db: db}
}

// CreateSubmission opens a grading submission containing the given cards.
// Every card must belong to the user. The submission gets a generated
// reference code like "PSA-018F4C2A9B".
func (s *gradingService) CreateSubmission(userID uint, company models.GradingCompany, cards []SubmissionCardInput, costTotal, insuredValue float64, notes string) (*models.GradingSubmission, error) {
	if len(cards) == 0 {
		return nil, apperrors.ErrEmptySubmission
	}

	cardIDs := make([]uint, len(cards))
	for i, c := range cards {
		cardIDs[i] = c.CardID
	}
	var owned int64
	if err := s.db.Model(&models.Card{}).
		Where("user_id = ? AND id IN ?", userID, cardIDs).
		Count(&owned).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if owned != int64(len(cards)) {
		return nil, apperrors.ErrCardNotFound
	}

	submission := &models.GradingSubmission{
		UserID:          userID,
		Company:         company,
		Reference:       uuid.NewReference(string(company)),
		Status:          models.SubmissionPreparing,
		StatusChangedAt: time.Now(),
		CostTotal:       costTotal,
		InsuredValue:    insuredValue,
		Notes:           notes,
	}
	for _, c := range cards {
		submission.Cards = append(submission.Cards, models.SubmissionCard{
			CardID:        c.CardID,
			DeclaredValue: c.DeclaredValue,
		})
	}

	if err := s.db.Create(submission).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return submission, nil
}

// GetUserSubmissions returns a paginated list of the user's submissions,
// newest first, optionally filtered by status.
func (s *gradingService) GetUserSubmissions(userID uint, page pagination.PageRequest, status *models.SubmissionStatus) (*pagination.PageResponse[models.GradingSubmission], error) {
	page.Defaults()

	query := s.db.Model(&models.GradingSubmission{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var submissions []models.GradingSubmission
	if err := query.Preload("Cards").Order("created_at DESC").
		Scopes(pagination.Paginate(page)).Find(&submissions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(submissions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSubmissionByID returns a submission with its cards if it belongs to
// the user.
func (s *gradingService) GetSubmissionByID(userID, submissionID uint) (*models.GradingSubmission, error) {
	var submission models.GradingSubmission
	if err := s.db.Preload("Cards").Preload("Cards.Card").
		Where("user_id = ?", userID).First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &submission, nil
}

// MoveSubmission updates a submission's status. Moves are free-form --
// grading companies routinely skip or repeat stages in their tracking feeds,
// so no ordering is enforced. A returned submission is closed for good.
func (s *gradingService) MoveSubmission(userID, submissionID uint, status models.SubmissionStatus) (*models.GradingSubmission, error) {
	submission, err := s.GetSubmissionByID(userID, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == models.SubmissionReturned {
		return nil, apperrors.ErrSubmissionClosed
	}

	now := time.Now()
	updates := map[string]any{
		"status":            status,
		"status_changed_at": now,
	}
	if status == models.SubmissionShipped && submission.SubmittedAt == nil {
		updates["submitted_at"] = now
	}
	if status == models.SubmissionReturned {
		updates["returned_at"] = now
	}

	if err := s.db.Model(submission).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetSubmissionByID(userID, submissionID)
}

// RecordGrades stores the grades a company returned and writes them
// through to the underlying cards, marking each card as graded.
func (s *gradingService) RecordGrades(userID, submissionID uint, grades []GradeInput) (*models.GradingSubmission, error) {
	submission, err := s.GetSubmissionByID(userID, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == models.SubmissionReturned {
		return nil, apperrors.ErrSubmissionClosed
	}

	byID := make(map[uint]*models.SubmissionCard, len(submission.Cards))
	for i := range submission.Cards {
		byID[submission.Cards[i].ID] = &submission.Cards[i]
	}
	for _, g := range grades {
		if _, ok := byID[g.SubmissionCardID]; !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "grade refers to a card outside this submission")
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, g := range grades {
			sc := byID[g.SubmissionCardID]
			if txErr := tx.Model(&models.SubmissionCard{}).Where("id = ?", sc.ID).
				Updates(map[string]any{"grade": g.Grade, "grade_label": g.GradeLabel}).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			if txErr := tx.Model(&models.Card{}).Where("id = ? AND user_id = ?", sc.CardID, userID).
				Updates(map[string]any{
					"condition":  models.ConditionGraded,
					"grading_co": submission.Company,
					"grade":      g.Grade,
				}).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		if txErr := tx.Model(submission).Updates(map[string]any{
			"status":            models.SubmissionGraded,
			"status_changed_at": time.Now(),
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetSubmissionByID(userID, submissionID)
}

// DeleteSubmission removes a submission and its card entries.
func (s *gradingService) DeleteSubmission(userID, submissionID uint) error {
	submission, err := s.GetSubmissionByID(userID, submissionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Where("submission_id = ?", submissionID).
			Delete(&models.SubmissionCard{}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		if txErr := tx.Delete(submission).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
}
