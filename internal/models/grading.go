package models

import "time"

// SubmissionStatus represents a stage in the grading pipeline.
type SubmissionStatus string

const (
	SubmissionPreparing   SubmissionStatus = "preparing"
	SubmissionShipped     SubmissionStatus = "shipped"
	SubmissionReceived    SubmissionStatus = "received"
	SubmissionGrading     SubmissionStatus = "grading"
	SubmissionGraded      SubmissionStatus = "graded"
	SubmissionShippedBack SubmissionStatus = "shipped_back"
	SubmissionReturned    SubmissionStatus = "returned"
)

// GradingSubmission represents a batch of cards sent to a grading company.
type GradingSubmission struct {
	Base
	UserID          uint             `gorm:"not null;index" json:"user_id"`
	Company         GradingCompany   `gorm:"not null" json:"company"`
	Reference       string           `gorm:"uniqueIndex;not null" json:"reference"`
	Status          SubmissionStatus `gorm:"not null;default:'preparing'" json:"status"`
	StatusChangedAt time.Time        `gorm:"not null" json:"status_changed_at"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
	ReturnedAt      *time.Time       `json:"returned_at,omitempty"`
	CostTotal       float64          `json:"cost_total"`
	InsuredValue    float64          `json:"insured_value"`
	Notes           string           `json:"notes,omitempty"`

	// Relationships
	Cards []SubmissionCard `gorm:"foreignKey:SubmissionID" json:"cards,omitempty"`
}

// SubmissionCard links a card to a grading submission with its declared
// value and, once graded, the returned grade.
type SubmissionCard struct {
	Base
	SubmissionID  uint    `gorm:"not null;index" json:"submission_id"`
	CardID        uint    `gorm:"not null" json:"card_id"`
	DeclaredValue float64 `json:"declared_value"`
	Grade         float64 `json:"grade,omitempty"`
	GradeLabel    string  `json:"grade_label,omitempty"`

	// Relationships
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
}
