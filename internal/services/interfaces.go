package services

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"

	"cardfolio/internal/models"
	"cardfolio/internal/pagination"
	"cardfolio/internal/tax"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CardInput carries the writable fields of a card.
type CardInput struct {
	Name          string
	SetName       string
	CardNumber    string
	Game          models.Game
	Condition     models.Condition
	GradingCo     models.GradingCompany
	Grade         float64
	PurchasePrice float64
	Quantity      int
	MarketPrice   float64
	ImageURL      string
	Notes         string
	AcquiredAt    time.Time
}

// CardFilter holds optional filter parameters for listing cards.
type CardFilter struct {
	Game    *models.Game
	SetName *string
	Search  *string
}

// CollectionStats summarizes a user's inventory for the dashboard.
type CollectionStats struct {
	TotalCopies        int            `json:"total_copies"`
	DistinctCards      int            `json:"distinct_cards"`
	TotalCostBasis     float64        `json:"total_cost_basis"`
	EstimatedValue     float64        `json:"estimated_value"`
	UnrealizedGainLoss float64        `json:"unrealized_gain_loss"`
	CopiesByGame       map[string]int `json:"copies_by_game"`
}

// CardServicer defines the contract for inventory business logic.
type CardServicer interface {
	CreateCard(userID uint, input CardInput) (*models.Card, error)
	GetUserCards(userID uint, page pagination.PageRequest, filter CardFilter) (*pagination.PageResponse[models.Card], error)
	GetCardByID(userID, cardID uint) (*models.Card, error)
	UpdateCard(userID, cardID uint, input CardInput) (*models.Card, error)
	DeleteCard(userID, cardID uint) error
	CollectionStats(userID uint) (*CollectionStats, error)
}

// SaleServicer defines the contract for sale-recording business logic.
type SaleServicer interface {
	RecordSale(userID, cardID uint, quantity int, unitPrice, fees float64, saleDate time.Time, notes string) (*models.Sale, error)
	GetUserSales(userID uint, page pagination.PageRequest, year *int) (*pagination.PageResponse[models.Sale], error)
	GetSaleByID(userID, saleID uint) (*models.Sale, error)
	DeleteSale(userID, saleID uint) error
}

// SubmissionCardInput names a card going into a grading submission.
type SubmissionCardInput struct {
	CardID        uint
	DeclaredValue float64
}

// GradeInput records the grade a company returned for a submitted card.
type GradeInput struct {
	SubmissionCardID uint
	Grade            float64
	GradeLabel       string
}

// GradingServicer defines the contract for grading-submission business logic.
type GradingServicer interface {
	CreateSubmission(userID uint, company models.GradingCompany, cards []SubmissionCardInput, costTotal, insuredValue float64, notes string) (*models.GradingSubmission, error)
	GetUserSubmissions(userID uint, page pagination.PageRequest, status *models.SubmissionStatus) (*pagination.PageResponse[models.GradingSubmission], error)
	GetSubmissionByID(userID, submissionID uint) (*models.GradingSubmission, error)
	MoveSubmission(userID, submissionID uint, status models.SubmissionStatus) (*models.GradingSubmission, error)
	RecordGrades(userID, submissionID uint, grades []GradeInput) (*models.GradingSubmission, error)
	DeleteSubmission(userID, submissionID uint) error
}

// TaxReportServicer defines the contract for tax and profit/loss reporting.
type TaxReportServicer interface {
	Summary(userID uint, year int, method tax.Method) (*tax.TaxSummary, error)
	AvailableYears(userID uint) ([]int, error)
	ProfitLoss(userID uint, period tax.PeriodType) ([]tax.ProfitLossSummary, error)
	ExportCSV(userID uint, year int, method tax.Method) (string, error)
	ExportXLSX(userID uint, year int, method tax.Method) (*excelize.File, error)
	Invalidate(userID uint)
}

// PriceServicer defines the contract for market price lookups.
type PriceServicer interface {
	GetCardPrice(ctx context.Context, userID, cardID uint) (*models.PriceSnapshot, error)
	GetPriceHistory(userID, cardID uint, page pagination.PageRequest) (*pagination.PageResponse[models.PriceSnapshot], error)
	RefreshAllPrices(ctx context.Context) (updated, failed int, err error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
}
