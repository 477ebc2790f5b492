// Package tax converts a sales ledger into capital gain classifications,
// tax-year summaries, and period profit/loss rollups.
//
// Every function in this package is pure: inputs are never mutated, no
// function performs I/O, and no function returns an error. Malformed date
// strings degrade silently into the zero time, which produces nonsensical
// but deterministic holding periods instead of a failure.
package tax

import (
	"fmt"
	"time"
)

// GainType classifies a capital gain by holding period.
type GainType string

const (
	// ShortTerm covers holdings of 365 days or less.
	ShortTerm GainType = "short-term"
	// LongTerm covers holdings of more than 365 days.
	LongTerm GainType = "long-term"
)

// Method selects the cost basis convention for reports.
type Method string

const (
	// FIFO orders sales oldest-first.
	FIFO Method = "fifo"
	// LIFO orders sales newest-first.
	LIFO Method = "lifo"
)

// ParseMethod parses a string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "fifo", "":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	default:
		return "", fmt.Errorf("unknown cost basis method: %q", s)
	}
}

// PeriodType selects the bucket size for profit/loss rollups.
type PeriodType string

const (
	PeriodMonth   PeriodType = "month"
	PeriodQuarter PeriodType = "quarter"
	PeriodYear    PeriodType = "year"
)

// ParsePeriodType parses a string into a PeriodType.
func ParsePeriodType(s string) (PeriodType, error) {
	switch s {
	case "month", "":
		return PeriodMonth, nil
	case "quarter":
		return PeriodQuarter, nil
	case "year":
		return PeriodYear, nil
	default:
		return "", fmt.Errorf("unknown report period: %q", s)
	}
}

// Sale is a single disposal record, the engine's only input. Prices are
// per unit; Fees is an optional total transaction cost for the sale.
// PurchaseDate and SaleDate are ISO date strings ("2006-01-02" or
// RFC 3339).
type Sale struct {
	ItemName      string  `json:"item_name"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
	QuantitySold  int     `json:"quantity_sold"`
	PurchaseDate  string  `json:"purchase_date"`
	SaleDate      string  `json:"sale_date"`
	Fees          float64 `json:"fees,omitempty"`
}

// CapitalGain is the classified outcome of a single sale. CostBasis and
// Proceeds are totals (unit price times quantity).
type CapitalGain struct {
	ItemName          string   `json:"item_name"`
	Quantity          int      `json:"quantity"`
	PurchaseDate      string   `json:"purchase_date"`
	SaleDate          string   `json:"sale_date"`
	CostBasis         float64  `json:"cost_basis"`
	Proceeds          float64  `json:"proceeds"`
	GainLoss          float64  `json:"gain_loss"`
	GainType          GainType `json:"gain_type"`
	HoldingPeriodDays int      `json:"holding_period_days"`
	Fees              float64  `json:"fees"`
	CostBasisMethod   Method   `json:"cost_basis_method"`
}

// TaxLot pairs an acquisition with its disposal. Lots are emitted fully
// consumed: the method parameter orders lots by sale date but does not
// match sales against a running inventory of acquisitions.
type TaxLot struct {
	ItemName          string  `json:"item_name"`
	Quantity          int     `json:"quantity"`
	PurchaseDate      string  `json:"purchase_date"`
	SaleDate          string  `json:"sale_date"`
	CostBasis         float64 `json:"cost_basis"`
	Proceeds          float64 `json:"proceeds"`
	RemainingQuantity int     `json:"remaining_quantity"`
	CostBasisMethod   Method  `json:"cost_basis_method"`
}

// TaxSummary aggregates one calendar year of capital gains. Gains and
// losses are tracked separately and only netted in the NetShortTerm and
// NetLongTerm fields.
type TaxSummary struct {
	Year            int           `json:"year"`
	CostBasisMethod Method        `json:"cost_basis_method"`
	TotalProceeds   float64       `json:"total_proceeds"`
	TotalCostBasis  float64       `json:"total_cost_basis"`
	TotalGainLoss   float64       `json:"total_gain_loss"`
	ShortTermGains  float64       `json:"short_term_gains"`
	ShortTermLosses float64       `json:"short_term_losses"`
	LongTermGains   float64       `json:"long_term_gains"`
	LongTermLosses  float64       `json:"long_term_losses"`
	NetShortTerm    float64       `json:"net_short_term"`
	NetLongTerm     float64       `json:"net_long_term"`
	Transactions    []CapitalGain `json:"transactions"`
}

// ProfitLossSummary is one period bucket of a profit/loss rollup.
type ProfitLossSummary struct {
	Period           string    `json:"period"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Revenue          float64   `json:"revenue"`
	CostOfGoods      float64   `json:"cost_of_goods"`
	GrossProfit      float64   `json:"gross_profit"`
	Fees             float64   `json:"fees"`
	NetProfit        float64   `json:"net_profit"`
	TransactionCount int       `json:"transaction_count"`
	ItemsSold        int       `json:"items_sold"`
	MarginPercent    float64   `json:"margin_percent"`
}

// dateLayouts are tried in order when parsing sale and purchase dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseDate parses an ISO date string. Unparseable input yields the zero
// time; callers must tolerate the resulting degenerate day counts.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
