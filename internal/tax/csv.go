package tax

import (
	"fmt"
	"strings"
)

// csvHeader is the fixed column order of the export. Downstream
// spreadsheets depend on it; do not reorder.
const csvHeader = "Sale Date,Item Name,Purchase Date,Quantity,Cost Basis,Proceeds,Gain/Loss,Type,Holding Period (Days),Fees,Cost Basis Method"

// ExportTaxReportCSV renders a tax summary as CSV text: the header row,
// one row per transaction, then a fixed 16-line summary block. Item names
// are wrapped in double quotes; embedded quotes are not escaped.
func ExportTaxReportCSV(s TaxSummary) string {
	lines := make([]string, 0, len(s.Transactions)+17)
	lines = append(lines, csvHeader)

	for _, g := range s.Transactions {
		lines = append(lines, fmt.Sprintf("%s,\"%s\",%s,%d,%.2f,%.2f,%.2f,%s,%d,%.2f,%s",
			g.SaleDate,
			g.ItemName,
			g.PurchaseDate,
			g.Quantity,
			g.CostBasis,
			g.Proceeds,
			g.GainLoss,
			g.GainType,
			g.HoldingPeriodDays,
			g.Fees,
			strings.ToUpper(string(g.CostBasisMethod)),
		))
	}

	lines = append(lines,
		"",
		"TAX SUMMARY",
		fmt.Sprintf("Tax Year,%d", s.Year),
		fmt.Sprintf("Cost Basis Method,%s", strings.ToUpper(string(s.CostBasisMethod))),
		"",
		fmt.Sprintf("Total Proceeds,%.2f", s.TotalProceeds),
		fmt.Sprintf("Total Cost Basis,%.2f", s.TotalCostBasis),
		fmt.Sprintf("Total Gain/Loss,%.2f", s.TotalGainLoss),
		"",
		fmt.Sprintf("Short-Term Gains,%.2f", s.ShortTermGains),
		fmt.Sprintf("Short-Term Losses,%.2f", s.ShortTermLosses),
		fmt.Sprintf("Net Short-Term,%.2f", s.NetShortTerm),
		"",
		fmt.Sprintf("Long-Term Gains,%.2f", s.LongTermGains),
		fmt.Sprintf("Long-Term Losses,%.2f", s.LongTermLosses),
		fmt.Sprintf("Net Long-Term,%.2f", s.NetLongTerm),
	)

	return strings.Join(lines, "\n")
}
