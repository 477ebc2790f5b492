package tax

import "sort"

// GenerateTaxSummary aggregates the sales disposed of in the given
// calendar year into a TaxSummary under the given cost basis method.
//
// TotalGainLoss is TotalProceeds minus TotalCostBasis, computed
// independently of the per-transaction partition; with zero fees it equals
// NetShortTerm plus NetLongTerm.
func GenerateTaxSummary(sales []Sale, year int, method Method) TaxSummary {
	var inYear []Sale
	for _, s := range sales {
		if parseDate(s.SaleDate).Year() == year {
			inYear = append(inYear, s)
		}
	}

	summary := TaxSummary{
		Year:            year,
		CostBasisMethod: method,
		Transactions:    []CapitalGain{},
	}

	for _, g := range CalculateCapitalGains(inYear, method) {
		summary.TotalProceeds += g.Proceeds
		summary.TotalCostBasis += g.CostBasis

		switch {
		case g.GainType == ShortTerm && g.GainLoss >= 0:
			summary.ShortTermGains += g.GainLoss
		case g.GainType == ShortTerm:
			summary.ShortTermLosses += -g.GainLoss
		case g.GainLoss >= 0:
			summary.LongTermGains += g.GainLoss
		default:
			summary.LongTermLosses += -g.GainLoss
		}

		summary.Transactions = append(summary.Transactions, g)
	}

	summary.NetShortTerm = summary.ShortTermGains - summary.ShortTermLosses
	summary.NetLongTerm = summary.LongTermGains - summary.LongTermLosses
	summary.TotalGainLoss = summary.TotalProceeds - summary.TotalCostBasis

	return summary
}

// AvailableTaxYears returns the distinct sale years present in the ledger,
// newest first.
func AvailableTaxYears(sales []Sale) []int {
	seen := make(map[int]bool)
	var years []int
	for _, s := range sales {
		year := parseDate(s.SaleDate).Year()
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
