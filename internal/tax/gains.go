package tax

import (
	"math"
	"sort"
)

// HoldingPeriodDays returns the whole number of days between the purchase
// and sale dates, rounded toward negative infinity. The result is negative
// when the dates are inverted and saturates when either date failed to
// parse.
func HoldingPeriodDays(purchaseDate, saleDate string) int {
	diff := parseDate(saleDate).Sub(parseDate(purchaseDate))
	return int(math.Floor(diff.Hours() / 24))
}

// DetermineGainType classifies a holding as short- or long-term. Exactly
// 365 days is short-term; the comparison is strictly greater-than.
func DetermineGainType(purchaseDate, saleDate string) GainType {
	if HoldingPeriodDays(purchaseDate, saleDate) > 365 {
		return LongTerm
	}
	return ShortTerm
}

// sortedBySaleDate returns a copy of sales ordered by sale date, ascending
// for FIFO and descending for LIFO. The sort is stable so equal-date sales
// keep their input order.
func sortedBySaleDate(sales []Sale, method Method) []Sale {
	out := make([]Sale, len(sales))
	copy(out, sales)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := parseDate(out[i].SaleDate), parseDate(out[j].SaleDate)
		if method == LIFO {
			return a.After(b)
		}
		return a.Before(b)
	})
	return out
}

// GenerateTaxLots groups sales by item name and emits one lot per sale,
// ordered within each group by sale date according to the method. Groups
// appear in first-occurrence order of the item name.
//
// The ordering key is the sale date, not the acquisition date, and every
// lot is emitted fully consumed (RemainingQuantity zero): the method does
// not assign basis across multiple acquisition lots of the same item.
func GenerateTaxLots(sales []Sale, method Method) []TaxLot {
	var order []string
	groups := make(map[string][]Sale)
	for _, s := range sales {
		if _, seen := groups[s.ItemName]; !seen {
			order = append(order, s.ItemName)
		}
		groups[s.ItemName] = append(groups[s.ItemName], s)
	}

	var lots []TaxLot
	for _, name := range order {
		for _, s := range sortedBySaleDate(groups[name], method) {
			lots = append(lots, TaxLot{
				ItemName:          s.ItemName,
				Quantity:          s.QuantitySold,
				PurchaseDate:      s.PurchaseDate,
				SaleDate:          s.SaleDate,
				CostBasis:         s.PurchasePrice * float64(s.QuantitySold),
				Proceeds:          s.SalePrice * float64(s.QuantitySold),
				RemainingQuantity: 0,
				CostBasisMethod:   method,
			})
		}
	}
	return lots
}

// CalculateCapitalGains maps every sale to a classified capital gain,
// ordered by sale date (ascending for FIFO, descending for LIFO).
//
// Fees are deducted once per sale, not per unit. ProfitLossByPeriod
// multiplies fees by quantity; the two treatments are intentionally
// different and must change together if they ever change.
func CalculateCapitalGains(sales []Sale, method Method) []CapitalGain {
	gains := make([]CapitalGain, 0, len(sales))
	for _, s := range sortedBySaleDate(sales, method) {
		qty := float64(s.QuantitySold)
		gains = append(gains, CapitalGain{
			ItemName:          s.ItemName,
			Quantity:          s.QuantitySold,
			PurchaseDate:      s.PurchaseDate,
			SaleDate:          s.SaleDate,
			CostBasis:         s.PurchasePrice * qty,
			Proceeds:          s.SalePrice * qty,
			GainLoss:          (s.SalePrice-s.PurchasePrice)*qty - s.Fees,
			GainType:          DetermineGainType(s.PurchaseDate, s.SaleDate),
			HoldingPeriodDays: HoldingPeriodDays(s.PurchaseDate, s.SaleDate),
			Fees:              s.Fees,
			CostBasisMethod:   method,
		})
	}
	return gains
}
