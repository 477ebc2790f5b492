package tax

import (
	"fmt"
	"sort"
	"time"
)

// periodKey returns the bucket label for a sale date: "YYYY-MM" for
// months, "YYYY QN" for quarters, "YYYY" for years. Labels of a single
// period type sort correctly as strings; period types are never mixed in
// one report.
func periodKey(t time.Time, period PeriodType) string {
	switch period {
	case PeriodQuarter:
		return fmt.Sprintf("%d Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case PeriodYear:
		return fmt.Sprintf("%d", t.Year())
	default:
		return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
	}
}

// periodBounds returns the first and last day of the bucket containing t.
func periodBounds(t time.Time, period PeriodType) (time.Time, time.Time) {
	switch period {
	case PeriodQuarter:
		firstMonth := time.Month((int(t.Month())-1)/3*3 + 1)
		start := time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, -1)
	case PeriodYear:
		start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, -1)
	default:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}
}

// ProfitLossByPeriod buckets sales by sale date into monthly, quarterly,
// or yearly profit/loss summaries, sorted by period label ascending.
//
// Fees are multiplied by quantity here, unlike CalculateCapitalGains
// which deducts them once per sale. Keep the two in sync deliberately or
// not at all.
func ProfitLossByPeriod(sales []Sale, period PeriodType) []ProfitLossSummary {
	buckets := make(map[string]*ProfitLossSummary)

	for _, s := range sales {
		date := parseDate(s.SaleDate)
		key := periodKey(date, period)

		bucket, ok := buckets[key]
		if !ok {
			start, end := periodBounds(date, period)
			bucket = &ProfitLossSummary{Period: key, StartDate: start, EndDate: end}
			buckets[key] = bucket
		}

		qty := float64(s.QuantitySold)
		bucket.Revenue += s.SalePrice * qty
		bucket.CostOfGoods += s.PurchasePrice * qty
		bucket.Fees += s.Fees * qty
		bucket.TransactionCount++
		bucket.ItemsSold += s.QuantitySold
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Derived fields are filled in a second pass once every bucket is
	// fully accumulated.
	summaries := make([]ProfitLossSummary, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		bucket.GrossProfit = bucket.Revenue - bucket.CostOfGoods
		bucket.NetProfit = bucket.GrossProfit - bucket.Fees
		if bucket.Revenue != 0 {
			bucket.MarginPercent = bucket.GrossProfit / bucket.Revenue * 100
		}
		summaries = append(summaries, *bucket)
	}
	return summaries
}
