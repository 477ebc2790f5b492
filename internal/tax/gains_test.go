package tax

import (
	"reflect"
	"testing"
)

func TestDetermineGainType(t *testing.T) {
	t.Run("exactly_365_days_is_short_term", func(t *testing.T) {
		if got := DetermineGainType("2023-01-01", "2024-01-01"); got != ShortTerm {
			t.Errorf("expected short-term at 365 days, got %s", got)
		}
	})

	t.Run("366_days_is_long_term", func(t *testing.T) {
		if got := DetermineGainType("2023-01-01", "2024-01-02"); got != LongTerm {
			t.Errorf("expected long-term at 366 days, got %s", got)
		}
	})

	t.Run("same_day_is_short_term", func(t *testing.T) {
		if got := DetermineGainType("2024-05-01", "2024-05-01"); got != ShortTerm {
			t.Errorf("expected short-term for same-day flip, got %s", got)
		}
	})

	t.Run("inverted_dates_are_short_term", func(t *testing.T) {
		if got := DetermineGainType("2024-05-01", "2024-01-01"); got != ShortTerm {
			t.Errorf("expected short-term for inverted dates, got %s", got)
		}
	})
}

func TestHoldingPeriodDays(t *testing.T) {
	cases := []struct {
		name     string
		purchase string
		sale     string
		want     int
	}{
		{"one_year", "2023-01-01", "2024-01-01", 365},
		{"leap_year", "2024-01-01", "2025-01-01", 366},
		{"same_day", "2024-03-15", "2024-03-15", 0},
		{"inverted", "2024-03-15", "2024-03-10", -5},
		{"rfc3339_input", "2023-01-01T00:00:00Z", "2023-01-31T00:00:00Z", 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HoldingPeriodDays(tc.purchase, tc.sale); got != tc.want {
				t.Errorf("HoldingPeriodDays(%s, %s) = %d, want %d", tc.purchase, tc.sale, got, tc.want)
			}
		})
	}
}

func TestCalculateCapitalGains(t *testing.T) {
	sales := []Sale{
		{ItemName: "Charizard Base Set", PurchasePrice: 100, SalePrice: 250, QuantitySold: 1, PurchaseDate: "2022-06-01", SaleDate: "2024-03-01"},
		{ItemName: "Pikachu Promo", PurchasePrice: 20, SalePrice: 15, QuantitySold: 2, PurchaseDate: "2023-11-01", SaleDate: "2024-01-01"},
		{ItemName: "Blastoise Base Set", PurchasePrice: 40, SalePrice: 90, QuantitySold: 1, PurchaseDate: "2023-09-01", SaleDate: "2024-02-01"},
	}

	t.Run("fifo_sorts_by_sale_date_ascending", func(t *testing.T) {
		gains := CalculateCapitalGains(sales, FIFO)
		want := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
		for i, g := range gains {
			if g.SaleDate != want[i] {
				t.Errorf("position %d: expected sale date %s, got %s", i, want[i], g.SaleDate)
			}
		}
	})

	t.Run("lifo_sorts_by_sale_date_descending", func(t *testing.T) {
		gains := CalculateCapitalGains(sales, LIFO)
		want := []string{"2024-03-01", "2024-02-01", "2024-01-01"}
		for i, g := range gains {
			if g.SaleDate != want[i] {
				t.Errorf("position %d: expected sale date %s, got %s", i, want[i], g.SaleDate)
			}
		}
	})

	t.Run("idempotent_and_input_preserving", func(t *testing.T) {
		snapshot := make([]Sale, len(sales))
		copy(snapshot, sales)

		first := CalculateCapitalGains(sales, FIFO)
		second := CalculateCapitalGains(sales, FIFO)

		if !reflect.DeepEqual(first, second) {
			t.Error("two runs over the same input differ")
		}
		if !reflect.DeepEqual(sales, snapshot) {
			t.Error("input slice was mutated")
		}
	})

	t.Run("fees_deducted_once_per_sale", func(t *testing.T) {
		gains := CalculateCapitalGains([]Sale{
			{ItemName: "Lotus", PurchasePrice: 10, SalePrice: 20, QuantitySold: 2, PurchaseDate: "2024-01-01", SaleDate: "2024-02-01", Fees: 5},
		}, FIFO)
		// (20-10)*2 - 5, not (20-10)*2 - 5*2
		if gains[0].GainLoss != 15 {
			t.Errorf("expected gain/loss 15, got %.2f", gains[0].GainLoss)
		}
	})

	t.Run("totals_and_classification", func(t *testing.T) {
		gains := CalculateCapitalGains(sales, FIFO)

		// Pikachu Promo sorts first: 2 units, loss, short-term.
		g := gains[0]
		if g.CostBasis != 40 || g.Proceeds != 30 || g.GainLoss != -10 {
			t.Errorf("unexpected totals: basis %.2f proceeds %.2f gain %.2f", g.CostBasis, g.Proceeds, g.GainLoss)
		}
		if g.GainType != ShortTerm {
			t.Errorf("expected short-term, got %s", g.GainType)
		}

		// Charizard sorts last: held well over a year.
		g = gains[2]
		if g.GainType != LongTerm {
			t.Errorf("expected long-term, got %s", g.GainType)
		}
		if g.HoldingPeriodDays != 639 {
			t.Errorf("expected 639 holding days, got %d", g.HoldingPeriodDays)
		}
	})
}

func TestGenerateTaxLots(t *testing.T) {
	sales := []Sale{
		{ItemName: "Mewtwo", PurchasePrice: 10, SalePrice: 12, QuantitySold: 1, PurchaseDate: "2023-01-01", SaleDate: "2024-03-01"},
		{ItemName: "Snorlax", PurchasePrice: 5, SalePrice: 8, QuantitySold: 3, PurchaseDate: "2023-02-01", SaleDate: "2024-01-01"},
		{ItemName: "Mewtwo", PurchasePrice: 11, SalePrice: 14, QuantitySold: 1, PurchaseDate: "2023-03-01", SaleDate: "2024-01-15"},
	}

	t.Run("groups_in_first_occurrence_order", func(t *testing.T) {
		lots := GenerateTaxLots(sales, FIFO)
		want := []string{"Mewtwo", "Mewtwo", "Snorlax"}
		if len(lots) != 3 {
			t.Fatalf("expected 3 lots, got %d", len(lots))
		}
		for i, lot := range lots {
			if lot.ItemName != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], lot.ItemName)
			}
		}
		// Within the Mewtwo group, FIFO orders by sale date ascending.
		if lots[0].SaleDate != "2024-01-15" || lots[1].SaleDate != "2024-03-01" {
			t.Errorf("unexpected group order: %s then %s", lots[0].SaleDate, lots[1].SaleDate)
		}
	})

	t.Run("lifo_reverses_group_order", func(t *testing.T) {
		lots := GenerateTaxLots(sales, LIFO)
		if lots[0].SaleDate != "2024-03-01" || lots[1].SaleDate != "2024-01-15" {
			t.Errorf("unexpected LIFO order: %s then %s", lots[0].SaleDate, lots[1].SaleDate)
		}
	})

	t.Run("lots_are_fully_consumed", func(t *testing.T) {
		for _, lot := range GenerateTaxLots(sales, FIFO) {
			if lot.RemainingQuantity != 0 {
				t.Errorf("lot %s: expected remaining quantity 0, got %d", lot.ItemName, lot.RemainingQuantity)
			}
		}
	})

	t.Run("equal_sale_dates_keep_input_order", func(t *testing.T) {
		tied := []Sale{
			{ItemName: "Eevee", PurchasePrice: 1, SalePrice: 2, QuantitySold: 1, PurchaseDate: "2024-01-01", SaleDate: "2024-06-01"},
			{ItemName: "Eevee", PurchasePrice: 3, SalePrice: 4, QuantitySold: 1, PurchaseDate: "2024-02-01", SaleDate: "2024-06-01"},
		}
		lots := GenerateTaxLots(tied, FIFO)
		if lots[0].PurchaseDate != "2024-01-01" || lots[1].PurchaseDate != "2024-02-01" {
			t.Error("stable sort violated for equal sale dates")
		}
	})
}
