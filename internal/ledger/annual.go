package ledger

import (
	"context"
	"sort"
	"time"

	"fintracker/internal/models"
)

// YearSummary is one calendar year of income/expense totals with the
// year-over-year profit growth. GrowthPct is nil for the earliest year in
// range and whenever the prior year's net profit was exactly zero.
type YearSummary struct {
	Year         int      `json:"year"`
	TotalIncome  int64    `json:"total_income"`
	TotalExpense int64    `json:"total_expense"`
	NetProfit    int64    `json:"net_profit"`
	GrowthPct    *float64 `json:"growth_pct"`
}

// AnnualSummary covers the most recent three calendar years that have
// records, newest first.
func (s *Service) AnnualSummary(ctx context.Context) ([]YearSummary, error) {
	now := s.now()
	startYear := now.Year() - 2
	from := time.Date(startYear, time.January, 1, 0, 0, 0, 0, now.Location())

	records, err := s.Repo.ListLedgerRecordsSince(ctx, from)
	if err != nil {
		return nil, err
	}
	return summarizeYears(records, startYear), nil
}

func summarizeYears(records []models.LedgerRecord, startYear int) []YearSummary {
	type totals struct{ income, expense int64 }
	byYear := map[int]*totals{}
	for _, rec := range records {
		year := rec.Date.Year()
		if year < startYear {
			continue
		}
		t := byYear[year]
		if t == nil {
			t = &totals{}
			byYear[year] = t
		}
		switch rec.Kind {
		case models.RecordKindIncome:
			t.income += rec.Amount
		case models.RecordKindExpense:
			t.expense += rec.Amount
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	// Walk oldest-first so each year can see the prior year's profit.
	out := make([]YearSummary, 0, len(years))
	var prevProfit *int64
	for _, y := range years {
		t := byYear[y]
		profit := t.income - t.expense

		var growth *float64
		if prevProfit != nil && *prevProfit != 0 {
			prev := *prevProfit
			abs := prev
			if abs < 0 {
				abs = -abs
			}
			g := float64(profit-prev) / float64(abs) * 100
			growth = &g
		}

		out = append(out, YearSummary{
			Year:         y,
			TotalIncome:  t.income,
			TotalExpense: t.expense,
			NetProfit:    profit,
			GrowthPct:    growth,
		})
		p := profit
		prevProfit = &p
	}

	// Newest year first for presentation.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
