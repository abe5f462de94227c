package dashboard

import (
	"context"
	"errors"
	"time"

	"fintracker/internal/models"
	"fintracker/internal/repository"
	"fintracker/internal/stocks"
)

// BudgetInfo is this month's spending against the configured limit. The
// in-progress month is exactly what achievement evaluation excludes, so it
// lives here on the dashboard instead.
type BudgetInfo struct {
	Total     int64 `json:"total"`
	Spent     int64 `json:"spent"`
	Remaining int64 `json:"remaining"`
}

type StockSummary struct {
	TotalValue    float64 `json:"total_value"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profit_percent"`
}

type Overview struct {
	Budget     BudgetInfo   `json:"budget"`
	DailyTrend []int64      `json:"daily_trend"`
	Stock      StockSummary `json:"stock"`
}

type Service struct {
	Repo   repository.Repository
	Stocks *stocks.Service

	// Now is a clock hook for tests; nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get assembles the dashboard read model: current-month budget usage, the
// last seven days of expenses (oldest first), and the valued stock
// position.
func (s *Service) Get(ctx context.Context) (Overview, error) {
	if s == nil || s.Repo == nil {
		return Overview{}, errors.New("dashboard service not initialized")
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	trendStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)

	from := monthStart
	if trendStart.Before(from) {
		from = trendStart
	}
	records, err := s.Repo.ListLedgerRecordsSince(ctx, from)
	if err != nil {
		return Overview{}, err
	}

	var limit int64
	if budget, err := s.Repo.GetBudget(ctx); err != nil {
		return Overview{}, err
	} else if budget != nil {
		limit = budget.MonthlyLimit
	}

	var spent int64
	trend := make([]int64, 7)
	for _, rec := range records {
		if rec.Kind != models.RecordKindExpense {
			continue
		}
		if !rec.Date.Before(monthStart) {
			spent += rec.Amount
		}
		day := int(rec.Date.Sub(trendStart).Hours() / 24)
		if day >= 0 && day < 7 {
			trend[day] += rec.Amount
		}
	}

	overview := Overview{
		Budget: BudgetInfo{
			Total:     limit,
			Spent:     spent,
			Remaining: limit - spent,
		},
		DailyTrend: trend,
	}

	if s.Stocks != nil {
		holdings, err := s.Stocks.List(ctx)
		if err != nil {
			return Overview{}, err
		}
		var value, profit float64
		for _, h := range holdings {
			value += h.MarketValue
			profit += h.Profit
		}
		summary := StockSummary{TotalValue: value, Profit: profit}
		if cost := value - profit; cost != 0 {
			summary.ProfitPercent = profit / cost * 100
		}
		overview.Stock = summary
	}
	return overview, nil
}
