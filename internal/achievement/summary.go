package achievement

import (
	"sort"
	"time"

	"fintracker/internal/models"
)

const monthKeyLayout = "2006-01"

// MonthTotal is one settled month and its summed expenses.
type MonthTotal struct {
	Month string
	Total int64
}

// Summary is the evaluator output the resolver decides on.
type Summary struct {
	SettledMonths    int
	TotalSavings     int64
	MaxSuccessStreak int
	MaxFailStreak    int
	HasSucceededOnce bool
	HasFailedOnce    bool
	HasSuperSave     bool
}

// AggregateMonths groups expense records by calendar month, ascending.
// Records dated in the month containing now are skipped: the in-progress
// month is never settled, so unlocks cannot be gamed or flap mid-month.
func AggregateMonths(records []models.LedgerRecord, now time.Time) []MonthTotal {
	currentMonth := now.Format(monthKeyLayout)

	totals := map[string]int64{}
	for _, rec := range records {
		if rec.Kind != models.RecordKindExpense {
			continue
		}
		key := rec.Date.Format(monthKeyLayout)
		if key == currentMonth {
			continue
		}
		totals[key] += rec.Amount
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	months := make([]MonthTotal, 0, len(keys))
	for _, k := range keys {
		months = append(months, MonthTotal{Month: k, Total: totals[k]})
	}
	return months
}

// Summarize folds settled months chronologically into cumulative savings,
// streaks and flags. Only positive month savings accumulate: a shortfall
// month breaks the streak and sets the failure flag but is never
// subtracted from the running total.
func Summarize(months []MonthTotal, monthlyLimit int64) Summary {
	sum := Summary{SettledMonths: len(months)}
	if len(months) == 0 {
		return sum
	}

	successStreak := 0
	failStreak := 0
	for _, m := range months {
		savings := monthlyLimit - m.Total
		if savings > 0 {
			sum.TotalSavings += savings
			sum.HasSucceededOnce = true
			successStreak++
			failStreak = 0
			if savings > m.Total {
				sum.HasSuperSave = true
			}
		} else {
			sum.HasFailedOnce = true
			failStreak++
			successStreak = 0
		}
		// Running maxima: a later broken streak must not erase the record.
		if successStreak > sum.MaxSuccessStreak {
			sum.MaxSuccessStreak = successStreak
		}
		if failStreak > sum.MaxFailStreak {
			sum.MaxFailStreak = failStreak
		}
	}
	return sum
}
