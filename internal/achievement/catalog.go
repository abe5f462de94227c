package achievement

// Definition is one immutable catalog entry. The catalog is static
// configuration: it is injected into the resolver, never read from the
// database (rows only persist unlock state).
type Definition struct {
	Code        string
	Name        string
	Description string
	Tier        int
	Icon        string

	// Met reports whether the defining condition holds.
	Met func(f Facts) bool
}

// Facts is everything the resolver may look at: the settled-month summary
// plus the one settlement-exempt signal (any journal entry at all exists).
type Facts struct {
	HasAnyRecord bool
	Summary      Summary
}

// Catalog returns the definitions in seed/display order (tier-grouped).
func Catalog() []Definition {
	return []Definition{
		// Tier 1
		{Code: "first_expense", Tier: 1, Icon: "🔰", Name: "Opening Move",
			Description: "Write your first journal entry",
			Met:         func(f Facts) bool { return f.HasAnyRecord }},
		{Code: "first_fail", Tier: 1, Icon: "🥴", Name: "Shaky Stance",
			Description: "Overspend the budget in a month for the first time",
			Met:         func(f Facts) bool { return f.Summary.HasFailedOnce }},
		{Code: "save_1", Tier: 1, Icon: "🧘", Name: "Gathering Focus",
			Description: "Save at least $1 in total",
			Met:         savingsAtLeast(1)},

		// Tier 2
		{Code: "first_success", Tier: 2, Icon: "🎯", Name: "Centered Breath",
			Description: "Stay under budget in a month for the first time",
			Met:         func(f Facts) bool { return f.Summary.HasSucceededOnce }},
		{Code: "save_300", Tier: 2, Icon: "🍱", Name: "Lean Rations",
			Description: "Save at least $300 in total",
			Met:         savingsAtLeast(300)},
		{Code: "save_1000", Tier: 2, Icon: "🦸", Name: "Beggar's Apprentice",
			Description: "Save at least $1,000 in total",
			Met:         savingsAtLeast(1000)},
		{Code: "fail_streak_3", Tier: 2, Icon: "🌪️", Name: "Ragged Breathing",
			Description: "Overspend the budget three months in a row",
			Met:         failStreakAtLeast(3)},

		// Tier 3
		{Code: "success_streak_3", Tier: 3, Icon: "🍃", Name: "Light Footwork",
			Description: "Stay under budget three months in a row",
			Met:         successStreakAtLeast(3)},
		{Code: "save_5000", Tier: 3, Icon: "🧮", Name: "Iron Abacus",
			Description: "Save at least $5,000 in total",
			Met:         savingsAtLeast(5000)},
		{Code: "fail_streak_6", Tier: 3, Icon: "🔥", Name: "Inner Turmoil",
			Description: "Overspend the budget six months in a row",
			Met:         failStreakAtLeast(6)},

		// Tier 4
		{Code: "success_streak_6", Tier: 4, Icon: "⛰️", Name: "Steady as Stone",
			Description: "Stay under budget six months in a row",
			Met:         successStreakAtLeast(6)},
		{Code: "save_10000", Tier: 4, Icon: "🔔", Name: "Golden Bell",
			Description: "Save at least $10,000 in total",
			Met:         savingsAtLeast(10000)},
		{Code: "super_save", Tier: 4, Icon: "📜", Name: "Miser's Scripture",
			Description: "Save more in a month than you spent in it",
			Met:         func(f Facts) bool { return f.Summary.HasSuperSave }},
	}
}

// Prerequisites maps achievement code to the code that must unlock first.
// The structure is a forest: at most one parent per code, tier-1 roots.
func Prerequisites() map[string]string {
	return map[string]string{
		"save_300":   "save_1",
		"save_1000":  "save_300",
		"save_5000":  "save_1000",
		"save_10000": "save_5000",

		"success_streak_3": "first_success",
		"success_streak_6": "success_streak_3",

		"fail_streak_3": "first_fail",
		"fail_streak_6": "fail_streak_3",

		"super_save": "success_streak_3",
	}
}

// evaluationOrder fixes the single-pass unlock sequence: the immediate
// entry first, savings thresholds ascending, then the streak families,
// then the compound achievement. Walking parents before children lets a
// whole chain unlock in one pass.
var evaluationOrder = []string{
	"first_expense",
	"save_1",
	"save_300",
	"save_1000",
	"save_5000",
	"save_10000",
	"first_fail",
	"first_success",
	"fail_streak_3",
	"success_streak_3",
	"fail_streak_6",
	"success_streak_6",
	"super_save",
}

func savingsAtLeast(threshold int64) func(Facts) bool {
	return func(f Facts) bool { return f.Summary.TotalSavings >= threshold }
}

func successStreakAtLeast(n int) func(Facts) bool {
	return func(f Facts) bool { return f.Summary.MaxSuccessStreak >= n }
}

func failStreakAtLeast(n int) func(Facts) bool {
	return func(f Facts) bool { return f.Summary.MaxFailStreak >= n }
}
