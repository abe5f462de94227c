package quote

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoQuote means the provider answered but had no usable price.
var ErrNoQuote = errors.New("no quote available")

// Provider looks up the current market price for a symbol. Lookups are
// best-effort: callers treat any error as "use the cost basis instead" and
// never surface it.
type Provider interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// NormalizeSymbol uppercases the ticker and gives purely numeric symbols a
// .TW suffix (Taiwan listings), which is how the upstream quote API wants
// them.
func NormalizeSymbol(symbol string) string {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		return sym
	}
	if isDigits(sym) {
		return sym + ".TW"
	}
	return sym
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
