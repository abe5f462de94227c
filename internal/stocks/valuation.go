package stocks

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fintracker/internal/quote"
)

// Holding is one lot valued at the current market price. Valuation is
// computed on every read, never stored.
type Holding struct {
	ID           uint64  `json:"id"`
	Symbol       string  `json:"symbol"`
	Shares       int64   `json:"shares"`
	AverageCost  float64 `json:"average_cost"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	Profit       float64 `json:"profit"`
}

// List values every lot. When the quote provider fails or has no price for
// a symbol, the lot's own cost basis stands in for the market price: the
// read degrades to "no paper gain/loss" instead of erroring.
func (s *Service) List(ctx context.Context) ([]Holding, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("stocks service not initialized")
	}
	lots, err := s.Repo.ListStockLots(ctx)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		return []Holding{}, nil
	}

	// One lookup per symbol, shared across its lots.
	prices := map[string]decimal.Decimal{}
	holdings := make([]Holding, 0, len(lots))
	for _, lot := range lots {
		price, ok := prices[lot.Symbol]
		if !ok {
			price = s.lookupPrice(ctx, lot.Symbol)
			if !price.IsZero() {
				prices[lot.Symbol] = price
			}
		}
		current := price
		if current.IsZero() {
			current = lot.AverageCost
		}

		sharesDec := decimal.NewFromInt(lot.Shares)
		marketValue := current.Mul(sharesDec)
		profit := marketValue.Sub(lot.AverageCost.Mul(sharesDec))

		avgCost, _ := lot.AverageCost.Float64()
		currentF, _ := current.Round(2).Float64()
		valueF, _ := marketValue.Round(0).Float64()
		profitF, _ := profit.Round(0).Float64()
		holdings = append(holdings, Holding{
			ID:           lot.ID,
			Symbol:       lot.Symbol,
			Shares:       lot.Shares,
			AverageCost:  avgCost,
			CurrentPrice: currentF,
			MarketValue:  valueF,
			Profit:       profitF,
		})
	}
	return holdings, nil
}

func (s *Service) lookupPrice(ctx context.Context, symbol string) decimal.Decimal {
	if s.Quotes == nil {
		return decimal.Zero
	}
	price, err := s.Quotes.GetPrice(ctx, quote.NormalizeSymbol(symbol))
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("quote lookup failed, using cost basis",
				zap.String("symbol", symbol), zap.Error(err))
		}
		return decimal.Zero
	}
	return price
}

// HeldSymbols lists the distinct symbols currently held, for cache warming.
func (s *Service) HeldSymbols(ctx context.Context) ([]string, error) {
	lots, err := s.Repo.ListStockLots(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var symbols []string
	for _, lot := range lots {
		if _, ok := seen[lot.Symbol]; ok {
			continue
		}
		seen[lot.Symbol] = struct{}{}
		symbols = append(symbols, quote.NormalizeSymbol(lot.Symbol))
	}
	return symbols, nil
}
