package stocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fintracker/internal/models"
	"fintracker/internal/quote"
	"fintracker/internal/repository"
)

var ErrLotNotFound = errors.New("stock lot not found")

// SaleResult is what a completed (lot or smart) sell reports back.
type SaleResult struct {
	Symbol         string  `json:"symbol"`
	SoldShares     int64   `json:"sold_shares"`
	RealizedProfit float64 `json:"realized_profit"`
}

// Service manages purchase lots and their liquidation. Every sell commits
// the lot mutation and the auto-journaled ledger record in one
// transaction: either both land or neither does.
type Service struct {
	Repo   repository.Repository
	Quotes quote.Provider
	Logger *zap.Logger

	// Now is a clock hook for tests; nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Buy appends a new lot. Lots never merge: each buy keeps its own cost
// basis so later sells can pick which basis to liquidate.
func (s *Service) Buy(ctx context.Context, symbol string, shares int64, price decimal.Decimal) (*models.StockLot, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("stocks service not initialized")
	}
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if sym == "" {
		return nil, errors.New("symbol is required")
	}
	if shares <= 0 {
		return nil, fmt.Errorf("shares must be positive, got %d", shares)
	}
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("price must be positive, got %s", price)
	}

	lot := &models.StockLot{
		Symbol:      sym,
		Shares:      shares,
		AverageCost: price,
	}
	if err := s.Repo.InsertStockLot(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// SellLot sells shares out of one specific lot at the given price.
func (s *Service) SellLot(ctx context.Context, lotID uint64, shares int64, price decimal.Decimal) (SaleResult, error) {
	if s == nil || s.Repo == nil {
		return SaleResult{}, errors.New("stocks service not initialized")
	}
	if err := validateSell(shares, price); err != nil {
		return SaleResult{}, err
	}

	lot, err := s.Repo.GetStockLotByID(ctx, lotID)
	if err != nil {
		return SaleResult{}, err
	}
	if lot == nil {
		return SaleResult{}, ErrLotNotFound
	}
	if shares > lot.Shares {
		return SaleResult{}, ErrInsufficientInventory
	}

	plan, err := PlanLiquidation([]models.StockLot{*lot}, shares, price)
	if err != nil {
		return SaleResult{}, err
	}
	return s.applyPlan(ctx, lot.Symbol, shares, price, plan)
}

// SellSmart sells shares of a symbol across its lots, consuming the
// cheapest cost bases first to maximize the recognized gain. One
// aggregated ledger record covers the whole sale.
func (s *Service) SellSmart(ctx context.Context, symbol string, shares int64, price decimal.Decimal) (SaleResult, error) {
	if s == nil || s.Repo == nil {
		return SaleResult{}, errors.New("stocks service not initialized")
	}
	if err := validateSell(shares, price); err != nil {
		return SaleResult{}, err
	}

	sym := strings.ToUpper(strings.TrimSpace(symbol))
	lots, err := s.Repo.ListStockLotsBySymbol(ctx, sym)
	if err != nil {
		return SaleResult{}, err
	}
	// Lots arrive ordered by ascending cost basis.
	plan, err := PlanLiquidation(lots, shares, price)
	if err != nil {
		return SaleResult{}, err
	}
	return s.applyPlan(ctx, sym, shares, price, plan)
}

func (s *Service) applyPlan(ctx context.Context, symbol string, soldShares int64, price decimal.Decimal, plan Plan) (SaleResult, error) {
	record := saleRecord(symbol, soldShares, price, plan, s.now())

	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		for _, sale := range plan.Consumed {
			left := plan.Remaining[sale.LotID]
			if left == 0 {
				// A zero-share lot is never persisted.
				if err := s.Repo.DeleteStockLotTx(ctx, tx, sale.LotID); err != nil {
					return err
				}
				continue
			}
			if err := s.Repo.SaveStockLotTx(ctx, tx, &models.StockLot{
				ID:          sale.LotID,
				Symbol:      symbol,
				Shares:      left,
				AverageCost: sale.AverageCost,
			}); err != nil {
				return err
			}
		}
		return s.Repo.InsertLedgerRecordTx(ctx, tx, record)
	})
	if err != nil {
		return SaleResult{}, err
	}

	if s.Logger != nil {
		s.Logger.Info("stock sale journaled",
			zap.String("symbol", symbol),
			zap.Int64("shares", soldShares),
			zap.String("realized", plan.Realized.String()),
			zap.Int("lots", len(plan.Consumed)),
		)
	}
	realized, _ := plan.Realized.Float64()
	return SaleResult{Symbol: symbol, SoldShares: soldShares, RealizedProfit: realized}, nil
}

// saleRecord builds the synthetic ledger entry for a sale: income tagged
// investment_gain when the realized P&L is positive, otherwise an expense
// tagged investment_loss with the absolute amount. The per-lot breakdown
// rides along in the detail payload.
func saleRecord(symbol string, soldShares int64, price decimal.Decimal, plan Plan, now time.Time) *models.LedgerRecord {
	kind := models.RecordKindIncome
	category := models.CategoryInvestmentGain
	amount := plan.Realized
	if plan.Realized.Sign() <= 0 {
		kind = models.RecordKindExpense
		category = models.CategoryInvestmentLoss
		amount = plan.Realized.Abs()
	}

	detail, _ := json.Marshal(map[string]any{
		"symbol":     symbol,
		"shares":     soldShares,
		"sell_price": price,
		"lots":       plan.Consumed,
	})

	return &models.LedgerRecord{
		Amount:      amount.Round(0).IntPart(),
		Category:    category,
		Description: fmt.Sprintf("Sell %s %d @ %s", symbol, soldShares, price),
		Date:        now,
		Kind:        kind,
		Detail:      detail,
	}
}

func validateSell(shares int64, price decimal.Decimal) error {
	if shares <= 0 {
		return fmt.Errorf("shares must be positive, got %d", shares)
	}
	if price.Sign() <= 0 {
		return fmt.Errorf("price must be positive, got %s", price)
	}
	return nil
}
