package stocks

import (
	"errors"

	"github.com/shopspring/decimal"

	"fintracker/internal/models"
)

// ErrInsufficientInventory rejects a sell that exceeds the available
// shares. The check happens up front; no partial execution.
var ErrInsufficientInventory = errors.New("insufficient shares to sell")

// LotSale is one lot's contribution to a sale.
type LotSale struct {
	LotID       uint64          `json:"lot_id"`
	Shares      int64           `json:"shares"`
	AverageCost decimal.Decimal `json:"average_cost"`
	Realized    decimal.Decimal `json:"realized"`
}

// Plan is a fully decided liquidation: which lots give how many shares,
// the total realized P&L at the uniform sell price, and what each
// consumed lot's remaining share count becomes (zero means delete).
type Plan struct {
	Consumed  []LotSale
	Remaining map[uint64]int64
	Realized  decimal.Decimal
}

// PlanLiquidation greedily consumes lots in the given order until shares
// are covered. Callers choose the policy by ordering the input; the smart
// sell passes lots cheapest-cost-first to maximize recognized gain. The
// function is pure: nothing is mutated, the caller applies the plan in a
// transaction.
func PlanLiquidation(lots []models.StockLot, shares int64, price decimal.Decimal) (Plan, error) {
	plan := Plan{Remaining: map[uint64]int64{}, Realized: decimal.Zero}
	if shares <= 0 {
		return plan, ErrInsufficientInventory
	}

	var available int64
	for _, lot := range lots {
		available += lot.Shares
	}
	if available < shares {
		return plan, ErrInsufficientInventory
	}

	remaining := shares
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := lot.Shares
		if take > remaining {
			take = remaining
		}
		realized := price.Sub(lot.AverageCost).Mul(decimal.NewFromInt(take))
		plan.Consumed = append(plan.Consumed, LotSale{
			LotID:       lot.ID,
			Shares:      take,
			AverageCost: lot.AverageCost,
			Realized:    realized,
		})
		plan.Remaining[lot.ID] = lot.Shares - take
		plan.Realized = plan.Realized.Add(realized)
		remaining -= take
	}
	return plan, nil
}
