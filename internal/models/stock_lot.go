package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot is one discrete purchase batch of a symbol with its own cost
// basis. Buys never merge lots; a fully drained lot is deleted, never kept
// at zero shares.
type StockLot struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol      string          `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Shares      int64           `gorm:"not null" json:"shares"`
	AverageCost decimal.Decimal `gorm:"type:numeric(20,6);not null" json:"average_cost"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (StockLot) TableName() string {
	return "stock_lots"
}
