package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RecordKindExpense = "expense"
	RecordKindIncome  = "income"
)

// Categories used for auto-journaled stock sale results.
const (
	CategoryInvestmentGain = "investment_gain"
	CategoryInvestmentLoss = "investment_loss"
)

// LedgerRecord is one dated income/expense entry. Records are append-only:
// they are never updated in place, and deletion is allowed only inside the
// post-creation lock window enforced by the ledger service.
type LedgerRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Amount      int64  `gorm:"not null" json:"amount"`
	Category    string `gorm:"type:varchar(100);not null;index" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	// Date is the user-assigned calendar date of the entry; backdating is allowed.
	Date time.Time `gorm:"type:date;not null;index" json:"date"`

	Kind string `gorm:"type:varchar(10);not null;index;default:expense" json:"kind"`

	// Detail carries an optional machine-written payload, e.g. the per-lot
	// breakdown of an aggregated stock sale.
	Detail datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (LedgerRecord) TableName() string {
	return "ledger_records"
}
