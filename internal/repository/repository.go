package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fintracker/internal/models"
)

type ListLedgerRecordsParams struct {
	Limit    int
	Offset   int
	Kind     *string
	Category *string
	Since    *time.Time
	Until    *time.Time
	OrderBy  string
	Asc      *bool
}

// Repository is the persistence boundary for all tracker state. Multi-step
// mutations (stock sells, resets) run through InTx so a failure never leaves
// a partial write behind.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Ledger records.
	InsertLedgerRecord(ctx context.Context, item *models.LedgerRecord) error
	InsertLedgerRecordTx(ctx context.Context, tx *gorm.DB, item *models.LedgerRecord) error
	GetLedgerRecordByID(ctx context.Context, id uint64) (*models.LedgerRecord, error)
	DeleteLedgerRecord(ctx context.Context, id uint64) error
	ListLedgerRecords(ctx context.Context, params ListLedgerRecordsParams) ([]models.LedgerRecord, error)
	CountLedgerRecords(ctx context.Context, params ListLedgerRecordsParams) (int64, error)
	// ListExpenseRecords returns every expense-kind record, oldest first.
	// Monthly aggregation happens in the achievement core, not in SQL, so the
	// same code path works on both supported drivers.
	ListExpenseRecords(ctx context.Context) ([]models.LedgerRecord, error)
	// ListLedgerRecordsSince returns all records dated on or after from,
	// oldest first. Feeds the annual summary and dashboard read models.
	ListLedgerRecordsSince(ctx context.Context, from time.Time) ([]models.LedgerRecord, error)

	// Budget (singleton row; nil when never set).
	GetBudget(ctx context.Context) (*models.Budget, error)
	SaveBudget(ctx context.Context, item *models.Budget) error

	// Stock lots.
	InsertStockLot(ctx context.Context, item *models.StockLot) error
	GetStockLotByID(ctx context.Context, id uint64) (*models.StockLot, error)
	ListStockLots(ctx context.Context) ([]models.StockLot, error)
	// ListStockLotsBySymbol returns the symbol's lots ordered by ascending
	// cost basis, then id. The smart-sell path depends on this ordering.
	ListStockLotsBySymbol(ctx context.Context, symbol string) ([]models.StockLot, error)
	SaveStockLotTx(ctx context.Context, tx *gorm.DB, item *models.StockLot) error
	DeleteStockLotTx(ctx context.Context, tx *gorm.DB, id uint64) error

	// Achievements.
	ListAchievements(ctx context.Context) ([]models.Achievement, error)
	InsertAchievements(ctx context.Context, items []models.Achievement) error
	// UnlockAchievementTx flips a single code to unlocked and stamps the
	// time. It is a no-op for rows already unlocked, so the stamp is set
	// once. The resolver pass runs all its unlocks in one transaction.
	UnlockAchievementTx(ctx context.Context, tx *gorm.DB, code string, at time.Time) error
	DeleteAllAchievements(ctx context.Context) error
}
