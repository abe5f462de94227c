package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"fintracker/internal/models"
	"fintracker/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Ledger ------------------------------------------------------------------

func (s *Store) InsertLedgerRecord(ctx context.Context, item *models.LedgerRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) InsertLedgerRecordTx(ctx context.Context, tx *gorm.DB, item *models.LedgerRecord) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetLedgerRecordByID(ctx context.Context, id uint64) (*models.LedgerRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.LedgerRecord
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeleteLedgerRecord(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.LedgerRecord{}, "id = ?", id).Error
}

func applyLedgerFilters(query *gorm.DB, params repository.ListLedgerRecordsParams) *gorm.DB {
	if params.Kind != nil && strings.TrimSpace(*params.Kind) != "" {
		query = query.Where("kind = ?", strings.TrimSpace(*params.Kind))
	}
	if params.Category != nil && strings.TrimSpace(*params.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(*params.Category))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("date >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("date <= ?", *params.Until)
	}
	return query
}

func (s *Store) ListLedgerRecords(ctx context.Context, params repository.ListLedgerRecordsParams) ([]models.LedgerRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyLedgerFilters(s.db.WithContext(ctx).Model(&models.LedgerRecord{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "date")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.LedgerRecord
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountLedgerRecords(ctx context.Context, params repository.ListLedgerRecordsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := applyLedgerFilters(s.db.WithContext(ctx).Model(&models.LedgerRecord{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListExpenseRecords(ctx context.Context) ([]models.LedgerRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.LedgerRecord
	err := s.db.WithContext(ctx).
		Model(&models.LedgerRecord{}).
		Where("kind = ?", models.RecordKindExpense).
		Order("date asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListLedgerRecordsSince(ctx context.Context, from time.Time) ([]models.LedgerRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.LedgerRecord
	err := s.db.WithContext(ctx).
		Model(&models.LedgerRecord{}).
		Where("date >= ?", from).
		Order("date asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- Budget ------------------------------------------------------------------

func (s *Store) GetBudget(ctx context.Context) (*models.Budget, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Budget
	err := s.db.WithContext(ctx).Order("id asc").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveBudget(ctx context.Context, item *models.Budget) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

// --- Stock lots --------------------------------------------------------------

func (s *Store) InsertStockLot(ctx context.Context, item *models.StockLot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetStockLotByID(ctx context.Context, id uint64) (*models.StockLot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.StockLot
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListStockLots(ctx context.Context) ([]models.StockLot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.StockLot
	err := s.db.WithContext(ctx).
		Model(&models.StockLot{}).
		Order("symbol asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListStockLotsBySymbol(ctx context.Context, symbol string) ([]models.StockLot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.StockLot
	err := s.db.WithContext(ctx).
		Model(&models.StockLot{}).
		Where("symbol = ?", strings.TrimSpace(symbol)).
		Order("average_cost asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SaveStockLotTx(ctx context.Context, tx *gorm.DB, item *models.StockLot) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteStockLotTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	if tx == nil {
		return nil
	}
	return tx.WithContext(ctx).Delete(&models.StockLot{}, "id = ?", id).Error
}

// --- Achievements ------------------------------------------------------------

func (s *Store) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Achievement
	err := s.db.WithContext(ctx).
		Model(&models.Achievement{}).
		Order("tier asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertAchievements(ctx context.Context, items []models.Achievement) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&items).Error
}

func (s *Store) UnlockAchievementTx(ctx context.Context, tx *gorm.DB, code string, at time.Time) error {
	if tx == nil {
		return nil
	}
	// The is_unlocked guard keeps the unlock monotonic and the timestamp
	// write-once even if two passes race.
	return tx.WithContext(ctx).
		Model(&models.Achievement{}).
		Where("code = ? AND is_unlocked = ?", code, false).
		Updates(map[string]any{
			"is_unlocked": true,
			"unlocked_at": at,
		}).Error
}

func (s *Store) DeleteAllAchievements(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Achievement{}).Error
}

// --- Query helpers -----------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	col := strings.TrimSpace(orderBy)
	switch col {
	case "date", "created_at", "amount", "id":
	default:
		col = fallback
	}
	dir := "desc"
	if asc != nil && *asc {
		dir = "asc"
	}
	return query.Order(col + " " + dir + ", id " + dir)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
