package achievement

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"fintracker/internal/models"
	"fintracker/internal/repository"
)

// stubRepo is a test-only in-memory implementation of
// repository.Repository. Only the slices the achievement service touches
// carry real behavior; the rest satisfy the interface.
type stubRepo struct {
	records      []models.LedgerRecord
	budget       *models.Budget
	achievements []models.Achievement
	nextID       uint64
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) InsertLedgerRecord(ctx context.Context, item *models.LedgerRecord) error {
	s.nextID++
	item.ID = s.nextID
	s.records = append(s.records, *item)
	return nil
}

func (s *stubRepo) InsertLedgerRecordTx(ctx context.Context, tx *gorm.DB, item *models.LedgerRecord) error {
	return s.InsertLedgerRecord(ctx, item)
}

func (s *stubRepo) GetLedgerRecordByID(ctx context.Context, id uint64) (*models.LedgerRecord, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) DeleteLedgerRecord(ctx context.Context, id uint64) error {
	out := s.records[:0]
	for _, rec := range s.records {
		if rec.ID != id {
			out = append(out, rec)
		}
	}
	s.records = out
	return nil
}

func (s *stubRepo) ListLedgerRecords(ctx context.Context, params repository.ListLedgerRecordsParams) ([]models.LedgerRecord, error) {
	return s.records, nil
}

func (s *stubRepo) CountLedgerRecords(ctx context.Context, params repository.ListLedgerRecordsParams) (int64, error) {
	return int64(len(s.records)), nil
}

func (s *stubRepo) ListExpenseRecords(ctx context.Context) ([]models.LedgerRecord, error) {
	var out []models.LedgerRecord
	for _, rec := range s.records {
		if rec.Kind == models.RecordKindExpense {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *stubRepo) ListLedgerRecordsSince(ctx context.Context, from time.Time) ([]models.LedgerRecord, error) {
	var out []models.LedgerRecord
	for _, rec := range s.records {
		if !rec.Date.Before(from) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubRepo) GetBudget(ctx context.Context) (*models.Budget, error) { return s.budget, nil }

func (s *stubRepo) SaveBudget(ctx context.Context, item *models.Budget) error {
	s.budget = item
	return nil
}

func (s *stubRepo) InsertStockLot(ctx context.Context, item *models.StockLot) error { return nil }
func (s *stubRepo) GetStockLotByID(ctx context.Context, id uint64) (*models.StockLot, error) {
	return nil, nil
}
func (s *stubRepo) ListStockLots(ctx context.Context) ([]models.StockLot, error) { return nil, nil }
func (s *stubRepo) ListStockLotsBySymbol(ctx context.Context, symbol string) ([]models.StockLot, error) {
	return nil, nil
}
func (s *stubRepo) SaveStockLotTx(ctx context.Context, tx *gorm.DB, item *models.StockLot) error {
	return nil
}
func (s *stubRepo) DeleteStockLotTx(ctx context.Context, tx *gorm.DB, id uint64) error { return nil }

func (s *stubRepo) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	out := make([]models.Achievement, len(s.achievements))
	copy(out, s.achievements)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *stubRepo) InsertAchievements(ctx context.Context, items []models.Achievement) error {
	for _, item := range items {
		s.nextID++
		item.ID = s.nextID
		s.achievements = append(s.achievements, item)
	}
	return nil
}

func (s *stubRepo) UnlockAchievementTx(ctx context.Context, tx *gorm.DB, code string, at time.Time) error {
	for i := range s.achievements {
		if s.achievements[i].Code == code && !s.achievements[i].IsUnlocked {
			s.achievements[i].IsUnlocked = true
			ts := at
			s.achievements[i].UnlockedAt = &ts
		}
	}
	return nil
}

func (s *stubRepo) DeleteAllAchievements(ctx context.Context) error {
	s.achievements = nil
	return nil
}
