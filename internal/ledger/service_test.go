package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"fintracker/internal/models"
	"fintracker/internal/repository"
)

// stubRepo is a test-only in-memory implementation of
// repository.Repository. Only the ledger paths carry real behavior.
type stubRepo struct {
	records []models.LedgerRecord
	nextID  uint64
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
	return nil, nil
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

func (s *stubRepo) GetBudget(ctx context.Context) (*models.Budget, error)     { return nil, nil }
func (s *stubRepo) SaveBudget(ctx context.Context, item *models.Budget) error { return nil }

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
	return nil, nil
}
func (s *stubRepo) InsertAchievements(ctx context.Context, items []models.Achievement) error {
	return nil
}
func (s *stubRepo) UnlockAchievementTx(ctx context.Context, tx *gorm.DB, code string, at time.Time) error {
	return nil
}
func (s *stubRepo) DeleteAllAchievements(ctx context.Context) error { return nil }

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo *stubRepo) *Service {
	return &Service{
		Repo:       repo,
		DeleteLock: 12 * time.Hour,
		Now:        func() time.Time { return testNow },
	}
}

func TestAddDefaultsToExpense(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)

	rec, err := svc.Add(context.Background(), AddParams{
		Amount:   120,
		Category: "food",
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.Kind != models.RecordKindExpense {
		t.Fatalf("kind = %q, want %q", rec.Kind, models.RecordKindExpense)
	}
	if rec.ID == 0 {
		t.Fatal("record did not get an id")
	}
}

func TestAddValidation(t *testing.T) {
	svc := newTestService(&stubRepo{})
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		p    AddParams
	}{
		{"zero amount", AddParams{Amount: 0, Category: "food", Date: date}},
		{"negative amount", AddParams{Amount: -5, Category: "food", Date: date}},
		{"missing category", AddParams{Amount: 100, Date: date}},
		{"missing date", AddParams{Amount: 100, Category: "food"}},
		{"bad kind", AddParams{Amount: 100, Category: "food", Date: date, Kind: "transfer"}},
	}
	for _, tc := range cases {
		if _, err := svc.Add(ctx, tc.p); err == nil {
			t.Fatalf("%s: Add accepted invalid params", tc.name)
		}
	}
}

func TestDeleteInsideWindow(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)
	repo.records = append(repo.records, models.LedgerRecord{
		ID:        1,
		Amount:    100,
		Category:  "food",
		Kind:      models.RecordKindExpense,
		Date:      testNow,
		CreatedAt: testNow.Add(-11 * time.Hour),
	})

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("record survived deletion")
	}
}

func TestDeleteAfterWindow(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)
	repo.records = append(repo.records, models.LedgerRecord{
		ID:        1,
		Amount:    100,
		Category:  "food",
		Kind:      models.RecordKindExpense,
		Date:      testNow,
		CreatedAt: testNow.Add(-13 * time.Hour),
	})

	err := svc.Delete(context.Background(), 1)
	var locked *LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("Delete = %v, want LockedError", err)
	}
	if locked.Lock != 12*time.Hour {
		t.Fatalf("lock = %s, want 12h", locked.Lock)
	}
	if len(repo.records) != 1 {
		t.Fatal("locked record was deleted")
	}
}

func TestDeleteMissing(t *testing.T) {
	svc := newTestService(&stubRepo{})
	if err := svc.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete = %v, want ErrNotFound", err)
	}
}

func TestAnnualSummaryGrowth(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)
	add := func(year int, kind string, amount int64) {
		repo.records = append(repo.records, models.LedgerRecord{
			Amount: amount,
			Kind:   kind,
			Date:   time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	// 2024 nets 100, 2025 nets 150.
	add(2024, models.RecordKindIncome, 300)
	add(2024, models.RecordKindExpense, 200)
	add(2025, models.RecordKindIncome, 150)

	out, err := svc.AnnualSummary(context.Background())
	if err != nil {
		t.Fatalf("AnnualSummary: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d years, want 2", len(out))
	}
	if out[0].Year != 2025 || out[1].Year != 2024 {
		t.Fatalf("years not newest first: %v, %v", out[0].Year, out[1].Year)
	}
	if out[0].NetProfit != 150 || out[1].NetProfit != 100 {
		t.Fatalf("profits = %d, %d; want 150, 100", out[0].NetProfit, out[1].NetProfit)
	}
	if out[0].GrowthPct == nil || *out[0].GrowthPct != 50.0 {
		t.Fatalf("2025 growth = %v, want 50.0", out[0].GrowthPct)
	}
	if out[1].GrowthPct != nil {
		t.Fatalf("earliest year growth = %v, want nil", *out[1].GrowthPct)
	}
}

func TestAnnualSummaryZeroPriorProfit(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)
	repo.records = append(repo.records,
		models.LedgerRecord{Amount: 100, Kind: models.RecordKindIncome, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		models.LedgerRecord{Amount: 100, Kind: models.RecordKindExpense, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		models.LedgerRecord{Amount: 50, Kind: models.RecordKindIncome, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	)

	out, err := svc.AnnualSummary(context.Background())
	if err != nil {
		t.Fatalf("AnnualSummary: %v", err)
	}
	if out[0].GrowthPct != nil {
		t.Fatalf("growth over a zero-profit year = %v, want nil", *out[0].GrowthPct)
	}
}
