package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fintracker/internal/models"
	"fintracker/internal/repository"
)

var (
	ErrNotFound = errors.New("ledger record not found")
)

// LockedError rejects deletion of a record older than the lock window.
// Historical entries are immutable once the window closes; there is no
// force flag.
type LockedError struct {
	Age  time.Duration
	Lock time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("record is %s old, locked after %s", e.Age.Round(time.Minute), e.Lock)
}

type AddParams struct {
	Amount      int64
	Category    string
	Description string
	Date        time.Time
	Kind        string
}

type Service struct {
	Repo   repository.Repository
	Logger *zap.Logger

	// DeleteLock is how long after creation a record stays deletable.
	DeleteLock time.Duration

	// Now is a clock hook for tests; nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Add(ctx context.Context, p AddParams) (*models.LedgerRecord, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("ledger service not initialized")
	}
	if p.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", p.Amount)
	}
	kind := strings.TrimSpace(p.Kind)
	if kind == "" {
		kind = models.RecordKindExpense
	}
	if kind != models.RecordKindExpense && kind != models.RecordKindIncome {
		return nil, fmt.Errorf("unknown record kind %q", p.Kind)
	}
	if strings.TrimSpace(p.Category) == "" {
		return nil, errors.New("category is required")
	}
	if p.Date.IsZero() {
		return nil, errors.New("date is required")
	}

	item := &models.LedgerRecord{
		Amount:      p.Amount,
		Category:    strings.TrimSpace(p.Category),
		Description: strings.TrimSpace(p.Description),
		Date:        p.Date,
		Kind:        kind,
	}
	if err := s.Repo.InsertLedgerRecord(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a record while it is still inside the deletion window.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	if s == nil || s.Repo == nil {
		return errors.New("ledger service not initialized")
	}
	item, err := s.Repo.GetLedgerRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	lock := s.DeleteLock
	if lock <= 0 {
		lock = 12 * time.Hour
	}
	if age := s.now().Sub(item.CreatedAt); age > lock {
		return &LockedError{Age: age, Lock: lock}
	}
	return s.Repo.DeleteLedgerRecord(ctx, id)
}

func (s *Service) List(ctx context.Context, params repository.ListLedgerRecordsParams) ([]models.LedgerRecord, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, errors.New("ledger service not initialized")
	}
	items, err := s.Repo.ListLedgerRecords(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountLedgerRecords(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
