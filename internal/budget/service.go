package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintracker/internal/models"
	"fintracker/internal/repository"
)

// LockedError rejects a budget change inside the lock window. The lock is
// deliberately non-overridable: committing to a limit is the point.
type LockedError struct {
	DaysRemaining int
	NextUpdate    time.Time
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("budget locked for %d more days (until %s)",
		e.DaysRemaining, e.NextUpdate.Format("2006-01-02"))
}

// Status is the read-side view of the singleton budget policy.
type Status struct {
	Amount         int64      `json:"amount"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CanUpdate      bool       `json:"can_update"`
	NextUpdateDate *time.Time `json:"next_update_date,omitempty"`
}

type Service struct {
	Repo repository.Repository

	// LockPeriod is how long a successful update freezes further changes.
	LockPeriod time.Duration

	// Now is a clock hook for tests; nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) lockPeriod() time.Duration {
	if s.LockPeriod > 0 {
		return s.LockPeriod
	}
	return 90 * 24 * time.Hour
}

func (s *Service) Get(ctx context.Context) (Status, error) {
	if s == nil || s.Repo == nil {
		return Status{}, errors.New("budget service not initialized")
	}
	item, err := s.Repo.GetBudget(ctx)
	if err != nil {
		return Status{}, err
	}
	if item == nil {
		// Never set: report zero and leave it freely settable.
		return Status{Amount: 0, CanUpdate: true}, nil
	}
	return s.status(item), nil
}

// Set creates the budget or, once the lock has expired, replaces it and
// re-arms the lock from now.
func (s *Service) Set(ctx context.Context, amount int64) (Status, error) {
	if s == nil || s.Repo == nil {
		return Status{}, errors.New("budget service not initialized")
	}
	if amount <= 0 {
		return Status{}, fmt.Errorf("monthly limit must be positive, got %d", amount)
	}

	now := s.now()
	item, err := s.Repo.GetBudget(ctx)
	if err != nil {
		return Status{}, err
	}

	if item == nil {
		item = &models.Budget{MonthlyLimit: amount, UpdatedAt: now}
		if err := s.Repo.SaveBudget(ctx, item); err != nil {
			return Status{}, err
		}
		return s.status(item), nil
	}

	if elapsed := now.Sub(item.UpdatedAt); elapsed < s.lockPeriod() {
		next := item.UpdatedAt.Add(s.lockPeriod())
		daysLeft := int(s.lockPeriod().Hours()/24) - int(elapsed.Hours()/24)
		return Status{}, &LockedError{DaysRemaining: daysLeft, NextUpdate: next}
	}

	item.MonthlyLimit = amount
	item.UpdatedAt = now
	if err := s.Repo.SaveBudget(ctx, item); err != nil {
		return Status{}, err
	}
	return s.status(item), nil
}

func (s *Service) status(item *models.Budget) Status {
	next := item.UpdatedAt.Add(s.lockPeriod())
	locked := s.now().Before(next)

	st := Status{
		Amount:    item.MonthlyLimit,
		UpdatedAt: item.UpdatedAt,
		CanUpdate: !locked,
	}
	if locked {
		st.NextUpdateDate = &next
	}
	return st
}
