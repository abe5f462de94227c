package achievement

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fintracker/internal/models"
	"fintracker/internal/repository"
)

// Service owns achievement unlock state. A resolver pass runs inline on
// every List call; it is idempotent and linear in ledger size, cheap enough
// for every page view. There is no background scheduler.
type Service struct {
	Repo   repository.Repository
	Logger *zap.Logger

	// DefaultMonthlyLimit applies while no budget row exists.
	DefaultMonthlyLimit int64

	// Now is a clock hook for tests; nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EnsureSeeded inserts catalog rows that do not exist yet. It runs once at
// startup and again after a reset; re-running it is a no-op.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	existing, err := s.Repo.ListAchievements(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, a := range existing {
		have[a.Code] = true
	}

	var missing []models.Achievement
	for _, def := range Catalog() {
		if have[def.Code] {
			continue
		}
		missing = append(missing, models.Achievement{
			Code:        def.Code,
			Name:        def.Name,
			Description: def.Description,
			Tier:        def.Tier,
			Icon:        def.Icon,
		})
	}
	return s.Repo.InsertAchievements(ctx, missing)
}

// List returns the full catalog with unlock state, running a resolver pass
// first. A failing pass is logged and swallowed: the read itself must not
// fail because evaluation hit a problem.
func (s *Service) List(ctx context.Context) ([]models.Achievement, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	if err := s.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	if err := s.runPass(ctx); err != nil && s.Logger != nil {
		s.Logger.Warn("achievement pass failed", zap.Error(err))
	}
	return s.Repo.ListAchievements(ctx)
}

// Reset clears all unlock state. The next List reseeds the catalog.
func (s *Service) Reset(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	return s.Repo.DeleteAllAchievements(ctx)
}

func (s *Service) runPass(ctx context.Context) error {
	total, err := s.Repo.CountLedgerRecords(ctx, repository.ListLedgerRecordsParams{})
	if err != nil {
		return err
	}
	if total == 0 {
		// Nothing journaled yet: nothing can unlock, not even first_expense.
		return nil
	}

	expenses, err := s.Repo.ListExpenseRecords(ctx)
	if err != nil {
		return err
	}

	limit := s.DefaultMonthlyLimit
	if budget, err := s.Repo.GetBudget(ctx); err != nil {
		return err
	} else if budget != nil {
		limit = budget.MonthlyLimit
	}

	now := s.now()
	facts := Facts{
		HasAnyRecord: total > 0,
		Summary:      Summarize(AggregateMonths(expenses, now), limit),
	}

	rows, err := s.Repo.ListAchievements(ctx)
	if err != nil {
		return err
	}
	unlocked := make(map[string]bool, len(rows))
	for _, a := range rows {
		unlocked[a.Code] = a.IsUnlocked
	}

	newly := Resolve(Catalog(), Prerequisites(), unlocked, facts)
	if len(newly) == 0 {
		return nil
	}

	if s.Logger != nil {
		s.Logger.Info("unlocking achievements", zap.Strings("codes", newly))
	}
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		for _, code := range newly {
			if err := s.Repo.UnlockAchievementTx(ctx, tx, code, now); err != nil {
				return err
			}
		}
		return nil
	})
}
