package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/db"
)

// RosterView returns the roster from the given date onward, split into
// published and draft days for display.
func RosterView(ctx context.Context, store db.Store, logger *zap.Logger, from string) (published, drafts []model.DayView, err error) {
	if _, err := model.ParseDate(from); err != nil {
		return nil, nil, &ValidationError{Field: "from date", Reason: err.Error()}
	}

	days, err := store.RosterDays(ctx, from)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster days: %w", err)
	}

	published = []model.DayView{}
	drafts = []model.DayView{}
	for _, day := range days {
		if day.Status == model.DayPublished {
			published = append(published, day)
		} else {
			drafts = append(drafts, day)
		}
	}

	logger.Debug("Roster view built",
		zap.String("from", from),
		zap.Int("published", len(published)),
		zap.Int("drafts", len(drafts)))
	return published, drafts, nil
}

// PendingSwaps returns the scheduler's approval queue.
func PendingSwaps(ctx context.Context, store db.Store) ([]model.SwapView, error) {
	swaps, err := store.PendingSwaps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending swaps: %w", err)
	}
	return swaps, nil
}

// PunishmentDebtors returns people who still owe punishment duty,
// heaviest debtors first.
func PunishmentDebtors(ctx context.Context, store db.Store) ([]model.Debtor, error) {
	debtors, err := store.PunishmentDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load punishment debtors: %w", err)
	}
	return debtors, nil
}
