package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/db"
)

// Publish moves every Draft day in [start, end] to Published in one
// transaction and returns how many days changed. A range containing no
// Draft days returns ErrNothingToPublish.
func Publish(ctx context.Context, store db.Store, logger *zap.Logger, start, end string) (int, error) {
	if _, err := model.ParseDate(start); err != nil {
		return 0, &ValidationError{Field: "start date", Reason: err.Error()}
	}
	if _, err := model.ParseDate(end); err != nil {
		return 0, &ValidationError{Field: "end date", Reason: err.Error()}
	}
	if start > end {
		return 0, &ValidationError{Field: "date range", Reason: "start date is after end date"}
	}

	var published int
	err := store.InTx(ctx, func(tx db.Tx) error {
		n, err := tx.PublishRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to publish range: %w", err)
		}
		if n == 0 {
			return ErrNothingToPublish
		}
		published = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Roster published",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("days", published))
	return published, nil
}

// Reopen transitions one Published day back to Draft so it can be
// regenerated or swapped again. Known as errata: the day was published
// with a mistake and must be corrected.
func Reopen(ctx context.Context, store db.Store, logger *zap.Logger, date string) error {
	if _, err := model.ParseDate(date); err != nil {
		return &ValidationError{Field: "date", Reason: err.Error()}
	}

	err := store.InTx(ctx, func(tx db.Tx) error {
		if err := tx.LockDate(ctx, date); err != nil {
			return fmt.Errorf("failed to lock date %s: %w", date, err)
		}
		hdr, err := tx.DayHeader(ctx, date)
		if err != nil {
			return fmt.Errorf("failed to load day header: %w", err)
		}
		if hdr == nil {
			return ErrDayNotFound
		}
		if hdr.Status != model.DayPublished {
			return ErrDayNotPublished
		}
		if err := tx.SetDayStatus(ctx, date, model.DayDraft); err != nil {
			return fmt.Errorf("failed to reopen day: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Day reopened", zap.String("date", date))
	return nil
}
