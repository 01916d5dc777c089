package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/core/roster"
	"github.com/tmvalente/escala/pkg/db"
)

// GenerateDay builds the roster for one date: every post gets exactly
// one allocation, chosen greedily from the fairness-ranked pool. A day
// that already exists as Draft is torn down and regenerated with its
// counter effects exactly inverted first; a Published day is refused.
// The whole day commits or nothing does.
func GenerateDay(ctx context.Context, store db.Store, logger *zap.Logger, date string, dutyType model.DutyType) error {
	if _, err := model.ParseDate(date); err != nil {
		return &ValidationError{Field: "date", Reason: err.Error()}
	}
	if !dutyType.IsValid() {
		return &ValidationError{Field: "duty type", Reason: fmt.Sprintf("unknown duty type %q", dutyType)}
	}

	logger.Debug("Generating day", zap.String("date", date), zap.String("duty_type", string(dutyType)))

	err := store.InTx(ctx, func(tx db.Tx) error {
		return generateDayTx(ctx, tx, logger, date, dutyType)
	})
	if err != nil {
		return err
	}

	logger.Info("Day generated", zap.String("date", date), zap.String("duty_type", string(dutyType)))
	return nil
}

func generateDayTx(ctx context.Context, tx db.Tx, logger *zap.Logger, date string, dutyType model.DutyType) error {
	if err := tx.LockDate(ctx, date); err != nil {
		return fmt.Errorf("failed to lock date %s: %w", date, err)
	}

	hdr, err := tx.DayHeader(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to load day header: %w", err)
	}

	if hdr != nil {
		if hdr.Status == model.DayPublished {
			return ErrDayPublished
		}
		if err := teardownDraft(ctx, tx, logger, hdr); err != nil {
			return err
		}
	}

	if err := tx.UpsertDayHeader(ctx, model.DayHeader{Date: date, DutyType: dutyType, Status: model.DayDraft}); err != nil {
		return fmt.Errorf("failed to upsert day header: %w", err)
	}

	posts, err := tx.Posts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	for _, post := range roster.OrderPosts(posts) {
		pool, err := tx.EligibleCandidates(ctx, post, date)
		if err != nil {
			return fmt.Errorf("failed to load candidates for post %q: %w", post.Name, err)
		}

		ranked := roster.RankCandidates(pool, dutyType)
		chosen, err := roster.SelectCandidate(ctx, ranked, post, date, tx)
		if err != nil {
			return fmt.Errorf("failed to select candidate for post %q: %w", post.Name, err)
		}
		if chosen == nil {
			return &StaffingError{Date: date, PostName: post.Name, RequiredYears: post.AllowedYears}
		}

		punishment := chosen.PunishmentBalance > 0
		alloc := model.Allocation{
			ID:         uuid.NewString(),
			PersonID:   chosen.ID,
			PostID:     post.ID,
			Date:       date,
			Punishment: punishment,
		}
		if err := tx.InsertAllocation(ctx, alloc); err != nil {
			return fmt.Errorf("failed to insert allocation for post %q: %w", post.Name, err)
		}
		if err := applyAllocationEffects(ctx, tx, chosen.ID, dutyType, punishment, 1); err != nil {
			return fmt.Errorf("failed to book counters for %s: %w", chosen.ID, err)
		}

		logger.Debug("Post filled",
			zap.String("date", date),
			zap.String("post", post.Name),
			zap.String("person_id", chosen.ID),
			zap.Bool("punishment", punishment))
	}

	return nil
}

// teardownDraft reverses every counter effect of the day's current draft
// allocations and deletes them, so regeneration starts from the same
// counter state as the first generation. The reversal uses the existing
// header's duty type, which is the type the effects were booked under.
func teardownDraft(ctx context.Context, tx db.Tx, logger *zap.Logger, hdr *model.DayHeader) error {
	allocs, err := tx.AllocationsForDate(ctx, hdr.Date)
	if err != nil {
		return fmt.Errorf("failed to load existing allocations: %w", err)
	}

	for _, a := range allocs {
		if err := applyAllocationEffects(ctx, tx, a.PersonID, hdr.DutyType, a.Punishment, -1); err != nil {
			return fmt.Errorf("failed to reverse counters for %s: %w", a.PersonID, err)
		}
	}

	if err := tx.DeleteAllocationsForDate(ctx, hdr.Date); err != nil {
		return fmt.Errorf("failed to delete existing allocations: %w", err)
	}

	logger.Debug("Draft day torn down for regeneration",
		zap.String("date", hdr.Date),
		zap.Int("allocations_reversed", len(allocs)))
	return nil
}

// applyAllocationEffects books one allocation's fairness effects with
// sign +1, or inverts them with sign -1. Punishment duty repays balance
// and never touches the fairness counters; both directions go through
// this one function so generation and teardown cannot drift apart.
func applyAllocationEffects(ctx context.Context, tx db.Tx, personID string, dutyType model.DutyType, punishment bool, sign int) error {
	if punishment {
		return tx.AdjustPunishment(ctx, personID, -sign)
	}
	return tx.AdjustCounter(ctx, personID, dutyType, sign)
}
