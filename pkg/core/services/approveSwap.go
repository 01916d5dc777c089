package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/db"
)

// ApproveSwap finalizes a swap: the allocation's ownership moves to the
// substitute and, for non-punishment duty, one fairness point of the
// day's duty type moves from the requester to the substitute. Fatigue is
// re-validated here because time may have passed since the request; a
// conflict that appeared in the meantime rejects the approval rather
// than silently degrading the rule. Accepts requests in Pending or
// AwaitingScheduler state, all in one transaction.
func ApproveSwap(ctx context.Context, store db.Store, logger *zap.Logger, swapID string) error {
	if swapID == "" {
		return &ValidationError{Field: "swap id", Reason: "must not be empty"}
	}

	err := store.InTx(ctx, func(tx db.Tx) error {
		swap, err := tx.Swap(ctx, swapID)
		if err != nil {
			return fmt.Errorf("failed to load swap request: %w", err)
		}
		if swap == nil {
			return ErrSwapNotFound
		}
		if swap.Status.Resolved() {
			return ErrSwapResolved
		}

		alloc, err := tx.Allocation(ctx, swap.AllocationID)
		if err != nil {
			return fmt.Errorf("failed to load allocation: %w", err)
		}
		if alloc == nil {
			return ErrAllocationNotFound
		}

		hdr, err := tx.DayHeader(ctx, alloc.Date)
		if err != nil {
			return fmt.Errorf("failed to load day header: %w", err)
		}
		if hdr == nil {
			return ErrDayNotFound
		}

		conflicted, err := tx.HasAllocationNear(ctx, swap.SubstituteID, alloc.Date, alloc.ID)
		if err != nil {
			return fmt.Errorf("failed to re-check substitute fatigue: %w", err)
		}
		if conflicted {
			return &FatigueError{PersonID: swap.SubstituteID, Date: alloc.Date}
		}

		if err := tx.ReassignAllocation(ctx, alloc.ID, swap.SubstituteID); err != nil {
			return fmt.Errorf("failed to reassign allocation: %w", err)
		}

		// Punishment duty carries no fairness credit, so there is nothing
		// to transfer for it.
		if !alloc.Punishment {
			if err := tx.AdjustCounter(ctx, swap.RequesterID, hdr.DutyType, -1); err != nil {
				return fmt.Errorf("failed to debit requester counter: %w", err)
			}
			if err := tx.AdjustCounter(ctx, swap.SubstituteID, hdr.DutyType, 1); err != nil {
				return fmt.Errorf("failed to credit substitute counter: %w", err)
			}
		}

		respondedAt := time.Now().UTC().Format(time.RFC3339)
		if err := tx.UpdateSwapStatus(ctx, swapID, model.SwapApproved, respondedAt); err != nil {
			return fmt.Errorf("failed to mark swap approved: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Swap approved", zap.String("swap_id", swapID))
	return nil
}
