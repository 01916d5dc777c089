package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/db"
)

// RequestSwap opens a swap workflow: the holder of a future, still-Draft
// allocation proposes a substitute. The substitute is fatigue-checked
// now (excluding the duty being handed over, which cannot conflict with
// itself) and checked again at approval time. counterAllocationID
// optionally names a duty offered in return; it is recorded for the
// scheduler's context and not transferred automatically.
func RequestSwap(ctx context.Context, store db.Store, logger *zap.Logger, requesterID, allocationID, substituteID, counterAllocationID, reason string) (*model.SwapRequest, error) {
	switch {
	case requesterID == "":
		return nil, &ValidationError{Field: "requester", Reason: "must not be empty"}
	case allocationID == "":
		return nil, &ValidationError{Field: "allocation", Reason: "must not be empty"}
	case substituteID == "":
		return nil, &ValidationError{Field: "substitute", Reason: "must not be empty"}
	case substituteID == requesterID:
		return nil, &ValidationError{Field: "substitute", Reason: "cannot swap with yourself"}
	case reason == "":
		return nil, &ValidationError{Field: "reason", Reason: "must not be empty"}
	}

	swap := model.SwapRequest{
		ID:                  uuid.NewString(),
		RequesterID:         requesterID,
		SubstituteID:        substituteID,
		AllocationID:        allocationID,
		CounterAllocationID: counterAllocationID,
		Status:              model.SwapPending,
		Reason:              reason,
		CreatedAt:           time.Now().UTC().Format(time.RFC3339),
	}

	err := store.InTx(ctx, func(tx db.Tx) error {
		alloc, err := tx.Allocation(ctx, allocationID)
		if err != nil {
			return fmt.Errorf("failed to load allocation: %w", err)
		}
		if alloc == nil {
			return ErrAllocationNotFound
		}
		if alloc.PersonID != requesterID {
			return ErrNotAllocationHolder
		}
		if alloc.Date < model.FormatDate(time.Now()) {
			return ErrAllocationInPast
		}

		hdr, err := tx.DayHeader(ctx, alloc.Date)
		if err != nil {
			return fmt.Errorf("failed to load day header: %w", err)
		}
		if hdr == nil {
			return ErrDayNotFound
		}
		if hdr.Status == model.DayPublished {
			return ErrDayPublished
		}

		conflicted, err := tx.HasAllocationNear(ctx, substituteID, alloc.Date, alloc.ID)
		if err != nil {
			return fmt.Errorf("failed to check substitute fatigue: %w", err)
		}
		if conflicted {
			return &FatigueError{PersonID: substituteID, Date: alloc.Date}
		}

		if err := tx.InsertSwap(ctx, swap); err != nil {
			return fmt.Errorf("failed to insert swap request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Swap requested",
		zap.String("swap_id", swap.ID),
		zap.String("requester_id", requesterID),
		zap.String("substitute_id", substituteID),
		zap.String("allocation_id", allocationID))
	return &swap, nil
}
