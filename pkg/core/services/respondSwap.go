package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/db"
)

// RespondToSwap records the proposed substitute's answer. Accepting
// hands the request to the scheduler (AwaitingScheduler); declining ends
// the workflow as Rejected. Only the addressed substitute may respond,
// and only while the request is still Pending.
func RespondToSwap(ctx context.Context, store db.Store, logger *zap.Logger, swapID, responderID string, accept bool) error {
	switch {
	case swapID == "":
		return &ValidationError{Field: "swap id", Reason: "must not be empty"}
	case responderID == "":
		return &ValidationError{Field: "responder", Reason: "must not be empty"}
	}

	err := store.InTx(ctx, func(tx db.Tx) error {
		swap, err := tx.Swap(ctx, swapID)
		if err != nil {
			return fmt.Errorf("failed to load swap request: %w", err)
		}
		if swap == nil {
			return ErrSwapNotFound
		}
		if swap.SubstituteID != responderID {
			return ErrNotYourSwap
		}
		if swap.Status.Resolved() {
			return ErrSwapResolved
		}
		if swap.Status != model.SwapPending {
			return ErrSwapNotPending
		}

		if accept {
			return tx.UpdateSwapStatus(ctx, swapID, model.SwapAwaitingScheduler, "")
		}
		respondedAt := time.Now().UTC().Format(time.RFC3339)
		return tx.UpdateSwapStatus(ctx, swapID, model.SwapRejected, respondedAt)
	})
	if err != nil {
		return err
	}

	logger.Info("Swap response recorded",
		zap.String("swap_id", swapID),
		zap.String("responder_id", responderID),
		zap.Bool("accepted", accept))
	return nil
}
