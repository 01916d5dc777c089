package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tmvalente/escala/pkg/core/model"
)

// InsertSwap writes a new swap request.
func (t *storeTx) InsertSwap(ctx context.Context, s model.SwapRequest) error {
	var counterAllocationID *string
	if s.CounterAllocationID != "" {
		counterAllocationID = &s.CounterAllocationID
	}

	_, err := t.tx.Exec(ctx, `
		INSERT INTO swaps (id, requester_id, substitute_id, allocation_id,
			counter_allocation_id, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.RequesterID, s.SubstituteID, s.AllocationID,
		counterAllocationID, s.Status, s.Reason, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert swap request: %w", err)
	}
	return nil
}

// Swap returns a swap request by id, locked for update, or nil.
func (t *storeTx) Swap(ctx context.Context, id string) (*model.SwapRequest, error) {
	var s model.SwapRequest
	var counterAllocationID, respondedAt *string
	err := t.tx.QueryRow(ctx, `
		SELECT id, requester_id, substitute_id, allocation_id,
		       counter_allocation_id, status, reason, created_at, responded_at
		FROM swaps
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&s.ID, &s.RequesterID, &s.SubstituteID, &s.AllocationID,
		&counterAllocationID, &s.Status, &s.Reason, &s.CreatedAt, &respondedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query swap request: %w", err)
	}
	if counterAllocationID != nil {
		s.CounterAllocationID = *counterAllocationID
	}
	if respondedAt != nil {
		s.RespondedAt = *respondedAt
	}
	return &s, nil
}

// UpdateSwapStatus sets a swap's status and, when respondedAt is
// non-empty, its response timestamp.
func (t *storeTx) UpdateSwapStatus(ctx context.Context, id string, status model.SwapStatus, respondedAt string) error {
	var err error
	if respondedAt != "" {
		_, err = t.tx.Exec(ctx, `
			UPDATE swaps SET status = $2, responded_at = $3 WHERE id = $1
		`, id, status, respondedAt)
	} else {
		_, err = t.tx.Exec(ctx, `UPDATE swaps SET status = $2 WHERE id = $1`, id, status)
	}
	if err != nil {
		return fmt.Errorf("failed to update swap status: %w", err)
	}
	return nil
}
