// Package db defines the store contracts consumed by the roster
// services. Mutating operations run inside a single transaction obtained
// from Store.InTx; the Tx view provides read-your-writes semantics so
// fatigue checks see allocations written earlier in the same unit.
package db

import (
	"context"

	"github.com/tmvalente/escala/pkg/core/model"
)

// Store is the root handle to the roster database.
type Store interface {
	// InTx runs fn inside one transaction. The transaction commits when
	// fn returns nil and rolls back otherwise; no partial effects survive
	// a failed operation.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// RosterDays returns day views from the given date onward, ordered by
	// date ascending with allocations ordered by post weight descending
	// then post name.
	RosterDays(ctx context.Context, from string) ([]model.DayView, error)

	// PendingSwaps returns swaps awaiting scheduler action, ordered by
	// duty date ascending.
	PendingSwaps(ctx context.Context) ([]model.SwapView, error)

	// PunishmentDebtors returns people with positive punishment balance,
	// ordered by balance descending then name ascending.
	PunishmentDebtors(ctx context.Context) ([]model.Debtor, error)
}

// Tx is the transactional view used by the services.
type Tx interface {
	// LockDate serializes concurrent work on one calendar date. Two
	// transactions locking the same date block each other until commit.
	LockDate(ctx context.Context, date string) error

	// Posts returns all duty posts.
	Posts(ctx context.Context) ([]model.Post, error)

	// EligibleCandidates returns the unranked candidate pool for a post
	// and date: gender-compatible people with no unavailability window
	// covering the date.
	EligibleCandidates(ctx context.Context, post model.Post, date string) ([]model.Candidate, error)

	// HasAllocationNear implements the fatigue scan; see roster.FatigueChecker.
	HasAllocationNear(ctx context.Context, personID, date, excludeAllocationID string) (bool, error)

	// DayHeader returns the header for a date, locked for update, or nil
	// if the date has never been generated.
	DayHeader(ctx context.Context, date string) (*model.DayHeader, error)

	// UpsertDayHeader creates or replaces the header for its date.
	UpsertDayHeader(ctx context.Context, hdr model.DayHeader) error

	// SetDayStatus updates one day's lifecycle status.
	SetDayStatus(ctx context.Context, date string, status model.DayStatus) error

	// PublishRange moves every Draft day in [start, end] to Published and
	// returns how many days changed.
	PublishRange(ctx context.Context, start, end string) (int, error)

	// AllocationsForDate returns the date's allocations.
	AllocationsForDate(ctx context.Context, date string) ([]model.Allocation, error)

	// DeleteAllocationsForDate removes the date's allocations.
	DeleteAllocationsForDate(ctx context.Context, date string) error

	// InsertAllocation writes a new allocation.
	InsertAllocation(ctx context.Context, a model.Allocation) error

	// Allocation returns an allocation by id, locked for update, or nil.
	Allocation(ctx context.Context, id string) (*model.Allocation, error)

	// ReassignAllocation rewrites an allocation's holder.
	ReassignAllocation(ctx context.Context, allocationID, personID string) error

	// AdjustCounter adds delta to a person's fairness counter for the
	// given duty type.
	AdjustCounter(ctx context.Context, personID string, dutyType model.DutyType, delta int) error

	// AdjustPunishment adds delta to a person's punishment balance.
	AdjustPunishment(ctx context.Context, personID string, delta int) error

	// InsertSwap writes a new swap request.
	InsertSwap(ctx context.Context, s model.SwapRequest) error

	// Swap returns a swap request by id, locked for update, or nil.
	Swap(ctx context.Context, id string) (*model.SwapRequest, error)

	// UpdateSwapStatus sets a swap's status, and its response timestamp
	// when respondedAt is non-empty.
	UpdateSwapStatus(ctx context.Context, id string, status model.SwapStatus, respondedAt string) error
}
