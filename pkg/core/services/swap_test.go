package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tmvalente/escala/pkg/core/model"
)

// swapStore seeds a draft day far in the future with rita holding the
// Gate duty and nuno available as substitute.
func swapStore() *memStore {
	store := newMemStore()
	store.posts = []model.Post{
		{ID: 1, Name: "Gate", Gender: model.GenderMixed, AllowedYears: "1,2", Weight: 1},
	}
	store.addCandidate(model.Candidate{ID: "rita", Name: "Rita", Gender: "F", Year: 1, NormalCount: 3})
	store.addCandidate(model.Candidate{ID: "nuno", Name: "Nuno", Gender: "M", Year: 2, NormalCount: 2})
	store.headers["2099-06-10"] = model.DayHeader{Date: "2099-06-10", DutyType: model.DutyNormal, Status: model.DayDraft}
	store.allocations["alloc-1"] = model.Allocation{ID: "alloc-1", PersonID: "rita", PostID: 1, Date: "2099-06-10"}
	return store
}

func TestRequestSwap_CreatesPendingRequest(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()

	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)
	require.NotNil(t, swap)

	stored := store.swaps[swap.ID]
	assert.Equal(t, model.SwapPending, stored.Status)
	assert.Equal(t, "rita", stored.RequesterID)
	assert.Equal(t, "nuno", stored.SubstituteID)
	assert.Equal(t, "alloc-1", stored.AllocationID)
	assert.Equal(t, "family event", stored.Reason)
	assert.NotEmpty(t, stored.CreatedAt)
	assert.Empty(t, stored.RespondedAt)
}

func TestRequestSwap_OnlyHolderMayRequest(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()

	_, err := RequestSwap(ctx, store, logger, "nuno", "alloc-1", "rita", "", "let me take it")
	assert.ErrorIs(t, err, ErrNotAllocationHolder)
	assert.Empty(t, store.swaps)
}

func TestRequestSwap_PublishedDayRefused(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	hdr := store.headers["2099-06-10"]
	hdr.Status = model.DayPublished
	store.headers["2099-06-10"] = hdr

	_, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	assert.ErrorIs(t, err, ErrDayPublished)
	assert.Empty(t, store.swaps)
}

func TestRequestSwap_SubstituteFatigueBlocks(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	// nuno already serves the day before the target duty.
	store.headers["2099-06-09"] = model.DayHeader{Date: "2099-06-09", DutyType: model.DutyNormal, Status: model.DayDraft}
	store.allocations["alloc-0"] = model.Allocation{ID: "alloc-0", PersonID: "nuno", PostID: 1, Date: "2099-06-09"}

	_, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")

	var fatigue *FatigueError
	require.ErrorAs(t, err, &fatigue)
	assert.Equal(t, "nuno", fatigue.PersonID)
	assert.Empty(t, store.swaps, "no swap record may exist after a fatigue rejection")
}

func TestRequestSwap_RecordsCounterAllocation(t *testing.T) {
	// A mutual swap names the duty offered in return. It is recorded for
	// the scheduler's context only; nothing moves until approval.
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	store.headers["2099-06-20"] = model.DayHeader{Date: "2099-06-20", DutyType: model.DutyNormal, Status: model.DayDraft}
	store.allocations["alloc-n"] = model.Allocation{ID: "alloc-n", PersonID: "nuno", PostID: 1, Date: "2099-06-20"}

	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "alloc-n", "family event")
	require.NoError(t, err)

	assert.Equal(t, "alloc-n", store.swaps[swap.ID].CounterAllocationID)
	assert.Equal(t, "nuno", store.allocations["alloc-n"].PersonID)
}

func TestRequestSwap_PastAllocationRefused(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	store.headers["2001-01-05"] = model.DayHeader{Date: "2001-01-05", DutyType: model.DutyNormal, Status: model.DayDraft}
	store.allocations["alloc-old"] = model.Allocation{ID: "alloc-old", PersonID: "rita", PostID: 1, Date: "2001-01-05"}

	_, err := RequestSwap(ctx, store, logger, "rita", "alloc-old", "nuno", "", "too late")
	assert.ErrorIs(t, err, ErrAllocationInPast)
}

func TestRequestSwap_Validation(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()

	var vErr *ValidationError

	_, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "")
	assert.ErrorAs(t, err, &vErr, "reason is required")

	_, err = RequestSwap(ctx, store, logger, "rita", "alloc-1", "rita", "", "swap with myself")
	assert.ErrorAs(t, err, &vErr)

	_, err = RequestSwap(ctx, store, logger, "", "alloc-1", "nuno", "", "x")
	assert.ErrorAs(t, err, &vErr)

	_, err = RequestSwap(ctx, store, logger, "rita", "missing", "nuno", "", "x")
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

func TestRespondToSwap_AcceptHandsOffToScheduler(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)

	require.NoError(t, RespondToSwap(ctx, store, logger, swap.ID, "nuno", true))

	stored := store.swaps[swap.ID]
	assert.Equal(t, model.SwapAwaitingScheduler, stored.Status)
	assert.Empty(t, stored.RespondedAt, "acceptance is a hand-off, not a final response")

	// The allocation itself is untouched until the scheduler approves,
	// and the substitute cannot respond a second time.
	assert.Equal(t, "rita", store.allocations["alloc-1"].PersonID)
	assert.ErrorIs(t, RespondToSwap(ctx, store, logger, swap.ID, "nuno", false), ErrSwapNotPending)
}

func TestRespondToSwap_DeclineEndsWorkflow(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)

	require.NoError(t, RespondToSwap(ctx, store, logger, swap.ID, "nuno", false))

	stored := store.swaps[swap.ID]
	assert.Equal(t, model.SwapRejected, stored.Status)
	assert.NotEmpty(t, stored.RespondedAt)

	// Terminal: a second response is refused.
	assert.ErrorIs(t, RespondToSwap(ctx, store, logger, swap.ID, "nuno", true), ErrSwapResolved)
}

func TestRespondToSwap_OnlyAddressedSubstitute(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	store.addCandidate(model.Candidate{ID: "zoe", Name: "Zoe", Gender: "F", Year: 1})
	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)

	assert.ErrorIs(t, RespondToSwap(ctx, store, logger, swap.ID, "zoe", true), ErrNotYourSwap)
	assert.ErrorIs(t, RespondToSwap(ctx, store, logger, "missing", "nuno", true), ErrSwapNotFound)
	assert.Equal(t, model.SwapPending, store.swaps[swap.ID].Status)
}

func TestApproveSwap_TransfersDutyAndFairnessPoint(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)
	require.NoError(t, RespondToSwap(ctx, store, logger, swap.ID, "nuno", true))

	require.NoError(t, ApproveSwap(ctx, store, logger, swap.ID))

	assert.Equal(t, "nuno", store.allocations["alloc-1"].PersonID)
	assert.Equal(t, 2, store.candidates["rita"].NormalCount, "requester gives back the fairness point")
	assert.Equal(t, 3, store.candidates["nuno"].NormalCount, "substitute earns the fairness point")

	stored := store.swaps[swap.ID]
	assert.Equal(t, model.SwapApproved, stored.Status)
	assert.NotEmpty(t, stored.RespondedAt)
}

func TestApproveSwap_WeekendDutyMovesWeekendCounter(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	hdr := store.headers["2099-06-10"]
	hdr.DutyType = model.DutyWeekend
	store.headers["2099-06-10"] = hdr
	store.candidates["rita"].WeekendCount = 4

	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)
	require.NoError(t, ApproveSwap(ctx, store, logger, swap.ID))

	assert.Equal(t, 3, store.candidates["rita"].WeekendCount)
	assert.Equal(t, 1, store.candidates["nuno"].WeekendCount)
	assert.Equal(t, 3, store.candidates["rita"].NormalCount, "normal counter untouched")
	assert.Equal(t, 2, store.candidates["nuno"].NormalCount)
}

func TestApproveSwap_PunishmentDutyTransfersNoPoints(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	alloc := store.allocations["alloc-1"]
	alloc.Punishment = true
	store.allocations["alloc-1"] = alloc

	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)
	require.NoError(t, ApproveSwap(ctx, store, logger, swap.ID))

	assert.Equal(t, "nuno", store.allocations["alloc-1"].PersonID)
	assert.Equal(t, 3, store.candidates["rita"].NormalCount)
	assert.Equal(t, 2, store.candidates["nuno"].NormalCount)
}

func TestApproveSwap_RechecksFatigue(t *testing.T) {
	// The substitute accepted, then picked up a conflicting duty on the
	// adjacent day before the scheduler got around to approving.
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)
	require.NoError(t, RespondToSwap(ctx, store, logger, swap.ID, "nuno", true))

	store.headers["2099-06-11"] = model.DayHeader{Date: "2099-06-11", DutyType: model.DutyNormal, Status: model.DayDraft}
	store.allocations["alloc-2"] = model.Allocation{ID: "alloc-2", PersonID: "nuno", PostID: 1, Date: "2099-06-11"}

	err = ApproveSwap(ctx, store, logger, swap.ID)

	var fatigue *FatigueError
	require.ErrorAs(t, err, &fatigue)
	assert.Equal(t, "nuno", fatigue.PersonID)

	// Nothing moved: allocation, counters and swap status are unchanged.
	assert.Equal(t, "rita", store.allocations["alloc-1"].PersonID)
	assert.Equal(t, 3, store.candidates["rita"].NormalCount)
	assert.Equal(t, 2, store.candidates["nuno"].NormalCount)
	assert.Equal(t, model.SwapAwaitingScheduler, store.swaps[swap.ID].Status)
}

func TestApproveSwap_DirectApprovalFromPending(t *testing.T) {
	// The general approval path may finalize a request the substitute
	// has not formally accepted yet.
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)

	require.NoError(t, ApproveSwap(ctx, store, logger, swap.ID))
	assert.Equal(t, model.SwapApproved, store.swaps[swap.ID].Status)
}

func TestApproveSwap_ResolvedOrMissing(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := swapStore()
	swap, err := RequestSwap(ctx, store, logger, "rita", "alloc-1", "nuno", "", "family event")
	require.NoError(t, err)
	require.NoError(t, RespondToSwap(ctx, store, logger, swap.ID, "nuno", false))

	assert.ErrorIs(t, ApproveSwap(ctx, store, logger, swap.ID), ErrSwapResolved)
	assert.ErrorIs(t, ApproveSwap(ctx, store, logger, "missing"), ErrSwapNotFound)
}
