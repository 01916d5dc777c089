package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDutyType_IsValid(t *testing.T) {
	assert.True(t, DutyNormal.IsValid())
	assert.True(t, DutyWeekend.IsValid())
	assert.False(t, DutyType("XX").IsValid())
	assert.False(t, DutyType("").IsValid())
}

func TestDutyType_CounterSelection(t *testing.T) {
	c := &Candidate{NormalCount: 3, WeekendCount: 7}

	assert.Equal(t, 3, DutyNormal.CounterOf(c))
	assert.Equal(t, 7, DutyWeekend.CounterOf(c))

	DutyNormal.AddToCounter(c, 1)
	DutyWeekend.AddToCounter(c, -2)
	assert.Equal(t, 4, c.NormalCount)
	assert.Equal(t, 5, c.WeekendCount)
}

func TestSwapStatus_Resolved(t *testing.T) {
	assert.False(t, SwapPending.Resolved())
	assert.False(t, SwapAwaitingScheduler.Resolved())
	assert.True(t, SwapApproved.Resolved())
	assert.True(t, SwapRejected.Resolved())
}

func TestPost_AllowsYear(t *testing.T) {
	p := Post{AllowedYears: "1,3"}

	assert.True(t, p.AllowsYear(1))
	assert.False(t, p.AllowsYear(2), "membership list, not a range")
	assert.True(t, p.AllowsYear(3))
	assert.False(t, p.AllowsYear(13))

	spaced := Post{AllowedYears: "1, 2"}
	assert.True(t, spaced.AllowsYear(2))
}

func TestUnavailabilityWindow_Covers(t *testing.T) {
	w := UnavailabilityWindow{Start: "2026-03-02", End: "2026-03-05"}

	assert.False(t, w.Covers("2026-03-01"))
	assert.True(t, w.Covers("2026-03-02"), "bounds are inclusive")
	assert.True(t, w.Covers("2026-03-04"))
	assert.True(t, w.Covers("2026-03-05"))
	assert.False(t, w.Covers("2026-03-06"))
}

func TestAddDays(t *testing.T) {
	next, err := AddDays("2026-03-02", 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", next)

	prev, err := AddDays("2026-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", prev)

	_, err = AddDays("02/03/2026", 1)
	assert.Error(t, err)
}

func TestParseDate_RejectsOtherLayouts(t *testing.T) {
	_, err := ParseDate("2026-3-2")
	assert.Error(t, err)

	parsed, err := ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", FormatDate(parsed))
}
