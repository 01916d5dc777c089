package model

import (
	"strconv"
	"strings"
)

// DutyType classifies a roster day and selects which fairness counter
// the day's duties are booked against.
type DutyType string

const (
	// DutyNormal is the weekday routine.
	DutyNormal DutyType = "RN"
	// DutyWeekend is the weekend/holiday routine.
	DutyWeekend DutyType = "RD"
)

func (d DutyType) IsValid() bool {
	return d == DutyNormal || d == DutyWeekend
}

// CounterOf returns the candidate's fairness counter for this duty type.
func (d DutyType) CounterOf(c *Candidate) int {
	if d == DutyWeekend {
		return c.WeekendCount
	}
	return c.NormalCount
}

// AddToCounter adjusts the candidate's fairness counter for this duty type.
func (d DutyType) AddToCounter(c *Candidate, delta int) {
	if d == DutyWeekend {
		c.WeekendCount += delta
		return
	}
	c.NormalCount += delta
}

// DayStatus is the lifecycle state of a roster day.
type DayStatus string

const (
	DayDraft     DayStatus = "Draft"
	DayPublished DayStatus = "Published"
)

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapPending           SwapStatus = "Pending"
	SwapAwaitingScheduler SwapStatus = "AwaitingScheduler"
	SwapApproved          SwapStatus = "Approved"
	SwapRejected          SwapStatus = "Rejected"
)

// Resolved reports whether the request has reached a terminal state.
func (s SwapStatus) Resolved() bool {
	return s == SwapApproved || s == SwapRejected
}

// GenderRestriction values for a post. Mixed accepts anyone.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderMixed  = "Mixed"
)

// Post is a duty position with gender and seniority eligibility rules.
// Reference data, created by admin tooling.
type Post struct {
	ID           int64
	Name         string
	Gender       string // "M", "F" or "Mixed"
	AllowedYears string // comma-separated seniority years, e.g. "1,2"
	Weight       int    // display/processing priority
}

// AllowsYear reports whether the post accepts the given seniority year.
// The allowed set is a strict membership list, not a range.
func (p Post) AllowsYear(year int) bool {
	target := strconv.Itoa(year)
	for _, y := range strings.Split(p.AllowedYears, ",") {
		if strings.TrimSpace(y) == target {
			return true
		}
	}
	return false
}

// Candidate is the scheduling view of a person: identity plus the
// fairness bookkeeping fields mutated by generation and swaps.
type Candidate struct {
	ID                string
	Name              string
	Gender            string
	Class             string
	Year              int
	NormalCount       int // non-punishment duties performed on normal routine
	WeekendCount      int // non-punishment duties performed on weekend/holiday routine
	PunishmentBalance int // debt duties owed; never negative
}

// UnavailabilityWindow blocks a person from duty between Start and End
// inclusive. Owned by leave/medical management.
type UnavailabilityWindow struct {
	ID       int64
	PersonID string
	Start    string // YYYY-MM-DD
	End      string // YYYY-MM-DD
	Reason   string
}

// Covers reports whether the window blocks the given date.
func (w UnavailabilityWindow) Covers(date string) bool {
	return w.Start <= date && date <= w.End
}

// Allocation assigns one person to one post on one date.
type Allocation struct {
	ID         string
	PersonID   string
	PostID     int64
	Date       string // YYYY-MM-DD
	Punishment bool   // duty consumed punishment balance instead of counting
}

// DayHeader is the per-date roster record. At most one per date.
type DayHeader struct {
	Date     string // YYYY-MM-DD, primary key
	DutyType DutyType
	Status   DayStatus
}

// SwapRequest records a proposed duty transfer from its holder to a
// substitute. The substitute consents, then a scheduler finalizes.
type SwapRequest struct {
	ID                  string
	RequesterID         string
	SubstituteID        string
	AllocationID        string
	CounterAllocationID string // optional duty offered in return, informational
	Status              SwapStatus
	Reason              string
	CreatedAt           string
	RespondedAt         string
}
