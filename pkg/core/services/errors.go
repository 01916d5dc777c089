package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for state conflicts. These surface conditions a caller
// can act on; infrastructure failures are wrapped and propagated as-is.
var (
	// ErrDayPublished is returned when an operation needs a Draft day but
	// the day is already Published. Reopen the day first.
	ErrDayPublished = errors.New("day is already published; reopen it before changing it")

	// ErrDayNotFound is returned when the target date was never generated.
	ErrDayNotFound = errors.New("no roster exists for that date")

	// ErrDayNotPublished is returned by Reopen when the day is still Draft.
	ErrDayNotPublished = errors.New("day is not published; nothing to reopen")

	// ErrNothingToPublish is returned when a publish range contains no
	// Draft days. Recoverable: the caller simply had nothing to do.
	ErrNothingToPublish = errors.New("no draft days in range; nothing to publish")

	// ErrAllocationNotFound is returned when a swap names a missing allocation.
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrNotAllocationHolder is returned when someone requests a swap for
	// a duty they do not hold.
	ErrNotAllocationHolder = errors.New("allocation is not held by the requester")

	// ErrAllocationInPast is returned when a swap targets a past duty.
	ErrAllocationInPast = errors.New("allocation date has already passed")

	// ErrSwapNotFound is returned when a swap request id does not exist.
	ErrSwapNotFound = errors.New("swap request not found")

	// ErrNotYourSwap is returned when someone other than the proposed
	// substitute responds to a request.
	ErrNotYourSwap = errors.New("swap request is not addressed to this person")

	// ErrSwapResolved is returned when a swap request has already reached
	// a terminal state.
	ErrSwapResolved = errors.New("swap request already resolved")

	// ErrSwapNotPending is returned when a substitute responds to a
	// request that has left the Pending state, for example one they
	// already accepted.
	ErrSwapNotPending = errors.New("swap request is no longer awaiting the substitute")
)

// StaffingError means no eligible, non-fatigued candidate exists for a
// post. It aborts the whole day: an operator must fix staffing or the
// post's restrictions before the roster can be generated.
type StaffingError struct {
	Date          string
	PostName      string
	RequiredYears string
}

func (e *StaffingError) Error() string {
	return fmt.Sprintf("no candidate available for post %q on %s (required years: %s); check seniority restrictions or staffing levels",
		e.PostName, e.Date, e.RequiredYears)
}

// FatigueError means placing a person on a date would violate the
// minimum rest window around their other duties.
type FatigueError struct {
	PersonID string
	Date     string
}

func (e *FatigueError) Error() string {
	return fmt.Sprintf("person %s would violate the 24h rest rule around %s", e.PersonID, e.Date)
}

// ValidationError rejects malformed input before any transaction opens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DateError wraps a failure with the calendar date it occurred on, so a
// period run can report exactly which day stopped it.
type DateError struct {
	Date string
	Err  error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("date %s: %v", e.Date, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }
