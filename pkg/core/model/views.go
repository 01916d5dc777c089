package model

// Read-side projections returned by the store for display surfaces.

// AllocationView is one roster line with names resolved.
type AllocationView struct {
	AllocationID string
	PersonID     string
	PersonName   string
	PostName     string
	Class        string
	Punishment   bool
}

// DayView groups a day's allocations under its header, ordered by post
// weight descending then post name.
type DayView struct {
	Date        string
	DutyType    DutyType
	Status      DayStatus
	Allocations []AllocationView
}

// SwapView is a pending swap with names resolved for the scheduler queue.
type SwapView struct {
	ID             string
	RequesterName  string
	SubstituteName string
	Date           string
	PostName       string
	Reason         string
}

// Debtor is a person with outstanding punishment balance.
type Debtor struct {
	ID      string
	Name    string
	Balance int
}
