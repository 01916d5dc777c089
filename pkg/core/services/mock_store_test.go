package services

import (
	"context"
	"sort"

	"github.com/tmvalente/escala/pkg/core/model"
	"github.com/tmvalente/escala/pkg/db"
)

// memStore is an in-memory db.Store. InTx runs against a deep copy of
// the state and swaps it in only on success, so failed operations leave
// no partial effects, matching the real store's rollback behavior.
type memStore struct {
	posts       []model.Post
	candidates  map[string]*model.Candidate
	windows     []model.UnavailabilityWindow
	headers     map[string]model.DayHeader
	allocations map[string]model.Allocation
	swaps       map[string]model.SwapRequest
}

func newMemStore() *memStore {
	return &memStore{
		candidates:  make(map[string]*model.Candidate),
		headers:     make(map[string]model.DayHeader),
		allocations: make(map[string]model.Allocation),
		swaps:       make(map[string]model.SwapRequest),
	}
}

func (m *memStore) addCandidate(c model.Candidate) {
	cc := c
	m.candidates[c.ID] = &cc
}

func (m *memStore) clone() *memStore {
	next := newMemStore()
	next.posts = append([]model.Post(nil), m.posts...)
	next.windows = append([]model.UnavailabilityWindow(nil), m.windows...)
	for id, c := range m.candidates {
		cc := *c
		next.candidates[id] = &cc
	}
	for k, v := range m.headers {
		next.headers[k] = v
	}
	for k, v := range m.allocations {
		next.allocations[k] = v
	}
	for k, v := range m.swaps {
		next.swaps[k] = v
	}
	return next
}

func (m *memStore) InTx(_ context.Context, fn func(tx db.Tx) error) error {
	next := m.clone()
	if err := fn(&memTx{state: next}); err != nil {
		return err
	}
	*m = *next
	return nil
}

func (m *memStore) RosterDays(_ context.Context, from string) ([]model.DayView, error) {
	var dates []string
	for date := range m.headers {
		if date >= from {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	postsByID := make(map[int64]model.Post)
	for _, p := range m.posts {
		postsByID[p.ID] = p
	}

	days := make([]model.DayView, 0, len(dates))
	for _, date := range dates {
		hdr := m.headers[date]
		day := model.DayView{
			Date:        hdr.Date,
			DutyType:    hdr.DutyType,
			Status:      hdr.Status,
			Allocations: []model.AllocationView{},
		}
		for _, a := range m.allocations {
			if a.Date != date {
				continue
			}
			view := model.AllocationView{
				AllocationID: a.ID,
				PersonID:     a.PersonID,
				PostName:     postsByID[a.PostID].Name,
				Punishment:   a.Punishment,
			}
			if c, ok := m.candidates[a.PersonID]; ok {
				view.PersonName = c.Name
				view.Class = c.Class
			}
			day.Allocations = append(day.Allocations, view)
		}
		sort.Slice(day.Allocations, func(i, j int) bool {
			return day.Allocations[i].PostName < day.Allocations[j].PostName
		})
		days = append(days, day)
	}
	return days, nil
}

func (m *memStore) PendingSwaps(_ context.Context) ([]model.SwapView, error) {
	var views []model.SwapView
	for _, s := range m.swaps {
		if s.Status != model.SwapAwaitingScheduler {
			continue
		}
		view := model.SwapView{ID: s.ID, Reason: s.Reason}
		if c, ok := m.candidates[s.RequesterID]; ok {
			view.RequesterName = c.Name
		}
		if c, ok := m.candidates[s.SubstituteID]; ok {
			view.SubstituteName = c.Name
		}
		if a, ok := m.allocations[s.AllocationID]; ok {
			view.Date = a.Date
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Date < views[j].Date })
	return views, nil
}

func (m *memStore) PunishmentDebtors(_ context.Context) ([]model.Debtor, error) {
	var debtors []model.Debtor
	for _, c := range m.candidates {
		if c.PunishmentBalance > 0 {
			debtors = append(debtors, model.Debtor{ID: c.ID, Name: c.Name, Balance: c.PunishmentBalance})
		}
	}
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].Balance != debtors[j].Balance {
			return debtors[i].Balance > debtors[j].Balance
		}
		return debtors[i].Name < debtors[j].Name
	})
	return debtors, nil
}

// memTx implements db.Tx over the cloned state.
type memTx struct {
	state *memStore
}

func (t *memTx) LockDate(context.Context, string) error { return nil }

func (t *memTx) Posts(context.Context) ([]model.Post, error) {
	return append([]model.Post(nil), t.state.posts...), nil
}

func (t *memTx) EligibleCandidates(_ context.Context, post model.Post, date string) ([]model.Candidate, error) {
	var pool []model.Candidate
	for _, c := range t.state.candidates {
		if post.Gender != model.GenderMixed && c.Gender != post.Gender {
			continue
		}
		unavailable := false
		for _, w := range t.state.windows {
			if w.PersonID == c.ID && w.Covers(date) {
				unavailable = true
				break
			}
		}
		if unavailable {
			continue
		}
		pool = append(pool, *c)
	}
	return pool, nil
}

func (t *memTx) HasAllocationNear(_ context.Context, personID, date, excludeAllocationID string) (bool, error) {
	lo, err := model.AddDays(date, -1)
	if err != nil {
		return false, err
	}
	hi, err := model.AddDays(date, 1)
	if err != nil {
		return false, err
	}
	for _, a := range t.state.allocations {
		if a.PersonID != personID {
			continue
		}
		if excludeAllocationID != "" && a.ID == excludeAllocationID {
			continue
		}
		if lo <= a.Date && a.Date <= hi {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) DayHeader(_ context.Context, date string) (*model.DayHeader, error) {
	hdr, ok := t.state.headers[date]
	if !ok {
		return nil, nil
	}
	return &hdr, nil
}

func (t *memTx) UpsertDayHeader(_ context.Context, hdr model.DayHeader) error {
	t.state.headers[hdr.Date] = hdr
	return nil
}

func (t *memTx) SetDayStatus(_ context.Context, date string, status model.DayStatus) error {
	hdr := t.state.headers[date]
	hdr.Status = status
	t.state.headers[date] = hdr
	return nil
}

func (t *memTx) PublishRange(_ context.Context, start, end string) (int, error) {
	published := 0
	for date, hdr := range t.state.headers {
		if date >= start && date <= end && hdr.Status == model.DayDraft {
			hdr.Status = model.DayPublished
			t.state.headers[date] = hdr
			published++
		}
	}
	return published, nil
}

func (t *memTx) AllocationsForDate(_ context.Context, date string) ([]model.Allocation, error) {
	var allocs []model.Allocation
	for _, a := range t.state.allocations {
		if a.Date == date {
			allocs = append(allocs, a)
		}
	}
	sort.Slice(allocs, func(i, j int) bool { return allocs[i].ID < allocs[j].ID })
	return allocs, nil
}

func (t *memTx) DeleteAllocationsForDate(_ context.Context, date string) error {
	for id, a := range t.state.allocations {
		if a.Date == date {
			delete(t.state.allocations, id)
		}
	}
	return nil
}

func (t *memTx) InsertAllocation(_ context.Context, a model.Allocation) error {
	t.state.allocations[a.ID] = a
	return nil
}

func (t *memTx) Allocation(_ context.Context, id string) (*model.Allocation, error) {
	a, ok := t.state.allocations[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (t *memTx) ReassignAllocation(_ context.Context, allocationID, personID string) error {
	a := t.state.allocations[allocationID]
	a.PersonID = personID
	t.state.allocations[allocationID] = a
	return nil
}

func (t *memTx) AdjustCounter(_ context.Context, personID string, dutyType model.DutyType, delta int) error {
	if c, ok := t.state.candidates[personID]; ok {
		dutyType.AddToCounter(c, delta)
	}
	return nil
}

func (t *memTx) AdjustPunishment(_ context.Context, personID string, delta int) error {
	if c, ok := t.state.candidates[personID]; ok {
		c.PunishmentBalance += delta
	}
	return nil
}

func (t *memTx) InsertSwap(_ context.Context, s model.SwapRequest) error {
	t.state.swaps[s.ID] = s
	return nil
}

func (t *memTx) Swap(_ context.Context, id string) (*model.SwapRequest, error) {
	s, ok := t.state.swaps[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (t *memTx) UpdateSwapStatus(_ context.Context, id string, status model.SwapStatus, respondedAt string) error {
	s := t.state.swaps[id]
	s.Status = status
	if respondedAt != "" {
		s.RespondedAt = respondedAt
	}
	t.state.swaps[id] = s
	return nil
}
