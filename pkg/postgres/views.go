package postgres

import (
	"context"
	"fmt"

	"github.com/tmvalente/escala/pkg/core/model"
)

// RosterDays returns day views from the given date onward. Days come
// back ordered by date ascending; each day's allocations are ordered by
// post weight descending then post name, matching generation order.
func (d *DB) RosterDays(ctx context.Context, from string) ([]model.DayView, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT e.date, e.duty_type, e.status,
		       a.id, a.person_id, p.name, po.name, p.class, a.punishment
		FROM day_headers e
		LEFT JOIN allocations a ON a.date = e.date
		LEFT JOIN persons p ON p.id = a.person_id
		LEFT JOIN posts po ON po.id = a.post_id
		WHERE e.date >= $1
		ORDER BY e.date ASC, po.weight DESC, po.name ASC
	`, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster days: %w", err)
	}
	defer rows.Close()

	var days []model.DayView
	for rows.Next() {
		var (
			date     string
			dutyType model.DutyType
			status   model.DayStatus

			allocID, personID, personName, postName, class *string
			punishment                                     *bool
		)
		if err := rows.Scan(&date, &dutyType, &status,
			&allocID, &personID, &personName, &postName, &class, &punishment); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}

		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, model.DayView{
				Date:        date,
				DutyType:    dutyType,
				Status:      status,
				Allocations: []model.AllocationView{},
			})
		}

		// Days with no allocations come back with NULL join columns.
		if allocID == nil {
			continue
		}

		day := &days[len(days)-1]
		view := model.AllocationView{AllocationID: *allocID}
		if personID != nil {
			view.PersonID = *personID
		}
		if personName != nil {
			view.PersonName = *personName
		}
		if postName != nil {
			view.PostName = *postName
		}
		if class != nil {
			view.Class = *class
		}
		if punishment != nil {
			view.Punishment = *punishment
		}
		day.Allocations = append(day.Allocations, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster days: %w", err)
	}
	return days, nil
}

// PendingSwaps returns swaps awaiting scheduler approval, soonest duty
// first, with ids resolved to display names.
func (d *DB) PendingSwaps(ctx context.Context) ([]model.SwapView, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT t.id, u1.name, u2.name, a.date, po.name, t.reason
		FROM swaps t
		JOIN persons u1 ON u1.id = t.requester_id
		JOIN persons u2 ON u2.id = t.substitute_id
		JOIN allocations a ON a.id = t.allocation_id
		JOIN posts po ON po.id = a.post_id
		WHERE t.status = 'AwaitingScheduler'
		ORDER BY a.date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending swaps: %w", err)
	}
	defer rows.Close()

	var swaps []model.SwapView
	for rows.Next() {
		var s model.SwapView
		if err := rows.Scan(&s.ID, &s.RequesterName, &s.SubstituteName, &s.Date, &s.PostName, &s.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan pending swap: %w", err)
		}
		swaps = append(swaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending swaps: %w", err)
	}
	return swaps, nil
}

// PunishmentDebtors returns people with positive punishment balance,
// heaviest debtors first.
func (d *DB) PunishmentDebtors(ctx context.Context) ([]model.Debtor, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, punishment_balance
		FROM persons
		WHERE punishment_balance > 0
		ORDER BY punishment_balance DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query punishment debtors: %w", err)
	}
	defer rows.Close()

	var debtors []model.Debtor
	for rows.Next() {
		var p model.Debtor
		if err := rows.Scan(&p.ID, &p.Name, &p.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan debtor: %w", err)
		}
		debtors = append(debtors, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debtors: %w", err)
	}
	return debtors, nil
}
