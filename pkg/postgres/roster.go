package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tmvalente/escala/pkg/core/model"
)

// LockDate takes a transaction-scoped advisory lock keyed by the date,
// serializing concurrent generation or errata of the same day. The lock
// releases at commit or rollback.
func (t *storeTx) LockDate(ctx context.Context, date string) error {
	_, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, date)
	if err != nil {
		return fmt.Errorf("failed to acquire date lock: %w", err)
	}
	return nil
}

// Posts returns all duty posts.
func (t *storeTx) Posts(ctx context.Context) ([]model.Post, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT id, name, gender_restriction, allowed_years, weight
		FROM posts
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Name, &p.Gender, &p.AllowedYears, &p.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

// EligibleCandidates returns the unranked candidate pool for a post and
// date: people matching the post's gender restriction with no
// unavailability window covering the date. Ranking happens in the
// roster package.
func (t *storeTx) EligibleCandidates(ctx context.Context, post model.Post, date string) ([]model.Candidate, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT p.id, p.name, p.gender, p.class, p.year,
		       p.normal_count, p.weekend_count, p.punishment_balance
		FROM persons p
		WHERE (p.gender = $1 OR $1 = 'Mixed')
		AND NOT EXISTS (
			SELECT 1 FROM unavailability u
			WHERE u.person_id = p.id
			AND $2 BETWEEN u.start_date AND u.end_date
		)
	`, post.Gender, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Gender, &c.Class, &c.Year,
			&c.NormalCount, &c.WeekendCount, &c.PunishmentBalance); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

// HasAllocationNear reports whether the person holds any allocation
// dated within one day of the given date, excluding the named
// allocation when excludeAllocationID is non-empty.
func (t *storeTx) HasAllocationNear(ctx context.Context, personID, date, excludeAllocationID string) (bool, error) {
	lo, err := model.AddDays(date, -1)
	if err != nil {
		return false, err
	}
	hi, err := model.AddDays(date, 1)
	if err != nil {
		return false, err
	}

	var conflicted bool
	err = t.tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM allocations
			WHERE person_id = $1
			AND date BETWEEN $2 AND $3
			AND ($4 = '' OR id <> $4)
		)
	`, personID, lo, hi, excludeAllocationID).Scan(&conflicted)
	if err != nil {
		return false, fmt.Errorf("failed to check fatigue window: %w", err)
	}
	return conflicted, nil
}

// DayHeader returns the header for a date, locked for update, or nil.
func (t *storeTx) DayHeader(ctx context.Context, date string) (*model.DayHeader, error) {
	var hdr model.DayHeader
	err := t.tx.QueryRow(ctx, `
		SELECT date, duty_type, status
		FROM day_headers
		WHERE date = $1
		FOR UPDATE
	`, date).Scan(&hdr.Date, &hdr.DutyType, &hdr.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query day header: %w", err)
	}
	return &hdr, nil
}

// UpsertDayHeader creates or replaces the header for its date.
func (t *storeTx) UpsertDayHeader(ctx context.Context, hdr model.DayHeader) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO day_headers (date, duty_type, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE
		SET duty_type = EXCLUDED.duty_type, status = EXCLUDED.status
	`, hdr.Date, hdr.DutyType, hdr.Status)
	if err != nil {
		return fmt.Errorf("failed to upsert day header: %w", err)
	}
	return nil
}

// SetDayStatus updates one day's lifecycle status.
func (t *storeTx) SetDayStatus(ctx context.Context, date string, status model.DayStatus) error {
	_, err := t.tx.Exec(ctx, `UPDATE day_headers SET status = $2 WHERE date = $1`, date, status)
	if err != nil {
		return fmt.Errorf("failed to set day status: %w", err)
	}
	return nil
}

// PublishRange moves every Draft day in [start, end] to Published.
func (t *storeTx) PublishRange(ctx context.Context, start, end string) (int, error) {
	tag, err := t.tx.Exec(ctx, `
		UPDATE day_headers
		SET status = 'Published'
		WHERE date BETWEEN $1 AND $2
		AND status = 'Draft'
	`, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to publish range: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// AllocationsForDate returns the date's allocations.
func (t *storeTx) AllocationsForDate(ctx context.Context, date string) ([]model.Allocation, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT id, person_id, post_id, date, punishment
		FROM allocations
		WHERE date = $1
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []model.Allocation
	for rows.Next() {
		var a model.Allocation
		if err := rows.Scan(&a.ID, &a.PersonID, &a.PostID, &a.Date, &a.Punishment); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}
	return allocations, nil
}

// DeleteAllocationsForDate removes the date's allocations.
func (t *storeTx) DeleteAllocationsForDate(ctx context.Context, date string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM allocations WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete allocations: %w", err)
	}
	return nil
}

// InsertAllocation writes a new allocation.
func (t *storeTx) InsertAllocation(ctx context.Context, a model.Allocation) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO allocations (id, person_id, post_id, date, punishment)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.PersonID, a.PostID, a.Date, a.Punishment)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}

// Allocation returns an allocation by id, locked for update, or nil.
func (t *storeTx) Allocation(ctx context.Context, id string) (*model.Allocation, error) {
	var a model.Allocation
	err := t.tx.QueryRow(ctx, `
		SELECT id, person_id, post_id, date, punishment
		FROM allocations
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&a.ID, &a.PersonID, &a.PostID, &a.Date, &a.Punishment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation: %w", err)
	}
	return &a, nil
}

// ReassignAllocation rewrites an allocation's holder.
func (t *storeTx) ReassignAllocation(ctx context.Context, allocationID, personID string) error {
	_, err := t.tx.Exec(ctx, `UPDATE allocations SET person_id = $2 WHERE id = $1`, allocationID, personID)
	if err != nil {
		return fmt.Errorf("failed to reassign allocation: %w", err)
	}
	return nil
}

// AdjustCounter adds delta to the person's fairness counter for the
// duty type. The column is selected by a closed switch on the enum,
// never by caller-supplied text.
func (t *storeTx) AdjustCounter(ctx context.Context, personID string, dutyType model.DutyType, delta int) error {
	var query string
	switch dutyType {
	case model.DutyWeekend:
		query = `UPDATE persons SET weekend_count = weekend_count + $2 WHERE id = $1`
	default:
		query = `UPDATE persons SET normal_count = normal_count + $2 WHERE id = $1`
	}

	_, err := t.tx.Exec(ctx, query, personID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust %s counter: %w", dutyType, err)
	}
	return nil
}

// AdjustPunishment adds delta to the person's punishment balance. The
// schema rejects balances below zero.
func (t *storeTx) AdjustPunishment(ctx context.Context, personID string, delta int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE persons SET punishment_balance = punishment_balance + $2 WHERE id = $1
	`, personID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust punishment balance: %w", err)
	}
	return nil
}
