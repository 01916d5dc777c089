package roster

import (
	"context"

	"github.com/tmvalente/escala/pkg/core/model"
)

// FatigueChecker reports whether a person already holds an allocation
// inside the rest window around a date. Implementations must evaluate
// against the caller's in-flight transaction so that allocations written
// earlier in the same generation pass are visible.
type FatigueChecker interface {
	// HasAllocationNear reports whether personID holds any allocation
	// dated within [date-1, date+1]. excludeAllocationID, when non-empty,
	// is ignored by the scan; swap validation passes the allocation being
	// transferred so it cannot conflict with itself.
	HasAllocationNear(ctx context.Context, personID, date, excludeAllocationID string) (bool, error)
}

// SelectCandidate walks a ranked pool and returns the first candidate
// who satisfies the post's seniority restriction and the fatigue rule,
// or nil if the pool is exhausted. The pool must already be ranked by
// RankCandidates; first-fit over a fairness-ranked pool picks the most
// deserving eligible person.
func SelectCandidate(ctx context.Context, pool []model.Candidate, post model.Post, date string, fatigue FatigueChecker) (*model.Candidate, error) {
	for i := range pool {
		c := &pool[i]
		if !post.AllowsYear(c.Year) {
			continue
		}
		conflicted, err := fatigue.HasAllocationNear(ctx, c.ID, date, "")
		if err != nil {
			return nil, err
		}
		if conflicted {
			continue
		}
		return c, nil
	}
	return nil, nil
}
