// Package roster implements the per-day candidate selection rules:
// fairness ranking, the fatigue rule and greedy first-fit selection.
// It is store-free; callers supply the candidate pool and a fatigue
// lookup bound to their transaction.
package roster

import (
	"sort"

	"github.com/tmvalente/escala/pkg/core/model"
)

// RankCandidates orders a candidate pool by scheduling priority:
// punishment balance descending (debtors pay first), then the duty
// type's fairness counter ascending (fewest duties first), then id
// ascending so equal candidates rank deterministically.
//
// The input slice is not modified.
func RankCandidates(pool []model.Candidate, dutyType model.DutyType) []model.Candidate {
	ranked := make([]model.Candidate, len(pool))
	copy(ranked, pool)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.PunishmentBalance != b.PunishmentBalance {
			return a.PunishmentBalance > b.PunishmentBalance
		}
		if dutyType.CounterOf(a) != dutyType.CounterOf(b) {
			return dutyType.CounterOf(a) < dutyType.CounterOf(b)
		}
		return a.ID < b.ID
	})

	return ranked
}

// OrderPosts returns posts in the fixed processing order used for day
// generation: weight descending, then name ascending. Processing order
// decides which posts see scarce candidates first, so it must be stable.
func OrderPosts(posts []model.Post) []model.Post {
	ordered := make([]model.Post, len(posts))
	copy(ordered, posts)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Weight != ordered[j].Weight {
			return ordered[i].Weight > ordered[j].Weight
		}
		return ordered[i].Name < ordered[j].Name
	})

	return ordered
}
