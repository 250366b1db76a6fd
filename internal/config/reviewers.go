package config

import "math/rand"

// Roster precomputes a weighted reviewer list from the quota table so that
// selection is a single uniform draw. It is built once from configuration
// and passed to callers explicitly; there is no global mutable state.
type Roster struct {
	weighted []string
	rng      *rand.Rand
}

// NewRoster expands each reviewer quota into that many weighted slots.
// Non-positive quotas drop the reviewer from the roster.
func NewRoster(quotas []ReviewerQuota, rng *rand.Rand) *Roster {
	var weighted []string
	for _, q := range quotas {
		for i := 0; i < q.Quota; i++ {
			weighted = append(weighted, q.Email)
		}
	}
	return &Roster{weighted: weighted, rng: rng}
}

// Next draws one reviewer, or "" when the roster is empty.
func (r *Roster) Next() string {
	if len(r.weighted) == 0 {
		return ""
	}
	return r.weighted[r.rng.Intn(len(r.weighted))]
}

// Size returns the number of weighted slots, exposed for tests and for
// reporting the effective distribution.
func (r *Roster) Size() int {
	return len(r.weighted)
}
