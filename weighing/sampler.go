package weighing

import (
	"math/rand"
	"sort"
)

// DrawDistinctWeighted draws up to n distinct indices from
// {0, ..., len(weights)-1} with probability proportional to weights, via
// rejection-by-cumulative sampling: draw a point uniformly in
// [0, total weight), binary-search its cumulative-weight bucket, retry on
// a duplicate draw. Zero-weight entries fall in a zero-width bucket and
// are never selected. If n exceeds the number of positive-weight entries
// it is capped to that count. rng must be non-nil; see WithRand/WithSeed
// for how callers obtain a deterministic one.
//
// Complexity: expected O(n log len(weights)); degenerate weight
// distributions (most weight concentrated on few entries) can require
// more retries, bounded below by a deterministic fallback fill.
func DrawDistinctWeighted(weights []float64, n int, rng *rand.Rand) []int {
	positive := 0
	for _, w := range weights {
		if w > 0 {
			positive++
		}
	}
	if n > positive {
		n = positive
	}
	if n <= 0 {
		return nil
	}

	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		total += w
		cumulative[i] = total
	}
	if total <= 0 {
		return nil
	}

	chosen := make(map[int]struct{}, n)
	out := make([]int, 0, n)

	maxAttempts := 100*n + 10000
	for attempts := 0; len(out) < n && attempts < maxAttempts; attempts++ {
		target := rng.Float64() * total
		idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > target })
		if idx >= len(weights) || weights[idx] <= 0 {
			continue
		}
		if _, dup := chosen[idx]; dup {
			continue
		}
		chosen[idx] = struct{}{}
		out = append(out, idx)
	}

	// Defensive fallback: fill any remaining slots deterministically so a
	// pathological weight distribution can never spin forever. Ordinary
	// inputs (n well below the positive-weight count) never reach this.
	if len(out) < n {
		for i, w := range weights {
			if len(out) >= n {
				break
			}
			if w <= 0 {
				continue
			}
			if _, ok := chosen[i]; ok {
				continue
			}
			chosen[i] = struct{}{}
			out = append(out, i)
		}
	}

	sort.Ints(out)
	return out
}
