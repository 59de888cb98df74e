package routesearch

import (
	"context"

	"github.com/lintang-b-s/waypointx/pkg/concurrent"
)

// FindOptimalRouteParallel splits the orderings by their first waypoint and
// searches the N partitions on up to workers goroutines. Partition s holds
// exactly the orderings whose lexicographic rank falls in [s·(N-1)!, (s+1)·(N-1)!),
// and ties between partitions go to the lower s, so the result is the same
// route FindOptimalRoute returns.
func FindOptimalRouteParallel(ctx context.Context, costs CostMatrix, workers int) (SearchResult, error) {
	n := len(costs)
	if err := Validate(costs, n); err != nil {
		return SearchResult{}, err
	}
	if n <= 1 {
		return trivialResult(n), nil
	}

	starts := identity(n)
	partitions := concurrent.Map[int, candidate](workers, starts, func(s int) candidate {
		perm := make([]int, 0, n)
		perm = append(perm, s)
		for v := 0; v < n; v++ {
			if v != s {
				perm = append(perm, v)
			}
		}
		c := searchFrom(ctx, costs, perm, 1)
		c.rank = s
		return c
	})

	return reduceCandidates(partitions).toResult(), nil
}

// reduceCandidates picks the cheapest candidate, preferring the lower rank on
// ties. The evaluation counts are summed and the result is complete only if
// every partition was.
func reduceCandidates(partitions []candidate) candidate {
	best := partitions[0]
	var evaluated uint64
	complete := true
	for _, p := range partitions {
		evaluated += p.evaluated
		complete = complete && p.complete
		if p.cost < best.cost || (p.cost == best.cost && p.rank < best.rank) {
			best = p
		}
	}
	best.evaluated = evaluated
	best.complete = complete
	return best
}
