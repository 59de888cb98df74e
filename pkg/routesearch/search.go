package routesearch

import (
	"context"
	"math"

	"github.com/lintang-b-s/waypointx/pkg/util"
)

// RouteCost is the open-path cost of route: the sum of the directed costs
// between consecutive waypoints.
func RouteCost(costs CostMatrix, route Route) float64 {
	var total float64
	for k := 1; k < len(route); k++ {
		total += costs[route[k-1]][route[k]]
	}
	return total
}

// FindOptimalRoute returns the minimum-cost open path over all waypoints of
// costs. Among equally cheap routes the lexicographically smallest wins.
func FindOptimalRoute(costs CostMatrix) (SearchResult, error) {
	return FindOptimalRouteContext(context.Background(), costs)
}

// FindOptimalRouteContext is FindOptimalRoute with cancellation checked
// between orderings. A cancelled search is not an error: it returns the best
// route seen so far with Complete set to false.
func FindOptimalRouteContext(ctx context.Context, costs CostMatrix) (SearchResult, error) {
	n := len(costs)
	if err := Validate(costs, n); err != nil {
		return SearchResult{}, err
	}
	if n <= 1 {
		return trivialResult(n), nil
	}

	best := searchFrom(ctx, costs, identity(n), 0)
	return best.toResult(), nil
}

// candidate is the best route of one slice of the permutation space.
type candidate struct {
	rank      int
	route     Route
	cost      float64
	evaluated uint64
	complete  bool
}

func (c candidate) toResult() SearchResult {
	return SearchResult{
		Route:     c.route,
		Cost:      c.cost,
		Complete:  c.complete,
		Evaluated: c.evaluated,
	}
}

// searchFrom scores perm and every lexicographic successor of perm[fixed:],
// keeping perm[:fixed] in place. perm[fixed:] must start sorted ascending.
// The first ordering is always scored, so the returned route is never empty.
func searchFrom(ctx context.Context, costs CostMatrix, perm []int, fixed int) candidate {
	best := candidate{cost: math.Inf(1), complete: true}
	for {
		c := RouteCost(costs, perm)
		best.evaluated++
		// strict improvement keeps the earliest route among ties
		if best.route == nil || c < best.cost {
			best.cost = c
			best.route = append(best.route[:0], perm...)
		}

		if !NextPermutation(perm[fixed:]) {
			break
		}
		if util.StopConcurrentOperation(ctx) {
			best.complete = false
			break
		}
	}
	return best
}
