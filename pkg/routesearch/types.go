// Package routesearch finds the cheapest visiting order of a small set of
// waypoints. Costs are directed and the route is an open path: no edge closes
// it back to its first waypoint, and any waypoint may come first.
//
// The search is exhaustive over all N! orderings, so it is only meant for a
// handful of waypoints.
package routesearch

// CostMatrix holds directed traversal costs; costs[i][j] is the cost of going
// from waypoint i to waypoint j. Diagonal entries are never read.
type CostMatrix [][]float64

// Route is a visiting order: a permutation of the waypoint indices [0, N).
type Route []int

type SearchResult struct {
	Route Route
	Cost  float64
	// Complete is false when the search was cancelled before every ordering was
	// scored. Route and Cost then hold the best candidate seen so far.
	Complete bool
	// Evaluated is the number of orderings scored.
	Evaluated uint64
}

func trivialResult(n int) SearchResult {
	return SearchResult{
		Route:     identity(n),
		Cost:      0,
		Complete:  true,
		Evaluated: 1,
	}
}
