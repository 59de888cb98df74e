package routesearch

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/lintang-b-s/waypointx/pkg"
	"github.com/lintang-b-s/waypointx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCosts(rd *rand.Rand, n int, maxCost int) CostMatrix {
	costs := make(CostMatrix, n)
	for i := range costs {
		costs[i] = make([]float64, n)
		for j := range costs[i] {
			if i == j {
				continue
			}
			costs[i][j] = float64(rd.Intn(maxCost + 1))
		}
	}
	return costs
}

// bruteForceMin scores every ordering by recursion, independently of
// NextPermutation.
func bruteForceMin(costs CostMatrix) float64 {
	n := len(costs)
	best := math.Inf(1)
	used := make([]bool, n)
	route := make([]int, 0, n)

	var rec func()
	rec = func() {
		if len(route) == n {
			if c := RouteCost(costs, route); c < best {
				best = c
			}
			return
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			route = append(route, v)
			rec()
			route = route[:len(route)-1]
			used[v] = false
		}
	}
	rec()
	return best
}

func assertIsPermutation(t *testing.T, route Route, n int) {
	t.Helper()
	require.Len(t, route, n)
	seen := make([]bool, n)
	for _, v := range route {
		require.True(t, v >= 0 && v < n, "waypoint %d out of range", v)
		require.False(t, seen[v], "waypoint %d visited twice", v)
		seen[v] = true
	}
}

func TestFindOptimalRouteTrivial(t *testing.T) {
	testCases := []struct {
		name  string
		costs CostMatrix
		want  Route
	}{
		{name: "no waypoints", costs: CostMatrix{}, want: Route{}},
		{name: "nil matrix", costs: nil, want: Route{}},
		{name: "single waypoint", costs: CostMatrix{{0}}, want: Route{0}},
		{name: "single waypoint with unreachable diagonal", costs: CostMatrix{{math.Inf(1)}}, want: Route{0}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FindOptimalRoute(tt.costs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Route)
			assert.Equal(t, 0.0, res.Cost)
			assert.True(t, res.Complete)
		})
	}
}

func TestFindOptimalRouteAsymmetric(t *testing.T) {
	costs := CostMatrix{
		{0, 1, 100},
		{100, 0, 1},
		{100, 100, 0},
	}

	res, err := FindOptimalRoute(costs)
	require.NoError(t, err)
	assert.Equal(t, Route{0, 1, 2}, res.Route)
	assert.Equal(t, 2.0, res.Cost)
	assert.Equal(t, uint64(6), res.Evaluated)
}

func TestFindOptimalRouteIsOpenPath(t *testing.T) {
	// the closing edge 2 -> 0 is expensive but must not be counted
	costs := CostMatrix{
		{0, 2, 9},
		{9, 0, 2},
		{1000, 9, 0},
	}

	res, err := FindOptimalRoute(costs)
	require.NoError(t, err)
	assert.Equal(t, Route{0, 1, 2}, res.Route)
	assert.Equal(t, 4.0, res.Cost)
}

func TestFindOptimalRouteFreeStart(t *testing.T) {
	costs := CostMatrix{
		{0, 1, 50},
		{50, 0, 50},
		{1, 50, 0},
	}

	res, err := FindOptimalRoute(costs)
	require.NoError(t, err)
	assert.Equal(t, Route{2, 0, 1}, res.Route)
	assert.Equal(t, 2.0, res.Cost)
}

func TestFindOptimalRouteMatchesBruteForce(t *testing.T) {
	rd := rand.New(rand.NewSource(42))

	for n := 2; n <= 7; n++ {
		for trial := 0; trial < 5; trial++ {
			costs := randomCosts(rd, n, 1000)

			res, err := FindOptimalRoute(costs)
			require.NoError(t, err)

			assertIsPermutation(t, res.Route, n)
			assert.Equal(t, RouteCost(costs, res.Route), res.Cost)
			assert.Equal(t, bruteForceMin(costs), res.Cost)
			assert.Equal(t, util.Factorial(n), res.Evaluated)
			assert.True(t, res.Complete)
		}
	}
}

func TestFindOptimalRouteTieBreak(t *testing.T) {
	testCases := []struct {
		name  string
		costs CostMatrix
		want  Route
	}{
		{
			name: "path and its reversal tie",
			costs: CostMatrix{
				{0, 1, 5},
				{1, 0, 1},
				{5, 1, 0},
			},
			want: Route{0, 1, 2},
		},
		{
			name: "uniform costs",
			costs: CostMatrix{
				{0, 3, 3, 3},
				{3, 0, 3, 3},
				{3, 3, 0, 3},
				{3, 3, 3, 0},
			},
			want: Route{0, 1, 2, 3},
		},
		{
			name: "several minima",
			costs: CostMatrix{
				{0, 9, 9, 1},
				{9, 0, 1, 9},
				{9, 1, 0, 9},
				{1, 9, 9, 0},
			},
			want: Route{0, 3, 1, 2},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			first, err := FindOptimalRoute(tt.costs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, first.Route)

			for i := 0; i < 5; i++ {
				again, err := FindOptimalRoute(tt.costs)
				require.NoError(t, err)
				assert.Equal(t, first, again)
			}
		})
	}
}

func TestFindOptimalRouteInvalidInput(t *testing.T) {
	testCases := []struct {
		name    string
		costs   CostMatrix
		wantErr error
	}{
		{
			name:    "more columns than rows",
			costs:   CostMatrix{{0, 1, 2}, {1, 0, 2}},
			wantErr: ErrShape,
		},
		{
			name:    "ragged row",
			costs:   CostMatrix{{0, 1, 2}, {1, 0}, {1, 2, 0}},
			wantErr: ErrShape,
		},
		{
			name:    "ragged row with negative entry elsewhere",
			costs:   CostMatrix{{0, -1, 2}, {1, 0}, {1, 2, 0}},
			wantErr: ErrShape,
		},
		{
			name:    "negative off-diagonal",
			costs:   CostMatrix{{0, 1}, {-1, 0}},
			wantErr: ErrDomain,
		},
		{
			name:    "missing entry",
			costs:   CostMatrix{{0, math.NaN()}, {1, 0}},
			wantErr: ErrDomain,
		},
		{
			name:    "infinite entry",
			costs:   CostMatrix{{0, math.Inf(1)}, {1, 0}},
			wantErr: ErrDomain,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FindOptimalRoute(tt.costs)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, SearchResult{}, res)
		})
	}
}

func TestDomainErrorDetails(t *testing.T) {
	_, err := FindOptimalRoute(CostMatrix{{0, 1, 1}, {1, 0, 1}, {1, -2.5, 0}})

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 2, domainErr.Row)
	assert.Equal(t, 1, domainErr.Col)
	assert.Equal(t, -2.5, domainErr.Value)
	assert.Contains(t, err.Error(), "negative")
}

func TestDiagonalIsIgnored(t *testing.T) {
	costs := CostMatrix{
		{math.NaN(), 1, 4},
		{2, -7, 1},
		{3, 5, pkg.INF_WEIGHT},
	}

	res, err := FindOptimalRoute(costs)
	require.NoError(t, err)
	assert.Equal(t, Route{0, 1, 2}, res.Route)
	assert.Equal(t, 2.0, res.Cost)
}

func TestValidateDeclaredWaypoints(t *testing.T) {
	costs := CostMatrix{{0, 1}, {1, 0}}

	require.NoError(t, Validate(costs, 2))

	err := Validate(costs, 3)
	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, -1, shapeErr.Row)
	assert.Equal(t, 2, shapeErr.Rows)
	assert.Equal(t, 3, shapeErr.Waypoints)
}

func TestFindOptimalRouteContextCancelled(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	costs := randomCosts(rd, 6, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := FindOptimalRouteContext(ctx, costs)
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, uint64(1), res.Evaluated)
	assert.Equal(t, Route{0, 1, 2, 3, 4, 5}, res.Route)
	assert.Equal(t, RouteCost(costs, res.Route), res.Cost)
}

func TestFindOptimalRouteContextValidatesFirst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindOptimalRouteContext(ctx, CostMatrix{{0, -1}, {1, 0}})
	assert.ErrorIs(t, err, ErrDomain)
}
