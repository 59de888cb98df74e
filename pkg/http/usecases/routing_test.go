package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/geo"
	"github.com/lintang-b-s/waypointx/pkg/offline"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
	"github.com/lintang-b-s/waypointx/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapGeocoder struct {
	mu      sync.Mutex
	coords  map[string]geo.Coordinate
	calls   atomic.Int32
	failing bool
}

func (mg *mapGeocoder) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	mg.calls.Add(1)
	if mg.failing {
		return geo.Coordinate{}, errors.New("connection reset")
	}
	mg.mu.Lock()
	defer mg.mu.Unlock()
	c, ok := mg.coords[address]
	if !ok {
		return geo.Coordinate{}, fmt.Errorf("%w: %q", datastructure.ErrAddressNotFound, address)
	}
	return c, nil
}

type fixedMatrix struct {
	costs routesearch.CostMatrix
	err   error
	got   []geo.Coordinate
}

func (fm *fixedMatrix) DurationMatrix(ctx context.Context, coords []geo.Coordinate) (routesearch.CostMatrix, error) {
	fm.got = coords
	return fm.costs, fm.err
}

func newTestService(geocoder Geocoder, matrix MatrixProvider) *RoutingService {
	return NewRoutingService(zap.NewNop(), geocoder, matrix, offline.NewPolylineRenderer(), 4, 8)
}

func TestPlanRoute(t *testing.T) {
	geocoder := &mapGeocoder{coords: map[string]geo.Coordinate{
		"durban":    geo.NewCoordinate(-29.78, 31.03),
		"empangeni": geo.NewCoordinate(-28.76, 31.89),
		"ladysmith": geo.NewCoordinate(-28.56, 29.78),
	}}
	matrix := &fixedMatrix{costs: routesearch.CostMatrix{
		{0, 100, 1, 100},
		{100, 0, 100, 100},
		{100, 1, 0, 100},
		{1, 100, 100, 0},
	}}
	rs := newTestService(geocoder, matrix)

	waypoints := []datastructure.Waypoint{
		datastructure.NewWaypoint("durban"),
		datastructure.NewWaypoint("empangeni"),
		datastructure.NewWaypoint("ladysmith"),
		datastructure.NewLocatedWaypoint("pietermaritzburg", -29.60, 30.38),
	}

	planned, err := rs.PlanRoute(context.Background(), waypoints)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 0, 2, 1}, planned.GetOrder())
	assert.Equal(t, 3.0, planned.GetTotalCost())
	assert.True(t, planned.IsComplete())
	assert.Equal(t, uint64(24), planned.GetEvaluated())
	assert.Equal(t, int32(3), geocoder.calls.Load())

	ordered := planned.GetOrderedWaypoints()
	assert.Equal(t, "pietermaritzburg", ordered[0].GetAddress())
	assert.Equal(t, "empangeni", ordered[3].GetAddress())

	require.Len(t, matrix.got, 4)
	assert.Equal(t, geo.NewCoordinate(-28.76, 31.89), matrix.got[1])

	line, err := geo.CoordsFromPolyline(planned.GetPath().GetPolyline())
	require.NoError(t, err)
	require.Len(t, line, 4)
	assert.InDelta(t, -29.60, line[0].Lat, 1e-5)

	// input waypoints are not modified
	assert.False(t, waypoints[0].IsLocated())
}

func TestPlanRouteErrors(t *testing.T) {
	square := routesearch.CostMatrix{{0, 1}, {1, 0}}
	two := []datastructure.Waypoint{datastructure.NewWaypoint("a"), datastructure.NewWaypoint("b")}

	testCases := []struct {
		name      string
		geocoder  *mapGeocoder
		matrix    *fixedMatrix
		waypoints []datastructure.Waypoint
		wantCode  error
		wantIs    error
	}{
		{
			name:      "no waypoints",
			geocoder:  &mapGeocoder{},
			matrix:    &fixedMatrix{},
			waypoints: nil,
			wantCode:  util.ErrBadParamInput,
		},
		{
			name:     "too many waypoints",
			geocoder: &mapGeocoder{},
			matrix:   &fixedMatrix{},
			waypoints: []datastructure.Waypoint{
				datastructure.NewWaypoint("1"), datastructure.NewWaypoint("2"), datastructure.NewWaypoint("3"),
				datastructure.NewWaypoint("4"), datastructure.NewWaypoint("5"), datastructure.NewWaypoint("6"),
				datastructure.NewWaypoint("7"), datastructure.NewWaypoint("8"), datastructure.NewWaypoint("9"),
			},
			wantCode: util.ErrBadParamInput,
		},
		{
			name:      "address not found",
			geocoder:  &mapGeocoder{coords: map[string]geo.Coordinate{"a": {}}},
			matrix:    &fixedMatrix{costs: square},
			waypoints: two,
			wantCode:  util.ErrNotFound,
			wantIs:    datastructure.ErrAddressNotFound,
		},
		{
			name:      "geocoder failure",
			geocoder:  &mapGeocoder{failing: true},
			matrix:    &fixedMatrix{costs: square},
			waypoints: two,
			wantCode:  util.ErrInternalServerError,
		},
		{
			name:      "unreachable waypoints",
			geocoder:  &mapGeocoder{coords: map[string]geo.Coordinate{"a": {}, "b": {}}},
			matrix:    &fixedMatrix{err: fmt.Errorf("%w: 0 -> 1", datastructure.ErrUnreachable)},
			waypoints: two,
			wantCode:  util.ErrBadParamInput,
			wantIs:    datastructure.ErrUnreachable,
		},
		{
			name:      "matrix smaller than waypoint count",
			geocoder:  &mapGeocoder{coords: map[string]geo.Coordinate{"a": {}, "b": {}}},
			matrix:    &fixedMatrix{costs: routesearch.CostMatrix{{0}}},
			waypoints: two,
			wantCode:  util.ErrBadParamInput,
			wantIs:    routesearch.ErrShape,
		},
		{
			name:      "negative duration",
			geocoder:  &mapGeocoder{coords: map[string]geo.Coordinate{"a": {}, "b": {}}},
			matrix:    &fixedMatrix{costs: routesearch.CostMatrix{{0, -1}, {1, 0}}},
			waypoints: two,
			wantCode:  util.ErrBadParamInput,
			wantIs:    routesearch.ErrDomain,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rs := newTestService(tt.geocoder, tt.matrix)
			_, err := rs.PlanRoute(context.Background(), tt.waypoints)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, util.ErrorCode(err))
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestOptimalRoute(t *testing.T) {
	rs := newTestService(&mapGeocoder{}, &fixedMatrix{})

	res, err := rs.OptimalRoute(context.Background(), routesearch.CostMatrix{
		{0, 1, 100},
		{100, 0, 1},
		{100, 100, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, routesearch.Route{0, 1, 2}, res.Route)
	assert.Equal(t, 2.0, res.Cost)

	_, err = rs.OptimalRoute(context.Background(), routesearch.CostMatrix{{0, 1, 2}})
	assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
	assert.ErrorIs(t, err, routesearch.ErrShape)
}

func TestOptimalRouteUsesParallelSearchForLargeInputs(t *testing.T) {
	n := 8
	costs := make(routesearch.CostMatrix, n)
	for i := range costs {
		costs[i] = make([]float64, n)
		for j := range costs[i] {
			costs[i][j] = float64((i*7 + j*3) % 5)
		}
	}

	rs := newTestService(&mapGeocoder{}, &fixedMatrix{})
	got, err := rs.OptimalRoute(context.Background(), costs)
	require.NoError(t, err)

	want, err := routesearch.FindOptimalRoute(costs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCachedGeocoder(t *testing.T) {
	inner := &mapGeocoder{coords: map[string]geo.Coordinate{
		"166 Kerk Street, Vryheid": geo.NewCoordinate(-27.77, 30.79),
	}}
	cached, err := NewCachedGeocoder(inner, 16)
	require.NoError(t, err)

	for _, address := range []string{"166 Kerk Street, Vryheid", "166  kerk street,   Vryheid", "166 Kerk Street, Vryheid"} {
		coord, err := cached.Geocode(context.Background(), address)
		require.NoError(t, err)
		assert.Equal(t, geo.NewCoordinate(-27.77, 30.79), coord)
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err = cached.Geocode(context.Background(), "unknown")
	assert.ErrorIs(t, err, datastructure.ErrAddressNotFound)
	_, err = cached.Geocode(context.Background(), "unknown")
	assert.ErrorIs(t, err, datastructure.ErrAddressNotFound)
	assert.Equal(t, int32(3), inner.calls.Load())
}
