package usecases

import (
	"context"
	"errors"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/geo"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
	"github.com/lintang-b-s/waypointx/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// below this many waypoints the sequential search beats the worker pool
	parallelSearchThreshold = 7
	maxConcurrentGeocodes   = 4
)

type RoutingService struct {
	log            *zap.Logger
	geocoder       Geocoder
	matrixProvider MatrixProvider
	renderer       PathRenderer
	searchWorkers  int
	maxWaypoints   int
}

func NewRoutingService(log *zap.Logger, geocoder Geocoder, matrixProvider MatrixProvider, renderer PathRenderer,
	searchWorkers, maxWaypoints int) *RoutingService {
	return &RoutingService{
		log:            log,
		geocoder:       geocoder,
		matrixProvider: matrixProvider,
		renderer:       renderer,
		searchWorkers:  searchWorkers,
		maxWaypoints:   maxWaypoints,
	}
}

// OptimalRoute runs the route search on a caller supplied cost matrix.
func (rs *RoutingService) OptimalRoute(ctx context.Context, costs routesearch.CostMatrix) (routesearch.SearchResult, error) {
	if err := rs.checkWaypointCount(len(costs)); err != nil {
		return routesearch.SearchResult{}, err
	}
	return rs.search(ctx, costs, len(costs))
}

// PlanRoute geocodes the waypoints that have no coordinate yet, fetches their
// duration matrix, finds the cheapest visiting order and renders it.
func (rs *RoutingService) PlanRoute(ctx context.Context, waypoints []datastructure.Waypoint) (*datastructure.PlannedRoute, error) {
	if len(waypoints) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "at least one waypoint is required")
	}
	if err := rs.checkWaypointCount(len(waypoints)); err != nil {
		return nil, err
	}

	located, err := rs.locate(ctx, waypoints)
	if err != nil {
		return nil, err
	}
	coords := make([]geo.Coordinate, len(located))
	for i, w := range located {
		coords[i] = w.GetCoordinate()
	}

	costs, err := rs.matrixProvider.DurationMatrix(ctx, coords)
	if err != nil {
		if errors.Is(err, datastructure.ErrUnreachable) {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "waypoints are not mutually reachable")
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to get duration matrix")
	}

	res, err := rs.search(ctx, costs, len(located))
	if err != nil {
		return nil, err
	}

	path, err := rs.renderer.RenderPath(ctx, res.Route, coords)
	if err != nil {
		if errors.Is(err, datastructure.ErrUnreachable) {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "no path along the chosen route")
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "failed to render route")
	}

	rs.log.Info("planned route", zap.Int("waypoints", len(located)), zap.Ints("order", res.Route),
		zap.Float64("cost", res.Cost))
	return datastructure.NewPlannedRoute(located, res.Route, res.Cost, path, res.Evaluated, res.Complete), nil
}

func (rs *RoutingService) checkWaypointCount(n int) error {
	if rs.maxWaypoints > 0 && n > rs.maxWaypoints {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "at most %d waypoints are supported, got %d",
			rs.maxWaypoints, n)
	}
	return nil
}

// locate returns a copy of waypoints with every coordinate filled in.
func (rs *RoutingService) locate(ctx context.Context, waypoints []datastructure.Waypoint) ([]datastructure.Waypoint, error) {
	located := make([]datastructure.Waypoint, len(waypoints))
	copy(located, waypoints)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGeocodes)
	for i := range located {
		if located[i].IsLocated() {
			continue
		}
		i := i
		g.Go(func() error {
			address := located[i].GetAddress()
			coord, err := rs.geocoder.Geocode(gctx, address)
			if err != nil {
				if errors.Is(err, datastructure.ErrAddressNotFound) {
					return util.WrapErrorf(err, util.ErrNotFound, "waypoint %d: address %q not found", i, address)
				}
				return util.WrapErrorf(err, util.ErrInternalServerError, "waypoint %d: failed to geocode %q", i, address)
			}
			located[i].SetCoordinate(coord)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return located, nil
}

func (rs *RoutingService) search(ctx context.Context, costs routesearch.CostMatrix, waypoints int) (routesearch.SearchResult, error) {
	if err := routesearch.Validate(costs, waypoints); err != nil {
		return routesearch.SearchResult{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid cost matrix")
	}

	var (
		res routesearch.SearchResult
		err error
	)
	if waypoints >= parallelSearchThreshold && rs.searchWorkers > 1 {
		res, err = routesearch.FindOptimalRouteParallel(ctx, costs, rs.searchWorkers)
	} else {
		res, err = routesearch.FindOptimalRouteContext(ctx, costs)
	}
	if err != nil {
		return routesearch.SearchResult{}, util.WrapErrorf(err, util.ErrBadParamInput, "invalid cost matrix")
	}

	if !res.Complete {
		rs.log.Warn("route search cancelled, returning best route so far",
			zap.Uint64("evaluated", res.Evaluated), zap.Uint64("total", util.Factorial(waypoints)),
			zap.Error(ctx.Err()))
	}
	return res, nil
}
