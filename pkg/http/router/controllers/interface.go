package controllers

import (
	"context"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
)

type RoutingService interface {
	OptimalRoute(ctx context.Context, costs routesearch.CostMatrix) (routesearch.SearchResult, error)
	PlanRoute(ctx context.Context, waypoints []datastructure.Waypoint) (*datastructure.PlannedRoute, error)
}
