package controllers

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
)

type optimalRouteRequest struct {
	// null entries are accepted here and reported as missing costs
	Costs [][]*float64 `json:"costs" validate:"required"`
}

func (r optimalRouteRequest) toCostMatrix() routesearch.CostMatrix {
	costs := make(routesearch.CostMatrix, len(r.Costs))
	for i, row := range r.Costs {
		costs[i] = make([]float64, len(row))
		for j, c := range row {
			if c == nil {
				costs[i][j] = math.NaN()
				continue
			}
			costs[i][j] = *c
		}
	}
	return costs
}

type optimalRouteResponse struct {
	Route     []int   `json:"route"`
	Cost      float64 `json:"cost"`
	Evaluated uint64  `json:"evaluated"`
	Complete  bool    `json:"complete"`
}

func NewOptimalRouteResponse(res routesearch.SearchResult) optimalRouteResponse {
	return optimalRouteResponse{
		Route:     res.Route,
		Cost:      res.Cost,
		Evaluated: res.Evaluated,
		Complete:  res.Complete,
	}
}

type waypointRequest struct {
	Address string   `json:"address" validate:"required_without_all=Lat Lon"`
	Lat     *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon     *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
}

func (w waypointRequest) toWaypoint() datastructure.Waypoint {
	if w.Lat != nil && w.Lon != nil {
		return datastructure.NewLocatedWaypoint(w.Address, *w.Lat, *w.Lon)
	}
	return datastructure.NewWaypoint(w.Address)
}

type planRouteRequest struct {
	Waypoints []waypointRequest `json:"waypoints" validate:"required,min=1,dive"`
}

// checkCoordinatePairs reports the first waypoint that has only one of lat
// and lon.
func (r planRouteRequest) checkCoordinatePairs() error {
	for i, w := range r.Waypoints {
		if (w.Lat == nil) != (w.Lon == nil) {
			return fmt.Errorf("waypoint %d: lat and lon must be given together", i)
		}
	}
	return nil
}

func (r planRouteRequest) toWaypoints() []datastructure.Waypoint {
	waypoints := make([]datastructure.Waypoint, len(r.Waypoints))
	for i, w := range r.Waypoints {
		waypoints[i] = w.toWaypoint()
	}
	return waypoints
}

type waypointResponse struct {
	Index   int     `json:"index"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type planRouteResponse struct {
	Waypoints     []waypointResponse `json:"waypoints"`
	TotalDuration float64            `json:"total_duration"`
	Path          string             `json:"path"`
	Evaluated     uint64             `json:"evaluated"`
	Complete      bool               `json:"complete"`
}

func NewPlanRouteResponse(pr *datastructure.PlannedRoute) planRouteResponse {
	ordered := pr.GetOrderedWaypoints()
	waypoints := make([]waypointResponse, len(ordered))
	for i, w := range ordered {
		waypoints[i] = waypointResponse{
			Index:   pr.GetOrder()[i],
			Address: w.GetAddress(),
			Lat:     w.GetCoordinate().Lat,
			Lon:     w.GetCoordinate().Lon,
		}
	}

	var path string
	if pr.GetPath() != nil {
		path = pr.GetPath().GetPolyline()
	}
	return planRouteResponse{
		Waypoints:     waypoints,
		TotalDuration: pr.GetTotalCost(),
		Path:          path,
		Evaluated:     pr.GetEvaluated(),
		Complete:      pr.IsComplete(),
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
