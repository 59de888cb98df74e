package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/waypointx/pkg/geo"
)

var (
	ErrAddressNotFound = errors.New("address could not be geocoded")
	ErrUnreachable     = errors.New("waypoint is unreachable")
)

// Waypoint is one stop to visit. Its coordinate is either supplied by the
// caller or filled in by a geocoder.
type Waypoint struct {
	address string
	coord   geo.Coordinate
	located bool
}

func NewWaypoint(address string) Waypoint {
	return Waypoint{address: address}
}

func NewLocatedWaypoint(address string, lat, lon float64) Waypoint {
	return Waypoint{
		address: address,
		coord:   geo.NewCoordinate(lat, lon),
		located: true,
	}
}

func (w Waypoint) GetAddress() string {
	return w.address
}

func (w Waypoint) GetCoordinate() geo.Coordinate {
	return w.coord
}

// Label is the address, or the coordinate when no address was given.
func (w Waypoint) Label() string {
	if w.address != "" {
		return w.address
	}
	return fmt.Sprintf("%.6f,%.6f", w.coord.Lat, w.coord.Lon)
}

func (w Waypoint) IsLocated() bool {
	return w.located
}

func (w *Waypoint) SetCoordinate(coord geo.Coordinate) {
	w.coord = coord
	w.located = true
}

// RenderedPath is the presentational output for a chosen route: its encoded
// geometry and, when requested, a static map image.
type RenderedPath struct {
	polyline    string
	image       []byte
	imageFormat string
}

func NewRenderedPath(polyline string) *RenderedPath {
	return &RenderedPath{polyline: polyline}
}

func (rp *RenderedPath) GetPolyline() string {
	return rp.polyline
}

func (rp *RenderedPath) GetImage() []byte {
	return rp.image
}

func (rp *RenderedPath) GetImageFormat() string {
	return rp.imageFormat
}

func (rp *RenderedPath) HasImage() bool {
	return len(rp.image) > 0
}

func (rp *RenderedPath) SetImage(image []byte, format string) {
	rp.image = image
	rp.imageFormat = format
}

// PlannedRoute is the outcome of planning a trip over a set of waypoints.
type PlannedRoute struct {
	waypoints []Waypoint
	order     []int
	totalCost float64
	path      *RenderedPath
	evaluated uint64
	complete  bool
}

func NewPlannedRoute(waypoints []Waypoint, order []int, totalCost float64, path *RenderedPath,
	evaluated uint64, complete bool) *PlannedRoute {
	return &PlannedRoute{
		waypoints: waypoints,
		order:     order,
		totalCost: totalCost,
		path:      path,
		evaluated: evaluated,
		complete:  complete,
	}
}

// GetOrderedWaypoints returns the waypoints in visiting order.
func (pr *PlannedRoute) GetOrderedWaypoints() []Waypoint {
	ordered := make([]Waypoint, len(pr.order))
	for i, idx := range pr.order {
		ordered[i] = pr.waypoints[idx]
	}
	return ordered
}

func (pr *PlannedRoute) GetOrder() []int {
	return pr.order
}

func (pr *PlannedRoute) GetTotalCost() float64 {
	return pr.totalCost
}

func (pr *PlannedRoute) GetPath() *RenderedPath {
	return pr.path
}

func (pr *PlannedRoute) GetEvaluated() uint64 {
	return pr.evaluated
}

func (pr *PlannedRoute) IsComplete() bool {
	return pr.complete
}
