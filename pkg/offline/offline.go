// Package offline provides collaborators that need no network access. They
// stand in for the Mapbox ones when no access token is configured.
package offline

import (
	"context"
	"fmt"
	"strings"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/geo"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
	"github.com/lintang-b-s/waypointx/pkg/util"
)

// StaticGeocoder only understands addresses written as "lat,lon".
type StaticGeocoder struct{}

func NewStaticGeocoder() *StaticGeocoder {
	return &StaticGeocoder{}
}

func (sg *StaticGeocoder) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	parts := strings.Split(address, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, fmt.Errorf("%w: %q is not a lat,lon pair", datastructure.ErrAddressNotFound, address)
	}
	lat, err := util.StringToFloat64(strings.TrimSpace(parts[0]))
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %q has an invalid latitude", datastructure.ErrAddressNotFound, address)
	}
	lon, err := util.StringToFloat64(strings.TrimSpace(parts[1]))
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %q has an invalid longitude", datastructure.ErrAddressNotFound, address)
	}

	coord := geo.NewCoordinate(lat, lon)
	if !coord.Valid() {
		return geo.Coordinate{}, fmt.Errorf("%w: %q is out of range", datastructure.ErrAddressNotFound, address)
	}
	return coord, nil
}

// HaversineMatrixProvider estimates travel durations in seconds from great
// circle distance at a constant speed.
type HaversineMatrixProvider struct {
	speedKmh float64
}

func NewHaversineMatrixProvider(speedKmh float64) *HaversineMatrixProvider {
	return &HaversineMatrixProvider{speedKmh: speedKmh}
}

func (hp *HaversineMatrixProvider) DurationMatrix(ctx context.Context, coords []geo.Coordinate) (routesearch.CostMatrix, error) {
	if hp.speedKmh <= 0 {
		return nil, fmt.Errorf("travel speed must be positive, got %v km/h", hp.speedKmh)
	}

	n := len(coords)
	costs := make(routesearch.CostMatrix, n)
	for i := range costs {
		costs[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			seconds := geo.HaversineDistance(coords[i], coords[j]) / hp.speedKmh * 3600
			costs[i][j] = seconds
			costs[j][i] = seconds
		}
	}
	return costs, nil
}

// PolylineRenderer draws straight segments between consecutive waypoints.
type PolylineRenderer struct{}

func NewPolylineRenderer() *PolylineRenderer {
	return &PolylineRenderer{}
}

func (pr *PolylineRenderer) RenderPath(ctx context.Context, route routesearch.Route,
	coords []geo.Coordinate) (*datastructure.RenderedPath, error) {
	ordered := make([]geo.Coordinate, len(route))
	for i, idx := range route {
		if idx < 0 || idx >= len(coords) {
			return nil, fmt.Errorf("route visits waypoint %d, only %d coordinates given", idx, len(coords))
		}
		ordered[i] = coords[idx]
	}
	return datastructure.NewRenderedPath(geo.PolylineFromCoords(ordered)), nil
}
