package usecases

import (
	"context"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/geo"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Coordinate, error)
}

type MatrixProvider interface {
	DurationMatrix(ctx context.Context, coords []geo.Coordinate) (routesearch.CostMatrix, error)
}

type PathRenderer interface {
	RenderPath(ctx context.Context, route routesearch.Route, coords []geo.Coordinate) (*datastructure.RenderedPath, error)
}
