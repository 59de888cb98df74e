package mapbox

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/geo"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
)

// PathRenderer fetches road geometry for a route from the Directions API and,
// when withImage is set, a static map with that geometry drawn on it.
type PathRenderer struct {
	client    *Client
	withImage bool
	zoom      int
	size      string
}

func NewPathRenderer(client *Client, withImage bool, zoom int, size string) *PathRenderer {
	return &PathRenderer{
		client:    client,
		withImage: withImage,
		zoom:      zoom,
		size:      size,
	}
}

func (pr *PathRenderer) RenderPath(ctx context.Context, route routesearch.Route,
	coords []geo.Coordinate) (*datastructure.RenderedPath, error) {
	ordered := make([]geo.Coordinate, len(route))
	for i, idx := range route {
		ordered[i] = coords[idx]
	}
	if len(ordered) < 2 {
		return datastructure.NewRenderedPath(geo.PolylineFromCoords(ordered)), nil
	}

	line, err := pr.directions(ctx, ordered)
	if err != nil {
		return nil, err
	}
	rendered := datastructure.NewRenderedPath(line)

	if !pr.withImage {
		return rendered, nil
	}
	image, err := pr.staticMap(ctx, line, geo.Center(ordered))
	if err != nil {
		return nil, err
	}
	rendered.SetImage(image, "png")
	return rendered, nil
}

func (pr *PathRenderer) directions(ctx context.Context, ordered []geo.Coordinate) (string, error) {
	path := fmt.Sprintf("/directions/v5/mapbox/%s/%s", pr.client.profile, joinCoordinates(ordered))
	query := url.Values{}
	query.Set("geometries", "polyline")
	query.Set("overview", "full")

	var resp directionsResponse
	if err := pr.client.getJSON(ctx, path, query, &resp); err != nil {
		return "", err
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return "", fmt.Errorf("%w: mapbox directions returned code %q: %s", datastructure.ErrUnreachable,
			resp.Code, resp.Message)
	}
	return resp.Routes[0].Geometry, nil
}

func (pr *PathRenderer) staticMap(ctx context.Context, line string, center geo.Coordinate) ([]byte, error) {
	path := fmt.Sprintf("/v4/mapbox.streets/path-5+f44-0.5(%s)/%s,%d/%s.png",
		url.PathEscape(line), center.LonLat(), pr.zoom, pr.size)
	return pr.client.get(ctx, path, nil)
}
