package mapbox

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/geo"
	"github.com/lintang-b-s/waypointx/pkg/routesearch"
)

// The Matrix API accepts at most 25 coordinates per request (10 for the
// driving-traffic profile).
const maxMatrixCoordinates = 25

type MatrixProvider struct {
	client *Client
}

func NewMatrixProvider(client *Client) *MatrixProvider {
	return &MatrixProvider{client: client}
}

// DurationMatrix returns travel durations in seconds between every ordered
// pair of coords. A pair with no route fails with ErrUnreachable.
func (mp *MatrixProvider) DurationMatrix(ctx context.Context, coords []geo.Coordinate) (routesearch.CostMatrix, error) {
	n := len(coords)
	if n == 0 {
		return routesearch.CostMatrix{}, nil
	}
	if n == 1 {
		return routesearch.CostMatrix{{0}}, nil
	}
	if n > maxMatrixCoordinates {
		return nil, fmt.Errorf("matrix request has %d coordinates, mapbox allows at most %d", n, maxMatrixCoordinates)
	}

	path := fmt.Sprintf("/directions-matrix/v1/mapbox/%s/%s", mp.client.profile, joinCoordinates(coords))
	query := url.Values{}
	query.Set("annotations", "distance,duration")

	var resp matrixResponse
	if err := mp.client.getJSON(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	if resp.Code != "Ok" {
		return nil, fmt.Errorf("mapbox matrix returned code %q: %s", resp.Code, resp.Message)
	}
	if len(resp.Durations) != n {
		return nil, fmt.Errorf("mapbox matrix returned %d rows for %d coordinates", len(resp.Durations), n)
	}

	costs := make(routesearch.CostMatrix, n)
	for i, row := range resp.Durations {
		if len(row) != n {
			return nil, fmt.Errorf("mapbox matrix row %d has %d columns for %d coordinates", i, len(row), n)
		}
		costs[i] = make([]float64, n)
		for j, d := range row {
			if d == nil {
				if i == j {
					continue
				}
				return nil, fmt.Errorf("%w: no route from waypoint %d to %d", datastructure.ErrUnreachable, i, j)
			}
			costs[i][j] = *d
		}
	}
	return costs, nil
}

func joinCoordinates(coords []geo.Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.LonLat()
	}
	return strings.Join(parts, ";")
}
