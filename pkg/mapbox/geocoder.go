package mapbox

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lintang-b-s/waypointx/pkg/datastructure"
	"github.com/lintang-b-s/waypointx/pkg/geo"
	"go.uber.org/zap"
)

type Geocoder struct {
	client *Client
}

func NewGeocoder(client *Client) *Geocoder {
	return &Geocoder{client: client}
}

// Geocode resolves address to the coordinate of the best matching feature.
func (g *Geocoder) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	path := fmt.Sprintf("/geocoding/v5/mapbox.places/%s.json", url.PathEscape(address))
	query := url.Values{}
	query.Set("autocomplete", "true")
	query.Set("limit", "1")

	var resp geocodingResponse
	if err := g.client.getJSON(ctx, path, query, &resp); err != nil {
		return geo.Coordinate{}, err
	}

	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) < 2 {
		return geo.Coordinate{}, fmt.Errorf("%w: %q", datastructure.ErrAddressNotFound, address)
	}

	lonLat := resp.Features[0].Geometry.Coordinates
	g.client.log.Debug("geocoded address", zap.String("address", address),
		zap.String("place", resp.Features[0].PlaceName))
	return geo.NewCoordinate(lonLat[1], lonLat[0]), nil
}
