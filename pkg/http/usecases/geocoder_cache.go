package usecases

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/waypointx/pkg/geo"
)

// CachedGeocoder remembers successful lookups; failures are not cached.
type CachedGeocoder struct {
	geocoder Geocoder
	cache    *lru.Cache[string, geo.Coordinate]
}

func NewCachedGeocoder(geocoder Geocoder, size int) (*CachedGeocoder, error) {
	cache, err := lru.New[string, geo.Coordinate](size)
	if err != nil {
		return nil, err
	}
	return &CachedGeocoder{geocoder: geocoder, cache: cache}, nil
}

func (cg *CachedGeocoder) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	key := strings.ToLower(strings.Join(strings.Fields(address), " "))
	if coord, ok := cg.cache.Get(key); ok {
		return coord, nil
	}

	coord, err := cg.geocoder.Geocode(ctx, address)
	if err != nil {
		return geo.Coordinate{}, err
	}
	cg.cache.Add(key, coord)
	return coord, nil
}
