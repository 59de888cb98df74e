package geo

import (
	"github.com/golang/geo/s2"
)

// BoundingRect returns the smallest lat/lng rectangle containing coords.
func BoundingRect(coords []Coordinate) s2.Rect {
	rect := s2.EmptyRect()
	for _, c := range coords {
		rect = rect.AddPoint(s2.LatLngFromDegrees(c.Lat, c.Lon))
	}
	return rect
}

// Center returns the centre of the bounding rectangle of coords. Static maps
// are centred here so every waypoint has the same chance of being in frame.
func Center(coords []Coordinate) Coordinate {
	if len(coords) == 0 {
		return Coordinate{}
	}
	center := BoundingRect(coords).Center()
	return NewCoordinate(center.Lat.Degrees(), center.Lng.Degrees())
}
