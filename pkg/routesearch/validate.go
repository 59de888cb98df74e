package routesearch

import "math"

// Validate checks that costs is a waypoints×waypoints matrix whose
// off-diagonal entries are finite and non-negative. Shape is checked for every
// row before any value is inspected, so a ragged matrix always yields a
// *ShapeError.
func Validate(costs CostMatrix, waypoints int) error {
	if len(costs) != waypoints {
		return &ShapeError{Waypoints: waypoints, Rows: len(costs), Row: -1}
	}
	for i, row := range costs {
		if len(row) != waypoints {
			return &ShapeError{Waypoints: waypoints, Rows: len(costs), Row: i, Cols: len(row)}
		}
	}

	for i, row := range costs {
		for j, c := range row {
			if i == j {
				continue
			}
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				return &DomainError{Row: i, Col: j, Value: c}
			}
		}
	}
	return nil
}
