package routesearch

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrShape  = errors.New("cost matrix shape does not match waypoint count")
	ErrDomain = errors.New("cost matrix entry is not a finite non-negative number")
)

// ShapeError reports a cost matrix whose dimensions differ from the declared
// waypoint count. Row is -1 when the number of rows is wrong.
type ShapeError struct {
	Waypoints int
	Rows      int
	Row       int
	Cols      int
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("cost matrix has %d rows, want %d", e.Rows, e.Waypoints)
	}
	return fmt.Sprintf("cost matrix row %d has %d columns, want %d", e.Row, e.Cols, e.Waypoints)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// DomainError reports an off-diagonal cost that is missing (NaN), negative or
// infinite.
type DomainError struct {
	Row   int
	Col   int
	Value float64
}

func (e *DomainError) Error() string {
	switch {
	case math.IsNaN(e.Value):
		return fmt.Sprintf("cost from waypoint %d to %d is missing", e.Row, e.Col)
	case math.IsInf(e.Value, 0):
		return fmt.Sprintf("cost from waypoint %d to %d is not finite", e.Row, e.Col)
	default:
		return fmt.Sprintf("cost from waypoint %d to %d is negative: %v", e.Row, e.Col, e.Value)
	}
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}
