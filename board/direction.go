package board

import "fmt"

// A Direction is a unit offset between two adjacent cells.
type Direction struct {
	DR int
	DC int
}

func (d Direction) String() string {
	return fmt.Sprintf("<%d,%d>", d.DR, d.DC)
}

var (
	North     = Direction{-1, 0}
	NorthEast = Direction{-1, 1}
	East      = Direction{0, 1}
	SouthEast = Direction{1, 1}
	South     = Direction{1, 0}
	SouthWest = Direction{1, -1}
	West      = Direction{0, -1}
	NorthWest = Direction{-1, -1}
)

// AllDirections lists the eight directions in clockwise order starting
// from north. Stability checks rely on this order to find runs of
// consecutive neighbors.
var AllDirections = [8]Direction{
	North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest,
}

// CardinalDirections are N, E, S, W.
var CardinalDirections = [4]Direction{North, East, South, West}
