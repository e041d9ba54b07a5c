package puzzle

import "fmt"

// Coord is a 0-indexed grid position.
type Coord struct {
	Row int `json:"row" msgpack:"row"`
	Col int `json:"col" msgpack:"col"`
}

// String implements the fmt.Stringer interface for Coord.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is the compass direction a matched word reads in, with north at
// row 0.
type Direction int

const (
	NoDirection Direction = iota
	East
	West
	South
	North
	SouthWest
	NorthEast
	NorthWest
	SouthEast
)

var directionNames = [...]string{
	NoDirection: "none",
	East:        "east",
	West:        "west",
	South:       "south",
	North:       "north",
	SouthWest:   "south-west",
	NorthEast:   "north-east",
	NorthWest:   "north-west",
	SouthEast:   "south-east",
}

// String implements the fmt.Stringer interface for Direction.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Delta returns the row and column step taken from one letter to the next.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case East:
		return 0, 1
	case West:
		return 0, -1
	case South:
		return 1, 0
	case North:
		return -1, 0
	case SouthWest:
		return 1, -1
	case NorthEast:
		return -1, 1
	case NorthWest:
		return -1, -1
	case SouthEast:
		return 1, 1
	}
	return 0, 0
}

// Reverse returns the direction pointing the opposite way.
func (d Direction) Reverse() Direction {
	switch d {
	case East:
		return West
	case West:
		return East
	case South:
		return North
	case North:
		return South
	case SouthWest:
		return NorthEast
	case NorthEast:
		return SouthWest
	case NorthWest:
		return SouthEast
	case SouthEast:
		return NorthWest
	}
	return NoDirection
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
