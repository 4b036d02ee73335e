package belt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDirection is returned when a direction outside the four
	// cardinal directions reaches a geometry function or a grid.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Vec is a tile position or offset. X grows eastward, Y grows southward.
type Vec struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by n.
func (v Vec) Scale(n int) Vec { return Vec{v.X * n, v.Y * n} }

func (v Vec) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// Direction is a facing. Values follow the 8-way numbering of blueprint
// files; only the four cardinal values are valid for belts.
type Direction uint8

const (
	North Direction = 0
	East  Direction = 2
	South Direction = 4
	West  Direction = 6
)

// Directions lists the cardinal directions clockwise from North.
var Directions = [4]Direction{North, East, South, West}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

// Offset returns the unit vector for d.
func (d Direction) Offset() (Vec, error) {
	switch d {
	case North:
		return Vec{0, -1}, nil
	case East:
		return Vec{1, 0}, nil
	case South:
		return Vec{0, 1}, nil
	case West:
		return Vec{-1, 0}, nil
	}
	return Vec{}, fmt.Errorf("%w: %d", ErrInvalidDirection, d)
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() (Direction, error) {
	switch d {
	case North:
		return South, nil
	case East:
		return West, nil
	case South:
		return North, nil
	case West:
		return East, nil
	}
	return d, fmt.Errorf("%w: %d", ErrInvalidDirection, d)
}

// Left returns the direction 90 degrees counter-clockwise of d.
func (d Direction) Left() Direction { return (d + 6) % 8 }

// Right returns the direction 90 degrees clockwise of d.
func (d Direction) Right() Direction { return (d + 2) % 8 }

// offset and opposes are for entities already admitted to a grid, whose
// facings were validated by Grid.Add. Invalid directions yield a zero
// offset and never oppose anything.
func (d Direction) offset() Vec {
	v, _ := d.Offset()
	return v
}

func (d Direction) opposes(o Direction) bool {
	inv, err := d.Inverse()
	return err == nil && inv == o
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection parses a lower-case direction name ("north", "east", ...).
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
