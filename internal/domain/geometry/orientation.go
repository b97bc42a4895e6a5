package geometry

import (
	"encoding/json"
	"fmt"
)

// Orientation is the cardinal direction a doorway faces
type Orientation int

const (
	OrientationNone Orientation = iota
	North
	South
	East
	West
)

var orientationNames = map[Orientation]string{
	North: "north",
	South: "south",
	East:  "east",
	West:  "west",
}

var opposites = map[Orientation]Orientation{
	North: South,
	South: North,
	East:  West,
	West:  East,
}

// Opposite returns the paired orientation (north<->south, east<->west)
func (o Orientation) Opposite() Orientation {
	return opposites[o]
}

// IsOpposite reports whether other is the exact opposite of o
func (o Orientation) IsOpposite(other Orientation) bool {
	return o != OrientationNone && opposites[o] == other
}

// IsVertical reports whether o lies on the north/south axis
func (o Orientation) IsVertical() bool {
	return o == North || o == South
}

// IsHorizontal reports whether o lies on the east/west axis
func (o Orientation) IsHorizontal() bool {
	return o == East || o == West
}

// Unit returns the one-cell offset pointing in direction o
func (o Orientation) Unit() Point {
	switch o {
	case North:
		return Point{X: 0, Y: 1}
	case South:
		return Point{X: 0, Y: -1}
	case East:
		return Point{X: 1, Y: 0}
	case West:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

func (o Orientation) String() string {
	if name, ok := orientationNames[o]; ok {
		return name
	}
	return "none"
}

// ParseOrientation converts a name such as "north" into an Orientation
func ParseOrientation(name string) (Orientation, error) {
	for o, n := range orientationNames {
		if n == name {
			return o, nil
		}
	}
	return OrientationNone, fmt.Errorf("unknown orientation %q", name)
}

// MarshalJSON encodes the orientation by name
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an orientation name
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == "none" || name == "" {
		*o = OrientationNone
		return nil
	}

	parsed, err := ParseOrientation(name)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
