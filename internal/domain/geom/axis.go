package geom

import (
	"encoding/json"
	"fmt"
)

// Axis identifies one of the three world axes.
type Axis int

const (
	// AxisX runs east/west.
	AxisX Axis = iota
	// AxisY runs up/down.
	AxisY
	// AxisZ runs north/south.
	AxisZ
)

// Axes lists every axis in corner-bit order: X is the least significant bit
// of a corner index, Z the most significant.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// IsHorizontal reports whether the axis is X or Z.
func (a Axis) IsHorizontal() bool {
	return a != AxisY
}

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts an axis name into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", s)
	}
}

// MarshalJSON encodes the axis as its lowercase name.
func (a Axis) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an axis from its name.
func (a *Axis) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAxis(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
