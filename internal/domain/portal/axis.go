package portal

import (
	"encoding/json"
	"fmt"

	"github.com/danghamo/netherlink/internal/domain/geom"
)

// Axis is the horizontal axis perpendicular to a portal's surface: the
// axis the player passes through. The portal's width runs along the other
// horizontal axis.
type Axis int

const (
	// AxisX means the portal is entered from east/west; its width runs
	// along the Z axis.
	AxisX Axis = iota
	// AxisZ means the portal is entered from north/south; its width runs
	// along the X axis.
	AxisZ
)

// Other returns the other horizontal axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisZ
	}
	return AxisX
}

// BlockAxis returns the corresponding world axis.
func (a Axis) BlockAxis() geom.Axis {
	if a == AxisX {
		return geom.AxisX
	}
	return geom.AxisZ
}

// String returns the lowercase axis name.
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "z"
}

// ParseAxis converts a portal axis name into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "z", "Z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown portal axis %q", s)
	}
}

// MarshalJSON encodes the axis as its lowercase name.
func (a Axis) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a portal axis from its name.
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
