package shared

import (
	"strings"

	"github.com/danghamo/netherlink/internal/domain/geom"
)

// Dimension identifies one of the two linked dimensions.
type Dimension string

const (
	// Overworld is the 1:1-scale dimension.
	Overworld Dimension = "overworld"
	// Nether is the 8:1-scale dimension.
	Nether Dimension = "nether"
)

// Dimensions lists both dimensions, overworld first.
var Dimensions = [2]Dimension{Overworld, Nether}

// ParseDimension converts a dimension name into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(strings.ToLower(s)) {
	case Overworld:
		return Overworld, nil
	case Nether:
		return Nether, nil
	default:
		return "", ErrInvalidDimension(s)
	}
}

// IsValid reports whether the dimension is one of the known two.
func (d Dimension) IsValid() bool {
	return d == Overworld || d == Nether
}

// String returns the dimension name.
func (d Dimension) String() string {
	return string(d)
}

// Other returns the other dimension.
func (d Dimension) Other() Dimension {
	if d == Nether {
		return Overworld
	}
	return Nether
}

// Scale returns the number of overworld blocks covered per block of this
// dimension along the horizontal axes.
func (d Dimension) Scale() float64 {
	if d == Nether {
		return 8.0
	}
	return 1.0
}

// YMin returns the lowest placeable block Y.
func (d Dimension) YMin() int64 {
	if d == Nether {
		return 0
	}
	return -64
}

// YMax returns the highest placeable block Y.
func (d Dimension) YMax() int64 {
	if d == Nether {
		return 255
	}
	return 319
}

// PortalSearchRange returns the number of blocks away from a destination
// block that a portal block can be while still being found by the portal
// search algorithm.
//
//   - In the overworld, portals are searched within 257x257, so this
//     method returns 128.
//   - In the nether, portals are searched within 33x33, so this method
//     returns 16.
func (d Dimension) PortalSearchRange() int64 {
	if d == Nether {
		return 16
	}
	return 128
}

// ConvertPosTo converts a world position from this dimension's coordinate
// scale to the target's. The Y axis is never scaled.
func (d Dimension) ConvertPosTo(pos geom.WorldPos, to Dimension) geom.WorldPos {
	if d == to {
		return pos
	}
	return pos.ScaleHorizontal(d.Scale() / to.Scale())
}

// ConvertRegionTo converts a world region from this dimension's coordinate
// scale to the target's.
func (d Dimension) ConvertRegionTo(region geom.WorldRegion, to Dimension) geom.WorldRegion {
	if d == to {
		return region
	}
	return region.ScaleHorizontal(d.Scale() / to.Scale())
}
