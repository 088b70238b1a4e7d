package geom

import (
	"fmt"
	"math"
)

// BlockPos is a block-granularity coordinate.
//
// Block coordinates cannot be converted directly between dimensions; they
// must go through world coordinates first.
type BlockPos struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
	Z int64 `json:"z"`
}

// Component returns the coordinate along axis.
func (p BlockPos) Component(axis Axis) int64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// SetComponent replaces the coordinate along axis.
func (p *BlockPos) SetComponent(axis Axis, v int64) {
	switch axis {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	default:
		p.Z = v
	}
}

// DistanceSqTo returns the squared Euclidean distance to other.
func (p BlockPos) DistanceSqTo(other BlockPos) int64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// ToWorldPos returns the world coordinate of the block's minimum corner.
func (p BlockPos) ToWorldPos() WorldPos {
	return WorldPos{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

// String returns the coordinate triple as "x, y, z".
func (p BlockPos) String() string {
	return fmt.Sprintf("%d, %d, %d", p.X, p.Y, p.Z)
}

// WorldPos is a continuous coordinate within one dimension.
type WorldPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Component returns the coordinate along axis.
func (p WorldPos) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// SetComponent replaces the coordinate along axis.
func (p *WorldPos) SetComponent(axis Axis, v float64) {
	switch axis {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	default:
		p.Z = v
	}
}

// ToBlockPos returns the block containing the position, flooring each
// component.
func (p WorldPos) ToBlockPos() BlockPos {
	return BlockPos{
		X: int64(math.Floor(p.X)),
		Y: int64(math.Floor(p.Y)),
		Z: int64(math.Floor(p.Z)),
	}
}

// ScaleHorizontal returns the position with X and Z multiplied by ratio.
// The Y axis is never scaled between dimensions.
func (p WorldPos) ScaleHorizontal(ratio float64) WorldPos {
	return WorldPos{X: p.X * ratio, Y: p.Y, Z: p.Z * ratio}
}

// String returns the coordinate triple as "x, y, z".
func (p WorldPos) String() string {
	return fmt.Sprintf("%v, %v, %v", p.X, p.Y, p.Z)
}
