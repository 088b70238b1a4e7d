package geom

// BlockRegion is an axis-aligned cuboid of block coordinates, inclusive on
// both ends.
type BlockRegion struct {
	// Min is the minimum coordinate (inclusive).
	Min BlockPos `json:"min"`
	// Max is the maximum coordinate (inclusive).
	Max BlockPos `json:"max"`
}

// NewBlockRegion builds a region from two corner positions.
func NewBlockRegion(min, max BlockPos) BlockRegion {
	return BlockRegion{Min: min, Max: max}
}

// ClampMax raises Max so that Min <= Max along each axis.
func (r *BlockRegion) ClampMax() {
	r.Max.X = max(r.Max.X, r.Min.X)
	r.Max.Y = max(r.Max.Y, r.Min.Y)
	r.Max.Z = max(r.Max.Z, r.Min.Z)
}

// ClampMin lowers Min so that Min <= Max along each axis.
func (r *BlockRegion) ClampMin() {
	r.Min.X = min(r.Min.X, r.Max.X)
	r.Min.Y = min(r.Min.Y, r.Max.Y)
	r.Min.Z = min(r.Min.Z, r.Max.Z)
}

// IsValid reports whether Min <= Max along every axis.
func (r BlockRegion) IsValid() bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y && r.Min.Z <= r.Max.Z
}

func (r BlockRegion) isValidOnAxis(axis Axis) bool {
	return r.Min.Component(axis) <= r.Max.Component(axis)
}

// Contains reports whether pos lies within the region.
func (r BlockRegion) Contains(pos BlockPos) bool {
	return r.Min.X <= pos.X && pos.X <= r.Max.X &&
		r.Min.Y <= pos.Y && pos.Y <= r.Max.Y &&
		r.Min.Z <= pos.Z && pos.Z <= r.Max.Z
}

// ContainsOnAxis reports whether coordinate lies within the region's extent
// along axis.
func (r BlockRegion) ContainsOnAxis(axis Axis, coordinate int64) bool {
	return r.Min.Component(axis) <= coordinate && coordinate <= r.Max.Component(axis)
}

// Size returns the number of blocks spanned along axis.
func (r BlockRegion) Size(axis Axis) int64 {
	return r.Max.Component(axis) - r.Min.Component(axis) + 1
}

// Volume returns the number of blocks in the region.
func (r BlockRegion) Volume() int64 {
	return r.Size(AxisX) * r.Size(AxisY) * r.Size(AxisZ)
}

// Blocks returns every block position in the region, Z-major, then Y,
// then X.
func (r BlockRegion) Blocks() []BlockPos {
	out := make([]BlockPos, 0, r.Volume())
	for z := r.Min.Z; z <= r.Max.Z; z++ {
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			for x := r.Min.X; x <= r.Max.X; x++ {
				out = append(out, BlockPos{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// MinDistanceSqTo returns the minimum possible squared Euclidean distance
// between any point in r and the closest point in other.
func (r BlockRegion) MinDistanceSqTo(other BlockRegion) int64 {
	dx := MinRangeDistance(r.Min.X, r.Max.X, other.Min.X, other.Max.X)
	dy := MinRangeDistance(r.Min.Y, r.Max.Y, other.Min.Y, other.Max.Y)
	dz := MinRangeDistance(r.Min.Z, r.Max.Z, other.Min.Z, other.Max.Z)
	return dx*dx + dy*dy + dz*dz
}

// MaxDistanceSqTo returns the maximum possible squared Euclidean distance
// between any point in r and the closest point in other. This chooses the
// farthest point in r and the closest point in other.
func (r BlockRegion) MaxDistanceSqTo(other BlockRegion) int64 {
	dx := MaxRangeDistance(r.Min.X, r.Max.X, other.Min.X, other.Max.X)
	dy := MaxRangeDistance(r.Min.Y, r.Max.Y, other.Min.Y, other.Max.Y)
	dz := MaxRangeDistance(r.Min.Z, r.Max.Z, other.Min.Z, other.Max.Z)
	return dx*dx + dy*dy + dz*dz
}

// MinDistanceSqToPoint returns the squared Euclidean distance from the
// closest point in r to pos.
func (r BlockRegion) MinDistanceSqToPoint(pos BlockPos) int64 {
	dx := RangeDistanceToPoint(r.Min.X, r.Max.X, pos.X)
	dy := RangeDistanceToPoint(r.Min.Y, r.Max.Y, pos.Y)
	dz := RangeDistanceToPoint(r.Min.Z, r.Max.Z, pos.Z)
	return dx*dx + dy*dy + dz*dz
}

// Corners returns the 8 corners of the region in the following order:
//
//	[-, -, -]
//	[+, -, -]
//	[-, +, -]
//	[+, +, -]
//	[-, -, +]
//	[+, -, +]
//	[-, +, +]
//	[+, +, +]
//
// The X axis is the least significant bit of the corner index; the Z axis
// is the most significant bit.
func (r BlockRegion) Corners() [8]BlockPos {
	x1, y1, z1 := r.Min.X, r.Min.Y, r.Min.Z
	x2, y2, z2 := r.Max.X, r.Max.Y, r.Max.Z
	return [8]BlockPos{
		{x1, y1, z1},
		{x2, y1, z1},
		{x1, y2, z1},
		{x2, y2, z1},
		{x1, y1, z2},
		{x2, y1, z2},
		{x1, y2, z2},
		{x2, y2, z2},
	}
}

// SplitExcludingCorners splits the region in half along axis, excluding the
// outermost layer on both ends of that axis. An empty half is nil.
func (r BlockRegion) SplitExcludingCorners(axis Axis) [2]*BlockRegion {
	lo := r
	hi := r
	lo.Min.SetComponent(axis, lo.Min.Component(axis)+1)
	hi.Max.SetComponent(axis, hi.Max.Component(axis)-1)
	halfSize := (r.Max.Component(axis) - r.Min.Component(axis)) / 2
	halfway := r.Min.Component(axis) + halfSize
	lo.Max.SetComponent(axis, halfway)
	hi.Min.SetComponent(axis, halfway+1)

	var out [2]*BlockRegion
	if lo.isValidOnAxis(axis) {
		out[0] = &lo
	}
	if hi.isValidOnAxis(axis) {
		out[1] = &hi
	}
	return out
}

// SplitAt splits the region between coordinate and coordinate+1 along axis.
// The low half keeps blocks at or below coordinate, the high half keeps
// blocks above it. An empty half is nil.
func (r BlockRegion) SplitAt(axis Axis, coordinate int64) [2]*BlockRegion {
	lo := r
	hi := r
	lo.Max.SetComponent(axis, min(lo.Max.Component(axis), coordinate))
	hi.Min.SetComponent(axis, max(hi.Min.Component(axis), coordinate+1))

	var out [2]*BlockRegion
	if lo.isValidOnAxis(axis) {
		out[0] = &lo
	}
	if hi.isValidOnAxis(axis) {
		out[1] = &hi
	}
	return out
}

// WorldRegion is an axis-aligned cuboid of continuous world coordinates.
type WorldRegion struct {
	// Min is the minimum coordinate (inclusive).
	Min WorldPos `json:"min"`
	// Max is the maximum coordinate (inclusive).
	Max WorldPos `json:"max"`
}

// WorldRegionFromBlock returns the world-space volume occupied by the
// blocks of r. Max gains +1 on every axis because a block at integer
// coordinate N spans the half-open interval [N, N+1).
func WorldRegionFromBlock(r BlockRegion) WorldRegion {
	min := r.Min.ToWorldPos()
	max := r.Max.ToWorldPos()
	max.X += 1.0
	max.Y += 1.0
	max.Z += 1.0
	return WorldRegion{Min: min, Max: max}
}

// IsValid reports whether Min <= Max along every axis.
func (r WorldRegion) IsValid() bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y && r.Min.Z <= r.Max.Z
}

// Center returns the position at the center of the region.
func (r WorldRegion) Center() WorldPos {
	return WorldPos{
		X: (r.Min.X + r.Max.X) * 0.5,
		Y: (r.Min.Y + r.Max.Y) * 0.5,
		Z: (r.Min.Z + r.Max.Z) * 0.5,
	}
}

// BlockRegionContaining returns the smallest block region that contains r.
func (r WorldRegion) BlockRegionContaining() BlockRegion {
	return BlockRegion{Min: r.Min.ToBlockPos(), Max: r.Max.ToBlockPos()}
}

// ScaleHorizontal returns the region with both corners scaled horizontally
// by ratio.
func (r WorldRegion) ScaleHorizontal(ratio float64) WorldRegion {
	return WorldRegion{
		Min: r.Min.ScaleHorizontal(ratio),
		Max: r.Max.ScaleHorizontal(ratio),
	}
}
