package portal

import (
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/shared"
)

const (
	// MinWidth is the minimum width of a portal opening in blocks.
	MinWidth int64 = 2
	// MinHeight is the minimum height of a portal opening in blocks.
	MinHeight int64 = 3

	// Minimum differences between the min and max coordinates along the
	// width and height of a portal.
	minDW = MinWidth - 1
	minDH = MinHeight - 1
)

// Portal is an axis-aligned rectangular portal opening in an unspecified
// dimension.
type Portal struct {
	// ID is the unique process-scoped identifier for the portal.
	ID ID `json:"id"`
	// Name is the human-friendly name of the portal.
	Name string `json:"name,omitempty"`
	// Color is used to represent the portal in clients.
	Color shared.Color `json:"color"`
	// Region is the block region filled with portal blocks.
	Region geom.BlockRegion `json:"region"`
	// Axis is the portal's depth axis (opposite from what the game says).
	Axis Axis `json:"axis"`
}

// NewMinimal constructs a new portal at pos of the smallest possible size.
// The bottom is lowered if needed so the opening fits under the
// dimension's build limit.
func NewMinimal(pos geom.BlockPos, axis Axis, dimension shared.Dimension) *Portal {
	y := min(pos.Y, dimension.YMax()-MinHeight)
	maxPos := geom.BlockPos{X: pos.X, Y: y + minDH, Z: pos.Z}
	if axis != AxisX {
		maxPos.X += minDW
	}
	if axis != AxisZ {
		maxPos.Z += minDW
	}
	return &Portal{
		ID:    NewID(),
		Color: shared.DefaultPortalColor,
		Region: geom.BlockRegion{
			Min: geom.BlockPos{X: pos.X, Y: y, Z: pos.Z},
			Max: maxPos,
		},
		Axis: axis,
	}
}

// Clone returns a copy of the portal sharing no mutable state.
func (p *Portal) Clone() *Portal {
	clone := *p
	return &clone
}

// WidthAxis returns the axis of the width of the portal.
func (p *Portal) WidthAxis() geom.Axis {
	return p.Axis.Other().BlockAxis()
}

// DepthAxis returns the axis of the depth of the portal.
func (p *Portal) DepthAxis() geom.Axis {
	return p.Axis.BlockAxis()
}

// DisplayName returns a nonempty human-friendly name for the portal.
func (p *Portal) DisplayName() string {
	if p.Name == "" {
		return "<unnamed>"
	}
	return p.Name
}

// EntityCollisionRegion returns the world-space region where the entity's
// position can be while colliding with the portal, making it eligible for
// teleportation.
//
// The portal volume is expanded by half the entity's width on both
// horizontal axes because the entity's position is at the center of its
// hitbox. Projectiles can clip into the frame and may enter from below, so
// the bottom is extended down by the entity's height. Anything else has to
// stand bodily inside the open interior, so the width axis shrinks inward
// by the full width and the top comes down by the height.
//
// Returns false if the entity won't fit in the portal.
func (p *Portal) EntityCollisionRegion(entity shared.Entity) (geom.WorldRegion, bool) {
	result := geom.WorldRegionFromBlock(p.Region)
	half := entity.Width / 2
	result.Min.X -= half
	result.Min.Z -= half
	result.Max.X += half
	result.Max.Z += half
	if entity.Projectile {
		result.Min.Y -= entity.Height
	} else {
		w := p.WidthAxis()
		result.Min.SetComponent(w, result.Min.Component(w)+entity.Width)
		result.Max.SetComponent(w, result.Max.Component(w)-entity.Width)
		result.Max.Y -= entity.Height
		// A zero-width slab means the entity touches both frame walls
		// at once; it cannot actually pass through.
		if result.Min.Component(w) >= result.Max.Component(w) {
			return geom.WorldRegion{}, false
		}
	}
	if !result.IsValid() {
		return geom.WorldRegion{}, false
	}
	return result, true
}

// DestinationRegion returns the block region where the entity may try to
// arrive. destinationDimension is the dimension the portal leads to, not
// the one it is in. Returns false if the entity won't fit.
func (p *Portal) DestinationRegion(entity shared.Entity, destinationDimension shared.Dimension) (geom.BlockRegion, bool) {
	collision, ok := p.EntityCollisionRegion(entity)
	if !ok {
		return geom.BlockRegion{}, false
	}
	converted := destinationDimension.Other().ConvertRegionTo(collision, destinationDimension)
	return converted.BlockRegionContaining(), true
}

// AdjustMin applies f to the region's minimum corner and restores portal
// validity. If lockSize is true the size is preserved; otherwise the
// maximum corner is pushed only as far as needed to keep the portal legal.
func (p *Portal) AdjustMin(f func(*geom.BlockPos), lockSize bool, dimension shared.Dimension) {
	w := p.WidthAxis()
	d := p.DepthAxis()

	dw := p.Region.Max.Component(w) - p.Region.Min.Component(w)
	dd := p.Region.Max.Component(d) - p.Region.Min.Component(d)
	dh := p.Region.Max.Y - p.Region.Min.Y

	f(&p.Region.Min)

	// Leave enough room above for the old height and for the frame.
	lowestMinY := dimension.YMin() + 1
	highestMinY := max(dimension.YMax()-1-dh, lowestMinY)
	p.Region.Min.Y = clampInt(p.Region.Min.Y, lowestMinY, highestMinY)

	if lockSize {
		p.Region.Max.SetComponent(w, p.Region.Min.Component(w)+dw)
		p.Region.Max.Y = p.Region.Min.Y + dh
		p.Region.Max.SetComponent(d, p.Region.Min.Component(d)+dd)
	} else {
		p.Region.Max.SetComponent(w, max(p.Region.Max.Component(w), p.Region.Min.Component(w)+minDW))
		p.Region.Max.Y = max(p.Region.Max.Y, p.Region.Min.Y+minDH)
		p.Region.Max.SetComponent(d, max(p.Region.Max.Component(d), p.Region.Min.Component(d)))
	}
}

// AdjustMax applies f to the region's maximum corner and restores portal
// validity. If lockSize is true the size is preserved; otherwise the
// minimum corner is pushed only as far as needed to keep the portal legal.
func (p *Portal) AdjustMax(f func(*geom.BlockPos), lockSize bool, dimension shared.Dimension) {
	w := p.WidthAxis()
	d := p.DepthAxis()

	dw := p.Region.Max.Component(w) - p.Region.Min.Component(w)
	dd := p.Region.Max.Component(d) - p.Region.Min.Component(d)
	dh := p.Region.Max.Y - p.Region.Min.Y

	f(&p.Region.Max)

	// Leave enough room below for the old height and for the frame.
	highestMaxY := dimension.YMax() - 1
	lowestMaxY := min(dimension.YMin()+1+dh, highestMaxY)
	p.Region.Max.Y = clampInt(p.Region.Max.Y, lowestMaxY, highestMaxY)

	if lockSize {
		p.Region.Min.SetComponent(w, p.Region.Max.Component(w)-dw)
		p.Region.Min.SetComponent(d, p.Region.Max.Component(d)-dd)
		p.Region.Min.Y = p.Region.Max.Y - dh
	} else {
		p.Region.Min.SetComponent(w, min(p.Region.Min.Component(w), p.Region.Max.Component(w)-minDW))
		p.Region.Min.SetComponent(d, min(p.Region.Min.Component(d), p.Region.Max.Component(d)))
		p.Region.Min.Y = min(p.Region.Min.Y, p.Region.Max.Y-minDH)
	}
}

// AdjustWidth applies f to the portal's width, keeping it at least
// MinWidth. The minimum corner is preserved.
func (p *Portal) AdjustWidth(f func(*int64)) {
	w := p.WidthAxis()
	width := p.Region.Max.Component(w) - p.Region.Min.Component(w) + 1
	f(&width)
	width = max(width, MinWidth)
	p.Region.Max.SetComponent(w, p.Region.Min.Component(w)+width-1)
}

// AdjustHeight applies f to the portal's height, keeping it at least
// MinHeight. The minimum corner is preserved if possible; the portal is
// shifted down when the top would exceed the room left for the frame.
func (p *Portal) AdjustHeight(f func(*int64), dimension shared.Dimension) {
	// Bedrock can be broken in survival, but the full height of the
	// dimension is off limits because the obsidian frame needs room.
	height := p.Region.Max.Y - p.Region.Min.Y + 1
	f(&height)
	height = max(height, MinHeight)
	p.Region.Max.Y = p.Region.Min.Y + height - 1
	if p.Region.Max.Y > dimension.YMax()-1 {
		excess := p.Region.Max.Y - (dimension.YMax() - 1)
		p.Region.Max.Y -= excess
		p.Region.Min.Y -= excess
		if p.Region.Min.Y < dimension.YMin()+1 {
			p.Region.Min.Y = dimension.YMin() + 1
		}
	}
}

// AdjustAxis applies f to the portal's axis, preserving the numeric width
// and collapsing the new depth to a single block.
func (p *Portal) AdjustAxis(f func(*Axis)) {
	w := p.WidthAxis()
	dw := p.Region.Max.Component(w) - p.Region.Min.Component(w)

	f(&p.Axis)

	w = p.WidthAxis()
	d := p.DepthAxis()
	p.Region.Max.SetComponent(w, p.Region.Min.Component(w)+dw)
	p.Region.Max.SetComponent(d, p.Region.Min.Component(d))
}

// IsInRangeOfPoint reports whether the portal is within the portal search
// range for pos. The Y axis is ignored.
func (p *Portal) IsInRangeOfPoint(pos geom.BlockPos, dimension shared.Dimension) bool {
	r := dimension.PortalSearchRange()
	return p.Region.Min.X-r <= pos.X && pos.X <= p.Region.Max.X+r &&
		p.Region.Min.Z-r <= pos.Z && pos.Z <= p.Region.Max.Z+r
}

// IsInRangeOfRegion reports whether the portal is within the portal search
// range for any point in region. The Y axis is ignored.
func (p *Portal) IsInRangeOfRegion(region geom.BlockRegion, dimension shared.Dimension) bool {
	r := dimension.PortalSearchRange()
	return p.Region.Min.X <= region.Max.X+r &&
		p.Region.Min.Z <= region.Max.Z+r &&
		p.Region.Max.X >= region.Min.X-r &&
		p.Region.Max.Z >= region.Min.Z-r
}

// IsAlwaysInRangeOfRegion reports whether the portal is within the portal
// search range for all points in region. The Y axis is ignored.
func (p *Portal) IsAlwaysInRangeOfRegion(region geom.BlockRegion, dimension shared.Dimension) bool {
	r := dimension.PortalSearchRange()
	return geom.MaxRangeDistance(region.Min.X, region.Max.X, p.Region.Min.X, p.Region.Max.X) <= r &&
		geom.MaxRangeDistance(region.Min.Z, region.Max.Z, p.Region.Min.Z, p.Region.Max.Z) <= r
}

func clampInt(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}
