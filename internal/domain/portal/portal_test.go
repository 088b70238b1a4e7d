package portal

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/shared"
)

func TestNewIDMonotonic(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.Greater(t, uint64(b), uint64(a))
	assert.NotEqual(t, ID(0), a)
	assert.Equal(t, "#7", ID(7).String())
}

func TestAxisJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(AxisZ)
	require.NoError(t, err)
	assert.Equal(t, `"z"`, string(data))

	var back Axis
	require.NoError(t, json.Unmarshal([]byte(`"x"`), &back))
	assert.Equal(t, AxisX, back)

	assert.Equal(t, AxisZ, AxisX.Other())
	assert.Equal(t, geom.AxisZ, AxisZ.BlockAxis())
}

func TestNewMinimal(t *testing.T) {
	p := NewMinimal(geom.BlockPos{X: 10, Y: 64, Z: -3}, AxisX, shared.Overworld)

	assert.Equal(t, geom.BlockPos{X: 10, Y: 64, Z: -3}, p.Region.Min)
	// Depth axis X collapses to one block; width runs along Z.
	assert.Equal(t, geom.BlockPos{X: 10, Y: 66, Z: -2}, p.Region.Max)
	assert.Equal(t, geom.AxisZ, p.WidthAxis())
	assert.Equal(t, geom.AxisX, p.DepthAxis())
	assert.Equal(t, shared.DefaultPortalColor, p.Color)
	assert.Equal(t, "<unnamed>", p.DisplayName())

	// Close to the build limit the bottom is lowered to make room.
	top := NewMinimal(geom.BlockPos{X: 0, Y: 319, Z: 0}, AxisZ, shared.Overworld)
	assert.Equal(t, int64(316), top.Region.Min.Y)
	assert.Equal(t, int64(318), top.Region.Max.Y)
}

func TestEntityCollisionRegion(t *testing.T) {
	// A 2-wide, 3-tall portal entered along X (width along Z).
	p := NewMinimal(geom.BlockPos{X: 0, Y: 10, Z: 0}, AxisX, shared.Overworld)

	t.Run("player fits", func(t *testing.T) {
		region, ok := p.EntityCollisionRegion(shared.Player)
		require.True(t, ok)
		// Expanded by half the width on X, shrunk inward on Z.
		assert.InDelta(t, -0.3, region.Min.X, 1e-9)
		assert.InDelta(t, 1.3, region.Max.X, 1e-9)
		assert.InDelta(t, 0.3, region.Min.Z, 1e-9)
		assert.InDelta(t, 1.7, region.Max.Z, 1e-9)
		assert.InDelta(t, 10.0, region.Min.Y, 1e-9)
		assert.InDelta(t, 11.2, region.Max.Y, 1e-9)
	})

	t.Run("projectile extends downward", func(t *testing.T) {
		region, ok := p.EntityCollisionRegion(shared.EnderPearl)
		require.True(t, ok)
		assert.InDelta(t, 10.0-0.25, region.Min.Y, 1e-9)
		assert.InDelta(t, 13.0, region.Max.Y, 1e-9)
		// Projectiles are not shrunk inward.
		assert.InDelta(t, -0.125, region.Min.Z, 1e-9)
		assert.InDelta(t, 2.125, region.Max.Z, 1e-9)
	})

	t.Run("width equal to opening does not fit", func(t *testing.T) {
		_, ok := p.EntityCollisionRegion(shared.Entity{Width: 2.0, Height: 1.0})
		assert.False(t, ok)
	})

	t.Run("width above opening does not fit", func(t *testing.T) {
		_, ok := p.EntityCollisionRegion(shared.Entity{Width: 2.5, Height: 1.0})
		assert.False(t, ok)
	})

	t.Run("just narrower than opening fits", func(t *testing.T) {
		region, ok := p.EntityCollisionRegion(shared.Entity{Width: 1.9, Height: 1.0})
		require.True(t, ok)
		assert.True(t, region.IsValid())
	})

	t.Run("taller than opening does not fit", func(t *testing.T) {
		_, ok := p.EntityCollisionRegion(shared.Entity{Width: 0.5, Height: 3.5})
		assert.False(t, ok)
	})
}

func TestDestinationRegion(t *testing.T) {
	// Overworld portal at X 80..81; ends up around X 10 in the nether.
	p := NewMinimal(geom.BlockPos{X: 80, Y: 64, Z: 0}, AxisX, shared.Overworld)
	p.AdjustWidth(func(w *int64) { *w = 4 })

	region, ok := p.DestinationRegion(shared.Player, shared.Nether)
	require.True(t, ok)
	assert.True(t, region.IsValid())
	assert.Equal(t, int64(64), region.Min.Y)

	// Horizontal coordinates are divided by the nether scale.
	assert.LessOrEqual(t, region.Min.X, int64(10))
	assert.GreaterOrEqual(t, region.Max.X, int64(10))

	// The nether side converts back up by the same factor.
	back, ok := NewMinimal(geom.BlockPos{X: 10, Y: 64, Z: 0}, AxisX, shared.Nether).
		DestinationRegion(shared.Player, shared.Overworld)
	require.True(t, ok)
	assert.True(t, back.ContainsOnAxis(geom.AxisX, 80))
	assert.True(t, back.ContainsOnAxis(geom.AxisY, 64))
}

func TestAdjustMinMax(t *testing.T) {
	dim := shared.Overworld

	t.Run("lock size translates", func(t *testing.T) {
		p := NewMinimal(geom.BlockPos{X: 0, Y: 10, Z: 0}, AxisX, dim)
		p.AdjustMin(func(min *geom.BlockPos) { min.Z += 5; min.Y += 2 }, true, dim)
		assert.Equal(t, geom.BlockPos{X: 0, Y: 12, Z: 5}, p.Region.Min)
		assert.Equal(t, geom.BlockPos{X: 0, Y: 14, Z: 6}, p.Region.Max)
	})

	t.Run("unlocked pushes max only as needed", func(t *testing.T) {
		p := NewMinimal(geom.BlockPos{X: 0, Y: 10, Z: 0}, AxisX, dim)
		p.AdjustWidth(func(w *int64) { *w = 6 })
		p.AdjustMin(func(min *geom.BlockPos) { min.Z += 2 }, false, dim)
		// Width shrinks from 6 to 4; max stays.
		assert.Equal(t, int64(2), p.Region.Min.Z)
		assert.Equal(t, int64(5), p.Region.Max.Z)

		p.AdjustMin(func(min *geom.BlockPos) { min.Z = 5 }, false, dim)
		// Pushed to keep the minimum width.
		assert.Equal(t, int64(6), p.Region.Max.Z)
	})

	t.Run("min clamped above bottom of world", func(t *testing.T) {
		p := NewMinimal(geom.BlockPos{X: 0, Y: 10, Z: 0}, AxisZ, dim)
		p.AdjustMin(func(min *geom.BlockPos) { min.Y = -1000 }, false, dim)
		assert.Equal(t, dim.YMin()+1, p.Region.Min.Y)
	})

	t.Run("max clamped below build limit", func(t *testing.T) {
		p := NewMinimal(geom.BlockPos{X: 0, Y: 10, Z: 0}, AxisZ, dim)
		p.AdjustMax(func(max *geom.BlockPos) { max.Y = 1000 }, false, dim)
		assert.Equal(t, dim.YMax()-1, p.Region.Max.Y)
	})
}

func TestAdjustWidthHeight(t *testing.T) {
	dim := shared.Nether

	p := NewMinimal(geom.BlockPos{X: 0, Y: 100, Z: 0}, AxisZ, dim)
	p.AdjustWidth(func(w *int64) { *w = 1 })
	assert.Equal(t, MinWidth, p.Region.Max.X-p.Region.Min.X+1)

	p.AdjustWidth(func(w *int64) { *w = 10 })
	assert.Equal(t, int64(10), p.Region.Max.X-p.Region.Min.X+1)

	p.AdjustHeight(func(h *int64) { *h = 1 }, dim)
	assert.Equal(t, MinHeight, p.Region.Max.Y-p.Region.Min.Y+1)

	// A height reaching past the build limit shifts the portal down.
	p.AdjustHeight(func(h *int64) { *h = 200 }, dim)
	assert.Equal(t, dim.YMax()-1, p.Region.Max.Y)
	assert.GreaterOrEqual(t, p.Region.Min.Y, dim.YMin()+1)
}

func TestAdjustAxis(t *testing.T) {
	p := NewMinimal(geom.BlockPos{X: 0, Y: 10, Z: 0}, AxisX, shared.Overworld)
	p.AdjustWidth(func(w *int64) { *w = 5 })

	p.AdjustAxis(func(a *Axis) { *a = AxisZ })
	assert.Equal(t, AxisZ, p.Axis)
	// The numeric width carries over to the new width axis.
	assert.Equal(t, int64(5), p.Region.Max.X-p.Region.Min.X+1)
	// The new depth collapses to one block.
	assert.Equal(t, p.Region.Min.Z, p.Region.Max.Z)
}

// Any sequence of adjust operations must leave the portal with a legal
// width, height, and vertical placement.
func TestAdjustInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, dim := range shared.Dimensions {
		for trial := 0; trial < 200; trial++ {
			p := NewMinimal(geom.BlockPos{
				X: rng.Int63n(200) - 100,
				Y: rng.Int63n(dim.YMax()-dim.YMin()-1) + dim.YMin() + 1,
				Z: rng.Int63n(200) - 100,
			}, Axis(rng.Intn(2)), dim)

			for op := 0; op < 20; op++ {
				delta := rng.Int63n(41) - 20
				switch rng.Intn(6) {
				case 0:
					axis := geom.Axes[rng.Intn(3)]
					p.AdjustMin(func(min *geom.BlockPos) {
						min.SetComponent(axis, min.Component(axis)+delta)
					}, rng.Intn(2) == 0, dim)
				case 1:
					axis := geom.Axes[rng.Intn(3)]
					p.AdjustMax(func(max *geom.BlockPos) {
						max.SetComponent(axis, max.Component(axis)+delta)
					}, rng.Intn(2) == 0, dim)
				case 2:
					p.AdjustWidth(func(w *int64) { *w += delta })
				case 3:
					p.AdjustHeight(func(h *int64) { *h += delta }, dim)
				case 4:
					p.AdjustAxis(func(a *Axis) { *a = a.Other() })
				case 5:
					p.AdjustHeight(func(h *int64) { *h = delta }, dim)
				}

				w := p.WidthAxis()
				width := p.Region.Max.Component(w) - p.Region.Min.Component(w) + 1
				height := p.Region.Max.Y - p.Region.Min.Y + 1
				require.True(t, p.Region.IsValid(), "region inverted: %+v", p.Region)
				require.GreaterOrEqual(t, width, MinWidth)
				require.GreaterOrEqual(t, height, MinHeight)
				require.GreaterOrEqual(t, p.Region.Min.Y, dim.YMin()+1)
				require.LessOrEqual(t, p.Region.Max.Y, dim.YMax()-1)
			}
		}
	}
}

func TestRangeChecks(t *testing.T) {
	dim := shared.Nether // search range 16
	p := NewMinimal(geom.BlockPos{X: 0, Y: 64, Z: 0}, AxisX, dim)

	assert.True(t, p.IsInRangeOfPoint(geom.BlockPos{X: 16, Y: 0, Z: 0}, dim))
	assert.False(t, p.IsInRangeOfPoint(geom.BlockPos{X: 17, Y: 0, Z: 0}, dim))
	// Y never matters for the search range.
	assert.True(t, p.IsInRangeOfPoint(geom.BlockPos{X: 0, Y: 10000, Z: 0}, dim))

	near := geom.BlockRegion{
		Min: geom.BlockPos{X: 10, Y: 0, Z: 10},
		Max: geom.BlockPos{X: 30, Y: 0, Z: 12},
	}
	assert.True(t, p.IsInRangeOfRegion(near, dim))
	assert.False(t, p.IsAlwaysInRangeOfRegion(near, dim))

	inside := geom.BlockRegion{
		Min: geom.BlockPos{X: -5, Y: 0, Z: -5},
		Max: geom.BlockPos{X: 5, Y: 0, Z: 5},
	}
	assert.True(t, p.IsAlwaysInRangeOfRegion(inside, dim))

	far := geom.BlockRegion{
		Min: geom.BlockPos{X: 100, Y: 0, Z: 0},
		Max: geom.BlockPos{X: 120, Y: 0, Z: 0},
	}
	assert.False(t, p.IsInRangeOfRegion(far, dim))
}
