package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
)

func newTestPortal(x int64) *portal.Portal {
	return portal.NewMinimal(geom.BlockPos{X: x, Y: 64, Z: 0}, portal.AxisX, shared.Overworld)
}

func TestWorldAddRemovePortal(t *testing.T) {
	w := NewWorld()
	p := newTestPortal(0)
	w.AddPortal(shared.Overworld, p)

	assert.Same(t, p, w.PortalByID(shared.Overworld, p.ID))
	assert.Nil(t, w.PortalByID(shared.Nether, p.ID))

	assert.False(t, w.RemovePortal(shared.Nether, p.ID))
	assert.True(t, w.RemovePortal(shared.Overworld, p.ID))
	assert.False(t, w.RemovePortal(shared.Overworld, p.ID))
	assert.Empty(t, w.Portals.Overworld)
}

func TestWorldReorderPortal(t *testing.T) {
	w := NewWorld()
	a, b, c := newTestPortal(0), newTestPortal(10), newTestPortal(20)
	for _, p := range []*portal.Portal{a, b, c} {
		w.AddPortal(shared.Overworld, p)
	}

	order := func() []portal.ID {
		var ids []portal.ID
		for _, p := range w.Portals.Overworld {
			ids = append(ids, p.ID)
		}
		return ids
	}

	require.True(t, w.ReorderPortal(shared.Overworld, c.ID, 0))
	assert.Equal(t, []portal.ID{c.ID, a.ID, b.ID}, order())

	// Indices past the end clamp to the last slot.
	require.True(t, w.ReorderPortal(shared.Overworld, c.ID, 99))
	assert.Equal(t, []portal.ID{a.ID, b.ID, c.ID}, order())

	require.True(t, w.ReorderPortal(shared.Overworld, b.ID, -5))
	assert.Equal(t, []portal.ID{b.ID, a.ID, c.ID}, order())

	assert.False(t, w.ReorderPortal(shared.Nether, a.ID, 0))
}

func TestWorldClone(t *testing.T) {
	w := NewWorld()
	p := newTestPortal(0)
	w.AddPortal(shared.Overworld, p)
	w.AddTestPoint(shared.Nether, geom.WorldPos{X: 1.5, Y: 64.0, Z: 2.5})

	clone := w.Clone()
	require.Len(t, clone.Portals.Overworld, 1)
	assert.NotSame(t, p, clone.Portals.Overworld[0])
	assert.Equal(t, *p, *clone.Portals.Overworld[0])

	clone.Portals.Overworld[0].Name = "renamed"
	assert.Empty(t, p.Name)

	clone.TestPoints[shared.Nether][0].X = 9.0
	assert.Equal(t, 1.5, w.TestPoints[shared.Nether][0].X)
}

func TestWorldTestPoints(t *testing.T) {
	w := NewWorld()
	w.AddTestPoint(shared.Overworld, geom.WorldPos{X: 1.0})
	w.AddTestPoint(shared.Overworld, geom.WorldPos{X: 2.0})

	assert.False(t, w.RemoveTestPoint(shared.Overworld, 2))
	assert.True(t, w.RemoveTestPoint(shared.Overworld, 0))
	require.Len(t, w.TestPoints[shared.Overworld], 1)
	assert.Equal(t, 2.0, w.TestPoints[shared.Overworld][0].X)

	w.Clear()
	assert.Empty(t, w.TestPoints[shared.Overworld])
}

func TestWorldClear(t *testing.T) {
	w := NewWorld()
	w.AddPortal(shared.Overworld, newTestPortal(0))
	w.AddPortal(shared.Nether, newTestPortal(5))
	w.Clear()

	assert.Empty(t, w.Portals.Overworld)
	assert.Empty(t, w.Portals.Nether)
}

func TestPortalsInRange(t *testing.T) {
	near := newTestPortal(0)
	far := newTestPortal(500)
	wp := &WorldPortals{Overworld: []*portal.Portal{near, far}}

	region := geom.BlockRegion{Min: geom.BlockPos{X: 100, Y: 64, Z: 0}, Max: geom.BlockPos{X: 110, Y: 66, Z: 4}}
	got := wp.PortalsInRange(shared.Overworld, region)

	require.Len(t, got, 1)
	assert.Equal(t, near.ID, got[0].ID)
}
