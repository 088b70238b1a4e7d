package world

import (
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
)

// World is the aggregate holding every portal and test point in both
// dimensions. It is exclusively owned by the application service; the
// resolver only ever reads it.
type World struct {
	Portals    WorldPortals                         `json:"portals"`
	TestPoints map[shared.Dimension][]geom.WorldPos `json:"test_points,omitempty"`
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		TestPoints: make(map[shared.Dimension][]geom.WorldPos),
	}
}

// Clone returns a deep copy of the world.
func (w *World) Clone() *World {
	clone := NewWorld()
	clone.Portals.Overworld = clonePortals(w.Portals.Overworld)
	clone.Portals.Nether = clonePortals(w.Portals.Nether)
	for dim, points := range w.TestPoints {
		clone.TestPoints[dim] = append([]geom.WorldPos(nil), points...)
	}
	return clone
}

func clonePortals(portals []*portal.Portal) []*portal.Portal {
	if portals == nil {
		return nil
	}
	out := make([]*portal.Portal, len(portals))
	for i, p := range portals {
		out[i] = p.Clone()
	}
	return out
}

// AddPortal appends a portal to the dimension's list.
func (w *World) AddPortal(dimension shared.Dimension, p *portal.Portal) {
	list := w.Portals.ref(dimension)
	*list = append(*list, p)
}

// PortalByID returns the portal with the given ID in the dimension, or
// nil when absent.
func (w *World) PortalByID(dimension shared.Dimension, id portal.ID) *portal.Portal {
	for _, p := range w.Portals.ByDimension(dimension) {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemovePortal removes the portal with the given ID from the dimension's
// list, reporting whether it was present.
func (w *World) RemovePortal(dimension shared.Dimension, id portal.ID) bool {
	list := w.Portals.ref(dimension)
	for i, p := range *list {
		if p.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// ReorderPortal moves the portal with the given ID to index within its
// dimension's display list, reporting whether it was present. The index
// is clamped to the list bounds.
func (w *World) ReorderPortal(dimension shared.Dimension, id portal.ID, index int) bool {
	list := w.Portals.ref(dimension)
	from := -1
	for i, p := range *list {
		if p.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	index = min(max(index, 0), len(*list)-1)
	p := (*list)[from]
	*list = append((*list)[:from], (*list)[from+1:]...)
	rest := append([]*portal.Portal{p}, (*list)[index:]...)
	*list = append((*list)[:index], rest...)
	return true
}

// Clear removes every portal and test point.
func (w *World) Clear() {
	w.Portals.Overworld = nil
	w.Portals.Nether = nil
	w.TestPoints = make(map[shared.Dimension][]geom.WorldPos)
}

// AddTestPoint records a single-point probe in the dimension.
func (w *World) AddTestPoint(dimension shared.Dimension, point geom.WorldPos) {
	if w.TestPoints == nil {
		w.TestPoints = make(map[shared.Dimension][]geom.WorldPos)
	}
	w.TestPoints[dimension] = append(w.TestPoints[dimension], point)
}

// RemoveTestPoint removes the test point at index in the dimension,
// reporting whether the index was in bounds.
func (w *World) RemoveTestPoint(dimension shared.Dimension, index int) bool {
	points := w.TestPoints[dimension]
	if index < 0 || index >= len(points) {
		return false
	}
	w.TestPoints[dimension] = append(points[:index], points[index+1:]...)
	return true
}

// WorldPortals holds the per-dimension portal lists. The order is display
// order only; it has no effect on reachability.
type WorldPortals struct {
	Overworld []*portal.Portal `json:"overworld"`
	Nether    []*portal.Portal `json:"nether"`
}

// ByDimension returns the portal list for the dimension.
func (wp *WorldPortals) ByDimension(dimension shared.Dimension) []*portal.Portal {
	if dimension == shared.Nether {
		return wp.Nether
	}
	return wp.Overworld
}

func (wp *WorldPortals) ref(dimension shared.Dimension) *[]*portal.Portal {
	if dimension == shared.Nether {
		return &wp.Nether
	}
	return &wp.Overworld
}

// PortalsInRange returns the portals in the destination dimension whose
// search-range box intersects the destination region.
func (wp *WorldPortals) PortalsInRange(destinationDimension shared.Dimension, destinationRegion geom.BlockRegion) []*portal.Portal {
	var out []*portal.Portal
	for _, p := range wp.ByDimension(destinationDimension) {
		if p.IsInRangeOfRegion(destinationRegion, destinationDimension) {
			out = append(out, p)
		}
	}
	return out
}
