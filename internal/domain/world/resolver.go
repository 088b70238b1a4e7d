package world

import (
	"slices"

	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
)

// PortalDestinations is the result of a reachability query: the portals
// that are the (possibly tied) nearest in-range target for at least one
// point of the destination region, and whether any point has no in-range
// candidate at all, meaning the game would generate a new portal there.
type PortalDestinations struct {
	ExistingPortals []*portal.Portal
	NewPortal       bool
	// Steps counts the recursive evaluations it took to resolve the
	// query, exposed for metrics.
	Steps int
}

// resolveAccumulator collects results across the recursion. Sibling calls
// only ever set confirmed flags and or-in the new-portal bit, so no branch
// can lose another branch's writes.
type resolveAccumulator struct {
	confirmed []bool
	newPortal bool
	steps     int
}

// PortalDestinations determines which portals in the destination dimension
// an entity arriving anywhere in destinationRegion could be teleported to.
//
// The game's native linking algorithm, for a single arrival point, scans
// every portal within the dimension's search range of that point (a
// horizontal box test ignoring Y) and picks the one closest by squared
// Euclidean distance, generating a new portal when none is in range.
// Arriving entities occupy a whole region of candidate points, so the
// result is the union of every point's winners.
//
// Rather than scanning every block, the resolver tests the 8 corners of
// the region and recursively splits wherever corners disagree: between two
// candidates the nearest-portal function only changes across their
// equidistant hyperplane, so a region whose corners all agree - and whose
// remaining candidates are all confirmed - is fully resolved, as long as
// at least one candidate is in range of every point of it.
//
// destinationRegion must satisfy Min <= Max per axis; callers validate.
// Exactly equidistant candidates are all reported, because the game's own
// tie-break depends on search order this model does not replicate.
func (wp *WorldPortals) PortalDestinations(destinationDimension shared.Dimension, destinationRegion geom.BlockRegion) PortalDestinations {
	candidates := wp.ByDimension(destinationDimension)

	acc := &resolveAccumulator{confirmed: make([]bool, len(candidates))}

	maybeReachable := make([]int, len(candidates))
	for i := range maybeReachable {
		maybeReachable[i] = i
	}

	markReachablePortals(destinationDimension, destinationRegion, candidates, maybeReachable, acc)

	result := PortalDestinations{NewPortal: acc.newPortal, Steps: acc.steps}
	for i, ok := range acc.confirmed {
		if ok {
			result.ExistingPortals = append(result.ExistingPortals, candidates[i])
		}
	}
	return result
}

// EntityDestinations resolves a single test point: the point is converted
// from its own dimension to the other dimension's scale, floored to a
// block, and resolved as a degenerate one-block region. An empty result
// means a new portal would generate there.
func (wp *WorldPortals) EntityDestinations(dimension shared.Dimension, point geom.WorldPos) []*portal.Portal {
	destination := dimension.Other()
	block := dimension.ConvertPosTo(point, destination).ToBlockPos()
	region := geom.BlockRegion{Min: block, Max: block}
	return wp.PortalDestinations(destination, region).ExistingPortals
}

func markReachablePortals(
	destinationDimension shared.Dimension,
	destinationRegion geom.BlockRegion,
	candidates []*portal.Portal,
	maybeReachable []int,
	acc *resolveAccumulator,
) {
	acc.steps++

	// Keep only candidates within the search range of some point of the
	// region. The surviving set is rebuilt into a fresh slice so sibling
	// recursive calls never share backing arrays.
	survivors := make([]int, 0, len(maybeReachable))
	for _, ci := range maybeReachable {
		if candidates[ci].IsInRangeOfRegion(destinationRegion, destinationDimension) {
			survivors = append(survivors, ci)
		}
	}

	// Drop candidates that are strictly farther, everywhere in the
	// region, than some candidate that is in range of every point. The
	// bound only comes from always-in-range candidates: one that is out
	// of range for part of the region cannot dominate there.
	smallestMaxDistance := int64(-1)
	for _, ci := range survivors {
		if !candidates[ci].IsAlwaysInRangeOfRegion(destinationRegion, destinationDimension) {
			continue
		}
		d := destinationRegion.MaxDistanceSqTo(candidates[ci].Region)
		if smallestMaxDistance < 0 || d < smallestMaxDistance {
			smallestMaxDistance = d
		}
	}
	if smallestMaxDistance >= 0 {
		kept := survivors[:0]
		for _, ci := range survivors {
			if destinationRegion.MinDistanceSqTo(candidates[ci].Region) <= smallestMaxDistance {
				kept = append(kept, ci)
			}
		}
		survivors = kept
	}

	corners := destinationRegion.Corners()
	var closestAtCorner [8][]int
	for i, corner := range corners {
		closest := minimaByOptKey(survivors, func(ci int) (int64, bool) {
			if !candidates[ci].IsInRangeOfPoint(corner, destinationDimension) {
				return 0, false
			}
			return candidates[ci].Region.MinDistanceSqToPoint(corner), true
		})
		if len(closest) == 0 {
			acc.newPortal = true
		}
		for _, ci := range closest {
			acc.confirmed[ci] = true
		}
		closestAtCorner[i] = closest
	}

	allConfirmed := true
	for _, ci := range survivors {
		if !acc.confirmed[ci] {
			allConfirmed = false
			break
		}
	}
	// Confirming every survivor at the corners is not enough to stop: an
	// interior strip can still be outside every candidate's search range
	// and would generate a new portal there. Stopping is sound once some
	// candidate covers the whole region, or once the flag is already set
	// and nothing new can come out of this branch.
	if allConfirmed && (acc.newPortal || smallestMaxDistance >= 0) {
		return
	}

	// Split along every axis where two corners differing only on that
	// axis disagree about the winners.
	var splitAlong [3]bool
	for _, axis := range geom.Axes {
		bit := 1 << uint(axis)
		for c1 := 0; c1 < 8; c1++ {
			c2 := c1 ^ bit
			if c1 < c2 && !slices.Equal(closestAtCorner[c1], closestAtCorner[c2]) {
				splitAlong[axis] = true
				break
			}
		}
		if splitAlong[axis] {
			for _, sub := range destinationRegion.SplitExcludingCorners(axis) {
				if sub != nil {
					markReachablePortals(destinationDimension, *sub, candidates, survivors, acc)
				}
			}
		}
	}

	// Some candidate may still be unconfirmed without any corner
	// disagreement, when its closest-approach zone is buried inside the
	// region. Split once at one of its own boundary coordinates and let
	// the recursion finish the job.
	for _, ci := range survivors {
		if acc.confirmed[ci] {
			continue
		}
		for _, axis := range geom.Axes {
			if splitAlong[axis] {
				continue
			}
			candidateRegion := candidates[ci].Region
			for _, splitPoint := range [2]int64{
				candidateRegion.Min.Component(axis),
				candidateRegion.Max.Component(axis),
			} {
				if !destinationRegion.ContainsOnAxis(axis, splitPoint) {
					continue
				}
				halves := destinationRegion.SplitAt(axis, splitPoint)
				if halves[0] == nil || halves[1] == nil {
					continue
				}
				markReachablePortals(destinationDimension, *halves[0], candidates, survivors, acc)
				markReachablePortals(destinationDimension, *halves[1], candidates, survivors, acc)
				return
			}
		}
	}
}

// minimaByOptKey returns every item whose key is the minimum among items
// with a key at all; items without a key are skipped.
func minimaByOptKey(items []int, key func(int) (int64, bool)) []int {
	var minKey int64
	hasMin := false
	var ret []int
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		switch {
		case !hasMin || k < minKey:
			minKey = k
			hasMin = true
			ret = append(ret[:0], item)
		case k == minKey:
			ret = append(ret, item)
		}
	}
	return ret
}
