package world

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
)

// naiveDestinations resolves the query by brute force, testing every block
// of the region independently. It is the oracle the recursive resolver is
// checked against.
func naiveDestinations(dimension shared.Dimension, region geom.BlockRegion, candidates []*portal.Portal) ([]portal.ID, bool) {
	winners := map[portal.ID]bool{}
	newPortal := false
	for _, block := range region.Blocks() {
		closest := minimaByOptKey(indicesOf(candidates), func(ci int) (int64, bool) {
			if !candidates[ci].IsInRangeOfPoint(block, dimension) {
				return 0, false
			}
			return candidates[ci].Region.MinDistanceSqToPoint(block), true
		})
		if len(closest) == 0 {
			newPortal = true
		}
		for _, ci := range closest {
			winners[candidates[ci].ID] = true
		}
	}
	ids := make([]portal.ID, 0, len(winners))
	for id := range winners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, newPortal
}

func indicesOf(candidates []*portal.Portal) []int {
	out := make([]int, len(candidates))
	for i := range out {
		out[i] = i
	}
	return out
}

func sortedIDs(portals []*portal.Portal) []portal.ID {
	ids := make([]portal.ID, 0, len(portals))
	for _, p := range portals {
		ids = append(ids, p.ID)
	}
	slices.Sort(ids)
	return ids
}

func portalAt(region geom.BlockRegion) *portal.Portal {
	return &portal.Portal{ID: portal.NewID(), Region: region, Axis: portal.AxisX}
}

func TestMinimaByOptKey(t *testing.T) {
	keys := map[int]int64{1: 5, 2: 3, 4: 3, 5: 9}
	got := minimaByOptKey([]int{0, 1, 2, 3, 4, 5}, func(i int) (int64, bool) {
		k, ok := keys[i]
		return k, ok
	})
	assert.Equal(t, []int{2, 4}, got)

	assert.Empty(t, minimaByOptKey([]int{0, 1}, func(int) (int64, bool) { return 0, false }))
	assert.Empty(t, minimaByOptKey(nil, func(int) (int64, bool) { return 0, true }))
}

func TestPortalDestinationsEmpty(t *testing.T) {
	wp := &WorldPortals{}
	region := geom.BlockRegion{Min: geom.BlockPos{X: 0, Y: 64, Z: 0}, Max: geom.BlockPos{X: 3, Y: 66, Z: 3}}

	result := wp.PortalDestinations(shared.Nether, region)

	assert.Empty(t, result.ExistingPortals)
	assert.True(t, result.NewPortal)
}

func TestPortalDestinationsSingleCandidate(t *testing.T) {
	p := portalAt(geom.BlockRegion{Min: geom.BlockPos{X: 2, Y: 60, Z: 2}, Max: geom.BlockPos{X: 3, Y: 63, Z: 2}})
	wp := &WorldPortals{Nether: []*portal.Portal{p}}

	t.Run("always in range", func(t *testing.T) {
		region := geom.BlockRegion{Min: geom.BlockPos{X: 0, Y: 64, Z: 0}, Max: geom.BlockPos{X: 4, Y: 66, Z: 4}}
		result := wp.PortalDestinations(shared.Nether, region)

		require.Len(t, result.ExistingPortals, 1)
		assert.Equal(t, p.ID, result.ExistingPortals[0].ID)
		assert.False(t, result.NewPortal)
	})

	t.Run("partially in range", func(t *testing.T) {
		// The nether search range is 16, so X=19 is in range of the
		// portal's Max.X=3 but X=40 is far outside it.
		region := geom.BlockRegion{Min: geom.BlockPos{X: 10, Y: 64, Z: 0}, Max: geom.BlockPos{X: 40, Y: 66, Z: 4}}
		result := wp.PortalDestinations(shared.Nether, region)

		require.Len(t, result.ExistingPortals, 1)
		assert.Equal(t, p.ID, result.ExistingPortals[0].ID)
		assert.True(t, result.NewPortal)
	})

	t.Run("fully out of range", func(t *testing.T) {
		region := geom.BlockRegion{Min: geom.BlockPos{X: 100, Y: 64, Z: 0}, Max: geom.BlockPos{X: 104, Y: 66, Z: 4}}
		result := wp.PortalDestinations(shared.Nether, region)

		assert.Empty(t, result.ExistingPortals)
		assert.True(t, result.NewPortal)
	})
}

// A thin vertical region between a far portal and a near one; the far one
// is closer only to the top slice of the region, which a corner-only test
// cannot see without splitting.
func TestPortalDestinationsBuriedBoundary(t *testing.T) {
	far := portalAt(geom.BlockRegion{Min: geom.BlockPos{X: 88, Y: 60, Z: -15}, Max: geom.BlockPos{X: 90, Y: 62, Z: -15}})
	near := portalAt(geom.BlockRegion{Min: geom.BlockPos{X: 0, Y: 64, Z: 0}, Max: geom.BlockPos{X: 0, Y: 66, Z: 1}})
	wp := &WorldPortals{Overworld: []*portal.Portal{far, near}}
	region := geom.BlockRegion{Min: geom.BlockPos{X: 8, Y: 64, Z: 5}, Max: geom.BlockPos{X: 8, Y: 66, Z: 18}}

	result := wp.PortalDestinations(shared.Overworld, region)

	wantIDs, wantNew := naiveDestinations(shared.Overworld, region, wp.Overworld)
	assert.Equal(t, wantIDs, sortedIDs(result.ExistingPortals))
	assert.Equal(t, wantNew, result.NewPortal)
}

// Two portals 258 blocks apart, with a destination region straddling the
// one-column gap between their 128-block search boxes. Every corner has a
// winner, so the resolver must not stop before noticing that the middle
// column is out of range of both portals.
func TestPortalDestinationsCoverageGap(t *testing.T) {
	west := portalAt(geom.BlockRegion{Min: geom.BlockPos{X: -2, Y: 64, Z: 0}, Max: geom.BlockPos{X: 0, Y: 66, Z: 0}})
	east := portalAt(geom.BlockRegion{Min: geom.BlockPos{X: 258, Y: 64, Z: 0}, Max: geom.BlockPos{X: 260, Y: 66, Z: 0}})
	wp := &WorldPortals{Overworld: []*portal.Portal{west, east}}
	// X=129 is 129 blocks from both portals, just past the search range.
	region := geom.BlockRegion{Min: geom.BlockPos{X: 122, Y: 64, Z: -3}, Max: geom.BlockPos{X: 133, Y: 65, Z: 10}}

	result := wp.PortalDestinations(shared.Overworld, region)

	assert.True(t, result.NewPortal)
	assert.Equal(t, []portal.ID{west.ID, east.ID}, sortedIDs(result.ExistingPortals))

	wantIDs, wantNew := naiveDestinations(shared.Overworld, region, wp.Overworld)
	assert.Equal(t, wantIDs, sortedIDs(result.ExistingPortals))
	assert.Equal(t, wantNew, result.NewPortal)
}

func TestPortalDestinationsMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// Positions span several times the 16-block nether search range, so
	// the sampled worlds include regions the candidate boxes only cover
	// with holes, or not at all.
	randPos := func() geom.BlockPos {
		return geom.BlockPos{
			X: rng.Int63n(193) - 96,
			Y: rng.Int63n(40) + 40,
			Z: rng.Int63n(193) - 96,
		}
	}
	randRegion := func(maxExtent int64) geom.BlockRegion {
		min := randPos()
		return geom.BlockRegion{Min: min, Max: geom.BlockPos{
			X: min.X + rng.Int63n(maxExtent),
			Y: min.Y + rng.Int63n(maxExtent),
			Z: min.Z + rng.Int63n(maxExtent),
		}}
	}

	for trial := 0; trial < 300; trial++ {
		t.Run(fmt.Sprintf("trial %d", trial), func(t *testing.T) {
			wp := &WorldPortals{}
			for i := rng.Intn(6); i > 0; i-- {
				wp.Nether = append(wp.Nether, portalAt(randRegion(4)))
			}
			region := randRegion(12)

			result := wp.PortalDestinations(shared.Nether, region)

			wantIDs, wantNew := naiveDestinations(shared.Nether, region, wp.Nether)
			require.Equal(t, wantIDs, sortedIDs(result.ExistingPortals))
			require.Equal(t, wantNew, result.NewPortal)
			require.Greater(t, result.Steps, 0)

			t.Run("deterministic", func(t *testing.T) {
				again := wp.PortalDestinations(shared.Nether, region)
				assert.Equal(t, sortedIDs(result.ExistingPortals), sortedIDs(again.ExistingPortals))
				assert.Equal(t, result.NewPortal, again.NewPortal)
			})

			t.Run("losers do not affect the result", func(t *testing.T) {
				winners := sortedIDs(result.ExistingPortals)
				trimmed := &WorldPortals{}
				for _, p := range wp.Nether {
					if slices.Contains(winners, p.ID) {
						trimmed.Nether = append(trimmed.Nether, p)
					}
				}
				retried := trimmed.PortalDestinations(shared.Nether, region)
				assert.Equal(t, winners, sortedIDs(retried.ExistingPortals))
				assert.Equal(t, result.NewPortal, retried.NewPortal)
			})
		})
	}
}

func TestEntityDestinations(t *testing.T) {
	p := portalAt(geom.BlockRegion{Min: geom.BlockPos{X: 10, Y: 60, Z: 10}, Max: geom.BlockPos{X: 11, Y: 63, Z: 10}})
	wp := &WorldPortals{Nether: []*portal.Portal{p}}

	t.Run("overworld point maps to nether portal", func(t *testing.T) {
		// 84.0 in the overworld is block 10 in the nether.
		got := wp.EntityDestinations(shared.Overworld, geom.WorldPos{X: 84.0, Y: 62.0, Z: 84.0})
		require.Len(t, got, 1)
		assert.Equal(t, p.ID, got[0].ID)
	})

	t.Run("far point generates a new portal", func(t *testing.T) {
		got := wp.EntityDestinations(shared.Overworld, geom.WorldPos{X: 4000.0, Y: 62.0, Z: 4000.0})
		assert.Empty(t, got)
	})

	t.Run("no overworld portals", func(t *testing.T) {
		got := wp.EntityDestinations(shared.Nether, geom.WorldPos{X: 10.0, Y: 62.0, Z: 10.0})
		assert.Empty(t, got)
	})
}
