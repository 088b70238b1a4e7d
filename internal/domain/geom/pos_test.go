package geom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockPosComponentAccess(t *testing.T) {
	pos := BlockPos{X: 1, Y: 2, Z: 3}

	assert.EqualValues(t, 1, pos.Component(AxisX))
	assert.EqualValues(t, 2, pos.Component(AxisY))
	assert.EqualValues(t, 3, pos.Component(AxisZ))

	pos.SetComponent(AxisZ, 9)
	assert.Equal(t, BlockPos{X: 1, Y: 2, Z: 9}, pos)
}

func TestBlockPosDistanceSq(t *testing.T) {
	a := BlockPos{X: 0, Y: 0, Z: 0}
	b := BlockPos{X: 3, Y: 4, Z: 12}
	assert.EqualValues(t, 9+16+144, a.DistanceSqTo(b))
	assert.EqualValues(t, a.DistanceSqTo(b), b.DistanceSqTo(a))
}

func TestWorldPosFloorsToBlock(t *testing.T) {
	tests := []struct {
		name string
		pos  WorldPos
		want BlockPos
	}{
		{"positive", WorldPos{X: 1.9, Y: 64.0, Z: 0.5}, BlockPos{X: 1, Y: 64, Z: 0}},
		{"negative fraction floors down", WorldPos{X: -0.5, Y: -1.1, Z: -8.0}, BlockPos{X: -1, Y: -2, Z: -8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.ToBlockPos())
		})
	}
}

func TestScaleHorizontalLeavesYAlone(t *testing.T) {
	pos := WorldPos{X: 16, Y: 64, Z: -24}

	scaled := pos.ScaleHorizontal(1.0 / 8.0)
	assert.Equal(t, WorldPos{X: 2, Y: 64, Z: -3}, scaled)

	back := scaled.ScaleHorizontal(8.0)
	assert.Equal(t, pos, back)
}

func TestAxisJSONRoundTrip(t *testing.T) {
	for _, axis := range Axes {
		data, err := json.Marshal(axis)
		require.NoError(t, err)

		var back Axis
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, axis, back)
	}

	var bad Axis
	assert.Error(t, json.Unmarshal([]byte(`"w"`), &bad))
}

func TestRangeDistances(t *testing.T) {
	t.Run("min distance", func(t *testing.T) {
		assert.EqualValues(t, 3, MinRangeDistance(0, 2, 5, 9))
		assert.EqualValues(t, 3, MinRangeDistance(5, 9, 0, 2))
		assert.EqualValues(t, 0, MinRangeDistance(0, 5, 3, 9))
	})

	t.Run("max distance", func(t *testing.T) {
		// Farthest end of [0,2] from [5,9] is 0, giving distance 5.
		assert.EqualValues(t, 5, MaxRangeDistance(0, 2, 5, 9))
		// Both ends inside the other range.
		assert.EqualValues(t, 0, MaxRangeDistance(3, 4, 0, 9))
		// One end outside.
		assert.EqualValues(t, 2, MaxRangeDistance(-2, 4, 0, 9))
	})

	t.Run("distance to point", func(t *testing.T) {
		assert.EqualValues(t, 0, RangeDistanceToPoint(0, 5, 3))
		assert.EqualValues(t, 2, RangeDistanceToPoint(0, 5, 7))
		assert.EqualValues(t, 4, RangeDistanceToPoint(0, 5, -4))
	})
}
