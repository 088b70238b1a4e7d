package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cqrsevents "github.com/danghamo/netherlink/internal/cqrs"
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/pkg/logger"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) all() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]interface{}(nil), p.events...)
}

func newTestWorldService() (*WorldService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewWorldService(logger.NewDefault(), pub), pub
}

func TestWorldServiceCreatePortal(t *testing.T) {
	svc, pub := newTestWorldService()
	ctx := context.Background()

	p, err := svc.CreatePortal(ctx, shared.Overworld, geom.BlockPos{X: 0, Y: 64, Z: 0}, portal.AxisX)
	require.NoError(t, err)
	assert.Equal(t, geom.BlockPos{X: 0, Y: 64, Z: 0}, p.Region.Min)
	assert.Equal(t, geom.BlockPos{X: 0, Y: 66, Z: 1}, p.Region.Max)

	events := pub.all()
	require.Len(t, events, 1)
	created, ok := events[0].(*cqrsevents.PortalCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, shared.Overworld, created.Dimension)
	assert.Equal(t, p.ID, created.Portal.ID)
	assert.NotEmpty(t, created.RequestID)

	t.Run("invalid dimension", func(t *testing.T) {
		_, err := svc.CreatePortal(ctx, "the_end", geom.BlockPos{Y: 64}, portal.AxisX)
		assert.Error(t, err)
	})

	t.Run("outside world border", func(t *testing.T) {
		_, err := svc.CreatePortal(ctx, shared.Overworld, geom.BlockPos{X: 30_000_001, Y: 64}, portal.AxisX)
		assert.Error(t, err)
	})

	t.Run("y out of placement range", func(t *testing.T) {
		_, err := svc.CreatePortal(ctx, shared.Nether, geom.BlockPos{Y: -1}, portal.AxisX)
		assert.Error(t, err)
	})
}

func TestWorldServiceGetAndList(t *testing.T) {
	svc, _ := newTestWorldService()
	ctx := context.Background()

	p, err := svc.CreatePortal(ctx, shared.Nether, geom.BlockPos{X: 5, Y: 70, Z: 5}, portal.AxisZ)
	require.NoError(t, err)

	got, err := svc.GetPortal(shared.Nether, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// Returned copies must not alias service state.
	got.Name = "scratch"
	again, err := svc.GetPortal(shared.Nether, p.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Name)

	list, err := svc.ListPortals(shared.Nether)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.GetPortal(shared.Overworld, p.ID)
	assert.Error(t, err)
}

func TestWorldServiceUpdateOps(t *testing.T) {
	svc, pub := newTestWorldService()
	ctx := context.Background()

	p, err := svc.CreatePortal(ctx, shared.Overworld, geom.BlockPos{X: 0, Y: 64, Z: 0}, portal.AxisX)
	require.NoError(t, err)

	t.Run("rename produces a name-only patch", func(t *testing.T) {
		updated, changes, err := svc.RenamePortal(ctx, shared.Overworld, p.ID, "base hub")
		require.NoError(t, err)
		assert.Equal(t, "base hub", updated.Name)
		assert.Equal(t, map[string]interface{}{"name": "base hub"}, changes)
	})

	t.Run("move with locked size translates", func(t *testing.T) {
		updated, changes, err := svc.MovePortal(ctx, shared.Overworld, p.ID, geom.BlockPos{X: 10, Y: 70, Z: 10}, true)
		require.NoError(t, err)
		assert.Equal(t, geom.BlockPos{X: 10, Y: 70, Z: 10}, updated.Region.Min)
		assert.Equal(t, geom.BlockPos{X: 10, Y: 72, Z: 11}, updated.Region.Max)
		assert.Contains(t, changes, "region")
	})

	t.Run("set width", func(t *testing.T) {
		updated, _, err := svc.SetPortalWidth(ctx, shared.Overworld, p.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), updated.Region.Size(updated.WidthAxis()))
	})

	t.Run("set axis keeps width", func(t *testing.T) {
		updated, _, err := svc.SetPortalAxis(ctx, shared.Overworld, p.ID, portal.AxisZ)
		require.NoError(t, err)
		assert.Equal(t, portal.AxisZ, updated.Axis)
		assert.Equal(t, int64(5), updated.Region.Size(updated.WidthAxis()))
	})

	t.Run("unknown portal", func(t *testing.T) {
		_, _, err := svc.RenamePortal(ctx, shared.Overworld, portal.ID(99999), "x")
		assert.Error(t, err)
	})

	t.Run("name too long", func(t *testing.T) {
		long := make([]byte, MaxNameLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, _, err := svc.RenamePortal(ctx, shared.Overworld, p.ID, string(long))
		assert.Error(t, err)
	})

	var updates int
	for _, e := range pub.all() {
		if _, ok := e.(*cqrsevents.PortalUpdatedEvent); ok {
			updates++
		}
	}
	assert.Equal(t, 4, updates)
}

func TestWorldServiceRemoveAndClear(t *testing.T) {
	svc, pub := newTestWorldService()
	ctx := context.Background()

	p, err := svc.CreatePortal(ctx, shared.Overworld, geom.BlockPos{X: 0, Y: 64, Z: 0}, portal.AxisX)
	require.NoError(t, err)

	require.NoError(t, svc.RemovePortal(ctx, shared.Overworld, p.ID))
	assert.Error(t, svc.RemovePortal(ctx, shared.Overworld, p.ID))

	require.NoError(t, svc.AddTestPoint(ctx, shared.Nether, geom.WorldPos{X: 1, Y: 64, Z: 1}))
	require.NoError(t, svc.ClearWorld(ctx))

	points, err := svc.ListTestPoints(shared.Nether)
	require.NoError(t, err)
	assert.Empty(t, points)

	var cleared bool
	for _, e := range pub.all() {
		if _, ok := e.(*cqrsevents.WorldClearedEvent); ok {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestWorldServicePortalDestinations(t *testing.T) {
	svc, _ := newTestWorldService()
	ctx := context.Background()

	ow, err := svc.CreatePortal(ctx, shared.Overworld, geom.BlockPos{X: 0, Y: 64, Z: 0}, portal.AxisX)
	require.NoError(t, err)
	nether, err := svc.CreatePortal(ctx, shared.Nether, geom.BlockPos{X: 0, Y: 64, Z: 0}, portal.AxisX)
	require.NoError(t, err)

	t.Run("player reaches the nether portal", func(t *testing.T) {
		result, err := svc.PortalDestinations(shared.Overworld, ow.ID, shared.Player)
		require.NoError(t, err)
		require.Len(t, result.ExistingPortals, 1)
		assert.Equal(t, nether.ID, result.ExistingPortals[0].ID)
		assert.False(t, result.NewPortal)
	})

	t.Run("entity as wide as the opening does not fit", func(t *testing.T) {
		wide := shared.Entity{Width: 2.0, Height: 1.0}
		_, err := svc.PortalDestinations(shared.Overworld, ow.ID, wide)
		assert.Error(t, err)
	})

	t.Run("unknown portal", func(t *testing.T) {
		_, err := svc.PortalDestinations(shared.Overworld, portal.ID(99999), shared.Player)
		assert.Error(t, err)
	})
}

func TestWorldServiceReachability(t *testing.T) {
	svc, _ := newTestWorldService()
	ctx := context.Background()

	_, err := svc.CreatePortal(ctx, shared.Nether, geom.BlockPos{X: 0, Y: 64, Z: 0}, portal.AxisX)
	require.NoError(t, err)

	region := geom.BlockRegion{Min: geom.BlockPos{X: 0, Y: 64, Z: 0}, Max: geom.BlockPos{X: 2, Y: 66, Z: 2}}
	result, err := svc.Reachability(shared.Nether, region)
	require.NoError(t, err)
	assert.Len(t, result.ExistingPortals, 1)

	t.Run("inverted region rejected", func(t *testing.T) {
		bad := geom.BlockRegion{Min: geom.BlockPos{X: 5}, Max: geom.BlockPos{X: 0}}
		_, err := svc.Reachability(shared.Nether, bad)
		assert.Error(t, err)
	})
}

func TestWorldServiceTestPoints(t *testing.T) {
	svc, _ := newTestWorldService()
	ctx := context.Background()

	nether, err := svc.CreatePortal(ctx, shared.Nether, geom.BlockPos{X: 10, Y: 64, Z: 10}, portal.AxisX)
	require.NoError(t, err)

	require.NoError(t, svc.AddTestPoint(ctx, shared.Overworld, geom.WorldPos{X: 84.0, Y: 64.0, Z: 84.0}))

	points, err := svc.ListTestPoints(shared.Overworld)
	require.NoError(t, err)
	require.Len(t, points, 1)

	found, err := svc.EntityDestinations(shared.Overworld, points[0])
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, nether.ID, found[0].ID)

	require.NoError(t, svc.RemoveTestPoint(ctx, shared.Overworld, 0))
	assert.Error(t, svc.RemoveTestPoint(ctx, shared.Overworld, 0))
}
