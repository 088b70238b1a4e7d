package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	cqrsevents "github.com/danghamo/netherlink/internal/cqrs"
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/internal/domain/world"
	"github.com/danghamo/netherlink/pkg/logger"
)

// WorldBorder is the furthest horizontal block coordinate accepted from
// the API. Matches the game's own world border.
const WorldBorder = 30_000_000

// MaxNameLength caps portal names accepted from the API.
const MaxNameLength = 64

// EventPublisher publishes domain events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// WorldService owns the single in-memory world. All access goes through
// its mutex; callers only ever see deep copies of the portals.
type WorldService struct {
	logger    *logger.Logger
	publisher EventPublisher

	mu    sync.Mutex
	world *world.World
}

// NewWorldService creates a world service around an empty world.
func NewWorldService(log *logger.Logger, publisher EventPublisher) *WorldService {
	return &WorldService{
		logger:    log.WithComponent("world-service"),
		publisher: publisher,
		world:     world.NewWorld(),
	}
}

// CreatePortal places a new minimum-size portal at pos and returns a copy
// of it.
func (s *WorldService) CreatePortal(ctx context.Context, dimension shared.Dimension, pos geom.BlockPos, axis portal.Axis) (*portal.Portal, error) {
	if err := validateDimension(dimension); err != nil {
		return nil, err
	}
	if err := validateBlockPos(pos, dimension); err != nil {
		return nil, err
	}

	s.mu.Lock()
	p := portal.NewMinimal(pos, axis, dimension)
	s.world.AddPortal(dimension, p)
	snapshot := p.Clone()
	s.mu.Unlock()

	s.publish(ctx, &cqrsevents.PortalCreatedEvent{
		Dimension: dimension,
		Portal:    snapshot,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	})

	s.logger.Info("Portal created",
		zap.String("dimension", dimension.String()),
		zap.String("portalId", p.ID.String()))

	return snapshot.Clone(), nil
}

// GetPortal returns a copy of the portal with the given ID.
func (s *WorldService) GetPortal(dimension shared.Dimension, id portal.ID) (*portal.Portal, error) {
	if err := validateDimension(dimension); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.world.PortalByID(dimension, id)
	if p == nil {
		return nil, shared.ErrNotFound(fmt.Sprintf("portal %s", id))
	}
	return p.Clone(), nil
}

// ListPortals returns copies of the dimension's portals in display order.
func (s *WorldService) ListPortals(dimension shared.Dimension) ([]*portal.Portal, error) {
	if err := validateDimension(dimension); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	portals := s.world.Portals.ByDimension(dimension)
	out := make([]*portal.Portal, len(portals))
	for i, p := range portals {
		out[i] = p.Clone()
	}
	return out, nil
}

// Snapshot returns a deep copy of the whole world.
func (s *WorldService) Snapshot() *world.World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Clone()
}

// MovePortal moves the portal's minimum corner to newMin. With lockSize
// the whole portal translates; otherwise the maximum corner stays put and
// the size changes.
func (s *WorldService) MovePortal(ctx context.Context, dimension shared.Dimension, id portal.ID, newMin geom.BlockPos, lockSize bool) (*portal.Portal, map[string]interface{}, error) {
	if err := validateBlockPos(newMin, dimension); err != nil {
		return nil, nil, err
	}
	return s.updatePortal(ctx, dimension, id, "move", func(p *portal.Portal) {
		p.AdjustMin(func(min *geom.BlockPos) { *min = newMin }, lockSize, dimension)
	})
}

// ResizePortalMax moves the portal's maximum corner to newMax, translating
// the whole portal when lockSize is set.
func (s *WorldService) ResizePortalMax(ctx context.Context, dimension shared.Dimension, id portal.ID, newMax geom.BlockPos, lockSize bool) (*portal.Portal, map[string]interface{}, error) {
	if err := validateBlockPos(newMax, dimension); err != nil {
		return nil, nil, err
	}
	return s.updatePortal(ctx, dimension, id, "resize_max", func(p *portal.Portal) {
		p.AdjustMax(func(max *geom.BlockPos) { *max = newMax }, lockSize, dimension)
	})
}

// SetPortalWidth sets the portal's width, keeping the minimum corner.
func (s *WorldService) SetPortalWidth(ctx context.Context, dimension shared.Dimension, id portal.ID, width int64) (*portal.Portal, map[string]interface{}, error) {
	if width > 2*WorldBorder {
		return nil, nil, shared.ErrOutOfBounds("width")
	}
	return s.updatePortal(ctx, dimension, id, "set_width", func(p *portal.Portal) {
		p.AdjustWidth(func(w *int64) { *w = width })
	})
}

// SetPortalHeight sets the portal's height, keeping the bottom edge where
// the world's ceiling allows.
func (s *WorldService) SetPortalHeight(ctx context.Context, dimension shared.Dimension, id portal.ID, height int64) (*portal.Portal, map[string]interface{}, error) {
	if height > 2*WorldBorder {
		return nil, nil, shared.ErrOutOfBounds("height")
	}
	return s.updatePortal(ctx, dimension, id, "set_height", func(p *portal.Portal) {
		p.AdjustHeight(func(h *int64) { *h = height }, dimension)
	})
}

// SetPortalAxis reorients the portal, preserving its numeric width.
func (s *WorldService) SetPortalAxis(ctx context.Context, dimension shared.Dimension, id portal.ID, axis portal.Axis) (*portal.Portal, map[string]interface{}, error) {
	return s.updatePortal(ctx, dimension, id, "set_axis", func(p *portal.Portal) {
		p.AdjustAxis(func(a *portal.Axis) { *a = axis })
	})
}

// RenamePortal sets the portal's display name. An empty name reverts to
// the numbered placeholder.
func (s *WorldService) RenamePortal(ctx context.Context, dimension shared.Dimension, id portal.ID, name string) (*portal.Portal, map[string]interface{}, error) {
	if len(name) > MaxNameLength {
		return nil, nil, shared.NewDomainErrorf(shared.ErrCodeInvalidName, "name longer than %d characters", MaxNameLength)
	}
	return s.updatePortal(ctx, dimension, id, "rename", func(p *portal.Portal) {
		p.Name = name
	})
}

// SetPortalColor sets the portal's display color.
func (s *WorldService) SetPortalColor(ctx context.Context, dimension shared.Dimension, id portal.ID, color shared.Color) (*portal.Portal, map[string]interface{}, error) {
	return s.updatePortal(ctx, dimension, id, "set_color", func(p *portal.Portal) {
		p.Color = color
	})
}

// ReorderPortal moves the portal to the given slot in its dimension's
// display list.
func (s *WorldService) ReorderPortal(ctx context.Context, dimension shared.Dimension, id portal.ID, index int) error {
	if err := validateDimension(dimension); err != nil {
		return err
	}

	s.mu.Lock()
	ok := s.world.ReorderPortal(dimension, id, index)
	s.mu.Unlock()
	if !ok {
		return shared.ErrNotFound(fmt.Sprintf("portal %s", id))
	}

	s.publish(ctx, &cqrsevents.PortalsReorderedEvent{
		Dimension: dimension,
		PortalID:  id,
		Index:     index,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	})
	return nil
}

// RemovePortal deletes the portal from the world.
func (s *WorldService) RemovePortal(ctx context.Context, dimension shared.Dimension, id portal.ID) error {
	if err := validateDimension(dimension); err != nil {
		return err
	}

	s.mu.Lock()
	ok := s.world.RemovePortal(dimension, id)
	s.mu.Unlock()
	if !ok {
		return shared.ErrNotFound(fmt.Sprintf("portal %s", id))
	}

	s.publish(ctx, &cqrsevents.PortalRemovedEvent{
		Dimension: dimension,
		PortalID:  id,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	})

	s.logger.Info("Portal removed",
		zap.String("dimension", dimension.String()),
		zap.String("portalId", id.String()))
	return nil
}

// ClearWorld removes every portal and test point.
func (s *WorldService) ClearWorld(ctx context.Context) error {
	s.mu.Lock()
	s.world.Clear()
	s.mu.Unlock()

	s.publish(ctx, &cqrsevents.WorldClearedEvent{
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	})

	s.logger.Info("World cleared")
	return nil
}

// PortalDestinations resolves where the entity comes out when it enters
// the given portal.
func (s *WorldService) PortalDestinations(dimension shared.Dimension, id portal.ID, entity shared.Entity) (world.PortalDestinations, error) {
	if err := validateDimension(dimension); err != nil {
		return world.PortalDestinations{}, err
	}
	if !entity.IsValid() {
		return world.PortalDestinations{}, shared.NewDomainError(shared.ErrCodeInvalidEntity, "entity hitbox must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.world.PortalByID(dimension, id)
	if p == nil {
		return world.PortalDestinations{}, shared.ErrNotFound(fmt.Sprintf("portal %s", id))
	}

	destination := dimension.Other()
	region, ok := p.DestinationRegion(entity, destination)
	if !ok {
		return world.PortalDestinations{}, shared.ErrEntityWontFit()
	}
	return s.world.Portals.PortalDestinations(destination, region), nil
}

// Reachability resolves an arbitrary destination region directly against
// the destination dimension's portals.
func (s *WorldService) Reachability(destinationDimension shared.Dimension, destinationRegion geom.BlockRegion) (world.PortalDestinations, error) {
	if err := validateDimension(destinationDimension); err != nil {
		return world.PortalDestinations{}, err
	}
	if !destinationRegion.IsValid() {
		return world.PortalDestinations{}, shared.ErrInvalidRegion("region min must not exceed max on any axis")
	}
	for _, corner := range [2]geom.BlockPos{destinationRegion.Min, destinationRegion.Max} {
		if err := validateBorder(corner); err != nil {
			return world.PortalDestinations{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Portals.PortalDestinations(destinationDimension, destinationRegion), nil
}

// EntityDestinations resolves a single world-space point the way a
// teleporting entity at that point would be resolved.
func (s *WorldService) EntityDestinations(dimension shared.Dimension, point geom.WorldPos) ([]*portal.Portal, error) {
	if err := validateDimension(dimension); err != nil {
		return nil, err
	}
	if err := validateWorldPos(point); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.world.Portals.EntityDestinations(dimension, point)
	out := make([]*portal.Portal, len(found))
	for i, p := range found {
		out[i] = p.Clone()
	}
	return out, nil
}

// AddTestPoint records a probe point in the dimension.
func (s *WorldService) AddTestPoint(ctx context.Context, dimension shared.Dimension, point geom.WorldPos) error {
	if err := validateDimension(dimension); err != nil {
		return err
	}
	if err := validateWorldPos(point); err != nil {
		return err
	}

	s.mu.Lock()
	s.world.AddTestPoint(dimension, point)
	s.mu.Unlock()

	s.publish(ctx, &cqrsevents.TestPointAddedEvent{
		Dimension: dimension,
		Point:     point,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	})
	return nil
}

// ListTestPoints returns the dimension's probe points in insertion order.
func (s *WorldService) ListTestPoints(dimension shared.Dimension) ([]geom.WorldPos, error) {
	if err := validateDimension(dimension); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geom.WorldPos(nil), s.world.TestPoints[dimension]...), nil
}

// RemoveTestPoint removes the probe point at index.
func (s *WorldService) RemoveTestPoint(ctx context.Context, dimension shared.Dimension, index int) error {
	if err := validateDimension(dimension); err != nil {
		return err
	}

	s.mu.Lock()
	ok := s.world.RemoveTestPoint(dimension, index)
	s.mu.Unlock()
	if !ok {
		return shared.ErrNotFound(fmt.Sprintf("test point %d", index))
	}

	s.publish(ctx, &cqrsevents.TestPointRemovedEvent{
		Dimension: dimension,
		Index:     index,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	})
	return nil
}

// updatePortal applies a mutation to the portal under the lock and
// publishes a PortalUpdatedEvent carrying the merge patch of what
// actually changed.
func (s *WorldService) updatePortal(ctx context.Context, dimension shared.Dimension, id portal.ID, operation string, apply func(*portal.Portal)) (*portal.Portal, map[string]interface{}, error) {
	if err := validateDimension(dimension); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	p := s.world.PortalByID(dimension, id)
	if p == nil {
		s.mu.Unlock()
		return nil, nil, shared.ErrNotFound(fmt.Sprintf("portal %s", id))
	}
	original := p.Clone()
	apply(p)
	updated := p.Clone()
	s.mu.Unlock()

	changes, err := portalChanges(original, updated)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, &cqrsevents.PortalUpdatedEvent{
		Dimension: dimension,
		PortalID:  id,
		Operation: operation,
		Portal:    updated,
		Changes:   changes,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	})

	return updated.Clone(), changes, nil
}

func (s *WorldService) publish(ctx context.Context, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("event", fmt.Sprintf("%T", event)),
			zap.Error(err))
	}
}

// portalChanges creates a JSON merge patch containing only changed fields
func portalChanges(original, updated *portal.Portal) (map[string]interface{}, error) {
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal original portal: %w", err)
	}

	updatedJSON, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal updated portal: %w", err)
	}

	mergePatch, err := jsonpatch.CreateMergePatch(originalJSON, updatedJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge patch: %w", err)
	}

	var changes map[string]interface{}
	if err := json.Unmarshal(mergePatch, &changes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal merge patch: %w", err)
	}

	return changes, nil
}

func validateDimension(dimension shared.Dimension) error {
	if !dimension.IsValid() {
		return shared.ErrInvalidDimension(dimension.String())
	}
	return nil
}

func validateBorder(pos geom.BlockPos) error {
	if pos.X < -WorldBorder || pos.X > WorldBorder || pos.Z < -WorldBorder || pos.Z > WorldBorder {
		return shared.ErrOutOfBounds(fmt.Sprintf("position (%d, %d, %d)", pos.X, pos.Y, pos.Z))
	}
	return nil
}

func validateBlockPos(pos geom.BlockPos, dimension shared.Dimension) error {
	if err := validateBorder(pos); err != nil {
		return err
	}
	if pos.Y < dimension.YMin() || pos.Y > dimension.YMax() {
		return shared.ErrOutOfBounds(fmt.Sprintf("Y coordinate %d", pos.Y))
	}
	return nil
}

func validateWorldPos(point geom.WorldPos) error {
	if point.X < -WorldBorder || point.X > WorldBorder || point.Z < -WorldBorder || point.Z > WorldBorder {
		return shared.ErrOutOfBounds(fmt.Sprintf("point (%g, %g, %g)", point.X, point.Y, point.Z))
	}
	return nil
}
