package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cqrsevents "github.com/danghamo/netherlink/internal/cqrs"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/pkg/logger"
)

// LinkResult is one portal's outgoing link: either the entity cannot fit
// through it at all, or the set of reachable destination portals plus
// whether some arrival point would generate a new portal.
type LinkResult struct {
	EntityWontFit bool        `json:"entity_wont_fit,omitempty"`
	IDs           []portal.ID `json:"ids,omitempty"`
	NewPortal     bool        `json:"new_portal,omitempty"`
}

// PortalLinks is the cached link state of one portal.
type PortalLinks struct {
	Dimension shared.Dimension `json:"dimension"`
	Outgoing  LinkResult       `json:"outgoing"`
	Incoming  []portal.ID      `json:"incoming,omitempty"`
}

// LinkService maintains the portal link graph. Any world change
// invalidates the whole graph, so the cache is rebuilt from a snapshot
// on every recalculation rather than patched incrementally.
type LinkService struct {
	logger    *logger.Logger
	worlds    *WorldService
	publisher EventPublisher

	mu     sync.Mutex
	entity shared.Entity
	links  map[portal.ID]*PortalLinks
	order  []portal.ID
}

// NewLinkService creates a link service resolving links for the given
// entity hitbox.
func NewLinkService(log *logger.Logger, worlds *WorldService, publisher EventPublisher, entity shared.Entity) *LinkService {
	return &LinkService{
		logger:    log.WithComponent("link-service"),
		worlds:    worlds,
		publisher: publisher,
		entity:    entity,
		links:     make(map[portal.ID]*PortalLinks),
	}
}

// Entity returns the hitbox links are currently resolved for.
func (s *LinkService) Entity() shared.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entity
}

// SetEntity changes the hitbox and recalculates.
func (s *LinkService) SetEntity(ctx context.Context, entity shared.Entity) error {
	if !entity.IsValid() {
		return shared.NewDomainError(shared.ErrCodeInvalidEntity, "entity hitbox must not be negative")
	}
	s.mu.Lock()
	s.entity = entity
	s.mu.Unlock()
	return s.Recalculate(ctx)
}

// Links returns a copy of the cached link graph in display order.
func (s *LinkService) Links() []cqrsevents.PortalLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *LinkService) snapshotLocked() []cqrsevents.PortalLink {
	out := make([]cqrsevents.PortalLink, 0, len(s.order))
	for _, id := range s.order {
		entry := s.links[id]
		out = append(out, cqrsevents.PortalLink{
			PortalID:      id,
			Dimension:     entry.Dimension,
			EntityWontFit: entry.Outgoing.EntityWontFit,
			Destinations:  append([]portal.ID(nil), entry.Outgoing.IDs...),
			NewPortal:     entry.Outgoing.NewPortal,
			Incoming:      append([]portal.ID(nil), entry.Incoming...),
		})
	}
	return out
}

// Recalculate rebuilds the whole link graph from the current world and
// publishes the result.
func (s *LinkService) Recalculate(ctx context.Context) error {
	snapshot := s.worlds.Snapshot()

	s.mu.Lock()
	entity := s.entity
	s.links = make(map[portal.ID]*PortalLinks)
	s.order = s.order[:0]

	// Outgoing pass: resolve each portal's destination region against
	// the other dimension's portals.
	for _, dimension := range shared.Dimensions {
		destination := dimension.Other()
		for _, p := range snapshot.Portals.ByDimension(dimension) {
			entry := &PortalLinks{Dimension: dimension}
			region, ok := p.DestinationRegion(entity, destination)
			if !ok {
				entry.Outgoing.EntityWontFit = true
			} else {
				result := snapshot.Portals.PortalDestinations(destination, region)
				for _, target := range result.ExistingPortals {
					entry.Outgoing.IDs = append(entry.Outgoing.IDs, target.ID)
				}
				entry.Outgoing.NewPortal = result.NewPortal
			}
			s.links[p.ID] = entry
			s.order = append(s.order, p.ID)
		}
	}

	// Incoming pass: every outgoing edge is someone else's backlink. A
	// destination ID missing from the cache means the resolver returned
	// a portal the world no longer holds, which is a consistency bug,
	// not a resolver error.
	for _, id := range s.order {
		for _, target := range s.links[id].Outgoing.IDs {
			entry, ok := s.links[target]
			if !ok {
				s.logger.Error("no destination portal with id",
					zap.String("portalId", target.String()))
				continue
			}
			entry.Incoming = append(entry.Incoming, id)
		}
	}

	links := s.snapshotLocked()
	s.mu.Unlock()

	event := &cqrsevents.LinksRecalculatedEvent{
		Entity:    entity,
		Links:     links,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish links recalculated event", zap.Error(err))
		}
	}

	s.logger.Debug("Portal links recalculated",
		zap.Int("portals", len(links)),
		zap.Float64("entityWidth", entity.Width),
		zap.Float64("entityHeight", entity.Height))
	return nil
}
