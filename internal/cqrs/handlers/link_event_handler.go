package handlers

import (
	"context"

	"go.uber.org/zap"

	cqrsevents "github.com/danghamo/netherlink/internal/cqrs"
	"github.com/danghamo/netherlink/pkg/logger"
)

// LinkRecalculator recalculates the portal link graph.
type LinkRecalculator interface {
	Recalculate(ctx context.Context) error
}

// LinkEventHandler invalidates the link graph on any world change. Every
// handled event triggers a full recalculation, which in turn publishes a
// LinksRecalculatedEvent for the SSE layer.
type LinkEventHandler struct {
	links  LinkRecalculator
	logger *logger.Logger
}

// NewLinkEventHandler creates a new link event handler
func NewLinkEventHandler(links LinkRecalculator, logger *logger.Logger) *LinkEventHandler {
	return &LinkEventHandler{
		links:  links,
		logger: logger.WithComponent("link-event-handler"),
	}
}

func (h *LinkEventHandler) recalculate(ctx context.Context, trigger string) error {
	if err := h.links.Recalculate(ctx); err != nil {
		h.logger.Error("Failed to recalculate portal links",
			zap.String("trigger", trigger),
			zap.Error(err))
		return err
	}
	return nil
}

// HandlePortalCreatedEvent recalculates links after a portal is created
func (h *LinkEventHandler) HandlePortalCreatedEvent(ctx context.Context, event *cqrsevents.PortalCreatedEvent) error {
	return h.recalculate(ctx, "portal.created")
}

// HandlePortalUpdatedEvent recalculates links after a portal changes
func (h *LinkEventHandler) HandlePortalUpdatedEvent(ctx context.Context, event *cqrsevents.PortalUpdatedEvent) error {
	// Renames and recolors cannot change geometry, but distinguishing
	// them here is not worth coupling to the operation names.
	return h.recalculate(ctx, "portal.updated")
}

// HandlePortalRemovedEvent recalculates links after a portal is removed
func (h *LinkEventHandler) HandlePortalRemovedEvent(ctx context.Context, event *cqrsevents.PortalRemovedEvent) error {
	return h.recalculate(ctx, "portal.removed")
}

// HandleWorldClearedEvent recalculates links after the world is cleared
func (h *LinkEventHandler) HandleWorldClearedEvent(ctx context.Context, event *cqrsevents.WorldClearedEvent) error {
	return h.recalculate(ctx, "world.cleared")
}
