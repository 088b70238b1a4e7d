package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	cqrsevents "github.com/danghamo/netherlink/internal/cqrs"
	"github.com/danghamo/netherlink/pkg/logger"
)

// SSEBroadcaster interface for broadcasting SSE messages
type SSEBroadcaster interface {
	BroadcastToClients(targetClients []string, notification jsonrpcx.JsonRpcNotification)
	BroadcastToAll(notification jsonrpcx.JsonRpcNotification)
}

// SSEEventHandler handles domain events and converts them to SSE notifications
type SSEEventHandler struct {
	sseBroadcaster SSEBroadcaster
	logger         *logger.Logger
}

// NewSSEEventHandler creates a new SSE event handler
func NewSSEEventHandler(sseBroadcaster SSEBroadcaster, logger *logger.Logger) *SSEEventHandler {
	return &SSEEventHandler{
		sseBroadcaster: sseBroadcaster,
		logger:         logger.WithComponent("sse-event-handler"),
	}
}

// HandlePortalCreatedEvent broadcasts a portal creation to all clients
func (h *SSEEventHandler) HandlePortalCreatedEvent(ctx context.Context, event *cqrsevents.PortalCreatedEvent) error {
	h.logger.Debug("Handling portal created event",
		zap.String("dimension", event.Dimension.String()),
		zap.String("requestId", event.RequestID))

	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "portal.created",
		Params: map[string]interface{}{
			"dimension": event.Dimension,
			"portal":    event.Portal,
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandlePortalUpdatedEvent broadcasts a portal change to all clients. Only
// the merge patch of changed fields goes over the wire alongside the full
// portal, mirroring the mutation response shape.
func (h *SSEEventHandler) HandlePortalUpdatedEvent(ctx context.Context, event *cqrsevents.PortalUpdatedEvent) error {
	h.logger.Debug("Handling portal updated event",
		zap.String("dimension", event.Dimension.String()),
		zap.String("portalId", event.PortalID.String()),
		zap.String("operation", event.Operation),
		zap.String("requestId", event.RequestID))

	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "portal.updated",
		Params: map[string]interface{}{
			"dimension": event.Dimension,
			"portal_id": event.PortalID,
			"operation": event.Operation,
			"changes":   event.Changes,
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandlePortalRemovedEvent broadcasts a portal removal to all clients
func (h *SSEEventHandler) HandlePortalRemovedEvent(ctx context.Context, event *cqrsevents.PortalRemovedEvent) error {
	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "portal.removed",
		Params: map[string]interface{}{
			"dimension": event.Dimension,
			"portal_id": event.PortalID,
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandlePortalsReorderedEvent broadcasts a display-order change
func (h *SSEEventHandler) HandlePortalsReorderedEvent(ctx context.Context, event *cqrsevents.PortalsReorderedEvent) error {
	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "portals.reordered",
		Params: map[string]interface{}{
			"dimension": event.Dimension,
			"portal_id": event.PortalID,
			"index":     event.Index,
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandleWorldClearedEvent broadcasts a full world reset
func (h *SSEEventHandler) HandleWorldClearedEvent(ctx context.Context, event *cqrsevents.WorldClearedEvent) error {
	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "world.cleared",
		Params: map[string]interface{}{
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandleTestPointAddedEvent broadcasts a new test point
func (h *SSEEventHandler) HandleTestPointAddedEvent(ctx context.Context, event *cqrsevents.TestPointAddedEvent) error {
	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "testpoint.added",
		Params: map[string]interface{}{
			"dimension": event.Dimension,
			"point":     event.Point,
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandleTestPointRemovedEvent broadcasts a test point removal
func (h *SSEEventHandler) HandleTestPointRemovedEvent(ctx context.Context, event *cqrsevents.TestPointRemovedEvent) error {
	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "testpoint.removed",
		Params: map[string]interface{}{
			"dimension": event.Dimension,
			"index":     event.Index,
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandleLinksRecalculatedEvent broadcasts the fresh link graph
func (h *SSEEventHandler) HandleLinksRecalculatedEvent(ctx context.Context, event *cqrsevents.LinksRecalculatedEvent) error {
	h.logger.Debug("Handling links recalculated event",
		zap.Int("links", len(event.Links)),
		zap.String("requestId", event.RequestID))

	h.sseBroadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "links.recalculated",
		Params: map[string]interface{}{
			"entity":    event.Entity,
			"links":     event.Links,
			"timestamp": event.Timestamp.Format(time.RFC3339),
		},
	})
	return nil
}

// HandleSSENotificationEvent handles SSENotificationEvent for targeted SSE messaging
func (h *SSEEventHandler) HandleSSENotificationEvent(ctx context.Context, event *cqrsevents.SSENotificationEvent) error {
	h.logger.Debug("Handling SSE notification event",
		zap.String("type", event.Type),
		zap.Strings("targetClients", event.TargetClients),
		zap.String("method", event.Method),
		zap.String("requestId", event.RequestID))

	notification := jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  event.Method,
		Params:  event.Params,
	}

	switch event.Type {
	case cqrsevents.SSENotificationTypeClients:
		if len(event.TargetClients) > 0 {
			h.sseBroadcaster.BroadcastToClients(event.TargetClients, notification)
		}
	case cqrsevents.SSENotificationTypeBroadcast:
		h.sseBroadcaster.BroadcastToAll(notification)
	default:
		h.logger.Warn("Unknown SSE notification type", zap.String("type", event.Type))
	}

	return nil
}
