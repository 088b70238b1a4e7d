package cqrs

import (
	"time"

	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
)

// PortalCreatedEvent represents a domain event when a portal is created
type PortalCreatedEvent struct {
	Dimension shared.Dimension `json:"dimension"`
	Portal    *portal.Portal   `json:"portal"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
}

// PortalUpdatedEvent represents a domain event when a portal attribute
// changes. Changes carries a JSON merge patch of the modified fields.
type PortalUpdatedEvent struct {
	Dimension shared.Dimension       `json:"dimension"`
	PortalID  portal.ID              `json:"portal_id"`
	Operation string                 `json:"operation"`
	Portal    *portal.Portal         `json:"portal"`
	Changes   map[string]interface{} `json:"changes,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id"`
}

// PortalRemovedEvent represents a domain event when a portal is removed
type PortalRemovedEvent struct {
	Dimension shared.Dimension `json:"dimension"`
	PortalID  portal.ID        `json:"portal_id"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
}

// PortalsReorderedEvent represents a domain event when a portal moves to a
// new slot in its dimension's display list
type PortalsReorderedEvent struct {
	Dimension shared.Dimension `json:"dimension"`
	PortalID  portal.ID        `json:"portal_id"`
	Index     int              `json:"index"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
}

// WorldClearedEvent represents a domain event when every portal and test
// point is removed at once
type WorldClearedEvent struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// TestPointAddedEvent represents a domain event when a test point is added
type TestPointAddedEvent struct {
	Dimension shared.Dimension `json:"dimension"`
	Point     geom.WorldPos    `json:"point"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
}

// TestPointRemovedEvent represents a domain event when a test point is
// removed
type TestPointRemovedEvent struct {
	Dimension shared.Dimension `json:"dimension"`
	Index     int              `json:"index"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
}

// PortalLink describes one portal's links after a recalculation: where an
// entity entering it comes out, and which portals in the other dimension
// lead back to it.
type PortalLink struct {
	PortalID      portal.ID        `json:"portal_id"`
	Dimension     shared.Dimension `json:"dimension"`
	EntityWontFit bool             `json:"entity_wont_fit,omitempty"`
	Destinations  []portal.ID      `json:"destinations,omitempty"`
	NewPortal     bool             `json:"new_portal,omitempty"`
	Incoming      []portal.ID      `json:"incoming,omitempty"`
}

// LinksRecalculatedEvent carries the complete link graph after a world
// change invalidated the previous one
type LinksRecalculatedEvent struct {
	Entity    shared.Entity `json:"entity"`
	Links     []PortalLink  `json:"links"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id"`
}

// SSENotificationEvent represents an event to send SSE notifications
type SSENotificationEvent struct {
	Type          string      `json:"type"`
	TargetClients []string    `json:"target_clients,omitempty"` // client IDs for array targeting (empty for broadcast)
	Method        string      `json:"method"`
	Params        interface{} `json:"params"`
	Timestamp     time.Time   `json:"timestamp"`
	RequestID     string      `json:"request_id"`
}

// Event types for different notification patterns
const (
	SSENotificationTypeBroadcast = "broadcast" // Send to all clients
	SSENotificationTypeClients   = "clients"   // Send to a specific list of clients
)
