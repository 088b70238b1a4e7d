package cqrs

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SSEBroadcastHelper provides utility functions for sending SSE notifications
type SSEBroadcastHelper struct {
	eventPublisher EventPublisher
}

// NewSSEBroadcastHelper creates a new SSE broadcast helper
func NewSSEBroadcastHelper(eventPublisher EventPublisher) *SSEBroadcastHelper {
	return &SSEBroadcastHelper{
		eventPublisher: eventPublisher,
	}
}

// BroadcastToAll broadcasts a message to every connected client
func (h *SSEBroadcastHelper) BroadcastToAll(ctx context.Context, method string, params interface{}) error {
	event := &SSENotificationEvent{
		Type:      SSENotificationTypeBroadcast,
		Method:    method,
		Params:    params,
		Timestamp: time.Now(),
		RequestID: uuid.New().String(),
	}

	return h.eventPublisher.Publish(ctx, event)
}

// BroadcastToClients broadcasts a message to a specific list of clients
func (h *SSEBroadcastHelper) BroadcastToClients(ctx context.Context, clientIDs []string, method string, params interface{}) error {
	if len(clientIDs) == 0 {
		return nil
	}

	event := &SSENotificationEvent{
		Type:          SSENotificationTypeClients,
		TargetClients: clientIDs,
		Method:        method,
		Params:        params,
		Timestamp:     time.Now(),
		RequestID:     uuid.New().String(),
	}

	return h.eventPublisher.Publish(ctx, event)
}

// EventPublisher interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}
