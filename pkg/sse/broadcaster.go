package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	"github.com/danghamo/netherlink/pkg/logger"
)

// SSEClient represents a connected SSE client
type SSEClient struct {
	ID       string
	Writer   http.ResponseWriter
	Flusher  http.Flusher
	Done     chan bool
	LastSeen time.Time
	mutex    sync.Mutex // Protects concurrent writes to this client
}

// ClientMessage represents a message targeted to a specific client
type ClientMessage struct {
	ClientID     string
	Notification jsonrpcx.JsonRpcNotification
}

// SSEBroadcaster manages SSE connections and broadcasts
type SSEBroadcaster struct {
	logger          *logger.Logger
	clients         map[string]*SSEClient
	mutex           sync.RWMutex
	broadcast       chan []byte
	targetBroadcast chan ClientMessage
	cleanup         *time.Ticker
	shutdown        chan struct{} // Global shutdown signal
}

// NewSSEBroadcaster creates a new SSE broadcaster
func NewSSEBroadcaster(logger *logger.Logger) *SSEBroadcaster {
	broadcaster := &SSEBroadcaster{
		logger:          logger.WithComponent("sse-broadcaster"),
		clients:         make(map[string]*SSEClient),
		broadcast:       make(chan []byte, 1000),
		targetBroadcast: make(chan ClientMessage, 1000),
		cleanup:         time.NewTicker(30 * time.Second), // Cleanup every 30 seconds
		shutdown:        make(chan struct{}),
	}

	// Start background goroutines
	go broadcaster.broadcastLoop()
	go broadcaster.targetBroadcastLoop()
	go broadcaster.cleanupLoop()

	return broadcaster
}

// AddClient adds a new SSE client
func (b *SSEBroadcaster) AddClient(client *SSEClient) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.clients[client.ID] = client

	b.logger.Debug("SSE client connected", zap.String("clientId", client.ID))
}

// RemoveClient removes an SSE client
func (b *SSEBroadcaster) RemoveClient(clientID string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if client, exists := b.clients[clientID]; exists {
		// Safely close the Done channel
		select {
		case <-client.Done:
			// Channel already closed
		default:
			close(client.Done)
		}
		delete(b.clients, clientID)

		b.logger.Debug("SSE client disconnected", zap.String("clientId", clientID))
	}
}

// BroadcastToAll sends a JSON-RPC notification to all connected clients
func (b *SSEBroadcaster) BroadcastToAll(notification jsonrpcx.JsonRpcNotification) {
	data, err := json.Marshal(notification)
	if err != nil {
		b.logger.Error("Failed to marshal JSON-RPC notification", zap.Error(err))
		return
	}

	select {
	case b.broadcast <- data:
	default:
		b.logger.Warn("Broadcast channel full, dropping message")
	}
}

// BroadcastToClients sends a JSON-RPC notification to specific clients
// (only those connected to this server)
func (b *SSEBroadcaster) BroadcastToClients(targetClients []string, notification jsonrpcx.JsonRpcNotification) {
	if len(targetClients) == 0 {
		return
	}

	b.mutex.RLock()
	localTargets := make([]string, 0, len(targetClients))
	for _, clientID := range targetClients {
		if _, ok := b.clients[clientID]; ok {
			localTargets = append(localTargets, clientID)
		}
	}
	b.mutex.RUnlock()

	if len(localTargets) == 0 {
		b.logger.Debug("No target clients connected to this server",
			zap.Strings("targetClients", targetClients))
		return
	}

	for _, clientID := range localTargets {
		msg := ClientMessage{
			ClientID:     clientID,
			Notification: notification,
		}
		select {
		case b.targetBroadcast <- msg:
		default:
			b.logger.Warn("Target broadcast channel full, dropping message",
				zap.String("clientId", clientID))
		}
	}
}

// targetBroadcastLoop handles broadcasting messages to specific clients
func (b *SSEBroadcaster) targetBroadcastLoop() {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in targetBroadcastLoop", zap.Any("panic", r))
			// Restart the loop
			go b.targetBroadcastLoop()
		}
	}()

	for {
		select {
		case <-b.shutdown:
			b.logger.Info("Target broadcast loop shutting down")
			return
		case msg := <-b.targetBroadcast:
			b.mutex.RLock()
			client := b.clients[msg.ClientID]
			b.mutex.RUnlock()

			if client == nil {
				b.logger.Debug("Target client no longer connected", zap.String("clientId", msg.ClientID))
				continue
			}

			data, err := json.Marshal(msg.Notification)
			if err != nil {
				b.logger.Error("Failed to marshal targeted notification", zap.Error(err))
				continue
			}

			select {
			case <-client.Done:
				b.RemoveClient(client.ID)
			default:
				if err := b.sendToClient(client, data); err != nil {
					b.logger.Warn("Failed to send to target client",
						zap.String("clientId", client.ID),
						zap.Error(err))
					b.RemoveClient(client.ID)
				}
			}
		}
	}
}

// broadcastLoop handles broadcasting messages to all connected clients
func (b *SSEBroadcaster) broadcastLoop() {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in broadcastLoop", zap.Any("panic", r))
			// Restart the loop
			go b.broadcastLoop()
		}
	}()

	for {
		select {
		case <-b.shutdown:
			b.logger.Info("Broadcast loop shutting down")
			return
		case data := <-b.broadcast:
			b.mutex.RLock()
			clients := make([]*SSEClient, 0, len(b.clients))
			for _, client := range b.clients {
				clients = append(clients, client)
			}
			b.mutex.RUnlock()

			for _, client := range clients {
				select {
				case <-client.Done:
					b.RemoveClient(client.ID)
				default:
					if err := b.sendToClient(client, data); err != nil {
						b.logger.Warn("Failed to send to client",
							zap.String("clientId", client.ID),
							zap.Error(err))
						b.RemoveClient(client.ID)
					}
				}
			}
		}
	}
}

// sendToClient sends data to a specific SSE client
func (b *SSEBroadcaster) sendToClient(client *SSEClient, data []byte) (err error) {
	// Recover from any panic
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in sendToClient",
				zap.Any("panic", r),
				zap.String("clientId", func() string {
					if client != nil {
						return client.ID
					}
					return "unknown"
				}()))
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	if client == nil {
		return fmt.Errorf("client is nil")
	}
	if client.Writer == nil {
		return fmt.Errorf("client writer is nil")
	}
	if client.Flusher == nil {
		return fmt.Errorf("client flusher is nil")
	}

	// Use client-specific mutex to prevent concurrent writes
	client.mutex.Lock()
	defer client.mutex.Unlock()

	// Check if client is still connected before writing
	select {
	case <-client.Done:
		return fmt.Errorf("client connection closed")
	default:
	}

	// Write SSE data with proper formatting
	// Use a single write operation to reduce chunking issues
	sseData := fmt.Sprintf("data: %s\n\n", data)
	n, err := client.Writer.Write([]byte(sseData))
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if n != len(sseData) {
		return fmt.Errorf("incomplete write: wrote %d/%d bytes", n, len(sseData))
	}

	// Force flush immediately
	client.Flusher.Flush()
	client.LastSeen = time.Now()
	return nil
}

// cleanupLoop removes stale connections
func (b *SSEBroadcaster) cleanupLoop() {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in cleanupLoop", zap.Any("panic", r))
			// Restart the loop
			go b.cleanupLoop()
		}
	}()

	for {
		select {
		case <-b.shutdown:
			b.logger.Info("Cleanup loop shutting down")
			return
		case <-b.cleanup.C:
			b.mutex.Lock()
			now := time.Now()
			for clientID, client := range b.clients {
				if now.Sub(client.LastSeen) > 60*time.Second {
					b.logger.Debug("Removing stale SSE client",
						zap.String("clientId", clientID))
					close(client.Done)
					delete(b.clients, clientID)
				}
			}
			b.mutex.Unlock()
		}
	}
}

// GetClientCount returns the number of connected clients
func (b *SSEBroadcaster) GetClientCount() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.clients)
}

// Close shuts down the broadcaster
func (b *SSEBroadcaster) Close() {
	b.logger.Debug("Shutting down SSE broadcaster")

	// Signal all goroutines to stop
	close(b.shutdown)

	b.cleanup.Stop()
	close(b.broadcast)
	close(b.targetBroadcast)

	b.mutex.Lock()
	defer b.mutex.Unlock()

	// Close all client connections immediately
	for clientID, client := range b.clients {
		b.logger.Debug("Force closing SSE client", zap.String("clientId", clientID))
		close(client.Done)
	}
	b.clients = make(map[string]*SSEClient)

	b.logger.Debug("SSE broadcaster shutdown complete")
}

// HandleSSE handles SSE connections for real-time world updates
func (b *SSEBroadcaster) HandleSSE(w http.ResponseWriter, r *http.Request) {
	b.logger.Debug("SSE connection attempt", zap.String("method", r.Method), zap.String("url", r.URL.String()))

	// Check if client supports SSE
	flusher, ok := w.(http.Flusher)
	if !ok {
		b.logger.Error("SSE: Client does not support flusher interface")
		http.Error(w, "Server-Sent Events not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers with improved chunked encoding handling
	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Cache-Control")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Create client
	clientID := uuid.New().String()
	client := &SSEClient{
		ID:       clientID,
		Writer:   w,
		Flusher:  flusher,
		Done:     make(chan bool),
		LastSeen: time.Now(),
	}

	// Add client to broadcaster
	b.AddClient(client)
	defer b.RemoveClient(clientID)

	// Send initial connection message so the client learns its ID
	initialMsg := fmt.Sprintf("data: {\"type\":\"connected\",\"client_id\":\"%s\"}\n\n", clientID)
	w.Write([]byte(initialMsg))
	flusher.Flush()

	// Keep connection alive
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-client.Done:
			b.logger.Debug("SSE client done signal received", zap.String("clientId", clientID))
			return
		case <-r.Context().Done():
			b.logger.Info("SSE request context cancelled", zap.String("clientId", clientID))
			return
		case <-b.shutdown:
			b.logger.Debug("SSE broadcaster shutdown signal received", zap.String("clientId", clientID))
			return
		case <-heartbeat.C:
			if err := b.sendHeartbeat(w, flusher); err != nil {
				b.logger.Warn("Failed to send heartbeat",
					zap.String("clientId", clientID),
					zap.Error(err))
				return
			}
		}
	}
}

// sendHeartbeat sends a heartbeat message to the SSE client
func (b *SSEBroadcaster) sendHeartbeat(w http.ResponseWriter, flusher http.Flusher) error {
	heartbeatData := fmt.Sprintf("data: {\"type\":\"heartbeat\",\"timestamp\":\"%s\"}\n\n", time.Now().Format(time.RFC3339))
	n, err := w.Write([]byte(heartbeatData))
	if err != nil {
		return fmt.Errorf("heartbeat write failed: %w", err)
	}
	if n != len(heartbeatData) {
		return fmt.Errorf("incomplete heartbeat write: wrote %d/%d bytes", n, len(heartbeatData))
	}
	flusher.Flush()
	return nil
}
