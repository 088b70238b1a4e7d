package sse

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	"github.com/danghamo/netherlink/pkg/logger"
)

func newConnectedClient(id string) (*SSEClient, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	return &SSEClient{
		ID:       id,
		Writer:   recorder,
		Flusher:  recorder,
		Done:     make(chan bool),
		LastSeen: time.Now(),
	}, recorder
}

func TestSSEBroadcaster_ClientLifecycle(t *testing.T) {
	broadcaster := NewSSEBroadcaster(logger.NewDefault())
	defer broadcaster.Close()

	client1, _ := newConnectedClient("client-1")
	client2, _ := newConnectedClient("client-2")

	broadcaster.AddClient(client1)
	broadcaster.AddClient(client2)
	assert.Equal(t, 2, broadcaster.GetClientCount())

	broadcaster.RemoveClient("client-1")
	assert.Equal(t, 1, broadcaster.GetClientCount())

	// Removing twice must not panic or close Done twice
	broadcaster.RemoveClient("client-1")
	assert.Equal(t, 1, broadcaster.GetClientCount())
}

func TestSSEBroadcaster_BroadcastToAll(t *testing.T) {
	broadcaster := NewSSEBroadcaster(logger.NewDefault())
	defer broadcaster.Close()

	client, recorder := newConnectedClient("client-1")
	broadcaster.AddClient(client)

	broadcaster.BroadcastToAll(jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "portal.created",
		Params:  map[string]interface{}{"dimension": "overworld"},
	})

	require.Eventually(t, func() bool {
		return strings.Contains(recorder.Body.String(), "portal.created")
	}, time.Second, 10*time.Millisecond)

	body := recorder.Body.String()
	assert.True(t, strings.HasPrefix(body, "data: "))
	assert.Contains(t, body, "\"jsonrpc\":\"2.0\"")
}

func TestSSEBroadcaster_BroadcastToClients(t *testing.T) {
	broadcaster := NewSSEBroadcaster(logger.NewDefault())
	defer broadcaster.Close()

	target, targetRecorder := newConnectedClient("target")
	other, otherRecorder := newConnectedClient("other")
	broadcaster.AddClient(target)
	broadcaster.AddClient(other)

	broadcaster.BroadcastToClients([]string{"target", "not-connected"}, jsonrpcx.JsonRpcNotification{
		Jsonrpc: "2.0",
		Method:  "links.recalculated",
	})

	require.Eventually(t, func() bool {
		return strings.Contains(targetRecorder.Body.String(), "links.recalculated")
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, otherRecorder.Body.String())

	// An empty target list is a no-op
	broadcaster.BroadcastToClients(nil, jsonrpcx.JsonRpcNotification{Method: "x"})
}
