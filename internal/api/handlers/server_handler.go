package handlers

import (
	"fmt"
	"net/http"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
)

// ServerHandler handles server information requests
type ServerHandler struct {
	host string
	port int
}

// NewServerHandler creates a new server handler
func NewServerHandler(host string, port int) *ServerHandler {
	return &ServerHandler{
		host: host,
		port: port,
	}
}

// ServerInfoResponse represents server information
type ServerInfoResponse struct {
	Name string `json:"name"`
	Host string `json:"host"`
	Port int    `json:"port"`
	URL  string `json:"url"`
}

// HandleServerInfo handles POST /api/v1/server.Info
// @Summary Get server information
// @Description Get the server's name and reachable address
// @Tags server
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[GetWorldRequest] true "JSON-RPC request with empty params"
// @Success 200 {object} jsonrpcx.ResponseT[ServerInfoResponse] "Server information"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Router /api/v1/server.Info [post]
func (h *ServerHandler) HandleServerInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	host := h.host
	if host == "" {
		host = "localhost"
	}

	response := ServerInfoResponse{
		Name: "netherlink",
		Host: host,
		Port: h.port,
		URL:  fmt.Sprintf("http://%s:%d", host, h.port),
	}

	jsonrpcx.Success(w, req.ID, response)
}

// === AutoRouter Compatible Methods ===
// These methods are designed to work with the autorouter package

// Info handles server info retrieval (autorouter compatible)
func (h *ServerHandler) Info(w http.ResponseWriter, r *http.Request) {
	h.HandleServerInfo(w, r)
}
