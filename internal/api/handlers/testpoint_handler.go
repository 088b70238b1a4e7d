package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	"github.com/danghamo/netherlink/internal/app/service"
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/pkg/logger"
)

// TestPointHandler handles test point HTTP requests with JSON-RPC 2.0 format
type TestPointHandler struct {
	logger *logger.Logger
	worlds *service.WorldService
}

// NewTestPointHandler creates a new test point handler
func NewTestPointHandler(logger *logger.Logger, worlds *service.WorldService) *TestPointHandler {
	return &TestPointHandler{
		logger: logger.WithComponent("testpoint-handler"),
		worlds: worlds,
	}
}

// Request parameter structures
type AddTestPointRequest struct {
	Dimension string        `json:"dimension"`
	Point     geom.WorldPos `json:"point"`
}

type ListTestPointsRequest struct {
	Dimension string `json:"dimension"`
}

type RemoveTestPointRequest struct {
	Dimension string `json:"dimension"`
	Index     int    `json:"index"`
}

// Response structures for Swagger documentation
type AddTestPointResponse struct {
	Point geom.WorldPos `json:"point"`
}

type ListTestPointsResponse struct {
	Points []geom.WorldPos `json:"points"`
	Total  int             `json:"total"`
}

type RemoveTestPointResponse struct {
	Removed bool `json:"removed"`
}

// HandleAdd handles POST /api/v1/testpoint.Add
// @Summary Add a test point
// @Description Record a probe point in the dimension for reachability visualization
// @Tags testpoint
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[AddTestPointRequest] true "JSON-RPC request with AddTestPointRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[AddTestPointResponse] "Recorded point"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/testpoint.Add [post]
func (h *TestPointHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params AddTestPointRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	if err := h.worlds.AddTestPoint(r.Context(), dimension, params.Point); err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, AddTestPointResponse{Point: params.Point})
}

// HandleList handles POST /api/v1/testpoint.List
// @Summary List test points
// @Description List the dimension's probe points in insertion order
// @Tags testpoint
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[ListTestPointsRequest] true "JSON-RPC request with ListTestPointsRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[ListTestPointsResponse] "List of probe points"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/testpoint.List [post]
func (h *TestPointHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params ListTestPointsRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	points, err := h.worlds.ListTestPoints(dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}
	if points == nil {
		points = []geom.WorldPos{}
	}

	jsonrpcx.Success(w, req.ID, ListTestPointsResponse{Points: points, Total: len(points)})
}

// HandleRemove handles POST /api/v1/testpoint.Remove
// @Summary Remove a test point
// @Description Remove the probe point at the given index
// @Tags testpoint
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[RemoveTestPointRequest] true "JSON-RPC request with RemoveTestPointRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[RemoveTestPointResponse] "Removal confirmation"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/testpoint.Remove [post]
func (h *TestPointHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params RemoveTestPointRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	if err := h.worlds.RemoveTestPoint(r.Context(), dimension, params.Index); err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, RemoveTestPointResponse{Removed: true})
}

// === AutoRouter Compatible Methods ===
// These methods are designed to work with the autorouter package

// Add handles test point creation (autorouter compatible)
func (h *TestPointHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.HandleAdd(w, r)
}

// List handles test point listing (autorouter compatible)
func (h *TestPointHandler) List(w http.ResponseWriter, r *http.Request) {
	h.HandleList(w, r)
}

// Remove handles test point removal (autorouter compatible)
func (h *TestPointHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.HandleRemove(w, r)
}
