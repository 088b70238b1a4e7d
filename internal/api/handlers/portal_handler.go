package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/samber/oops"
	"go.uber.org/zap"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	"github.com/danghamo/netherlink/internal/app/service"
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/internal/domain/world"
	"github.com/danghamo/netherlink/pkg/logger"
)

// PortalHandler handles portal-related HTTP requests with JSON-RPC 2.0 format
type PortalHandler struct {
	logger  *logger.Logger
	worlds  *service.WorldService
	links   *service.LinkService
	metrics ResolverMetrics
}

// ResolverMetrics records reachability query outcomes. A nil implementation
// disables recording.
type ResolverMetrics interface {
	ObserveResolverQuery(dimension shared.Dimension, result world.PortalDestinations, duration time.Duration)
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(logger *logger.Logger, worlds *service.WorldService, links *service.LinkService, metrics ResolverMetrics) *PortalHandler {
	return &PortalHandler{
		logger:  logger.WithComponent("portal-handler"),
		worlds:  worlds,
		links:   links,
		metrics: metrics,
	}
}

// Request parameter structures
type CreatePortalRequest struct {
	Dimension string        `json:"dimension"`
	Position  geom.BlockPos `json:"position"`
	Axis      string        `json:"axis"`
}

type GetPortalRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
}

type ListPortalsRequest struct {
	Dimension string `json:"dimension"`
}

type MovePortalRequest struct {
	Dimension string        `json:"dimension"`
	PortalID  uint64        `json:"portal_id"`
	Min       geom.BlockPos `json:"min"`
	LockSize  bool          `json:"lock_size,omitempty"`
}

type ResizePortalMaxRequest struct {
	Dimension string        `json:"dimension"`
	PortalID  uint64        `json:"portal_id"`
	Max       geom.BlockPos `json:"max"`
	LockSize  bool          `json:"lock_size,omitempty"`
}

type SetPortalWidthRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
	Width     int64  `json:"width"`
}

type SetPortalHeightRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
	Height    int64  `json:"height"`
}

type SetPortalAxisRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
	Axis      string `json:"axis"`
}

type RenamePortalRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
	Name      string `json:"name"`
}

type SetPortalColorRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
	Color     string `json:"color"`
}

type ReorderPortalRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
	Index     int    `json:"index"`
}

type DeletePortalRequest struct {
	Dimension string `json:"dimension"`
	PortalID  uint64 `json:"portal_id"`
}

// EntityParams selects the entity used for a reachability query, either a
// named preset ("player", "ender_pearl") or an explicit hitbox.
type EntityParams struct {
	Preset     string  `json:"preset,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Projectile bool    `json:"projectile,omitempty"`
}

type PortalDestinationsRequest struct {
	Dimension string        `json:"dimension"`
	PortalID  uint64        `json:"portal_id"`
	Entity    *EntityParams `json:"entity,omitempty"`
}

// Response structures for Swagger documentation
type CreatePortalResponse = portal.Portal
type GetPortalResponse = portal.Portal

type UpdatePortalResponse struct {
	Portal  *portal.Portal         `json:"portal"`
	Changes map[string]interface{} `json:"changes"`
}

type ListPortalsResponse struct {
	Portals []*portal.Portal `json:"portals"`
	Total   int              `json:"total"`
}

type DeletePortalResponse struct {
	Removed bool `json:"removed"`
}

type ReorderPortalResponse struct {
	Index int `json:"index"`
}

type PortalDestinationsResponse struct {
	Destinations []*portal.Portal `json:"destinations"`
	NewPortal    bool             `json:"new_portal"`
}

// HandleCreate handles POST /api/v1/portal.Create
// @Summary Create a portal
// @Description Create a minimum-size portal (2 wide, 3 tall, 1 deep) at the given block position
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[CreatePortalRequest] true "JSON-RPC request with CreatePortalRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[CreatePortalResponse] "Created portal"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.Create [post]
func (h *PortalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params CreatePortalRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	axis, err := portal.ParseAxis(params.Axis)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	created, err := h.worlds.CreatePortal(r.Context(), dimension, params.Position, axis)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Portal created via API",
		zap.String("dimension", dimension.String()),
		zap.String("portalId", created.ID.String()))

	jsonrpcx.Success(w, req.ID, created)
}

// HandleGet handles POST /api/v1/portal.Get
// @Summary Get a portal
// @Description Get a single portal by its ID
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[GetPortalRequest] true "JSON-RPC request with GetPortalRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[GetPortalResponse] "Portal information"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.Get [post]
func (h *PortalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params GetPortalRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	p, err := h.worlds.GetPortal(dimension, portal.ID(params.PortalID))
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, p)
}

// HandleList handles POST /api/v1/portal.List
// @Summary List portals
// @Description List the dimension's portals in display order
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[ListPortalsRequest] true "JSON-RPC request with ListPortalsRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[ListPortalsResponse] "List of portals"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.List [post]
func (h *PortalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params ListPortalsRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	portals, err := h.worlds.ListPortals(dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	result := ListPortalsResponse{
		Portals: portals,
		Total:   len(portals),
	}

	jsonrpcx.Success(w, req.ID, result)
}

// HandleMove handles POST /api/v1/portal.Move
// @Summary Move a portal
// @Description Move the portal's minimum corner, translating the whole portal when lock_size is set
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[MovePortalRequest] true "JSON-RPC request with MovePortalRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[UpdatePortalResponse] "Updated portal with changed fields"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.Move [post]
func (h *PortalHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params MovePortalRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	updated, changes, err := h.worlds.MovePortal(r.Context(), dimension, portal.ID(params.PortalID), params.Min, params.LockSize)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, UpdatePortalResponse{Portal: updated, Changes: changes})
}

// HandleResizeMax handles POST /api/v1/portal.ResizeMax
// @Summary Resize a portal by its maximum corner
// @Description Move the portal's maximum corner, translating the whole portal when lock_size is set
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[ResizePortalMaxRequest] true "JSON-RPC request with ResizePortalMaxRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[UpdatePortalResponse] "Updated portal with changed fields"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.ResizeMax [post]
func (h *PortalHandler) HandleResizeMax(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params ResizePortalMaxRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	updated, changes, err := h.worlds.ResizePortalMax(r.Context(), dimension, portal.ID(params.PortalID), params.Max, params.LockSize)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, UpdatePortalResponse{Portal: updated, Changes: changes})
}

// HandleSetWidth handles POST /api/v1/portal.SetWidth
// @Summary Set portal width
// @Description Set the portal opening's width in blocks, keeping the minimum corner in place
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[SetPortalWidthRequest] true "JSON-RPC request with SetPortalWidthRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[UpdatePortalResponse] "Updated portal with changed fields"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.SetWidth [post]
func (h *PortalHandler) HandleSetWidth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params SetPortalWidthRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	updated, changes, err := h.worlds.SetPortalWidth(r.Context(), dimension, portal.ID(params.PortalID), params.Width)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, UpdatePortalResponse{Portal: updated, Changes: changes})
}

// HandleSetHeight handles POST /api/v1/portal.SetHeight
// @Summary Set portal height
// @Description Set the portal opening's height in blocks, keeping the bottom edge where the world ceiling allows
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[SetPortalHeightRequest] true "JSON-RPC request with SetPortalHeightRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[UpdatePortalResponse] "Updated portal with changed fields"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.SetHeight [post]
func (h *PortalHandler) HandleSetHeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params SetPortalHeightRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	updated, changes, err := h.worlds.SetPortalHeight(r.Context(), dimension, portal.ID(params.PortalID), params.Height)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, UpdatePortalResponse{Portal: updated, Changes: changes})
}

// HandleSetAxis handles POST /api/v1/portal.SetAxis
// @Summary Set portal orientation
// @Description Reorient the portal along the given horizontal axis, preserving its width
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[SetPortalAxisRequest] true "JSON-RPC request with SetPortalAxisRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[UpdatePortalResponse] "Updated portal with changed fields"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.SetAxis [post]
func (h *PortalHandler) HandleSetAxis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params SetPortalAxisRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	axis, err := portal.ParseAxis(params.Axis)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	updated, changes, err := h.worlds.SetPortalAxis(r.Context(), dimension, portal.ID(params.PortalID), axis)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, UpdatePortalResponse{Portal: updated, Changes: changes})
}

// HandleRename handles POST /api/v1/portal.Rename
// @Summary Rename a portal
// @Description Set the portal's display name; an empty name reverts to the numbered placeholder
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[RenamePortalRequest] true "JSON-RPC request with RenamePortalRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[UpdatePortalResponse] "Updated portal with changed fields"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.Rename [post]
func (h *PortalHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params RenamePortalRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	updated, changes, err := h.worlds.RenamePortal(r.Context(), dimension, portal.ID(params.PortalID), params.Name)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, UpdatePortalResponse{Portal: updated, Changes: changes})
}

// HandleSetColor handles POST /api/v1/portal.SetColor
// @Summary Set portal color
// @Description Set the portal's display color from a "#rrggbb" string
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[SetPortalColorRequest] true "JSON-RPC request with SetPortalColorRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[UpdatePortalResponse] "Updated portal with changed fields"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.SetColor [post]
func (h *PortalHandler) HandleSetColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params SetPortalColorRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	color, err := shared.ParseColor(params.Color)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	updated, changes, err := h.worlds.SetPortalColor(r.Context(), dimension, portal.ID(params.PortalID), color)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, UpdatePortalResponse{Portal: updated, Changes: changes})
}

// HandleReorder handles POST /api/v1/portal.Reorder
// @Summary Reorder a portal
// @Description Move the portal to the given slot in its dimension's display list
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[ReorderPortalRequest] true "JSON-RPC request with ReorderPortalRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[ReorderPortalResponse] "New display index"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.Reorder [post]
func (h *PortalHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params ReorderPortalRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	if err := h.worlds.ReorderPortal(r.Context(), dimension, portal.ID(params.PortalID), params.Index); err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, ReorderPortalResponse{Index: params.Index})
}

// HandleDelete handles POST /api/v1/portal.Delete
// @Summary Delete a portal
// @Description Remove the portal from the world
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[DeletePortalRequest] true "JSON-RPC request with DeletePortalRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[DeletePortalResponse] "Removal confirmation"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.Delete [post]
func (h *PortalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params DeletePortalRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	if err := h.worlds.RemovePortal(r.Context(), dimension, portal.ID(params.PortalID)); err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, DeletePortalResponse{Removed: true})
}

// HandleDestinations handles POST /api/v1/portal.Destinations
// @Summary Resolve a portal's destinations
// @Description Resolve which portals in the other dimension the entity can come out of when entering this portal
// @Tags portal
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[PortalDestinationsRequest] true "JSON-RPC request with PortalDestinationsRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[PortalDestinationsResponse] "Reachable destination portals"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/portal.Destinations [post]
func (h *PortalHandler) HandleDestinations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params PortalDestinationsRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	entity, err := h.resolveEntity(params.Entity)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	started := time.Now()
	result, err := h.worlds.PortalDestinations(dimension, portal.ID(params.PortalID), entity)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveResolverQuery(dimension.Other(), result, time.Since(started))
	}

	response := PortalDestinationsResponse{
		Destinations: result.ExistingPortals,
		NewPortal:    result.NewPortal,
	}
	if response.Destinations == nil {
		response.Destinations = []*portal.Portal{}
	}

	jsonrpcx.Success(w, req.ID, response)
}

// resolveEntity picks the query entity: an explicit preset or hitbox when
// given, otherwise the link service's current entity.
func (h *PortalHandler) resolveEntity(params *EntityParams) (shared.Entity, error) {
	if params == nil {
		return h.links.Entity(), nil
	}
	return entityFromParams(params)
}

// entityFromParams builds the entity a request asked for, resolving a
// preset name when one is given.
func entityFromParams(params *EntityParams) (shared.Entity, error) {
	if params.Preset != "" {
		entity, ok := shared.EntityPreset(params.Preset)
		if !ok {
			return shared.Entity{}, shared.NewDomainErrorf(shared.ErrCodeInvalidEntity, "unknown entity preset %q", params.Preset)
		}
		return entity, nil
	}
	entity := shared.Entity{
		Width:      params.Width,
		Height:     params.Height,
		Projectile: params.Projectile,
	}
	if !entity.IsValid() {
		return shared.Entity{}, shared.NewDomainError(shared.ErrCodeInvalidEntity, "entity hitbox must not be negative")
	}
	return entity, nil
}

// writeDomainError maps a domain error to a JSON-RPC error response. The
// domain's numeric error code rides along when present, otherwise the
// generic internal error code is used.
func writeDomainError(r *http.Request, id any, err error) {
	if o, ok := oops.AsOops(err); ok {
		if code, ok := o.Context()["error_code"].(int); ok {
			jsonrpcx.WithError(r, id, code, err.Error())
			return
		}
	}
	jsonrpcx.WithError(r, id, jsonrpcx.InternalError, err.Error())
}

// === AutoRouter Compatible Methods ===
// These methods are designed to work with the autorouter package

// Create handles portal creation (autorouter compatible)
func (h *PortalHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.HandleCreate(w, r)
}

// Get handles portal retrieval (autorouter compatible)
func (h *PortalHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.HandleGet(w, r)
}

// List handles portal listing (autorouter compatible)
func (h *PortalHandler) List(w http.ResponseWriter, r *http.Request) {
	h.HandleList(w, r)
}

// Move handles portal movement (autorouter compatible)
func (h *PortalHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.HandleMove(w, r)
}

// ResizeMax handles portal resizing (autorouter compatible)
func (h *PortalHandler) ResizeMax(w http.ResponseWriter, r *http.Request) {
	h.HandleResizeMax(w, r)
}

// SetWidth handles portal width changes (autorouter compatible)
func (h *PortalHandler) SetWidth(w http.ResponseWriter, r *http.Request) {
	h.HandleSetWidth(w, r)
}

// SetHeight handles portal height changes (autorouter compatible)
func (h *PortalHandler) SetHeight(w http.ResponseWriter, r *http.Request) {
	h.HandleSetHeight(w, r)
}

// SetAxis handles portal orientation changes (autorouter compatible)
func (h *PortalHandler) SetAxis(w http.ResponseWriter, r *http.Request) {
	h.HandleSetAxis(w, r)
}

// Rename handles portal renaming (autorouter compatible)
func (h *PortalHandler) Rename(w http.ResponseWriter, r *http.Request) {
	h.HandleRename(w, r)
}

// SetColor handles portal color changes (autorouter compatible)
func (h *PortalHandler) SetColor(w http.ResponseWriter, r *http.Request) {
	h.HandleSetColor(w, r)
}

// Reorder handles portal reordering (autorouter compatible)
func (h *PortalHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	h.HandleReorder(w, r)
}

// Delete handles portal removal (autorouter compatible)
func (h *PortalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.HandleDelete(w, r)
}

// Destinations handles reachability resolution (autorouter compatible)
func (h *PortalHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	h.HandleDestinations(w, r)
}
