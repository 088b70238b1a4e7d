package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	"github.com/danghamo/netherlink/internal/app/service"
	cqrsevents "github.com/danghamo/netherlink/internal/cqrs"
	"github.com/danghamo/netherlink/internal/domain/geom"
	"github.com/danghamo/netherlink/internal/domain/portal"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/internal/domain/world"
	"github.com/danghamo/netherlink/pkg/logger"
)

// WorldHandler handles world-level HTTP requests with JSON-RPC 2.0 format
type WorldHandler struct {
	logger *logger.Logger
	worlds *service.WorldService
	links  *service.LinkService
}

// NewWorldHandler creates a new world handler
func NewWorldHandler(logger *logger.Logger, worlds *service.WorldService, links *service.LinkService) *WorldHandler {
	return &WorldHandler{
		logger: logger.WithComponent("world-handler"),
		worlds: worlds,
		links:  links,
	}
}

// Request parameter structures
type GetWorldRequest struct {
	// Empty: the whole world is returned.
}

type GetLinksRequest struct {
	// Empty: the full link table is returned.
}

type SetEntityRequest struct {
	Entity EntityParams `json:"entity"`
}

type ReachabilityRequest struct {
	Dimension string           `json:"dimension"`
	Region    geom.BlockRegion `json:"region"`
}

type EntityDestinationsRequest struct {
	Dimension string        `json:"dimension"`
	Point     geom.WorldPos `json:"point"`
}

type ClearWorldRequest struct {
	// Empty: clears both dimensions.
}

// Response structures for Swagger documentation
type GetWorldResponse = world.World

type GetLinksResponse struct {
	Entity shared.Entity           `json:"entity"`
	Links  []cqrsevents.PortalLink `json:"links"`
}

type SetEntityResponse struct {
	Entity shared.Entity `json:"entity"`
}

type ReachabilityResponse struct {
	Destinations []*portal.Portal `json:"destinations"`
	NewPortal    bool             `json:"new_portal"`
	Steps        int              `json:"steps"`
}

type EntityDestinationsResponse struct {
	Destinations []*portal.Portal `json:"destinations"`
}

type ClearWorldResponse struct {
	Cleared bool `json:"cleared"`
}

// HandleGet handles POST /api/v1/world.Get
// @Summary Get the world
// @Description Get every portal and test point in both dimensions
// @Tags world
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[GetWorldRequest] true "JSON-RPC request with GetWorldRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[GetWorldResponse] "World snapshot"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/world.Get [post]
func (h *WorldHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	jsonrpcx.Success(w, req.ID, h.worlds.Snapshot())
}

// HandleLinks handles POST /api/v1/world.Links
// @Summary Get the link table
// @Description Get the cached reachability links between all portals for the configured entity
// @Tags world
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[GetLinksRequest] true "JSON-RPC request with GetLinksRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[GetLinksResponse] "Per-portal outgoing and incoming links"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/world.Links [post]
func (h *WorldHandler) HandleLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	links := h.links.Links()
	if links == nil {
		links = []cqrsevents.PortalLink{}
	}

	result := GetLinksResponse{
		Entity: h.links.Entity(),
		Links:  links,
	}

	jsonrpcx.Success(w, req.ID, result)
}

// HandleSetEntity handles POST /api/v1/world.SetEntity
// @Summary Set the link entity
// @Description Change the entity the link table is computed for and recalculate all links
// @Tags world
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[SetEntityRequest] true "JSON-RPC request with SetEntityRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[SetEntityResponse] "Entity now in effect"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/world.SetEntity [post]
func (h *WorldHandler) HandleSetEntity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params SetEntityRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	entity, err := entityFromParams(&params.Entity)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	if err := h.links.SetEntity(r.Context(), entity); err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	h.logger.Info("Link entity changed",
		zap.Float64("width", entity.Width),
		zap.Float64("height", entity.Height),
		zap.Bool("projectile", entity.Projectile))

	jsonrpcx.Success(w, req.ID, SetEntityResponse{Entity: h.links.Entity()})
}

// HandleReachability handles POST /api/v1/world.Reachability
// @Summary Resolve a destination region
// @Description Resolve which of the dimension's portals are reachable from any point of the given block region
// @Tags world
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[ReachabilityRequest] true "JSON-RPC request with ReachabilityRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[ReachabilityResponse] "Reachable portals and new-portal flag"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/world.Reachability [post]
func (h *WorldHandler) HandleReachability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params ReachabilityRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	result, err := h.worlds.Reachability(dimension, params.Region)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	response := ReachabilityResponse{
		Destinations: result.ExistingPortals,
		NewPortal:    result.NewPortal,
		Steps:        result.Steps,
	}
	if response.Destinations == nil {
		response.Destinations = []*portal.Portal{}
	}

	jsonrpcx.Success(w, req.ID, response)
}

// HandleEntityDestinations handles POST /api/v1/world.EntityDestinations
// @Summary Resolve a teleporting point
// @Description Resolve which portals in the dimension would receive an entity teleporting to the given world-space point
// @Tags world
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[EntityDestinationsRequest] true "JSON-RPC request with EntityDestinationsRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[EntityDestinationsResponse] "Candidate destination portals"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/world.EntityDestinations [post]
func (h *WorldHandler) HandleEntityDestinations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	var params EntityDestinationsRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		jsonrpcx.WithError(r, req.ID, jsonrpcx.InvalidParams, "Invalid params")
		return
	}

	dimension, err := shared.ParseDimension(params.Dimension)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	found, err := h.worlds.EntityDestinations(dimension, params.Point)
	if err != nil {
		writeDomainError(r, req.ID, err)
		return
	}
	if found == nil {
		found = []*portal.Portal{}
	}

	jsonrpcx.Success(w, req.ID, EntityDestinationsResponse{Destinations: found})
}

// HandleClear handles POST /api/v1/world.Clear
// @Summary Clear the world
// @Description Remove every portal and test point from both dimensions
// @Tags world
// @Accept json
// @Produce json
// @Param request body jsonrpcx.RequestT[ClearWorldRequest] true "JSON-RPC request with ClearWorldRequest params"
// @Success 200 {object} jsonrpcx.ResponseT[ClearWorldResponse] "Clear confirmation"
// @Failure 400 {object} jsonrpcx.ErrorResponse "Invalid request parameters"
// @Failure 500 {object} jsonrpcx.ErrorResponse "Internal server error"
// @Router /api/v1/world.Clear [post]
func (h *WorldHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	if err := h.worlds.ClearWorld(r.Context()); err != nil {
		writeDomainError(r, req.ID, err)
		return
	}

	jsonrpcx.Success(w, req.ID, ClearWorldResponse{Cleared: true})
}

// === AutoRouter Compatible Methods ===
// These methods are designed to work with the autorouter package

// Get handles world retrieval (autorouter compatible)
func (h *WorldHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.HandleGet(w, r)
}

// Links handles link table retrieval (autorouter compatible)
func (h *WorldHandler) Links(w http.ResponseWriter, r *http.Request) {
	h.HandleLinks(w, r)
}

// SetEntity handles link entity changes (autorouter compatible)
func (h *WorldHandler) SetEntity(w http.ResponseWriter, r *http.Request) {
	h.HandleSetEntity(w, r)
}

// Reachability handles region resolution (autorouter compatible)
func (h *WorldHandler) Reachability(w http.ResponseWriter, r *http.Request) {
	h.HandleReachability(w, r)
}

// EntityDestinations handles point resolution (autorouter compatible)
func (h *WorldHandler) EntityDestinations(w http.ResponseWriter, r *http.Request) {
	h.HandleEntityDestinations(w, r)
}

// Clear handles world clearing (autorouter compatible)
func (h *WorldHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.HandleClear(w, r)
}
