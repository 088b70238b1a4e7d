package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/danghamo/netherlink/internal/api/handlers"
	"github.com/danghamo/netherlink/internal/api/jsonrpcx"
	"github.com/danghamo/netherlink/internal/api/middleware"
	"github.com/danghamo/netherlink/internal/app/service"
	cqrsevents "github.com/danghamo/netherlink/internal/cqrs"
	cqrshandlers "github.com/danghamo/netherlink/internal/cqrs/handlers"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/internal/metrics"
	"github.com/danghamo/netherlink/pkg/autorouter"
	"github.com/danghamo/netherlink/pkg/config"
	"github.com/danghamo/netherlink/pkg/logger"
	"github.com/danghamo/netherlink/pkg/sse"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	cfg        *config.Config
	mux        *http.ServeMux

	worldService *service.WorldService
	linkService  *service.LinkService
	metrics      *metrics.Metrics

	portalHandler    *handlers.PortalHandler
	worldHandler     *handlers.WorldHandler
	testPointHandler *handlers.TestPointHandler
	serverHandler    *handlers.ServerHandler
	sseBroadcaster   *sse.SSEBroadcaster

	// Watermill CQRS components
	eventBus        *cqrs.EventBus
	eventProcessor  *cqrs.EventProcessor
	router          *message.Router
	sseEventHandler *cqrshandlers.SSEEventHandler
}

// NewServer creates a new HTTP server wired around an in-process event bus.
// The entity is the hitbox the link table is computed for.
func NewServer(cfg *config.Config, log *logger.Logger, entity shared.Entity) *Server {
	mux := http.NewServeMux()
	apiLogger := log.WithComponent("api")

	// Create Watermill logger
	watermillLogger := watermill.NewStdLogger(false, false)

	// In-process pub/sub: publisher and subscriber share one channel set
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 256,
		},
		watermillLogger,
	)

	// Create message router with short close timeout
	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: 5 * time.Second,
	}, watermillLogger)
	if err != nil {
		panic(fmt.Sprintf("Failed to create router: %v", err))
	}

	// Create event bus
	eventBus, err := cqrs.NewEventBusWithConfig(
		pubSub,
		cqrs.EventBusConfig{
			GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
				return fmt.Sprintf("netherlink-events.%s", params.EventName), nil
			},
			Marshaler: cqrs.JSONMarshaler{},
			Logger:    watermillLogger,
		},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create event bus: %v", err))
	}

	// Create event processor
	eventProcessor, err := cqrs.NewEventProcessorWithConfig(
		router,
		cqrs.EventProcessorConfig{
			GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
				return fmt.Sprintf("netherlink-events.%s", params.EventName), nil
			},
			SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
				return pubSub, nil
			},
			Marshaler: cqrs.JSONMarshaler{},
			Logger:    watermillLogger,
		},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create event processor: %v", err))
	}

	// Create SSE broadcaster
	sseBroadcaster := sse.NewSSEBroadcaster(apiLogger)

	// Application services
	worldService := service.NewWorldService(apiLogger, eventBus)
	linkService := service.NewLinkService(apiLogger, worldService, eventBus, entity)

	m := metrics.New(sseBroadcaster.GetClientCount)

	// Create event handlers
	sseEventHandler := cqrshandlers.NewSSEEventHandler(sseBroadcaster, apiLogger)
	linkEventHandler := cqrshandlers.NewLinkEventHandler(linkService, apiLogger)

	server := &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.GetServerAddr(),
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // SSE connections stay open
			IdleTimeout:  60 * time.Second,
		},
		logger:           apiLogger,
		cfg:              cfg,
		mux:              mux,
		worldService:     worldService,
		linkService:      linkService,
		metrics:          m,
		portalHandler:    handlers.NewPortalHandler(apiLogger, worldService, linkService, m),
		worldHandler:     handlers.NewWorldHandler(apiLogger, worldService, linkService),
		testPointHandler: handlers.NewTestPointHandler(apiLogger, worldService),
		serverHandler:    handlers.NewServerHandler(cfg.Server.Host, cfg.Server.Port),
		sseBroadcaster:   sseBroadcaster,
		eventBus:         eventBus,
		eventProcessor:   eventProcessor,
		router:           router,
		sseEventHandler:  sseEventHandler,
	}

	err = eventProcessor.AddHandlers(
		// SSE push for every world change
		cqrs.NewEventHandler("sse-portal-created", sseEventHandler.HandlePortalCreatedEvent),
		cqrs.NewEventHandler("sse-portal-updated", sseEventHandler.HandlePortalUpdatedEvent),
		cqrs.NewEventHandler("sse-portal-removed", sseEventHandler.HandlePortalRemovedEvent),
		cqrs.NewEventHandler("sse-portals-reordered", sseEventHandler.HandlePortalsReorderedEvent),
		cqrs.NewEventHandler("sse-world-cleared", sseEventHandler.HandleWorldClearedEvent),
		cqrs.NewEventHandler("sse-testpoint-added", sseEventHandler.HandleTestPointAddedEvent),
		cqrs.NewEventHandler("sse-testpoint-removed", sseEventHandler.HandleTestPointRemovedEvent),
		cqrs.NewEventHandler("sse-links-recalculated", sseEventHandler.HandleLinksRecalculatedEvent),
		cqrs.NewEventHandler("sse-notification", sseEventHandler.HandleSSENotificationEvent),
		// Link table recalculation on geometry changes
		cqrs.NewEventHandler("links-portal-created", linkEventHandler.HandlePortalCreatedEvent),
		cqrs.NewEventHandler("links-portal-updated", linkEventHandler.HandlePortalUpdatedEvent),
		cqrs.NewEventHandler("links-portal-removed", linkEventHandler.HandlePortalRemovedEvent),
		cqrs.NewEventHandler("links-world-cleared", linkEventHandler.HandleWorldClearedEvent),
		// Portal count gauges
		cqrs.NewEventHandler("metrics-portal-created", func(ctx context.Context, event *cqrsevents.PortalCreatedEvent) error {
			server.refreshPortalCounts()
			return nil
		}),
		cqrs.NewEventHandler("metrics-portal-removed", func(ctx context.Context, event *cqrsevents.PortalRemovedEvent) error {
			server.refreshPortalCounts()
			return nil
		}),
		cqrs.NewEventHandler("metrics-world-cleared", func(ctx context.Context, event *cqrsevents.WorldClearedEvent) error {
			server.refreshPortalCounts()
			return nil
		}),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to register event handlers: %v", err))
	}

	server.setupRoutes()
	server.setupMiddleware()

	return server
}

// setupRoutes configures the server routes
func (s *Server) setupRoutes() {
	// Health check endpoint (pure REST)
	s.mux.HandleFunc(s.cfg.Server.HealthCheckPath, s.healthCheckHandler)

	// Swagger documentation endpoint
	s.mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Server info endpoint
	s.mux.HandleFunc("/api/v1/server.Info", s.serverHandler.HandleServerInfo)

	// General purpose ping endpoint (hybrid)
	s.mux.HandleFunc("/api/v1/ping", s.handlePing)

	// JSON-RPC method endpoints, registered by reflection
	if err := autorouter.QuickRegister(s.mux, "/api/v1/", "portal.", s.portalHandler); err != nil {
		panic(fmt.Sprintf("Failed to register portal handlers: %v", err))
	}

	if err := autorouter.QuickRegister(s.mux, "/api/v1/", "world.", s.worldHandler); err != nil {
		panic(fmt.Sprintf("Failed to register world handlers: %v", err))
	}

	if err := autorouter.QuickRegister(s.mux, "/api/v1/", "testpoint.", s.testPointHandler); err != nil {
		panic(fmt.Sprintf("Failed to register testpoint handlers: %v", err))
	}

	// SSE endpoint for real-time updates
	s.mux.HandleFunc("/api/v1/stream/updates", s.sseBroadcaster.HandleSSE)
}

// setupMiddleware applies middleware to all routes
func (s *Server) setupMiddleware() {
	chain := []middleware.Middleware{
		middleware.Recovery(s.logger),
		middleware.ErrorAdapter(s.logger),
		middleware.CORS(),
		middleware.Logging(s.logger),
		middleware.Metrics(s.metrics.ObserveHTTPRequest),
	}
	if s.cfg.RateLimit.Enabled {
		chain = append(chain, middleware.RateLimit(s.logger, s.cfg.RateLimit.RequestsPerSecond, s.cfg.RateLimit.Burst))
	}

	s.httpServer.Handler = middleware.Chain(chain...)(s.mux)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr))

	// Start Watermill router first
	go func() {
		if err := s.router.Run(ctx); err != nil {
			s.logger.Error("Watermill router error", zap.Error(err))
		}
	}()

	// Start server in goroutine
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")

	// Shutdown SSE broadcaster first to close client connections
	if s.sseBroadcaster != nil {
		s.logger.Debug("Closing SSE broadcaster")
		s.sseBroadcaster.Close()
	}

	// Shutdown HTTP server with shorter timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	// Shutdown Watermill router (with CloseTimeout already configured)
	if s.router != nil {
		s.logger.Info("Closing Watermill router")
		if err := s.router.Close(); err != nil {
			s.logger.Error("Router shutdown error", zap.Error(err))
			return err
		}
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// GetAddr returns the server address
func (s *Server) GetAddr() string {
	return s.httpServer.Addr
}

// refreshPortalCounts pushes the current per-dimension portal counts to
// the metrics gauges.
func (s *Server) refreshPortalCounts() {
	for _, dimension := range shared.Dimensions {
		portals, err := s.worldService.ListPortals(dimension)
		if err != nil {
			continue
		}
		s.metrics.SetPortalCount(dimension, len(portals))
	}
}

// healthCheckHandler handles health check requests
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"status":"healthy","checks":{"sse_clients":%d}}`, s.sseBroadcaster.GetClientCount())))
}

// handlePing handles ping requests (hybrid JSON-RPC)
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	result := map[string]string{"message": "pong"}
	jsonrpcx.Success(w, req.ID, result)
}
