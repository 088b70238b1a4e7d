package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/internal/domain/world"
	"github.com/danghamo/netherlink/pkg/logger"
)

// Metrics bundles the prometheus collectors for the server.
type Metrics struct {
	resolverQueries  *prometheus.CounterVec
	resolverDuration prometheus.Histogram
	resolverSteps    prometheus.Histogram
	portalCount      *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
}

// New registers the collectors on the default registry. The SSE client
// gauge samples clientCount on collection.
func New(clientCount func() int) *Metrics {
	m := &Metrics{
		resolverQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "netherlink_resolver_queries_total",
			Help: "Reachability queries by destination dimension and outcome.",
		}, []string{"dimension", "new_portal"}),
		resolverDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "netherlink_resolver_duration_seconds",
			Help:    "Wall time per reachability query.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		resolverSteps: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "netherlink_resolver_steps",
			Help:    "Recursive evaluations per reachability query.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		portalCount: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "netherlink_portals",
			Help: "Current portal count per dimension.",
		}, []string{"dimension"}),
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "netherlink_http_requests_total",
			Help: "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "netherlink_sse_clients",
		Help: "Currently connected SSE clients.",
	}, func() float64 { return float64(clientCount()) })

	return m
}

// ObserveResolverQuery records one reachability resolution.
func (m *Metrics) ObserveResolverQuery(dimension shared.Dimension, result world.PortalDestinations, duration time.Duration) {
	m.resolverQueries.WithLabelValues(dimension.String(), strconv.FormatBool(result.NewPortal)).Inc()
	m.resolverDuration.Observe(duration.Seconds())
	m.resolverSteps.Observe(float64(result.Steps))
}

// SetPortalCount updates the portal gauge for a dimension.
func (m *Metrics) SetPortalCount(dimension shared.Dimension, count int) {
	m.portalCount.WithLabelValues(dimension.String()).Set(float64(count))
}

// ObserveHTTPRequest records one served HTTP request. Shaped to plug into
// the Metrics middleware.
func (m *Metrics) ObserveHTTPRequest(method, path string, statusCode int, _ time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
}

// Server serves /metrics on its own port.
type Server struct {
	logger *logger.Logger
	server *http.Server
}

// NewServer creates the metrics HTTP server.
func NewServer(log *logger.Logger, port int) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		logger: log.WithComponent("metrics-server"),
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Metrics server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the metrics server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
