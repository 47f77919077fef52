package http

import (
	"encoding/json"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go-exchange-rates-api/exchange"
	"go-exchange-rates-api/metrics"
	"net/http"
	"os"
	"time"
)

// Name reported by the index route
const Name = "exchangerates-api"

// Server dependencies for HTTP Server functions
type Server struct {
	Service exchange.Service

	// Logger for access logs
	Logger log.Logger

	// Metrics collectors, Gatherer serves them on /metrics
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	// FaviconPath file served on /favicon.ico, empty for none
	FaviconPath string

	// RateLimit requests per second allowed per client with a burst of RateBurst, 0 for no limit
	RateLimit float64
	RateBurst int

	router  http.ServeMux
	handler http.Handler
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the access logger
func WithLogger(logger log.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// WithMetrics records request metrics in m and serves g on /metrics
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = m
		s.Gatherer = g
	}
}

// WithFavicon serves the file at path on /favicon.ico
func WithFavicon(path string) Option {
	return func(s *Server) { s.FaviconPath = path }
}

// WithRateLimit limits each client to rps requests per second with the given burst
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.RateLimit = rps
		s.RateBurst = burst
	}
}

// NewServer constructs a Server for s
func NewServer(s exchange.Service, opts ...Option) *Server {
	server := &Server{
		Service: s,
		Logger:  log.NewNopLogger(),
		router:  http.ServeMux{},
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Metrics == nil {
		reg := prometheus.NewRegistry()
		server.Metrics = metrics.New(reg)
		server.Gatherer = reg
	}
	if server.Gatherer == nil {
		server.Gatherer = prometheus.DefaultGatherer
	}
	server.routes()
	server.handler = server.middleware(&server.router)
	return server
}

func (s *Server) routes() {
	s.router.Handle("GET /latest", s.instrument("latest", s.latest()))
	s.router.Handle("GET /favicon.ico", s.instrument("favicon", s.favicon()))
	s.router.Handle("GET /metrics", s.instrument("metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	s.router.Handle("GET /{$}", s.instrument("index", s.index()))
	s.router.Handle("/", s.instrument("not_found", s.notFound()))
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(rw, r)
}

// latest produces HTTP handler for the latest reference rates.
// When no rates are available the response is an empty object.
func (s *Server) latest() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")

		result, err := s.Service.Latest(r.Context())
		if err != nil || result == nil {
			// the service logs the cause, clients only ever see an empty result
			rw.Write([]byte(`{}`))
			return
		}

		enc := json.NewEncoder(rw)
		err = enc.Encode(result)
		if err != nil {
			s.Logger.Log("msg", "failed json encoding", "err", err)
		}
	}
}

// index produces HTTP handler naming the service
func (s *Server) index() http.HandlerFunc {
	type response struct {
		Name string `json:"name"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, response{Name: Name})
	}
}

// favicon produces HTTP handler serving the configured icon file
func (s *Server) favicon() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if s.FaviconPath == "" {
			s.notFound()(rw, r)
			return
		}
		info, err := os.Stat(s.FaviconPath)
		if err != nil || info.IsDir() {
			s.notFound()(rw, r)
			return
		}
		rw.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeFile(rw, r, s.FaviconPath)
	}
}

// notFound produces HTTP handler for every unknown route
func (s *Server) notFound() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusNotFound, map[string]string{"404": "not-found"})
	}
}

// instrument records request count and latency of next under route
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		s.Metrics.HTTPInFlight.Inc()
		defer s.Metrics.HTTPInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		begin := time.Now()
		next.ServeHTTP(rec, r)

		s.Metrics.HTTPRequests.WithLabelValues(r.Method, route, statusLabel(rec.status)).Inc()
		s.Metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(begin).Seconds())
	})
}

func writeJSON(rw http.ResponseWriter, status int, v interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}
