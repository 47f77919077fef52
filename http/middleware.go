package http

import (
	"context"
	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RequestIDHeader carries the id of each request in both directions
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID returns the id assigned to the request ctx belongs to
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// middleware wraps the router, outermost first: request id, access log, CORS,
// per-client rate limit, compression.
func (s *Server) middleware(next http.Handler) http.Handler {
	var h http.Handler = gzhttp.GzipHandler(next)
	if s.RateLimit > 0 {
		h = rateLimit(newLimiters(s.RateLimit, s.RateBurst, 10*time.Minute), h)
	}
	h = cors.AllowAll().Handler(h)
	h = accessLog(s.Logger, h)
	return requestID(h)
}

// requestID reuses the caller's request id when given, otherwise assigns a new one
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		rw.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func accessLog(logger log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		defer func(begin time.Time) {
			logger.Log(
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"request_id", RequestID(r.Context()),
				"remote", clientKey(r),
				"took", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(rec, r)
	})
}

// statusRecorder remembers the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wrote {
		r.status = status
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
