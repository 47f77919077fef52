package http

import (
	"golang.org/x/time/rate"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// limiters token buckets per client, idle clients are dropped lazily
type limiters struct {
	lock      sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiters(rps float64, burst int, idle time.Duration) *limiters {
	if burst < 1 {
		burst = 1
	}
	return &limiters{
		entries:   map[string]*limiterEntry{},
		limit:     rate.Limit(rps),
		burst:     burst,
		idle:      idle,
		lastSweep: time.Now(),
	}
}

// allow reports whether the client identified by key may make a request at now
func (l *limiters) allow(key string, now time.Time) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	if now.Sub(l.lastSweep) > l.idle {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.idle {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (l *limiters) len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.entries)
}

// rateLimit rejects clients exceeding their token bucket with 429
func rateLimit(l *limiters, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if !l.allow(clientKey(r), time.Now()) {
			rw.Header().Set("Retry-After", "1")
			writeJSON(rw, http.StatusTooManyRequests, map[string]string{"429": "too-many-requests"})
			return
		}
		next.ServeHTTP(rw, r)
	})
}

// clientKey identifies the client by remote host
func clientKey(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err == nil && host != "" {
		return host
	}
	if addr != "" {
		return addr
	}
	return "unknown"
}
