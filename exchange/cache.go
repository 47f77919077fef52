package exchange

import (
	"context"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-exchange-rates-api"
	"go-exchange-rates-api/bucket"
	"go-exchange-rates-api/lru"
	"go-exchange-rates-api/metrics"
	"golang.org/x/sync/singleflight"
	"time"
)

// DefaultCapacity number of publication buckets kept in memory
const DefaultCapacity = 99

// cachingService decorates a Service with a cache of exchange rates, one entry per
// publication bucket. Failed lookups are not cached, so the next request retries.
type cachingService struct {
	// next the service being decorated with a cache
	next Service

	// cache of records by bucket key
	cache *lru.Cache[string, *rates.ExchangeRate]

	// schedule derives the bucket key of the current time
	schedule bucket.Schedule

	// now the clock
	now func() time.Time

	// group collapses concurrent misses on the same bucket into one upstream call
	group singleflight.Group

	// metrics records cache hits, misses and size
	metrics *metrics.Metrics

	// logger for cache misses and refreshes
	logger log.Logger
}

// NewCachingService returns a new caching Service storing records in cache
func NewCachingService(cache *lru.Cache[string, *rates.ExchangeRate], schedule bucket.Schedule, m *metrics.Metrics, logger log.Logger, s Service) Service {
	return &cachingService{
		next:     s,
		cache:    cache,
		schedule: schedule,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
}

// Latest returns the cached record of the current bucket, fetching it on a miss.
func (s *cachingService) Latest(ctx context.Context) (*rates.ExchangeRate, error) {
	key := s.schedule.Key(s.now())

	if result, ok := s.cache.Get(key); ok {
		s.metrics.CacheLookups.WithLabelValues(metrics.Hit).Inc()
		return result, nil
	}
	s.metrics.CacheLookups.WithLabelValues(metrics.Miss).Inc()
	level.Debug(s.logger).Log("msg", "cache miss", "bucket", key)

	// the fetch is shared by every caller waiting on this bucket, so it must not
	// be cancelled with the first caller's request
	shared := context.WithoutCancel(ctx)

	ch := s.group.DoChan(key, func() (interface{}, error) {
		if result, ok := s.cache.Peek(key); ok {
			return result, nil
		}

		result, err := s.next.Latest(shared)
		if err != nil {
			return nil, fmt.Errorf("refresh [%v]: %w", key, err)
		}

		s.cache.Set(key, result)
		s.metrics.CacheEntries.Set(float64(s.cache.Len()))
		level.Debug(s.logger).Log("msg", "cached rates", "bucket", key, "date", result.Date, "entries", s.cache.Len())
		return result, nil
	})

	// a caller that goes away stops waiting, the fetch carries on for the others
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*rates.ExchangeRate), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for bucket [%v]: %w", key, ctx.Err())
	}
}
