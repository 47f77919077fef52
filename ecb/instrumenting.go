package ecb

import (
	"context"
	"go-exchange-rates-api/metrics"
	"go-exchange-rates-api/tree"
	"time"
)

// instrumentingService decorates an ecb.Service with request metrics
type instrumentingService struct {
	next    Service
	metrics *metrics.Metrics
}

// NewInstrumentingService returns a new instrumenting service
func NewInstrumentingService(m *metrics.Metrics, s Service) Service {
	return &instrumentingService{
		next:    s,
		metrics: m,
	}
}

func (s *instrumentingService) Document(ctx context.Context) (doc tree.Node, err error) {
	defer func(begin time.Time) {
		outcome := metrics.OK
		if err != nil {
			outcome = metrics.Failed
		}
		s.metrics.UpstreamRequests.WithLabelValues(outcome).Inc()
		s.metrics.UpstreamDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())
	return s.next.Document(ctx)
}
