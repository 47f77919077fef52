package exchange

import (
	"context"
	"errors"
	"go-exchange-rates-api"
	"go-exchange-rates-api/metrics"
)

// instrumentingService decorates an exchange.Service, counting extraction results
type instrumentingService struct {
	next    Service
	metrics *metrics.Metrics
}

// NewInstrumentingService returns a new instrumenting Service
func NewInstrumentingService(m *metrics.Metrics, s Service) Service {
	return &instrumentingService{
		next:    s,
		metrics: m,
	}
}

func (s *instrumentingService) Latest(ctx context.Context) (*rates.ExchangeRate, error) {
	result, err := s.next.Latest(ctx)
	switch {
	case err == nil:
		s.metrics.Extractions.WithLabelValues(metrics.OK).Inc()
	case errors.Is(err, ErrNoRates):
		s.metrics.Extractions.WithLabelValues(metrics.Absent).Inc()
	}
	return result, err
}
