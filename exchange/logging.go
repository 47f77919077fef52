package exchange

import (
	"context"
	"github.com/go-kit/log"
	"go-exchange-rates-api"
	"time"
)

// loggingService decorates an exchange.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Latest(ctx context.Context) (result *rates.ExchangeRate, err error) {
	defer func(begin time.Time) {
		var date string
		var count int
		if result != nil {
			date = result.Date
			count = len(result.Rates)
		}
		s.logger.Log(
			"method", "latest",
			"date", date,
			"rates", count,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Latest(ctx)
}
