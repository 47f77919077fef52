package ecb

import (
	"context"
	"github.com/go-kit/log"
	"go-exchange-rates-api/tree"
	"time"
)

// loggingService decorates an ecb.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Document(ctx context.Context) (doc tree.Node, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "document",
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Document(ctx)
}
