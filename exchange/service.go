package exchange

import (
	"context"
	"errors"
	"fmt"
	"go-exchange-rates-api"
	"go-exchange-rates-api/ecb"
)

// ErrNoRates the upstream document did not hold a usable rate table
var ErrNoRates = errors.New("no exchange rates available")

// Service provides the latest reference exchange rates
type Service interface {
	Latest(ctx context.Context) (*rates.ExchangeRate, error)
}

// service reads rates straight from the ECB
type service struct {
	// ecbService to fetch the daily document
	ecbService ecb.Service
}

// NewService constructs a valid Service
func NewService(s ecb.Service) Service {
	return &service{
		ecbService: s,
	}
}

// Latest fetches the daily document and extracts its rate table.
// ErrNoRates is returned when the document does not have the expected shape.
func (s *service) Latest(ctx context.Context) (*rates.ExchangeRate, error) {
	doc, err := s.ecbService.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest: %w", err)
	}

	result, ok := ecb.Extract(doc)
	if !ok {
		return nil, ErrNoRates
	}

	return result, nil
}
