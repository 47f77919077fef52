// Package ecb reads the European Central Bank daily reference rates.
package ecb

import (
	"bytes"
	"context"
	"fmt"
	"go-exchange-rates-api/tree"
	"io"
	"net/http"
	"time"
)

// DailyURL the ECB euro foreign exchange reference rates, updated once per working day
const DailyURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"

// Service fetches the daily reference rate document
type Service interface {
	Document(ctx context.Context) (tree.Node, error)
}

// service ECB HTTP client
type service struct {
	// url of the daily document
	url string

	// client for HTTP requests
	client http.Client
}

// NewService constructs a valid ECB Service.
// An empty url selects DailyURL, a zero timeout five seconds.
func NewService(url string, timeout time.Duration) Service {
	if url == "" {
		url = DailyURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &service{
		url: url,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

// Document downloads the daily document and parses it into a tree.
func (s *service) Document(ctx context.Context) (tree.Node, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building http request: %w", err)
	}
	request.Header.Set("Accept", "application/xml, text/xml")

	httpResponse, err := s.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return nil, fmt.Errorf("http get: unexpected status %v", httpResponse.Status)
	}

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading xml: %w", err)
	}

	doc, err := tree.ParseXML(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing xml: %w", err)
	}

	return doc, nil
}
