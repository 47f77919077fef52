package exchange

import (
	"context"
	"errors"
	"go-exchange-rates-api"
	"go-exchange-rates-api/tree"
	"reflect"
	"testing"
)

type mock struct {
	doc tree.Node
	err error
}

func (m *mock) Document(_ context.Context) (tree.Node, error) {
	return m.doc, m.err
}

func daily(date tree.Node, entries ...tree.Node) tree.Node {
	return tree.Object{
		"gesmes:Envelope": tree.Object{
			"Cube": tree.Object{
				"Cube": tree.Object{
					"@time": date,
					"Cube":  tree.Array(entries),
				},
			},
		},
	}
}

func entry(currency string, rate float64) tree.Node {
	return tree.Object{"@currency": tree.String(currency), "@rate": tree.Number(rate)}
}

func TestService_Latest(t *testing.T) {
	fetchErr := errors.New("connection refused")

	tests := []struct {
		name    string
		ecb     *mock
		want    *rates.ExchangeRate
		wantErr error
	}{
		{
			"rates",
			&mock{doc: daily(tree.String("2024-01-02"), entry("USD", 1.08), entry("GBP", 0.86))},
			&rates.ExchangeRate{Amount: 1, Base: "EUR", Date: "2024-01-02", Rates: rates.Rates{"USD": 1.08, "GBP": 0.86}},
			nil,
		},
		{
			"no date",
			&mock{doc: daily(tree.Null{}, entry("USD", 1.08))},
			nil,
			ErrNoRates,
		},
		{
			"not a document",
			&mock{doc: tree.String("<html>")},
			nil,
			ErrNoRates,
		},
		{
			"fetch failed",
			&mock{err: fetchErr},
			nil,
			fetchErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.ecb)

			got, err := service.Latest(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Latest() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Latest() got = %v, want %v", got, tt.want)
			}
		})
	}
}
