package ecb

import (
	"go-exchange-rates-api"
	"go-exchange-rates-api/tree"
)

// Base the currency every ECB reference rate is quoted against
const Base rates.Currency = "EUR"

// field names of the eurofxref document
const (
	envelopeField = "gesmes:Envelope"
	cubeField     = "Cube"
	timeAttr      = tree.AttrPrefix + "time"
	currencyAttr  = tree.AttrPrefix + "currency"
	rateAttr      = tree.AttrPrefix + "rate"
)

// Extract converts a parsed eurofxref document into an ExchangeRate.
//
// The document is expected to look like
//
//	{"gesmes:Envelope": {"Cube": {"Cube": {"@time": "2024-01-02", "Cube": [{"@currency": "USD", "@rate": 1.09}, ...]}}}}
//
// A record is returned only when both the publication time and the rate list are
// present. Individual rate entries without a non-empty currency or a numeric rate
// are skipped, which may leave the rates empty.
func Extract(doc tree.Node) (*rates.ExchangeRate, bool) {
	root, ok := tree.AsObject(doc)
	if !ok {
		return nil, false
	}

	result := rates.ExchangeRate{Amount: 1.0, Base: Base}

	day, ok := dailyCube(root)
	if !ok {
		return nil, false
	}

	date, hasDate := publicationDate(day)
	table, hasRates := rateTable(day)
	if !hasDate || !hasRates {
		return nil, false
	}

	result.Date = date
	result.Rates = table
	return &result, true
}

// dailyCube descends envelope -> Cube -> Cube
func dailyCube(root tree.Object) (tree.Object, bool) {
	envelope, ok := objectField(root, envelopeField)
	if !ok {
		return nil, false
	}
	outer, ok := objectField(envelope, cubeField)
	if !ok {
		return nil, false
	}
	return objectField(outer, cubeField)
}

func publicationDate(day tree.Object) (string, bool) {
	n, ok := day.Field(timeAttr)
	if !ok {
		return "", false
	}
	return tree.AsString(n)
}

func rateTable(day tree.Object) (rates.Rates, bool) {
	n, ok := day.Field(cubeField)
	if !ok {
		return nil, false
	}
	leaves, ok := tree.AsArray(n)
	if !ok {
		return nil, false
	}

	table := rates.Rates{}
	for _, leaf := range leaves {
		currency, rate, ok := rateEntry(leaf)
		if !ok {
			continue
		}
		table[currency] = rate
	}
	return table, true
}

func rateEntry(n tree.Node) (rates.Currency, rates.Rate, bool) {
	entry, ok := tree.AsObject(n)
	if !ok {
		return "", 0, false
	}

	c, ok := entry.Field(currencyAttr)
	if !ok {
		return "", 0, false
	}
	currency, ok := tree.AsString(c)
	if !ok || currency == "" {
		return "", 0, false
	}

	r, ok := entry.Field(rateAttr)
	if !ok {
		return "", 0, false
	}
	rate, ok := tree.AsNumber(r)
	if !ok {
		return "", 0, false
	}

	return rates.Currency(currency), rates.Rate(rate), true
}

func objectField(o tree.Object, name string) (tree.Object, bool) {
	n, ok := o.Field(name)
	if !ok {
		return nil, false
	}
	return tree.AsObject(n)
}
