package rates

// Currency a currency code
type Currency string

// Rate an exchange rate
type Rate float64

// Rates maps currency codes to the rate for one unit of the base currency
type Rates map[Currency]Rate

// ExchangeRate a validated table of reference rates as published for one day.
// Values are never mutated once constructed.
type ExchangeRate struct {
	// Amount of base currency the rates are quoted for, always 1
	Amount float64 `json:"amount"`

	// Base the base currency code
	Base Currency `json:"base"`

	// Date the publication date exactly as reported upstream
	Date string `json:"date"`

	// Rates quoted against one unit of Base
	Rates Rates `json:"rates"`
}
