// Package enrichment fetches external trade statistics (WTO timeseries
// and World Bank indicators) for a country, with caching, request
// coalescing, bounded parallelism, and a circuit breaker so a degraded
// upstream never stalls the dashboard.
package enrichment

import (
	"errors"
	"time"
)

// TradeStats is the merged trade profile for one economy. Pointer fields
// are nil when the corresponding indicator could not be fetched; Partial
// marks such results so callers can render what is available.
type TradeStats struct {
	ISO3 string `json:"iso3"`

	// Merchandise trade values in billions of US dollars.
	ExportsUSDBn *float64 `json:"exportsUsdBn,omitempty"`
	ImportsUSDBn *float64 `json:"importsUsdBn,omitempty"`

	// ExportsYear and ImportsYear are the reference years of the values.
	ExportsYear int `json:"exportsYear,omitempty"`
	ImportsYear int `json:"importsYear,omitempty"`

	// MFNTariffAvg is the simple average of MFN applied duties, in
	// percent.
	MFNTariffAvg  *float64 `json:"mfnTariffAvg,omitempty"`
	MFNTariffYear int      `json:"mfnTariffYear,omitempty"`

	// TradeShareGDP is merchandise trade as a percentage of GDP.
	TradeShareGDP     *float64 `json:"tradeShareGdp,omitempty"`
	TradeShareGDPYear int      `json:"tradeShareGdpYear,omitempty"`

	// Sources carries the upstream request URL each figure came from.
	Sources TradeSources `json:"sources"`

	Partial   bool      `json:"partial"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// TradeSources holds the per-indicator source URLs, with credentials
// stripped. Empty when the indicator was not fetched.
type TradeSources struct {
	Exports  string `json:"exports,omitempty"`
	Imports  string `json:"imports,omitempty"`
	Tariff   string `json:"tariff,omitempty"`
	Openness string `json:"openness,omitempty"`
}

var (
	// ErrBadCode is returned for inputs that are not a 3-letter code.
	ErrBadCode = errors.New("enrichment: invalid economy code")

	// ErrUnavailable is returned when no indicator could be fetched, or
	// when a recent failure for the same code is still cached.
	ErrUnavailable = errors.New("enrichment: trade statistics unavailable")

	// ErrCircuitOpen is returned without contacting upstream while the
	// breaker cools down after repeated failures.
	ErrCircuitOpen = errors.New("enrichment: upstream circuit open")
)
