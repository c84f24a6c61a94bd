// Package ingest extracts policy and shipment ledgers from xlsx workbook
// exports into typed record collections.
//
// Parsing is split into two stages: extraction pulls the raw cell grid out
// of the workbook once, and derivation turns raw rows into records using
// the session's country normalizer. Keeping the raw tables around lets a
// mapping update re-derive every record without re-reading the file.
package ingest

import (
	"strings"
	"time"
)

// Business unit classifications used as a join dimension.
const (
	UnitSea      = "Sea"
	UnitAir      = "Air"
	UnitOverland = "Overland"
	UnitUnknown  = "Unknown"
)

// PolicyRecord is one row of the insurance-policy ledger after
// normalization. Records are immutable once parsed and replaced wholesale
// on re-upload.
type PolicyRecord struct {
	CertificateNumber string     `json:"certificateNumber"`
	DateBooked        *time.Time `json:"dateBooked"`
	MonthKey          string     `json:"monthKey"` // YYYY-MM, "" when the date was unparseable
	PremiumUSD        int        `json:"premiumUSD"`
	NamedAssured      string     `json:"namedAssured"`
	AssuredCountry    string     `json:"assuredCountry"`   // normalized named-assured country
	OperatingCountry  string     `json:"operatingCountry"` // normalized country used for joins
	Region            string     `json:"region"`
	Status            string     `json:"status"`
	BusinessUnit      string     `json:"businessUnit"`
	Booked            bool       `json:"booked"`
}

// ShipmentRecord is one (month, country, business unit) shipment-count
// observation from the shipment ledger. Rows without a resolvable month
// are dropped at parse time, so MonthKey is always present.
type ShipmentRecord struct {
	Country       string `json:"country"`
	BusinessUnit  string `json:"businessUnit"`
	MonthKey      string `json:"monthKey"`
	ShipmentCount int    `json:"shipmentCount"`
	Region        string `json:"region"`
}

// StandardizeBusinessUnit maps a raw conveyance/business-line string to
// one of the fixed business units by case-insensitive substring match,
// sea before air before overland.
func StandardizeBusinessUnit(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "sea"):
		return UnitSea
	case strings.Contains(lower, "air"):
		return UnitAir
	case strings.Contains(lower, "overland"):
		return UnitOverland
	default:
		return UnitUnknown
	}
}
