package analytics

import (
	"fmt"

	"github.com/nacora/cargo-analytics/internal/ingest"
)

// ConversionRecord is a shipment observation joined with the count of
// booked policies in the same (month, country, business unit) bucket.
type ConversionRecord struct {
	ingest.ShipmentRecord
	InsuredCount   int     `json:"insuredCount"`
	ConversionRate float64 `json:"conversionRate"`
	// Opportunity is shipment volume minus insured count. It is not
	// clamped: a join bucket with more booked policies than shipments
	// reports negative opportunity.
	Opportunity int `json:"opportunity"`
}

// RegionMetrics is the per-region rollup, folded independently from the
// shipment side (totals, insured) and the booked-policy side (premium,
// policy count).
type RegionMetrics struct {
	TotalShipments   int     `json:"totalShipments"`
	InsuredShipments int     `json:"insuredShipments"`
	TotalPremium     int     `json:"totalPremium"`
	ConversionRate   float64 `json:"conversionRate"`
	BookedPolicies   int     `json:"bookedPolicies"`
}

// Metrics is the derived cross-dataset result set consumed by
// presentation. A pure function of the filtered inputs.
type Metrics struct {
	TotalShipments        int                      `json:"totalShipments"`
	TotalInsured          int                      `json:"totalInsured"`
	OverallConversionRate float64                  `json:"overallConversionRate"`
	TotalPremium          int                      `json:"totalPremium"`
	ConversionData        []ConversionRecord       `json:"conversionData"`
	RegionMetrics         map[string]RegionMetrics `json:"regionMetrics"`
}

// joinKey builds the composite (month, country, business unit) join key.
func joinKey(monthKey, country, businessUnit string) string {
	return fmt.Sprintf("%s|%s|%s", monthKey, country, businessUnit)
}

// Compute joins filtered policies and shipments and derives all
// aggregate and region-level statistics. Returns nil when either
// collection is empty (insufficient data to report). Given identical
// inputs the output is identical.
func Compute(policies []ingest.PolicyRecord, shipments []ingest.ShipmentRecord) *Metrics {
	if len(policies) == 0 || len(shipments) == 0 {
		return nil
	}

	insuredByKey := make(map[string]int)
	for _, p := range policies {
		if !p.Booked || p.MonthKey == "" || p.OperatingCountry == "" || p.BusinessUnit == "" {
			continue
		}
		insuredByKey[joinKey(p.MonthKey, p.OperatingCountry, p.BusinessUnit)]++
	}

	conversionData := make([]ConversionRecord, 0, len(shipments))
	totalShipments := 0
	for _, s := range shipments {
		insured := insuredByKey[joinKey(s.MonthKey, s.Country, s.BusinessUnit)]
		rate := 0.0
		if s.ShipmentCount > 0 {
			rate = float64(insured) / float64(s.ShipmentCount) * 100
		}
		conversionData = append(conversionData, ConversionRecord{
			ShipmentRecord: s,
			InsuredCount:   insured,
			ConversionRate: rate,
			Opportunity:    s.ShipmentCount - insured,
		})
		totalShipments += s.ShipmentCount
	}

	totalInsured := 0
	totalPremium := 0
	for _, p := range policies {
		if p.Booked {
			totalInsured++
			totalPremium += p.PremiumUSD
		}
	}

	regionMetrics := make(map[string]RegionMetrics)
	for _, c := range conversionData {
		if c.Region == "" {
			continue
		}
		rm := regionMetrics[c.Region]
		rm.TotalShipments += c.ShipmentCount
		rm.InsuredShipments += c.InsuredCount
		regionMetrics[c.Region] = rm
	}
	for _, p := range policies {
		if !p.Booked || p.Region == "" {
			continue
		}
		rm := regionMetrics[p.Region]
		rm.TotalPremium += p.PremiumUSD
		rm.BookedPolicies++
		regionMetrics[p.Region] = rm
	}
	for region, rm := range regionMetrics {
		if rm.TotalShipments > 0 {
			rm.ConversionRate = float64(rm.InsuredShipments) / float64(rm.TotalShipments) * 100
		}
		regionMetrics[region] = rm
	}

	overall := 0.0
	if totalShipments > 0 {
		overall = float64(totalInsured) / float64(totalShipments) * 100
	}

	return &Metrics{
		TotalShipments:        totalShipments,
		TotalInsured:          totalInsured,
		OverallConversionRate: overall,
		TotalPremium:          totalPremium,
		ConversionData:        conversionData,
		RegionMetrics:         regionMetrics,
	}
}
