package analytics

import (
	"sort"

	"github.com/nacora/cargo-analytics/internal/ingest"
)

// Synergy model assumptions.
const (
	assumedPremiumPerShipment = 150
	rebateRate                = 0.15
	assumedGlobalMarketUSD    = 22_100_000_000
)

// CustomerData aggregates one (named assured, business unit) pairing.
type CustomerData struct {
	Customer         string  `json:"customer"`
	Country          string  `json:"country"`
	BusinessUnit     string  `json:"businessUnit"`
	TotalShipments   int     `json:"totalShipments"`
	InsuredShipments int     `json:"insuredShipments"`
	AnnualShipments  int     `json:"annualShipments"`
	ConversionRate   float64 `json:"conversionRate"`
}

// CustomerCluster is one volume band of customers.
type CustomerCluster struct {
	Min              int            `json:"min"`
	Label            string         `json:"label"`
	Customers        []CustomerData `json:"customers"`
	TotalShipments   int            `json:"totalShipments"`
	InsuredShipments int            `json:"insuredShipments"`
	ConversionRate   float64        `json:"conversionRate"`
	CustomerCount    int            `json:"customerCount"`
}

// TopCustomerData ranks customers by booked premium.
type TopCustomerData struct {
	Customer     string  `json:"customer"`
	Country      string  `json:"country"`
	BusinessUnit string  `json:"businessUnit"`
	TotalPremium int     `json:"totalPremium"`
	PolicyCount  int     `json:"policyCount"`
	AvgPremium   float64 `json:"avgPremium"`
}

// SynergyData estimates per-country uninsured volume and rebate
// potential.
type SynergyData struct {
	Country          string  `json:"country"`
	TotalShipments   int     `json:"totalShipments"`
	InsuredShipments int     `json:"insuredShipments"`
	ConversionRate   float64 `json:"conversionRate"`
	ConversionGap    int     `json:"conversionGap"` // uninsured shipment count
	SynergyScore     float64 `json:"synergyScore"`
	PotentialRebate  float64 `json:"potentialRebate"`
}

// GlobalMetrics relates booked premium to an assumed market size.
type GlobalMetrics struct {
	TotalMarketSize int     `json:"totalMarketSize"`
	MarketShare     float64 `json:"marketShare"`
}

// IntelligenceMetrics is the customer-segmentation view over the
// filtered datasets.
type IntelligenceMetrics struct {
	Clusters      map[string]CustomerCluster `json:"clusters"`
	TopCustomers  []TopCustomerData          `json:"topCustomers"`
	SynergyMatrix []SynergyData              `json:"synergyMatrix"`
	Global        GlobalMetrics              `json:"globalMetrics"`
}

// ComputeIntelligence segments customers by volume band, ranks them by
// premium, and builds the per-country synergy matrix. Returns nil when
// the base metrics are nil or no policies are loaded.
func ComputeIntelligence(m *Metrics, policies []ingest.PolicyRecord) *IntelligenceMetrics {
	if m == nil || len(policies) == 0 {
		return nil
	}

	// Customer segmentation, keyed (customer, business unit).
	type custKey struct{ customer, unit string }
	perCustomer := make(map[custKey]*CustomerData)
	var custOrder []custKey
	for _, p := range policies {
		customer := p.NamedAssured
		if customer == "" {
			customer = "Unknown"
		}
		key := custKey{customer, p.BusinessUnit}
		c, ok := perCustomer[key]
		if !ok {
			c = &CustomerData{
				Customer:     customer,
				Country:      p.AssuredCountry,
				BusinessUnit: p.BusinessUnit,
			}
			perCustomer[key] = c
			custOrder = append(custOrder, key)
		}
		c.TotalShipments++
		if p.Booked {
			c.InsuredShipments++
		}
	}

	clusters := map[string]CustomerCluster{
		"A": {Min: 1000, Label: "Enterprise (1k+/yr)"},
		"B": {Min: 100, Label: "Large (100-999/yr)"},
		"C": {Min: 20, Label: "Medium (20-99/yr)"},
		"D": {Min: 1, Label: "Small (1-19/yr)"},
	}
	for _, key := range custOrder {
		c := perCustomer[key]
		c.AnnualShipments = c.TotalShipments
		if c.TotalShipments > 0 {
			c.ConversionRate = float64(c.InsuredShipments) / float64(c.TotalShipments) * 100
		}

		band := "D"
		switch {
		case c.AnnualShipments >= 1000:
			band = "A"
		case c.AnnualShipments >= 100:
			band = "B"
		case c.AnnualShipments >= 20:
			band = "C"
		}
		cl := clusters[band]
		cl.Customers = append(cl.Customers, *c)
		cl.TotalShipments += c.TotalShipments
		cl.InsuredShipments += c.InsuredShipments
		cl.CustomerCount++
		clusters[band] = cl
	}
	for band, cl := range clusters {
		if cl.TotalShipments > 0 {
			cl.ConversionRate = float64(cl.InsuredShipments) / float64(cl.TotalShipments) * 100
		}
		clusters[band] = cl
	}

	// Top customers by booked premium.
	perPremium := make(map[string]*TopCustomerData)
	var premiumOrder []string
	for _, p := range policies {
		if !p.Booked {
			continue
		}
		customer := p.NamedAssured
		if customer == "" {
			customer = "Unknown"
		}
		tc, ok := perPremium[customer]
		if !ok {
			tc = &TopCustomerData{
				Customer:     customer,
				Country:      p.AssuredCountry,
				BusinessUnit: p.BusinessUnit,
			}
			perPremium[customer] = tc
			premiumOrder = append(premiumOrder, customer)
		}
		tc.TotalPremium += p.PremiumUSD
		tc.PolicyCount++
	}
	topCustomers := make([]TopCustomerData, 0, len(premiumOrder))
	for _, customer := range premiumOrder {
		tc := perPremium[customer]
		if tc.PolicyCount > 0 {
			tc.AvgPremium = float64(tc.TotalPremium) / float64(tc.PolicyCount)
		}
		topCustomers = append(topCustomers, *tc)
	}
	sort.SliceStable(topCustomers, func(i, j int) bool {
		return topCustomers[i].TotalPremium > topCustomers[j].TotalPremium
	})

	// Synergy matrix per country.
	type countryTotals struct{ shipments, insured int }
	perCountry := make(map[string]countryTotals)
	var countryOrder []string
	for _, c := range m.ConversionData {
		if c.Country == "" {
			continue
		}
		if _, ok := perCountry[c.Country]; !ok {
			countryOrder = append(countryOrder, c.Country)
		}
		ct := perCountry[c.Country]
		ct.shipments += c.ShipmentCount
		ct.insured += c.InsuredCount
		perCountry[c.Country] = ct
	}
	synergy := make([]SynergyData, 0, len(countryOrder))
	for _, name := range countryOrder {
		ct := perCountry[name]
		rate := 0.0
		if ct.shipments > 0 {
			rate = float64(ct.insured) / float64(ct.shipments) * 100
		}
		uninsured := ct.shipments - ct.insured
		if uninsured < 0 {
			uninsured = 0
		}
		synergy = append(synergy, SynergyData{
			Country:          name,
			TotalShipments:   ct.shipments,
			InsuredShipments: ct.insured,
			ConversionRate:   rate,
			ConversionGap:    uninsured,
			SynergyScore:     float64(ct.shipments) / 1000 * (100 - rate) / 100,
			PotentialRebate:  float64(uninsured) * assumedPremiumPerShipment * rebateRate,
		})
	}
	sort.SliceStable(synergy, func(i, j int) bool {
		return synergy[i].PotentialRebate > synergy[j].PotentialRebate
	})

	return &IntelligenceMetrics{
		Clusters:      clusters,
		TopCustomers:  topCustomers,
		SynergyMatrix: synergy,
		Global: GlobalMetrics{
			TotalMarketSize: assumedGlobalMarketUSD,
			MarketShare:     float64(m.TotalPremium) / assumedGlobalMarketUSD * 100,
		},
	}
}
