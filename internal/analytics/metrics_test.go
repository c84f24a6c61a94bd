package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nacora/cargo-analytics/internal/ingest"
)

func bookedPolicy(monthKey, country, unit string, premium int) ingest.PolicyRecord {
	var date *time.Time
	if monthKey != "" {
		d, ok := monthStartForTest(monthKey)
		if ok {
			date = &d
		}
	}
	return ingest.PolicyRecord{
		MonthKey:         monthKey,
		DateBooked:       date,
		OperatingCountry: country,
		Region:           regionOf(country),
		BusinessUnit:     unit,
		PremiumUSD:       premium,
		Status:           "Booked",
		Booked:           true,
	}
}

func monthStartForTest(key string) (time.Time, bool) { return monthStart(key) }

func regionOf(country string) string {
	switch country {
	case "FRANCE", "GERMANY":
		return "Europe"
	case "JAPAN":
		return "Asia/Pacific"
	case "UNITED STATES":
		return "North America"
	default:
		return ""
	}
}

func shipment(monthKey, country, unit string, count int) ingest.ShipmentRecord {
	return ingest.ShipmentRecord{
		MonthKey:      monthKey,
		Country:       country,
		Region:        regionOf(country),
		BusinessUnit:  unit,
		ShipmentCount: count,
	}
}

func TestComputeNilOnEmptyInput(t *testing.T) {
	assert.Nil(t, Compute(nil, []ingest.ShipmentRecord{shipment("2024-01", "FRANCE", "Sea", 10)}))
	assert.Nil(t, Compute([]ingest.PolicyRecord{bookedPolicy("2024-01", "FRANCE", "Sea", 10)}, nil))
}

func TestComputeConversionScenario(t *testing.T) {
	// 40 booked policies against a 100-shipment bucket → 40% conversion,
	// opportunity 60.
	policies := make([]ingest.PolicyRecord, 0, 40)
	for i := 0; i < 40; i++ {
		policies = append(policies, bookedPolicy("2024-01", "FRANCE", "Sea", 100))
	}
	shipments := []ingest.ShipmentRecord{
		shipment("2024-01", "FRANCE", "Sea", 100),
	}

	m := Compute(policies, shipments)
	require.NotNil(t, m)
	require.Len(t, m.ConversionData, 1)

	c := m.ConversionData[0]
	assert.Equal(t, 40, c.InsuredCount)
	assert.Equal(t, 40.0, c.ConversionRate)
	assert.Equal(t, 60, c.Opportunity)

	assert.Equal(t, 100, m.TotalShipments)
	assert.Equal(t, 40, m.TotalInsured)
	assert.Equal(t, 40.0, m.OverallConversionRate)
	assert.Equal(t, 4000, m.TotalPremium)
}

func TestComputeZeroShipmentCountGuard(t *testing.T) {
	policies := []ingest.PolicyRecord{bookedPolicy("2024-01", "FRANCE", "Sea", 10)}
	shipments := []ingest.ShipmentRecord{shipment("2024-02", "FRANCE", "Sea", 0)}

	m := Compute(policies, shipments)
	require.NotNil(t, m)
	require.Len(t, m.ConversionData, 1)
	assert.Equal(t, 0.0, m.ConversionData[0].ConversionRate)
	assert.Equal(t, 0.0, m.OverallConversionRate)
}

func TestComputeOpportunityCanGoNegative(t *testing.T) {
	// More booked policies than shipment volume in the same bucket: the
	// opportunity metric goes negative rather than being clamped.
	policies := []ingest.PolicyRecord{
		bookedPolicy("2024-01", "FRANCE", "Sea", 10),
		bookedPolicy("2024-01", "FRANCE", "Sea", 10),
		bookedPolicy("2024-01", "FRANCE", "Sea", 10),
	}
	shipments := []ingest.ShipmentRecord{shipment("2024-01", "FRANCE", "Sea", 2)}

	m := Compute(policies, shipments)
	require.NotNil(t, m)
	assert.Equal(t, -1, m.ConversionData[0].Opportunity)
}

func TestComputeUnbookedPoliciesExcludedFromJoin(t *testing.T) {
	unbooked := bookedPolicy("2024-01", "FRANCE", "Sea", 500)
	unbooked.Booked = false
	unbooked.Status = "Quoted"
	policies := []ingest.PolicyRecord{
		unbooked,
		bookedPolicy("2024-01", "FRANCE", "Sea", 100),
	}
	shipments := []ingest.ShipmentRecord{shipment("2024-01", "FRANCE", "Sea", 10)}

	m := Compute(policies, shipments)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.ConversionData[0].InsuredCount)
	assert.Equal(t, 1, m.TotalInsured)
	assert.Equal(t, 100, m.TotalPremium) // unbooked premium excluded
}

func TestComputeRegionRollupTotality(t *testing.T) {
	// Policies only in North America, shipments only in Asia/Pacific:
	// both regions still get an entry, zero-initialized on the missing
	// side.
	policies := []ingest.PolicyRecord{bookedPolicy("2024-01", "UNITED STATES", "Sea", 300)}
	shipments := []ingest.ShipmentRecord{shipment("2024-01", "JAPAN", "Air", 50)}

	m := Compute(policies, shipments)
	require.NotNil(t, m)

	na, ok := m.RegionMetrics["North America"]
	require.True(t, ok)
	assert.Equal(t, 0, na.TotalShipments)
	assert.Equal(t, 0, na.InsuredShipments)
	assert.Equal(t, 0.0, na.ConversionRate)
	assert.Equal(t, 300, na.TotalPremium)
	assert.Equal(t, 1, na.BookedPolicies)

	ap, ok := m.RegionMetrics["Asia/Pacific"]
	require.True(t, ok)
	assert.Equal(t, 50, ap.TotalShipments)
	assert.Equal(t, 0, ap.BookedPolicies)
	assert.Equal(t, 0, ap.TotalPremium)
}

func TestComputeDeterministic(t *testing.T) {
	policies := []ingest.PolicyRecord{
		bookedPolicy("2024-01", "FRANCE", "Sea", 100),
		bookedPolicy("2024-02", "GERMANY", "Air", 250),
	}
	shipments := []ingest.ShipmentRecord{
		shipment("2024-01", "FRANCE", "Sea", 10),
		shipment("2024-02", "GERMANY", "Air", 20),
	}

	a := Compute(policies, shipments)
	b := Compute(policies, shipments)
	assert.Equal(t, a, b)
}
