package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nacora/cargo-analytics/internal/ingest"
)

func namedPolicy(customer, country, unit string, premium int, booked bool) ingest.PolicyRecord {
	p := bookedPolicy("2024-01", country, unit, premium)
	p.NamedAssured = customer
	p.AssuredCountry = country
	p.Booked = booked
	return p
}

func TestComputeIntelligenceNil(t *testing.T) {
	assert.Nil(t, ComputeIntelligence(nil, []ingest.PolicyRecord{namedPolicy("A", "FRANCE", "Sea", 1, true)}))
	assert.Nil(t, ComputeIntelligence(&Metrics{}, nil))
}

func TestComputeIntelligenceClusters(t *testing.T) {
	var policies []ingest.PolicyRecord
	// 25 rows for one customer → Medium band; 2 rows for another → Small.
	for i := 0; i < 25; i++ {
		policies = append(policies, namedPolicy("Acme", "FRANCE", "Sea", 100, i%2 == 0))
	}
	policies = append(policies,
		namedPolicy("Globex", "GERMANY", "Air", 50, true),
		namedPolicy("Globex", "GERMANY", "Air", 50, false),
	)
	shipments := []ingest.ShipmentRecord{shipment("2024-01", "FRANCE", "Sea", 10)}

	m := Compute(policies, shipments)
	require.NotNil(t, m)
	im := ComputeIntelligence(m, policies)
	require.NotNil(t, im)

	assert.Equal(t, 1, im.Clusters["C"].CustomerCount)
	assert.Equal(t, 25, im.Clusters["C"].TotalShipments)
	assert.Equal(t, 13, im.Clusters["C"].InsuredShipments)
	assert.Equal(t, 1, im.Clusters["D"].CustomerCount)
	assert.Equal(t, 0, im.Clusters["A"].CustomerCount)
	assert.Equal(t, 0, im.Clusters["B"].CustomerCount)
}

func TestComputeIntelligenceTopCustomersSorted(t *testing.T) {
	policies := []ingest.PolicyRecord{
		namedPolicy("Small Co", "FRANCE", "Sea", 100, true),
		namedPolicy("Big Co", "GERMANY", "Air", 900, true),
		namedPolicy("Big Co", "GERMANY", "Air", 100, true),
		namedPolicy("Quoted Co", "JAPAN", "Sea", 5000, false), // not booked, excluded
	}
	shipments := []ingest.ShipmentRecord{shipment("2024-01", "FRANCE", "Sea", 10)}

	im := ComputeIntelligence(Compute(policies, shipments), policies)
	require.NotNil(t, im)
	require.Len(t, im.TopCustomers, 2)

	assert.Equal(t, "Big Co", im.TopCustomers[0].Customer)
	assert.Equal(t, 1000, im.TopCustomers[0].TotalPremium)
	assert.Equal(t, 500.0, im.TopCustomers[0].AvgPremium)
	assert.Equal(t, "Small Co", im.TopCustomers[1].Customer)
}

func TestComputeIntelligenceSynergyMatrix(t *testing.T) {
	policies := []ingest.PolicyRecord{
		namedPolicy("Acme", "FRANCE", "Sea", 100, true),
	}
	shipments := []ingest.ShipmentRecord{
		shipment("2024-01", "FRANCE", "Sea", 1000),
		shipment("2024-01", "JAPAN", "Air", 500),
	}

	im := ComputeIntelligence(Compute(policies, shipments), policies)
	require.NotNil(t, im)
	require.Len(t, im.SynergyMatrix, 2)

	// 999 uninsured in France, 500 in Japan: France ranks first by rebate.
	fr := im.SynergyMatrix[0]
	assert.Equal(t, "FRANCE", fr.Country)
	assert.Equal(t, 999, fr.ConversionGap)
	assert.InDelta(t, 999*150*0.15, fr.PotentialRebate, 0.001)
	assert.InDelta(t, 1.0*(100-0.1)/100, fr.SynergyScore, 0.001)

	jp := im.SynergyMatrix[1]
	assert.Equal(t, "JAPAN", jp.Country)
	assert.Equal(t, 500, jp.ConversionGap)
	assert.Equal(t, 0.0, jp.ConversionRate)
}

func TestComputeIntelligenceGlobalShare(t *testing.T) {
	policies := []ingest.PolicyRecord{namedPolicy("Acme", "FRANCE", "Sea", 221_000_000, true)}
	shipments := []ingest.ShipmentRecord{shipment("2024-01", "FRANCE", "Sea", 10)}

	im := ComputeIntelligence(Compute(policies, shipments), policies)
	require.NotNil(t, im)
	assert.InDelta(t, 1.0, im.Global.MarketShare, 0.0001)
	assert.Equal(t, assumedGlobalMarketUSD, im.Global.TotalMarketSize)
}
