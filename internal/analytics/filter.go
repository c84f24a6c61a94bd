// Package analytics filters the two record collections and derives the
// cross-dataset conversion, opportunity, and premium metrics.
package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nacora/cargo-analytics/internal/ingest"
)

// FilterAll is the wildcard value matching every record.
const FilterAll = "all"

// Date range presets.
const (
	RangeAll          = "all"
	RangeLast3Months  = "last3months"
	RangeLast6Months  = "last6months"
	RangeLast12Months = "last12months"
	RangeYTD          = "ytd"
	RangeCustom       = "custom"
)

// Filters is the user-selected predicate applied to both collections.
// All parts compose by conjunction; "all" (or empty) disables a part.
type Filters struct {
	Region       string `json:"region"`
	BusinessUnit string `json:"businessUnit"`
	Country      string `json:"country"`
	DateRange    string `json:"dateRange"`
	StartDate    string `json:"startDate"` // YYYY-MM-DD, custom range only
	EndDate      string `json:"endDate"`   // YYYY-MM-DD, custom range only
}

// Key returns a stable identity string for memoizing derived metrics.
func (f Filters) Key() string {
	return strings.Join([]string{
		f.Region, f.BusinessUnit, f.Country, f.DateRange, f.StartDate, f.EndDate,
	}, "|")
}

// Window resolves the filter's date-range preset into a concrete
// [start, end] window relative to now. A nil start means no date
// filtering is active.
func (f Filters) Window(now time.Time) (start, end *time.Time) {
	if f.DateRange == "" || f.DateRange == RangeAll {
		return nil, nil
	}

	e := now
	var s time.Time
	switch f.DateRange {
	case RangeLast3Months:
		s = now.AddDate(0, -3, 0)
	case RangeLast6Months:
		s = now.AddDate(0, -6, 0)
	case RangeLast12Months:
		s = now.AddDate(-1, 0, 0)
	case RangeYTD:
		s = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case RangeCustom:
		sp, err1 := time.Parse("2006-01-02", f.StartDate)
		ep, err2 := time.Parse("2006-01-02", f.EndDate)
		if err1 != nil || err2 != nil {
			return nil, nil
		}
		s, e = sp, ep
	default:
		return nil, nil
	}
	return &s, &e
}

// Apply filters both collections by the conjunction of the active
// predicates. It is always a pure recomputation over the full inputs.
func Apply(policies []ingest.PolicyRecord, shipments []ingest.ShipmentRecord, f Filters, now time.Time) ([]ingest.PolicyRecord, []ingest.ShipmentRecord) {
	start, end := f.Window(now)

	outPolicies := make([]ingest.PolicyRecord, 0, len(policies))
	for _, p := range policies {
		if start != nil {
			// A nil booking date is excluded under any active date window.
			if p.DateBooked == nil || p.DateBooked.Before(*start) || p.DateBooked.After(*end) {
				continue
			}
		}
		if !matches(f.Region, p.Region) || !matches(f.BusinessUnit, p.BusinessUnit) || !matches(f.Country, p.OperatingCountry) {
			continue
		}
		outPolicies = append(outPolicies, p)
	}

	outShipments := make([]ingest.ShipmentRecord, 0, len(shipments))
	for _, s := range shipments {
		if start != nil {
			// Month keys compare as the first day of that month.
			d, ok := monthStart(s.MonthKey)
			if !ok || d.Before(*start) || d.After(*end) {
				continue
			}
		}
		if !matches(f.Region, s.Region) || !matches(f.BusinessUnit, s.BusinessUnit) || !matches(f.Country, s.Country) {
			continue
		}
		outShipments = append(outShipments, s)
	}

	return outPolicies, outShipments
}

func matches(want, got string) bool {
	return want == "" || want == FilterAll || want == got
}

// monthStart parses a YYYY-MM key as the first day of that month.
func monthStart(monthKey string) (time.Time, bool) {
	parts := strings.SplitN(monthKey, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// FilterOptions are the distinct values present in the loaded datasets,
// offered to the caller for building filter predicates.
type FilterOptions struct {
	Regions       []string `json:"regions"`
	BusinessUnits []string `json:"businessUnits"`
	Countries     []string `json:"countries"`
}

// Options collects the sorted distinct regions, business units, and
// countries across both collections.
func Options(policies []ingest.PolicyRecord, shipments []ingest.ShipmentRecord) FilterOptions {
	regions := make(map[string]struct{})
	units := make(map[string]struct{})
	countries := make(map[string]struct{})

	add := func(m map[string]struct{}, v string) {
		if v != "" {
			m[v] = struct{}{}
		}
	}
	for _, p := range policies {
		add(regions, p.Region)
		add(units, p.BusinessUnit)
		add(countries, p.OperatingCountry)
	}
	for _, s := range shipments {
		add(regions, s.Region)
		add(units, s.BusinessUnit)
		add(countries, s.Country)
	}

	return FilterOptions{
		Regions:       sortedKeys(regions),
		BusinessUnits: sortedKeys(units),
		Countries:     sortedKeys(countries),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Summary renders the active (non-wildcard) filter parts for report
// headers, e.g. "region: Europe | businessUnit: Sea".
func (f Filters) Summary() string {
	var parts []string
	appendPart := func(name, v string) {
		if v != "" && v != FilterAll {
			parts = append(parts, fmt.Sprintf("%s: %s", name, v))
		}
	}
	appendPart("region", f.Region)
	appendPart("businessUnit", f.BusinessUnit)
	appendPart("country", f.Country)
	appendPart("dateRange", f.DateRange)
	appendPart("startDate", f.StartDate)
	appendPart("endDate", f.EndDate)
	return strings.Join(parts, " | ")
}
