// Package report renders the printable HTML analytics report from the
// derived metrics using Liquid templates.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/osteele/liquid"

	"github.com/nacora/cargo-analytics/internal/analytics"
)

// Renderer holds a Liquid engine with the number-formatting filters the
// report template uses. The compiled template is parsed once.
type Renderer struct {
	engine *liquid.Engine
	tpl    *liquid.Template
	title  string
}

// NewRenderer creates a Renderer with the given report title.
func NewRenderer(title string) (*Renderer, error) {
	engine := liquid.NewEngine()
	registerFilters(engine)

	tpl, err := engine.ParseString(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("report: parse template: %w", err)
	}
	return &Renderer{engine: engine, tpl: tpl, title: title}, nil
}

func registerFilters(engine *liquid.Engine) {
	// Currency formatting: {{ premium | currency }}
	engine.RegisterFilter("currency", func(value interface{}) string {
		var n int64
		switch v := value.(type) {
		case int:
			n = int64(v)
		case int64:
			n = v
		case float64:
			n = int64(v)
		default:
			return fmt.Sprintf("%v", value)
		}
		return "$" + delimit(n)
	})

	// Thousand separators: {{ count | number_with_delimiter }}
	engine.RegisterFilter("number_with_delimiter", func(value interface{}) string {
		var n int64
		switch v := value.(type) {
		case int:
			n = int64(v)
		case int64:
			n = v
		case float64:
			n = int64(v)
		default:
			return fmt.Sprintf("%v", value)
		}
		return delimit(n)
	})

	// Percentage: {{ rate | percentage }}
	engine.RegisterFilter("percentage", func(value interface{}) string {
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case int:
			f = float64(v)
		default:
			return fmt.Sprintf("%v", value)
		}
		return fmt.Sprintf("%.1f%%", f)
	})
}

func delimit(n int64) string {
	str := fmt.Sprintf("%d", n)
	neg := n < 0
	if neg {
		str = str[1:]
	}

	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	if neg {
		return "-" + result.String()
	}
	return result.String()
}

// Render produces the report HTML for the given metrics. Filters are
// echoed so the reader knows what slice of the data they are looking at.
func (r *Renderer) Render(m *analytics.Metrics, f analytics.Filters, generatedAt time.Time) (string, error) {
	ctx := map[string]interface{}{
		"title":        r.title,
		"generated_at": generatedAt.Format("January 2, 2006 15:04 UTC"),
		"filters":      f.Summary(),
		"has_data":     m != nil,
	}

	if m != nil {
		ctx["total_shipments"] = m.TotalShipments
		ctx["total_insured"] = m.TotalInsured
		ctx["conversion_rate"] = m.OverallConversionRate
		ctx["total_premium"] = m.TotalPremium
		ctx["regions"] = regionRows(m)
	}

	out, err := r.tpl.RenderString(ctx)
	if err != nil {
		return "", fmt.Errorf("report: render: %w", err)
	}
	return out, nil
}

// regionRows flattens the region map into name-sorted rows for the
// template, which has no stable iteration over maps.
func regionRows(m *analytics.Metrics) []map[string]interface{} {
	names := make([]string, 0, len(m.RegionMetrics))
	for name := range m.RegionMetrics {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		rm := m.RegionMetrics[name]
		rows = append(rows, map[string]interface{}{
			"name":      name,
			"shipments": rm.TotalShipments,
			"insured":   rm.InsuredShipments,
			"premium":   rm.TotalPremium,
			"rate":      rm.ConversionRate,
			"booked":    rm.BookedPolicies,
		})
	}
	return rows
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 40px; color: #1a202c; }
  h1 { font-size: 22px; margin-bottom: 4px; }
  .meta { color: #718096; font-size: 13px; margin-bottom: 24px; }
  .cards { display: flex; gap: 16px; margin-bottom: 32px; }
  .card { border: 1px solid #e2e8f0; border-radius: 8px; padding: 16px 24px; }
  .card .label { font-size: 12px; color: #718096; text-transform: uppercase; }
  .card .value { font-size: 24px; font-weight: 600; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #e2e8f0; font-size: 14px; }
  th { color: #718096; font-size: 12px; text-transform: uppercase; }
  @media print { body { margin: 12mm; } }
</style>
</head>
<body>
<h1>{{ title }}</h1>
<div class="meta">Generated {{ generated_at }} &middot; Filters: {{ filters }}</div>
{% if has_data %}
<div class="cards">
  <div class="card"><div class="label">Total Shipments</div><div class="value">{{ total_shipments | number_with_delimiter }}</div></div>
  <div class="card"><div class="label">Insured Shipments</div><div class="value">{{ total_insured | number_with_delimiter }}</div></div>
  <div class="card"><div class="label">Conversion Rate</div><div class="value">{{ conversion_rate | percentage }}</div></div>
  <div class="card"><div class="label">Total Premium</div><div class="value">{{ total_premium | currency }}</div></div>
</div>
<h2>Regional Performance</h2>
<table>
  <tr><th>Region</th><th>Shipments</th><th>Insured</th><th>Conversion</th><th>Booked Policies</th><th>Premium</th></tr>
  {% for region in regions %}
  <tr>
    <td>{{ region.name }}</td>
    <td>{{ region.shipments | number_with_delimiter }}</td>
    <td>{{ region.insured | number_with_delimiter }}</td>
    <td>{{ region.rate | percentage }}</td>
    <td>{{ region.booked | number_with_delimiter }}</td>
    <td>{{ region.premium | currency }}</td>
  </tr>
  {% endfor %}
</table>
{% else %}
<p>No data available for the selected filters.</p>
{% endif %}
</body>
</html>
`
