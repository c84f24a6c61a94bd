package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nacora/cargo-analytics/internal/pkg/httpretry"
	"github.com/nacora/cargo-analytics/internal/pkg/logger"
)

// WTO timeseries indicator codes.
const (
	IndicatorExports   = "ITS_MTV_AX"
	IndicatorImports   = "ITS_MTV_AM"
	IndicatorMFNTariff = "HS_A_0010" // MFN applied duties, simple average
)

// wtoEconomyOverrides maps ISO3 codes to the reporting-economy codes the
// WTO timeseries API expects where they differ.
var wtoEconomyOverrides = map[string]string{
	"TWN": "TPKM",
	"HKG": "HKG",
	"MAC": "MAC",
}

// partnerDimCandidates are the query shapes tried in order for the
// world-partner dimension. Different indicator vintages expose it under
// different parameter names.
var partnerDimCandidates = []struct{ key, value string }{
	{"p", "000"},
	{"px", "TO"},
	{"pc", "TO"},
}

// Observation is a single (year, value) point from an upstream API,
// together with the credential-free URL it was fetched from.
type Observation struct {
	Year   int
	Value  float64
	Unit   string
	Source string
}

// WTOClient queries the WTO timeseries API. It holds a primary and an
// optional secondary subscription key and fails over to the secondary
// when the primary is rejected.
type WTOClient struct {
	baseURL string
	keys    []string
	client  httpretry.HTTPDoer
}

// NewWTOClient creates a client for the given base URL and subscription
// keys. Empty keys are dropped; at least one key is required to call the
// API, but construction never fails so the service can degrade at
// request time instead.
func NewWTOClient(baseURL string, client httpretry.HTTPDoer, keys ...string) *WTOClient {
	active := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			active = append(active, k)
		}
	}
	if client == nil {
		client = httpretry.NewRetryClient(nil, 3)
	}
	return &WTOClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		keys:    active,
		client:  client,
	}
}

// economyCode resolves an ISO3 code to the WTO reporting-economy code.
func economyCode(iso3 string) string {
	if code, ok := wtoEconomyOverrides[iso3]; ok {
		return code
	}
	return iso3
}

// Indicator fetches the most recent observation for one indicator and
// economy, trying each partner-dimension shape and each subscription key
// until one succeeds.
func (c *WTOClient) Indicator(ctx context.Context, indicator, iso3 string) (*Observation, error) {
	if len(c.keys) == 0 {
		return nil, fmt.Errorf("wto: no subscription key configured")
	}

	economy := economyCode(iso3)
	var lastErr error
	for _, dim := range partnerDimCandidates {
		for ki, key := range c.keys {
			obs, err := c.fetch(ctx, indicator, economy, dim.key, dim.value, key)
			if err == nil {
				return obs, nil
			}
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			if isAuthError(err) && ki+1 < len(c.keys) {
				logger.Warn("wto: subscription key rejected, failing over",
					"indicator", indicator, "economy", economy)
				continue
			}
			// Non-auth failures are not key-specific; move to the next
			// dimension shape.
			break
		}
	}
	return nil, lastErr
}

type authError struct{ status int }

func (e *authError) Error() string { return fmt.Sprintf("wto: subscription rejected (%d)", e.status) }

func isAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

func (c *WTOClient) fetch(ctx context.Context, indicator, economy, dimKey, dimValue, key string) (*Observation, error) {
	q := url.Values{}
	q.Set("i", indicator)
	q.Set("r", economy)
	q.Set(dimKey, dimValue)
	q.Set("ps", "default")
	q.Set("fmt", "json")
	q.Set("mode", "full")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", key)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wto: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return nil, &authError{status: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("wto: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Dataset []map[string]any `json:"Dataset"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("wto: decode response: %w", err)
	}

	obs := pickLatest(payload.Dataset)
	if obs == nil {
		return nil, fmt.Errorf("wto: no observations for %s/%s", indicator, economy)
	}
	obs.Source = sanitizeSourceURL(req.URL)
	return obs, nil
}

// sanitizeSourceURL renders a request URL safe to expose to callers.
// The subscription key travels in a header here, but any key-style query
// parameter is stripped as well.
func sanitizeSourceURL(u *url.URL) string {
	clean := *u
	q := clean.Query()
	for param := range q {
		if strings.Contains(strings.ToLower(param), "key") {
			q.Del(param)
		}
	}
	clean.RawQuery = q.Encode()
	return clean.String()
}

// pickLatest returns the observation with the highest year that carries
// a numeric value. Field names vary by indicator vintage, so rows are
// probed loosely.
func pickLatest(rows []map[string]any) *Observation {
	var best *Observation
	for _, row := range rows {
		year, ok := rowInt(row, "Year", "year", "Period", "period")
		if !ok {
			continue
		}
		value, ok := rowFloat(row, "Value", "value", "DatapointValue")
		if !ok {
			continue
		}
		unit, _ := rowString(row, "Unit", "unit", "UnitCode")
		if best == nil || year > best.Year {
			best = &Observation{Year: year, Value: value, Unit: unit}
		}
	}
	return best
}

// ToUSDBn converts an observation to billions of US dollars using its
// unit label. WTO merchandise values are published in millions unless
// the unit says otherwise.
func (o *Observation) ToUSDBn() float64 {
	unit := strings.ToLower(o.Unit)
	switch {
	case strings.Contains(unit, "billion"):
		return o.Value
	case strings.Contains(unit, "thousand"):
		return o.Value / 1_000_000
	default:
		return o.Value / 1_000
	}
}

func rowFloat(row map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := row[k].(type) {
		case float64:
			return v, true
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func rowInt(row map[string]any, keys ...string) (int, bool) {
	f, ok := rowFloat(row, keys...)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func rowString(row map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := row[k].(string); ok {
			return s, true
		}
	}
	return "", false
}
