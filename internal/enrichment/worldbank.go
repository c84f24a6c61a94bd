package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nacora/cargo-analytics/internal/pkg/httpretry"
)

// IndicatorTradeShareGDP is merchandise trade as a share of GDP.
const IndicatorTradeShareGDP = "TG.VAL.TOTL.GD.ZS"

// WorldBankClient queries the World Bank indicators API. No key needed.
type WorldBankClient struct {
	baseURL string
	client  httpretry.HTTPDoer
}

func NewWorldBankClient(baseURL string, client httpretry.HTTPDoer) *WorldBankClient {
	if client == nil {
		client = httpretry.NewRetryClient(nil, 3)
	}
	return &WorldBankClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// TradeShareGDP fetches the most recent non-null trade-to-GDP ratio for
// the economy. The API returns years newest first with null values for
// years not yet published.
func (c *WorldBankClient) TradeShareGDP(ctx context.Context, iso3 string) (*Observation, error) {
	u := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&per_page=10",
		c.baseURL, strings.ToLower(iso3), IndicatorTradeShareGDP)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("worldbank: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("worldbank: unexpected status %d", resp.StatusCode)
	}

	// Response is a two-element array: [pagination, rows].
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("worldbank: decode response: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("worldbank: no data for %s", iso3)
	}

	var rows []struct {
		Date  string   `json:"date"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(payload[1], &rows); err != nil {
		return nil, fmt.Errorf("worldbank: decode rows: %w", err)
	}

	for _, row := range rows {
		if row.Value == nil {
			continue
		}
		year, err := strconv.Atoi(row.Date)
		if err != nil {
			continue
		}
		return &Observation{Year: year, Value: *row.Value, Unit: "percent of GDP", Source: u}, nil
	}
	return nil, fmt.Errorf("worldbank: no published values for %s", iso3)
}
