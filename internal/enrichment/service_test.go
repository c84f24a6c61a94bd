package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nacora/cargo-analytics/internal/config"
)

// tradeAPIStub serves both upstream shapes from one server: the WTO
// timeseries /data endpoint and the World Bank /country endpoint.
type tradeAPIStub struct {
	hits    int32
	delay   time.Duration
	failWTO bool
	failWB  bool
	failAll bool
}

func (s *tradeAPIStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.hits, 1)
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
		if s.failAll {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/country/") {
			if s.failWB {
				http.Error(w, "gone", http.StatusNotFound)
				return
			}
			fmt.Fprint(w, `[{"page":1},[{"date":"2023","value":62.4}]]`)
			return
		}
		if s.failWTO {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		switch r.URL.Query().Get("i") {
		case IndicatorImports:
			fmt.Fprint(w, `{"Dataset":[{"Year":2023,"Value":1400000,"Unit":"million US dollars"}]}`)
		case IndicatorMFNTariff:
			fmt.Fprint(w, `{"Dataset":[{"Year":2023,"Value":5.1,"Unit":"percent"}]}`)
		default:
			fmt.Fprint(w, `{"Dataset":[{"Year":2023,"Value":1600000,"Unit":"million US dollars"}]}`)
		}
	}
}

func newTestService(t *testing.T, stub *tradeAPIStub) *Service {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	cfg := config.EnrichmentConfig{
		WTOAPIKey:          "test-key",
		WTOBaseURL:         srv.URL,
		WorldBankBaseURL:   srv.URL,
		TimeoutSeconds:     5,
		MaxParallel:        2,
		CacheTTLHours:      1,
		NegativeTTLMinutes: 1,
		BreakerCooldownMin: 1,
	}
	return NewService(cfg, nil)
}

func TestLookupMergesAllIndicators(t *testing.T) {
	stub := &tradeAPIStub{}
	s := newTestService(t, stub)

	stats, err := s.Lookup(context.Background(), "deu")
	require.NoError(t, err)

	assert.Equal(t, "DEU", stats.ISO3)
	require.NotNil(t, stats.ExportsUSDBn)
	assert.Equal(t, 1600.0, *stats.ExportsUSDBn)
	require.NotNil(t, stats.ImportsUSDBn)
	assert.Equal(t, 1400.0, *stats.ImportsUSDBn)
	require.NotNil(t, stats.MFNTariffAvg)
	assert.Equal(t, 5.1, *stats.MFNTariffAvg)
	require.NotNil(t, stats.TradeShareGDP)
	assert.Equal(t, 62.4, *stats.TradeShareGDP)
	assert.Equal(t, 2023, stats.ExportsYear)
	assert.Contains(t, stats.Sources.Exports, "i="+IndicatorExports)
	assert.Contains(t, stats.Sources.Imports, "i="+IndicatorImports)
	assert.Contains(t, stats.Sources.Tariff, "i="+IndicatorMFNTariff)
	assert.Contains(t, stats.Sources.Openness, "/country/deu/indicator/")
	assert.False(t, stats.Partial)
	assert.Equal(t, int32(4), atomic.LoadInt32(&stub.hits))

	// Second lookup is a cache hit, no new upstream traffic.
	again, err := s.Lookup(context.Background(), "DEU")
	require.NoError(t, err)
	assert.Equal(t, stats, again)
	assert.Equal(t, int32(4), atomic.LoadInt32(&stub.hits))
}

func TestLookupPartialResult(t *testing.T) {
	stub := &tradeAPIStub{failWB: true}
	s := newTestService(t, stub)

	stats, err := s.Lookup(context.Background(), "FRA")
	require.NoError(t, err)

	assert.True(t, stats.Partial)
	assert.NotNil(t, stats.ExportsUSDBn)
	assert.Nil(t, stats.TradeShareGDP)
}

func TestLookupAllFailedIsCachedNegative(t *testing.T) {
	stub := &tradeAPIStub{failAll: true}
	s := newTestService(t, stub)

	_, err := s.Lookup(context.Background(), "JPN")
	assert.ErrorIs(t, err, ErrUnavailable)

	// WTO tries every partner-dimension shape before giving up, so the
	// exact count varies; what matters is the second lookup adds nothing.
	hits := atomic.LoadInt32(&stub.hits)
	_, err = s.Lookup(context.Background(), "JPN")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, hits, atomic.LoadInt32(&stub.hits))
}

func TestLookupRejectsBadCodes(t *testing.T) {
	s := newTestService(t, &tradeAPIStub{})
	for _, code := range []string{"", "DE", "GERMANY", "D3U"} {
		_, err := s.Lookup(context.Background(), code)
		assert.ErrorIs(t, err, ErrBadCode, "code %q", code)
	}
}

func TestLookupCircuitOpen(t *testing.T) {
	stub := &tradeAPIStub{}
	s := newTestService(t, stub)
	s.breaker = NewBreaker(1, time.Hour)
	s.breaker.Failure()

	_, err := s.Lookup(context.Background(), "DEU")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.hits))
}

func TestLookupCoalescesConcurrentRequests(t *testing.T) {
	stub := &tradeAPIStub{delay: 50 * time.Millisecond}
	s := newTestService(t, stub)

	var wg sync.WaitGroup
	results := make([]*TradeStats, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stats, err := s.Lookup(context.Background(), "DEU")
			assert.NoError(t, err)
			results[i] = stats
		}(i)
	}
	wg.Wait()

	// One fetch for all callers: four indicator requests total.
	assert.Equal(t, int32(4), atomic.LoadInt32(&stub.hits))
	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}
