package enrichment

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/nacora/cargo-analytics/internal/config"
	"github.com/nacora/cargo-analytics/internal/pkg/httpretry"
	"github.com/nacora/cargo-analytics/internal/pkg/logger"
)

func newRetryClient(cfg config.EnrichmentConfig) httpretry.HTTPDoer {
	return httpretry.NewRetryClient(&http.Client{Timeout: cfg.Timeout()}, 3)
}

// Service coordinates trade-statistics lookups: cache first, then the
// upstream APIs behind a concurrency gate, a circuit breaker, and
// per-code request coalescing.
type Service struct {
	wto     *WTOClient
	wb      *WorldBankClient
	cache   Cache
	breaker *Breaker
	gate    chan struct{}

	posTTL time.Duration
	negTTL time.Duration

	mu       sync.Mutex
	inflight map[string]*call

	now func() time.Time
}

type call struct {
	done  chan struct{}
	stats *TradeStats
	err   error
}

// NewService wires a Service from configuration. cache may be nil, in
// which case an in-process cache is used.
func NewService(cfg config.EnrichmentConfig, cache Cache) *Service {
	retry := newRetryClient(cfg)
	if cache == nil {
		cache = NewMemoryCache()
	}
	parallel := cfg.MaxParallel
	if parallel <= 0 {
		parallel = 2
	}
	return &Service{
		wto:      NewWTOClient(cfg.WTOBaseURL, retry, cfg.WTOAPIKey, cfg.WTOAPIKeySecondary),
		wb:       NewWorldBankClient(cfg.WorldBankBaseURL, retry),
		cache:    cache,
		breaker:  NewBreaker(3, cfg.BreakerCooldown()),
		gate:     make(chan struct{}, parallel),
		posTTL:   cfg.CacheTTL(),
		negTTL:   cfg.NegativeTTL(),
		inflight: make(map[string]*call),
		now:      time.Now,
	}
}

// Lookup returns the trade profile for a 3-letter economy code. Results
// are cached; concurrent lookups for the same code share one upstream
// fetch. A result missing some indicators is returned with Partial set
// rather than failing the whole lookup.
func (s *Service) Lookup(ctx context.Context, iso3 string) (*TradeStats, error) {
	code, ok := normalizeCode(iso3)
	if !ok {
		return nil, ErrBadCode
	}

	if entry, err := s.cache.Get(ctx, code); err != nil {
		logger.Warn("enrichment: cache read failed", "code", code, "error", err.Error())
	} else if entry != nil {
		if entry.Negative {
			return nil, ErrUnavailable
		}
		return entry.Stats, nil
	}

	s.mu.Lock()
	if c, ok := s.inflight[code]; ok {
		s.mu.Unlock()
		select {
		case <-c.done:
			return c.stats, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c := &call{done: make(chan struct{})}
	s.inflight[code] = c
	s.mu.Unlock()

	c.stats, c.err = s.fetch(ctx, code)
	close(c.done)

	s.mu.Lock()
	delete(s.inflight, code)
	s.mu.Unlock()

	return c.stats, c.err
}

func (s *Service) fetch(ctx context.Context, code string) (*TradeStats, error) {
	if !s.breaker.Allow() {
		return nil, ErrCircuitOpen
	}

	select {
	case s.gate <- struct{}{}:
		defer func() { <-s.gate }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	stats := &TradeStats{ISO3: code, FetchedAt: s.now().UTC()}
	var failed int

	if obs, err := s.wto.Indicator(ctx, IndicatorExports, code); err != nil {
		logger.Warn("enrichment: exports fetch failed", "code", code, "error", err.Error())
		failed++
	} else {
		v := obs.ToUSDBn()
		stats.ExportsUSDBn = &v
		stats.ExportsYear = obs.Year
		stats.Sources.Exports = obs.Source
	}

	if obs, err := s.wto.Indicator(ctx, IndicatorImports, code); err != nil {
		logger.Warn("enrichment: imports fetch failed", "code", code, "error", err.Error())
		failed++
	} else {
		v := obs.ToUSDBn()
		stats.ImportsUSDBn = &v
		stats.ImportsYear = obs.Year
		stats.Sources.Imports = obs.Source
	}

	if obs, err := s.wto.Indicator(ctx, IndicatorMFNTariff, code); err != nil {
		logger.Warn("enrichment: tariff fetch failed", "code", code, "error", err.Error())
		failed++
	} else {
		v := obs.Value
		stats.MFNTariffAvg = &v
		stats.MFNTariffYear = obs.Year
		stats.Sources.Tariff = obs.Source
	}

	if obs, err := s.wb.TradeShareGDP(ctx, code); err != nil {
		logger.Warn("enrichment: trade share fetch failed", "code", code, "error", err.Error())
		failed++
	} else {
		v := obs.Value
		stats.TradeShareGDP = &v
		stats.TradeShareGDPYear = obs.Year
		stats.Sources.Openness = obs.Source
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if failed == 4 {
		s.breaker.Failure()
		if err := s.cache.Set(ctx, code, CacheEntry{Negative: true}, s.negTTL); err != nil {
			logger.Warn("enrichment: cache write failed", "code", code, "error", err.Error())
		}
		return nil, ErrUnavailable
	}

	s.breaker.Success()
	stats.Partial = failed > 0
	if err := s.cache.Set(ctx, code, CacheEntry{Stats: stats}, s.posTTL); err != nil {
		logger.Warn("enrichment: cache write failed", "code", code, "error", err.Error())
	}
	return stats, nil
}

func normalizeCode(iso3 string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(iso3))
	if len(code) != 3 {
		return "", false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return code, true
}
