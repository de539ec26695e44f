// Package market collects market-wide context: the VIX volatility regime
// and the broad index trend.
package market

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/provider"
	"github.com/Alias1177/Advisor/models"
)

// CacheTTL bounds how stale a cached market context may be.
const CacheTTL = 5 * time.Minute

// Collector fetches and caches the market context. Safe for concurrent
// use; a failed fetch degrades to a neutral context instead of failing
// the analysis.
type Collector struct {
	client      *provider.Client
	vixSymbol   string
	indexSymbol string
	logger      zerolog.Logger

	mu       sync.Mutex
	cached   *models.MarketContext
	cachedAt time.Time
}

// NewCollector creates a market context collector over the given provider.
func NewCollector(client *provider.Client, vixSymbol, indexSymbol string) *Collector {
	return &Collector{
		client:      client,
		vixSymbol:   vixSymbol,
		indexSymbol: indexSymbol,
		logger:      log.With().Str("component", "market_context").Logger(),
	}
}

// Context returns the current market context, from cache when fresh.
func (c *Collector) Context(ctx context.Context) *models.MarketContext {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.cachedAt) < CacheTTL {
		cached := c.cached
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	mc := &models.MarketContext{
		VIX:   c.fetchVIX(ctx),
		Index: c.fetchIndex(ctx),
	}

	c.mu.Lock()
	c.cached = mc
	c.cachedAt = time.Now()
	c.mu.Unlock()

	return mc
}

func (c *Collector) fetchVIX(ctx context.Context) models.VIXReading {
	quote, err := c.client.GetQuote(ctx, c.vixSymbol)
	if err != nil {
		c.logger.Warn().Err(err).Msg("VIX fetch failed, degrading to unknown")
		return models.VIXReading{Level: models.VIXUnknown}
	}

	value := quote.Price
	return models.VIXReading{
		Value:          &value,
		Level:          vixLevel(value),
		HighVolatility: value >= 20,
	}
}

func (c *Collector) fetchIndex(ctx context.Context) models.IndexTrend {
	quote, err := c.client.GetQuote(ctx, c.indexSymbol)
	if err != nil {
		c.logger.Warn().Err(err).Msg("index fetch failed, degrading to unknown")
		return models.IndexTrend{Trend: models.VIXUnknown}
	}

	trend := "UP"
	if quote.PercentChange < 0 {
		trend = "DOWN"
	}
	return models.IndexTrend{
		Trend:         trend,
		ChangePercent: quote.PercentChange,
	}
}

// vixLevel buckets the VIX value into a volatility regime.
func vixLevel(value float64) string {
	switch {
	case value < 15:
		return models.VIXLow
	case value < 20:
		return models.VIXNormal
	case value < 30:
		return models.VIXHigh
	default:
		return models.VIXExtreme
	}
}
