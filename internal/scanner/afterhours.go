// Package scanner watches a symbol list for unusual after-hours moves.
package scanner

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/provider"
	"github.com/Alias1177/Advisor/models"
)

// Options filter which movers are worth reporting.
type Options struct {
	MinChangePercent float64 // absolute daily change, percent
	MinVolume        float64 // shares traded in the session
	MinVolumeRatio   float64 // session volume vs average
}

// DefaultOptions are the standard reporting thresholds.
func DefaultOptions() Options {
	return Options{
		MinChangePercent: 3.0,
		MinVolume:        50000,
		MinVolumeRatio:   0.20,
	}
}

// Scanner runs periodic after-hours sweeps over a fixed symbol list.
type Scanner struct {
	client  *provider.Client
	symbols []string
	opts    Options
	cron    *cron.Cron
	logger  zerolog.Logger
}

// New creates a scanner over the given symbols.
func New(client *provider.Client, symbols []string, opts Options) *Scanner {
	return &Scanner{
		client:  client,
		symbols: symbols,
		opts:    opts,
		cron:    cron.New(cron.WithSeconds()),
		logger:  log.With().Str("component", "afterhours_scanner").Logger(),
	}
}

// Schedule registers the sweep on a cron spec and hands each non-empty
// result to the callback.
func (s *Scanner) Schedule(ctx context.Context, spec string, onMovers func([]models.AfterHoursMover)) error {
	_, err := s.cron.AddFunc(spec, func() {
		movers, err := s.Scan(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("after-hours sweep failed")
			return
		}
		if len(movers) > 0 {
			onMovers(movers)
		}
	})
	if err != nil {
		return fmt.Errorf("register after-hours sweep: %w", err)
	}
	return nil
}

// Start starts the cron schedule.
func (s *Scanner) Start() {
	s.cron.Start()
	s.logger.Info().Int("symbols", len(s.symbols)).Msg("after-hours scanner started")
}

// Stop stops the schedule gracefully.
func (s *Scanner) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("after-hours scanner stopped")
}

// Scan sweeps the symbol list once and returns the movers that clear the
// thresholds, biggest absolute change first. Per-symbol failures are
// logged and skipped.
func (s *Scanner) Scan(ctx context.Context) ([]models.AfterHoursMover, error) {
	if len(s.symbols) == 0 {
		return nil, nil
	}

	var movers []models.AfterHoursMover
	for _, symbol := range s.symbols {
		quote, err := s.client.GetQuote(ctx, symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("quote fetch failed, skipping")
			continue
		}

		mover, ok := s.evaluate(quote)
		if ok {
			movers = append(movers, mover)
		}
	}

	sort.Slice(movers, func(i, j int) bool {
		return math.Abs(movers[i].ChangePercent) > math.Abs(movers[j].ChangePercent)
	})

	s.logger.Info().Int("movers", len(movers)).Msg("after-hours sweep complete")
	return movers, nil
}

func (s *Scanner) evaluate(quote *provider.Quote) (models.AfterHoursMover, bool) {
	if math.Abs(quote.PercentChange) < s.opts.MinChangePercent {
		return models.AfterHoursMover{}, false
	}
	if quote.Volume < s.opts.MinVolume {
		return models.AfterHoursMover{}, false
	}

	volumeRatio := 1.0
	if quote.AverageVolume > 0 {
		volumeRatio = quote.Volume / quote.AverageVolume
	}
	if volumeRatio < s.opts.MinVolumeRatio {
		return models.AfterHoursMover{}, false
	}

	return models.AfterHoursMover{
		Symbol:        quote.Symbol,
		Price:         quote.Price,
		PreviousClose: quote.PreviousClose,
		ChangePercent: quote.PercentChange,
		Volume:        quote.Volume,
		VolumeRatio:   volumeRatio,
		Session:       sessionLabel(time.Now()),
	}, true
}

// sessionLabel tags the sweep as pre- or post-market by wall clock
// (US/Eastern is assumed to be the host timezone for deployments).
func sessionLabel(now time.Time) string {
	if now.Hour() < 12 {
		return "pre-market"
	}
	return "post-market"
}
