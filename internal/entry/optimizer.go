// Package entry searches for a better theoretical entry level when the
// risk/reward at the current price is unfavorable.
package entry

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/models"
)

// DefaultTargetRR is the risk/reward ratio the optimizer aims for.
const DefaultTargetRR = 2.0

// Optimizer looks for pullback levels (EMAs, pivot support) where a limit
// order would produce a risk/reward at or above the target.
type Optimizer struct {
	TargetRR float64

	logger zerolog.Logger
}

// NewOptimizer returns an optimizer targeting DefaultTargetRR.
func NewOptimizer() Optimizer {
	return Optimizer{
		TargetRR: DefaultTargetRR,
		logger:   log.With().Str("component", "entry_optimizer").Logger(),
	}
}

type candidate struct {
	level           string
	price           float64
	distancePercent float64
}

// OptimizeEntry searches EMA20, EMA50 and pivot support for a pullback
// entry whose R/R reaches the target. It is a no-op when the current R/R
// is already favorable, and degrades to the closest candidate with a
// warning when none qualifies.
func (o Optimizer) OptimizeEntry(currentPrice, ema20, ema50, support, resistance, atr, currentRR float64) models.EntryOptimization {
	if currentRR >= o.TargetRR {
		return models.EntryOptimization{
			Optimized:       false,
			CurrentRR:       round2(currentRR),
			Message:         fmt.Sprintf("Current R/R (%.2f) is already favorable. No optimization needed.", currentRR),
			IdealEntry:      currentPrice,
			IdealStopLoss:   currentPrice - atr*1.5,
			IdealTakeProfit: resistance,
			IdealRR:         currentRR,
		}
	}

	var candidates []candidate
	if ema20 < currentPrice*0.98 {
		candidates = append(candidates, candidate{"EMA 20", ema20, (currentPrice - ema20) / currentPrice * 100})
	}
	if ema50 < currentPrice*0.95 {
		candidates = append(candidates, candidate{"EMA 50", ema50, (currentPrice - ema50) / currentPrice * 100})
	}
	if support < currentPrice*0.97 {
		candidates = append(candidates, candidate{"Support Pivot", support, (currentPrice - support) / currentPrice * 100})
	}

	if len(candidates) == 0 {
		return models.EntryOptimization{
			Optimized:       false,
			CurrentRR:       round2(currentRR),
			Message:         "Price is already at support levels. Wait for confirmation before entering.",
			Warning:         "Risk of continued decline. Wait for 24-48h stabilization.",
			IdealEntry:      currentPrice,
			IdealStopLoss:   support - atr*0.5,
			IdealTakeProfit: resistance,
			IdealRR:         currentRR,
		}
	}

	// Closest pullback first: the most realistic fill.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distancePercent < candidates[j].distancePercent
	})

	for _, c := range candidates {
		stopLoss, rr := o.planAt(c.price, resistance, atr)
		if rr < o.TargetRR {
			continue
		}

		o.logger.Info().
			Str("level", c.level).
			Float64("entry", c.price).
			Float64("rr", rr).
			Msg("entry optimized to pullback level")

		return models.EntryOptimization{
			Optimized:       true,
			CurrentRR:       round2(currentRR),
			IdealEntry:      round2(c.price),
			IdealStopLoss:   round2(stopLoss),
			IdealTakeProfit: round2(resistance),
			IdealRR:         round2(rr),
			EntryLevel:      c.level,
			PullbackPercent: round1(c.distancePercent),
			Message: fmt.Sprintf("Optimal entry at %s ($%.2f) - pullback %.1f%%",
				c.level, c.price, c.distancePercent),
			Success: true,
			Action: fmt.Sprintf("Set a limit order at $%.2f. R/R becomes %.2f:1",
				c.price, rr),
		}
	}

	// Nothing reaches the target; fall back to the closest candidate.
	closest := candidates[0]
	stopLoss, rr := o.planAt(closest.price, resistance, atr)

	return models.EntryOptimization{
		Optimized:       true,
		CurrentRR:       round2(currentRR),
		IdealEntry:      round2(closest.price),
		IdealStopLoss:   round2(stopLoss),
		IdealTakeProfit: round2(resistance),
		IdealRR:         round2(rr),
		EntryLevel:      closest.level,
		PullbackPercent: round1(closest.distancePercent),
		Message: fmt.Sprintf("Optimized entry at %s ($%.2f) - pullback %.1f%%",
			closest.level, closest.price, closest.distancePercent),
		Warning: fmt.Sprintf("R/R improved to %.2f but still below the %.1f target. Resistance is too close.",
			rr, o.TargetRR),
		Action: fmt.Sprintf("Set a limit order at $%.2f and wait for the pullback.", closest.price),
	}
}

// planAt computes the 1.5x ATR stop (3% fallback near zero) and the
// resulting R/R for an entry at the given level.
func (o Optimizer) planAt(entryPrice, resistance, atr float64) (stopLoss, rr float64) {
	stopLoss = entryPrice - atr*1.5
	if stopLoss <= 0.01 {
		stopLoss = entryPrice * 0.97
	}

	risk := entryPrice - stopLoss
	if risk > 0 {
		rr = (resistance - entryPrice) / risk
	}
	return stopLoss, rr
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
