// Package protect implements the protection rule modules. Each check is a
// pure predicate over its arguments and returns nil when it has no
// opinion; modules never fail and never mutate shared state.
package protect

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/models"
)

// OverboughtProtector guards against entries in extreme overbought zones.
// The zero value is not usable; construct with NewOverboughtProtector.
type OverboughtProtector struct {
	RSIThreshold      float64
	StochRSIThreshold float64
	VolumeRatioMin    float64
	MinRiskReward     float64
	EarningsDays      int

	logger zerolog.Logger
}

// NewOverboughtProtector returns a protector with the standard thresholds.
func NewOverboughtProtector() OverboughtProtector {
	return OverboughtProtector{
		RSIThreshold:      70,
		StochRSIThreshold: 90,
		VolumeRatioMin:    0.5,
		MinRiskReward:     1.0,
		EarningsDays:      5,
		logger:            log.With().Str("component", "overbought_protector").Logger(),
	}
}

// CheckSellTrigger fires when RSI > 70, Stoch RSI K > 90 and volume ratio
// < 0.5x line up: overbought with no fresh buyers. The returned alert
// forces SELL at confidence 85.
func (p OverboughtProtector) CheckSellTrigger(rsi, stochRSIK, volumeRatio float64) *models.ProtectionAlert {
	if rsi <= p.RSIThreshold || stochRSIK <= p.StochRSIThreshold || volumeRatio >= p.VolumeRatioMin {
		return nil
	}

	p.logger.Warn().
		Float64("rsi", rsi).
		Float64("stoch_rsi_k", stochRSIK).
		Float64("volume_ratio", volumeRatio).
		Msg("SELL trigger activated: extreme overbought")

	return &models.ProtectionAlert{
		Type:     models.AlertSellTrigger,
		Severity: models.SeverityCritical,
		Message: fmt.Sprintf(
			"SELL trigger: extreme overbought zone. RSI=%.1f (>%.0f), Stoch RSI=%.1f%% (>%.0f%%), volume=%.2fx (<%.1fx). Overbought with no new buyers.",
			rsi, p.RSIThreshold, stochRSIK, p.StochRSIThreshold, volumeRatio, p.VolumeRatioMin),
		Action:           "SELL - take profit now",
		ForcedSignal:     models.SignalSell,
		ForcedConfidence: 85,
		ForceOverride:    true,
		RSI:              rsi,
		StochRSIK:        stochRSIK,
		VolumeRatio:      volumeRatio,
	}
}

// CheckEntryBlock flags new entries when the risk/reward ratio is below
// 1.0. It does not force a signal on its own.
func (p OverboughtProtector) CheckEntryBlock(riskReward float64) *models.ProtectionAlert {
	if riskReward >= p.MinRiskReward {
		return nil
	}

	p.logger.Warn().Float64("rr_ratio", riskReward).Msg("entry blocked: sub-unit R/R")

	return &models.ProtectionAlert{
		Type:     models.AlertEntryBlock,
		Severity: models.SeverityHigh,
		Message: fmt.Sprintf(
			"BLOCKED: sub-unit R/R ratio (%.2f). Risk exceeds the potential reward; unfavorable setup.",
			riskReward),
		Action:     "DO NOT BUY - wait for a better setup",
		RiskReward: riskReward,
	}
}

// TrailingStop computes the 2x ATR trailing stop for an open position.
func (p OverboughtProtector) TrailingStop(currentPrice, atr float64) models.TrailingStopPlan {
	stop := currentPrice - 2*atr

	distance := 0.0
	if currentPrice > 0 {
		distance = (currentPrice - stop) / currentPrice * 100
	}

	return models.TrailingStopPlan{
		Stop:            stop,
		DistancePercent: distance,
		Message: fmt.Sprintf("Trailing stop: %.2f (distance %.1f%%, based on 2x ATR = %.2f)",
			stop, distance, 2*atr),
	}
}

// EarningsAutoProtect moves the stop to breakeven when earnings are less
// than EarningsDays away and the position is in profit.
func (p OverboughtProtector) EarningsAutoProtect(daysUntilEarnings *int, entryPrice, currentPrice float64) *models.ProtectionAlert {
	if daysUntilEarnings == nil || *daysUntilEarnings > p.EarningsDays {
		return nil
	}
	if currentPrice <= entryPrice || entryPrice <= 0 {
		return nil
	}

	profit := (currentPrice - entryPrice) / entryPrice * 100
	p.logger.Info().
		Int("days_until", *daysUntilEarnings).
		Float64("breakeven_sl", entryPrice).
		Msg("earnings auto-protect: stop moved to breakeven")

	return &models.ProtectionAlert{
		Type:     models.AlertEarningsProtect,
		Severity: models.SeverityHigh,
		Message: fmt.Sprintf(
			"Earnings in %d days with position at +%.1f%%. Stop moved to breakeven (%.2f) against a negative gap.",
			*daysUntilEarnings, profit, entryPrice),
		Action:    "Take 50% off the position and let the rest run",
		DaysUntil: *daysUntilEarnings,
	}
}

// AssessFinalRisk upgrades the qualitative risk level when overbought
// conditions combine with earnings proximity or weak volume.
func (p OverboughtProtector) AssessFinalRisk(rsi, stochRSIK, volumeRatio float64, daysUntilEarnings *int) models.RiskLevel {
	overbought := rsi > p.RSIThreshold && stochRSIK > p.StochRSIThreshold
	earningsRisk := daysUntilEarnings != nil && *daysUntilEarnings <= 7
	volumeWeak := volumeRatio < p.VolumeRatioMin

	if overbought && (earningsRisk || volumeWeak) {
		factors := "Extreme overbought"
		if earningsRisk {
			factors += ", Earnings risk"
		}
		if volumeWeak {
			factors += ", Weak volume"
		}
		return models.RiskLevel{
			Level:    "EXTREME",
			Factors:  factors,
			Message:  fmt.Sprintf("EXTREME risk (%s)", factors),
			Severity: "extreme",
		}
	}

	if overbought || earningsRisk {
		factor := "Earnings"
		if overbought {
			factor = "Overbought"
		}
		return models.RiskLevel{
			Level:    "HIGH",
			Factors:  factor,
			Message:  fmt.Sprintf("HIGH risk (%s)", factor),
			Severity: models.SeverityHigh,
		}
	}

	return models.RiskLevel{
		Level:    "MODERATE",
		Factors:  "Normal",
		Message:  "MODERATE risk (normal conditions)",
		Severity: "moderate",
	}
}
