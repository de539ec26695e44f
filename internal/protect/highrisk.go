package protect

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/models"
)

// LiquidateFCFThreshold: free cash flow below -$1B escalates a financial
// health block from NEUTRAL to LIQUIDATE.
const LiquidateFCFThreshold = -1_000_000_000

// HighRiskOptimizer protects capital on volatile, financially weak or
// earnings-exposed instruments.
type HighRiskOptimizer struct {
	VolumeThreshold     float64
	DebtToEquityMax     float64
	EarningsWarningDays int

	logger zerolog.Logger
}

// NewHighRiskOptimizer returns an optimizer with the standard thresholds.
func NewHighRiskOptimizer() HighRiskOptimizer {
	return HighRiskOptimizer{
		VolumeThreshold:     0.8,
		DebtToEquityMax:     200,
		EarningsWarningDays: 7,
		logger:              log.With().Str("component", "high_risk_optimizer").Logger(),
	}
}

// CheckVolumeDivergence warns when price rises on volume below 0.8x the
// average: a speculative move without buying support. Score-only penalty.
func (o HighRiskOptimizer) CheckVolumeDivergence(volumeRatio, priceChangePercent float64) *models.ProtectionAlert {
	if volumeRatio >= o.VolumeThreshold || priceChangePercent <= 0 {
		return nil
	}

	o.logger.Warn().
		Float64("volume_ratio", volumeRatio).
		Float64("price_change", priceChangePercent).
		Msg("volume divergence detected")

	return &models.ProtectionAlert{
		Type:     models.AlertVolumeDivergence,
		Severity: models.SeverityCritical,
		Message: fmt.Sprintf(
			"Volume divergence: speculative rise without buying support. Volume %.2fx (below %.1fx) while price is up %.1f%%.",
			volumeRatio, o.VolumeThreshold, priceChangePercent),
		Action:            "DO NOT BUY - wait for confirmation on strong volume",
		ConfidencePenalty: 30,
		VolumeRatio:       volumeRatio,
		PriceChange:       priceChangePercent,
	}
}

// CheckFinancialHealth blocks BUY/HOLD when free cash flow is negative and
// debt/equity exceeds 200%. FCF below -$1B forces LIQUIDATE instead of
// NEUTRAL. Missing fundamentals mean no opinion.
func (o HighRiskOptimizer) CheckFinancialHealth(fundamentals *models.Fundamentals) *models.ProtectionAlert {
	if fundamentals == nil || fundamentals.FreeCashFlow == nil || fundamentals.DebtToEquity == nil {
		return nil
	}

	fcf := *fundamentals.FreeCashFlow
	dte := *fundamentals.DebtToEquity

	if fcf >= 0 || dte <= o.DebtToEquityMax {
		return nil
	}

	forced := models.SignalNeutral
	if fcf < LiquidateFCFThreshold {
		forced = models.SignalLiquidate
	}

	o.logger.Error().
		Float64("free_cash_flow", fcf).
		Float64("debt_to_equity", dte).
		Str("forced_signal", forced).
		Msg("financial health block triggered")

	return &models.ProtectionAlert{
		Type:     models.AlertFinancialHealth,
		Severity: models.SeverityCritical,
		Message: fmt.Sprintf(
			"BLOCKED: disastrous financial health. Negative free cash flow (%.0f) and debt/equity above 200%% (%.0f%%). The company burns cash and is overleveraged.",
			fcf, dte),
		Action:        "BUY/HOLD blocked - forced NEUTRAL or LIQUIDATE",
		ForcedSignal:  forced,
		ForceOverride: true,
		FreeCashFlow:  fcf,
		DebtToEquity:  dte,
	}
}

// CheckEarningsProximity forces WAIT when an earnings report is at most
// EarningsWarningDays away. Overnight gaps of 5-15% are common there.
func (o HighRiskOptimizer) CheckEarningsProximity(daysUntilEarnings *int) *models.ProtectionAlert {
	if daysUntilEarnings == nil || *daysUntilEarnings > o.EarningsWarningDays {
		return nil
	}

	o.logger.Warn().Int("days_until", *daysUntilEarnings).Msg("earnings proximity: forcing WAIT")

	return &models.ProtectionAlert{
		Type:     models.AlertEarningsWarning,
		Severity: models.SeverityCritical,
		Message: fmt.Sprintf(
			"Earnings report in %d days. Extreme volatility risk: overnight gaps of 5-15%% are possible.",
			*daysUntilEarnings),
		Action:           "Reduce exposure by 50% before earnings",
		ForcedSignal:     models.SignalWait,
		ForcedConfidence: 20,
		ForceOverride:    true,
		DaysUntil:        *daysUntilEarnings,
	}
}

// DynamicTakeProfit picks the take-profit reference: an intermediate EMA
// resistance when price trades below EMA50/EMA200, otherwise the Donchian
// upper band (historical resistance).
func (o HighRiskOptimizer) DynamicTakeProfit(currentPrice, ema50 float64, ema200 *float64, donchianUpper float64) models.TakeProfitPlan {
	belowEMA50 := currentPrice < ema50
	belowEMA200 := ema200 != nil && currentPrice < *ema200

	if belowEMA50 || belowEMA200 {
		referenceEMA := ema50
		emaName := "EMA 50"
		if !belowEMA50 {
			referenceEMA = *ema200
			emaName = "EMA 200"
		}
		takeProfit := referenceEMA * 0.98
		return models.TakeProfitPlan{
			TakeProfit:     takeProfit,
			Type:           "intermediate_resistance",
			ReferenceLevel: referenceEMA,
			Adjusted:       true,
			Reason: fmt.Sprintf("Price below %s (%.2f); TP adjusted to %.2f (2%% under %s).",
				emaName, referenceEMA, takeProfit, emaName),
		}
	}

	return models.TakeProfitPlan{
		TakeProfit:     donchianUpper,
		Type:           "historical_resistance",
		ReferenceLevel: donchianUpper,
		Adjusted:       false,
		Reason:         fmt.Sprintf("Price above EMA 50/200; TP at Donchian upper %.2f.", donchianUpper),
	}
}

// ATRStopLoss computes the 1.5x ATR stop and pushes it below the major
// support when the raw level would sit above it.
func (o HighRiskOptimizer) ATRStopLoss(currentPrice, atr, support float64) models.StopLossPlan {
	slATR := currentPrice - 1.5*atr

	if slATR > support {
		recommended := support * 0.98
		o.logger.Warn().
			Float64("sl_atr_based", slATR).
			Float64("support", support).
			Msg("stop loss above major support, widening")
		return models.StopLossPlan{
			StopLoss: recommended,
			Adjusted: true,
			Message: fmt.Sprintf(
				"Stop too tight: ATR stop (%.2f) sits above major support (%.2f). Recommended stop below support: %.2f",
				slATR, support, recommended),
		}
	}

	return models.StopLossPlan{
		StopLoss: slATR,
		Adjusted: false,
	}
}

// SmartExit recommends securing profit when an open position is up more
// than 80% while confidence has collapsed below 30.
func (o HighRiskOptimizer) SmartExit(entryPrice, currentPrice float64, confidence int) *models.ProtectionAlert {
	if entryPrice <= 0 {
		return nil
	}

	profitPercent := (currentPrice - entryPrice) / entryPrice * 100
	if profitPercent <= 80 || confidence >= 30 {
		return nil
	}

	o.logger.Info().
		Float64("profit_percent", profitPercent).
		Int("confidence", confidence).
		Msg("smart exit triggered")

	return &models.ProtectionAlert{
		Type:     models.AlertSmartExit,
		Severity: models.SeverityHigh,
		Message: fmt.Sprintf(
			"Smart exit: unrealized profit of %.1f%% with low confidence (%d%%). Secure the profit before it evaporates.",
			profitPercent, confidence),
		Action:       "SELL 70% of the position at the current price",
		ForcedSignal: models.SignalSell,
		PriceChange:  profitPercent,
	}
}
