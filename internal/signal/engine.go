// Package signal turns an indicator snapshot, a risk profile and market
// context into a final trading decision. The engine is an ordered rule
// cascade: protection rules run first in priority order and may
// short-circuit with an override; whatever falls through is decided by
// weighted scoring.
package signal

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/protect"
	"github.com/Alias1177/Advisor/models"
)

// Input bundles everything one decision needs. Fundamentals, EarningsDays
// and MassiveDrop are optional.
type Input struct {
	Indicators         *models.IndicatorSnapshot
	Risk               *models.RiskProfile
	Context            *models.MarketContext
	Fundamentals       *models.Fundamentals
	PriceChangePercent float64
	EarningsDays       *int
	MassiveDrop        *models.DropAlert
}

// Engine evaluates the decision cascade. Stateless across calls; safe for
// concurrent use.
type Engine struct {
	overbought protect.OverboughtProtector
	highRisk   protect.HighRiskOptimizer
	logger     zerolog.Logger
}

// New creates a decision engine with the standard protection modules.
func New() *Engine {
	return &Engine{
		overbought: protect.NewOverboughtProtector(),
		highRisk:   protect.NewHighRiskOptimizer(),
		logger:     log.With().Str("component", "signal_engine").Logger(),
	}
}

// state carries the running score and collected annotations through the
// rule chain of a single decision.
type state struct {
	in             Input
	score          float64
	reasons        []string
	warnings       []string
	criticalBlocks []string
	alerts         []models.ProtectionAlert

	entryBlocked     bool
	volumeDivergence bool
}

type rule struct {
	name string
	fn   func(*state) *models.SignalDecision
}

// Decide runs the full cascade. It is a total function: it never fails for
// snapshots produced by the calculate package. Exactly one terminal branch
// produces the decision.
func (e *Engine) Decide(in Input) *models.SignalDecision {
	st := &state{in: in}

	rules := []rule{
		{"daily_drop_penalty", e.applyDailyDropPenalty},
		{"debt_equity_penalty", e.applyDebtEquityPenalties},
		{"massive_drop_blocker", e.checkMassiveDrop},
		{"overbought_sell_trigger", e.checkSellTrigger},
		{"entry_block", e.checkEntryBlock},
		{"volume_divergence", e.checkVolumeDivergence},
		{"financial_health_block", e.checkFinancialHealth},
		{"earnings_proximity", e.checkEarningsProximity},
		{"risk_reward_floor", e.checkRiskRewardFloor},
		{"volume_floor", e.checkVolumeFloor},
	}

	for _, r := range rules {
		if decision := r.fn(st); decision != nil {
			e.logger.Info().
				Str("rule", r.name).
				Str("signal", decision.Signal).
				Int("confidence", decision.Confidence).
				Msg("decision short-circuited by protection rule")
			return decision
		}
	}

	return e.scoreAndDecide(st)
}

// applyDailyDropPenalty penalizes the score for single-day declines worse
// than -8%, up to 60 points. Score-only, never short-circuits.
func (e *Engine) applyDailyDropPenalty(st *state) *models.SignalDecision {
	change := st.in.PriceChangePercent
	if change >= -8.0 {
		return nil
	}

	penalty := math.Min(math.Abs(change)*5, 60)
	st.score -= penalty
	st.criticalBlocks = append(st.criticalBlocks,
		fmt.Sprintf("Daily crash: %.1f%% - score reduced by %.0f points", change, penalty))
	st.warnings = append(st.warnings,
		fmt.Sprintf("Daily drop of %.1f%% - major risk of continuation", change))
	st.alerts = append(st.alerts, models.ProtectionAlert{
		Type:              models.AlertDailyDrop,
		Severity:          models.SeverityCritical,
		Message:           fmt.Sprintf("Daily drop of %.1f%%", change),
		ConfidencePenalty: int(penalty),
		PriceChange:       change,
	})
	return nil
}

// applyDebtEquityPenalties normalizes debt/equity (values above 100 are
// percentage-form) and penalizes overleveraged balance sheets. A legacy
// second check on the raw value above 300 still applies its own penalty;
// both paths are kept to match the reference behavior.
func (e *Engine) applyDebtEquityPenalties(st *state) *models.SignalDecision {
	f := st.in.Fundamentals
	if f == nil || f.DebtToEquity == nil {
		return nil
	}
	dte := *f.DebtToEquity

	dteRatio := dte
	if dte > 100 {
		dteRatio = dte / 100
	}

	if dteRatio > 10.0 {
		st.score -= 30
		st.criticalBlocks = append(st.criticalBlocks,
			fmt.Sprintf("Critical debt/equity: %.2f (%.1fx) - score reduced by 30 points", dte, dteRatio))
		st.warnings = append(st.warnings,
			fmt.Sprintf("Extreme financial risk: debt/equity of %.1fx - overleveraged company", dteRatio))
		st.alerts = append(st.alerts, models.ProtectionAlert{
			Type:              models.AlertDebtEquity,
			Severity:          models.SeverityCritical,
			Message:           fmt.Sprintf("Debt/equity of %.1fx", dteRatio),
			ConfidencePenalty: 30,
			DebtToEquity:      dte,
		})
	} else if dteRatio > 3.0 {
		st.score -= 20
		st.warnings = append(st.warnings,
			fmt.Sprintf("High debt/equity: %.1fx - elevated financial risk", dteRatio))
		st.alerts = append(st.alerts, models.ProtectionAlert{
			Type:              models.AlertDebtEquity,
			Severity:          models.SeverityHigh,
			Message:           fmt.Sprintf("Debt/equity of %.1fx", dteRatio),
			ConfidencePenalty: 20,
			DebtToEquity:      dte,
		})
	}

	e.applyLegacyDebtEquityPenalty(st, dte)
	return nil
}

// applyLegacyDebtEquityPenalty is the historical raw-value check kept for
// compatibility with the reference: raw debt/equity above 300 takes a
// further 30 points even though the normalized path already penalized it.
func (e *Engine) applyLegacyDebtEquityPenalty(st *state, dte float64) {
	if dte <= 300 {
		return
	}
	st.score -= 30
	st.criticalBlocks = append(st.criticalBlocks,
		fmt.Sprintf("Extremely high debt/equity: %.1f", dte))
	st.warnings = append(st.warnings,
		fmt.Sprintf("Critical financial risk: debt/equity %.1f - over-indebted company", dte))
}

// checkMassiveDrop is the highest-priority blocker: an upstream massive
// drop forces WAIT at confidence 10 regardless of everything else.
func (e *Engine) checkMassiveDrop(st *state) *models.SignalDecision {
	drop := st.in.MassiveDrop
	if drop == nil {
		return nil
	}

	return &models.SignalDecision{
		Signal:     models.SignalWait,
		Confidence: 10,
		Reasons:    []string{drop.Warning},
		Warnings:   []string{drop.Action},
		OverrideReason: fmt.Sprintf("MASSIVE DROP DETECTED: %.2f%% decline - automatic block",
			drop.DropPercent),
		MassiveDrop: drop,
	}
}

func (e *Engine) checkSellTrigger(st *state) *models.SignalDecision {
	ind := st.in.Indicators
	alert := e.overbought.CheckSellTrigger(ind.RSI.Value, ind.StochRSI.K, ind.Volume.Ratio)
	if alert == nil {
		return nil
	}

	return &models.SignalDecision{
		Signal:         alert.ForcedSignal,
		Confidence:     alert.ForcedConfidence,
		Reasons:        []string{alert.Message},
		Warnings:       []string{alert.Action},
		OverrideReason: "SELL trigger activated - extreme overbought",
		Alerts:         []models.ProtectionAlert{*alert},
	}
}

// checkEntryBlock records a sub-unit R/R flag. Not an override on its own;
// it lowers the bar for the later standard R/R check.
func (e *Engine) checkEntryBlock(st *state) *models.SignalDecision {
	alert := e.overbought.CheckEntryBlock(st.in.Risk.RiskReward)
	if alert == nil {
		return nil
	}

	st.entryBlocked = true
	st.criticalBlocks = append(st.criticalBlocks, alert.Message)
	st.alerts = append(st.alerts, *alert)
	return nil
}

func (e *Engine) checkVolumeDivergence(st *state) *models.SignalDecision {
	alert := e.highRisk.CheckVolumeDivergence(st.in.Indicators.Volume.Ratio, st.in.PriceChangePercent)
	if alert == nil {
		return nil
	}

	st.volumeDivergence = true
	st.warnings = append(st.warnings, alert.Message)
	st.score -= float64(alert.ConfidencePenalty)
	st.alerts = append(st.alerts, *alert)
	return nil
}

func (e *Engine) checkFinancialHealth(st *state) *models.SignalDecision {
	alert := e.highRisk.CheckFinancialHealth(st.in.Fundamentals)
	if alert == nil {
		return nil
	}

	return &models.SignalDecision{
		Signal:         alert.ForcedSignal,
		Confidence:     15,
		Reasons:        []string{alert.Message},
		Warnings:       []string{alert.Action},
		OverrideReason: "FINANCIAL HEALTH BLOCK - disastrous financial health",
		Alerts:         []models.ProtectionAlert{*alert},
	}
}

func (e *Engine) checkEarningsProximity(st *state) *models.SignalDecision {
	alert := e.highRisk.CheckEarningsProximity(st.in.EarningsDays)
	if alert == nil {
		return nil
	}

	return &models.SignalDecision{
		Signal:         alert.ForcedSignal,
		Confidence:     alert.ForcedConfidence,
		Reasons:        []string{alert.Message},
		Warnings:       []string{alert.Action},
		OverrideReason: "EARNINGS PROXIMITY - high volatility warning",
		Alerts:         []models.ProtectionAlert{*alert},
	}
}

// checkRiskRewardFloor forces NEUTRAL on a sub-unit R/R when the entry
// block has not already accounted for it.
func (e *Engine) checkRiskRewardFloor(st *state) *models.SignalDecision {
	rr := st.in.Risk.RiskReward
	if rr >= 1.0 || st.entryBlocked {
		return nil
	}

	st.criticalBlocks = append(st.criticalBlocks, fmt.Sprintf("Sub-unit R/R ratio (%.2f)", rr))
	return &models.SignalDecision{
		Signal:         models.SignalNeutral,
		Confidence:     20,
		Reasons:        []string{"Unfavorable technical setup"},
		Warnings:       st.criticalBlocks,
		OverrideReason: "R/R < 1.0 - forced NEUTRAL",
	}
}

// checkVolumeFloor forces NEUTRAL on critically low volume when the
// divergence rule has not already flagged it.
func (e *Engine) checkVolumeFloor(st *state) *models.SignalDecision {
	ratio := st.in.Indicators.Volume.Ratio
	if ratio >= 0.5 || st.volumeDivergence {
		return nil
	}

	st.criticalBlocks = append(st.criticalBlocks,
		fmt.Sprintf("Critically low volume (%.2fx) - below 0.5x average", ratio))
	return &models.SignalDecision{
		Signal:         models.SignalNeutral,
		Confidence:     20,
		Reasons:        []string{"No volume confirmation"},
		Warnings:       st.criticalBlocks,
		OverrideReason: "Volume < 0.5x - forced NEUTRAL",
	}
}

// scoreAndDecide is the terminal weighted-scoring pass.
func (e *Engine) scoreAndDecide(st *state) *models.SignalDecision {
	ind := st.in.Indicators

	if ind.ADX.Regime == models.RegimeRanging {
		st.warnings = append(st.warnings, "Sideways market (ADX < 20) - unreliable signals")
		st.score -= 15
	}

	if ind.Trend.Direction == models.TrendBullish {
		st.score += 20
		st.reasons = append(st.reasons, "Bullish trend above EMA 50")
	} else {
		st.score -= 20
		st.reasons = append(st.reasons, "Bearish trend below EMA 50")
	}

	switch ind.RSI.Zone {
	case models.ZoneOversold:
		st.score += 15
		st.reasons = append(st.reasons, "RSI oversold - possible rebound")
	case models.ZoneOverbought:
		st.score -= 15
		st.warnings = append(st.warnings, "RSI overbought - correction risk")
	}

	if ind.StochRSI.K > 85 {
		st.score -= 30
		st.warnings = append(st.warnings,
			fmt.Sprintf("Stoch RSI extremely overbought (%.1f%%) - do not buy", ind.StochRSI.K))
	} else if ind.StochRSI.Zone == models.ZoneOversold {
		st.score += 15
		st.reasons = append(st.reasons, "Stoch RSI oversold - opportunity")
	}

	if ind.MACD.Cross == "bullish" {
		st.score += 10
		st.reasons = append(st.reasons, "MACD bullish")
	} else {
		st.score -= 10
	}

	if st.in.Context != nil && st.in.Context.VIX.HighVolatility {
		st.warnings = append(st.warnings, "High market volatility (VIX)")
		st.score -= 15
	}

	currentPrice := ind.Price.Current
	if currentPrice > ind.Pivots.Resistance*0.98 {
		st.warnings = append(st.warnings,
			fmt.Sprintf("Price at resistance (%.2f)", ind.Pivots.Resistance))
	}
	if currentPrice < ind.Pivots.Support*1.02 {
		st.warnings = append(st.warnings,
			fmt.Sprintf("Price at support (%.2f)", ind.Pivots.Support))
	}

	confidence := int(math.Max(0, math.Min(100, 50+st.score)))

	var sig string
	switch {
	case confidence >= 70 && ind.ADX.Regime == models.RegimeTrending:
		sig = models.SignalBuy
	case confidence <= 30:
		sig = models.SignalSell
	case confidence >= 50:
		sig = models.SignalHold
	default:
		sig = models.SignalWait
	}

	return &models.SignalDecision{
		Signal:     sig,
		Confidence: confidence,
		Reasons:    st.reasons,
		Warnings:   st.warnings,
		Alerts:     st.alerts,
	}
}
