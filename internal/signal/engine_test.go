package signal

import (
	"strings"
	"testing"

	"github.com/Alias1177/Advisor/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// bullishInput is a healthy trending setup that reaches the scoring pass:
// trend +20, MACD +10, everything else neutral.
func bullishInput() Input {
	return Input{
		Indicators: &models.IndicatorSnapshot{
			Price:    models.PriceLevels{Current: 100, EMA20: 97, EMA50: 95},
			RSI:      models.RSIReading{Value: 55, Zone: models.ZoneNeutral},
			StochRSI: models.StochRSIReading{K: 50, D: 50, Zone: models.ZoneNeutral},
			ADX:      models.ADXReading{Value: 30, Regime: models.RegimeTrending},
			ATR:      models.ATRReading{Value: 2},
			MACD:     models.MACDReading{Cross: "bullish"},
			Volume:   models.VolumeReading{Ratio: 1.0},
			Pivots:   models.PivotLevels{Support: 90, Resistance: 120},
			Trend:    models.TrendReading{Direction: models.TrendBullish},
		},
		Risk: &models.RiskProfile{RiskReward: 2.0},
	}
}

func TestDecideScoringBuy(t *testing.T) {
	decision := New().Decide(bullishInput())

	if decision.Signal != models.SignalBuy {
		t.Errorf("Signal = %v, want BUY", decision.Signal)
	}
	if decision.Confidence != 80 {
		t.Errorf("Confidence = %v, want 80 (50 + trend 20 + MACD 10)", decision.Confidence)
	}
	if decision.OverrideReason != "" {
		t.Errorf("unexpected override: %v", decision.OverrideReason)
	}
}

func TestDecideScoringSellAndClamp(t *testing.T) {
	in := bullishInput()
	in.Indicators.Trend.Direction = models.TrendBearish
	in.Indicators.MACD.Cross = "bearish"
	in.Indicators.RSI = models.RSIReading{Value: 75, Zone: models.ZoneOverbought}
	in.Indicators.StochRSI.K = 90 // not a SELL trigger: volume is fine

	decision := New().Decide(in)

	// 50 - trend 20 - MACD 10 - RSI 15 - stoch 30 = -25, clamped to 0
	if decision.Confidence != 0 {
		t.Errorf("Confidence = %v, want clamp to 0", decision.Confidence)
	}
	if decision.Signal != models.SignalSell {
		t.Errorf("Signal = %v, want SELL at low confidence", decision.Signal)
	}
}

func TestDecideMassiveDropBeatsSellTrigger(t *testing.T) {
	in := bullishInput()
	// SELL trigger conditions are also met.
	in.Indicators.RSI.Value = 75
	in.Indicators.StochRSI.K = 95
	in.Indicators.Volume.Ratio = 0.3
	in.MassiveDrop = &models.DropAlert{
		DropPercent: -10,
		Warning:     "Massive drop detected: 10.0% in a single session",
		Action:      "WAIT 24-48h for stabilization before any entry",
	}

	decision := New().Decide(in)

	if decision.Signal != models.SignalWait {
		t.Errorf("Signal = %v, want WAIT (massive drop wins)", decision.Signal)
	}
	if decision.Confidence != 10 {
		t.Errorf("Confidence = %v, want 10", decision.Confidence)
	}
	if decision.MassiveDrop == nil {
		t.Error("expected the drop alert attached to the decision")
	}
}

func TestDecideSellTrigger(t *testing.T) {
	in := bullishInput()
	in.Indicators.RSI.Value = 75
	in.Indicators.StochRSI.K = 95
	in.Indicators.Volume.Ratio = 0.3

	decision := New().Decide(in)

	if decision.Signal != models.SignalSell || decision.Confidence != 85 {
		t.Errorf("decision = %v/%v, want SELL/85", decision.Signal, decision.Confidence)
	}
	if decision.OverrideReason == "" {
		t.Error("expected an override reason")
	}
	if len(decision.Alerts) != 1 || decision.Alerts[0].Type != models.AlertSellTrigger {
		t.Errorf("Alerts = %+v, want one SELL_TRIGGER", decision.Alerts)
	}
}

func TestDecideEntryBlockFlagsWithoutOverride(t *testing.T) {
	in := bullishInput()
	in.Risk.RiskReward = 0.8

	decision := New().Decide(in)

	if decision.OverrideReason != "" {
		t.Errorf("entry block must not override, got %v", decision.OverrideReason)
	}
	found := false
	for _, a := range decision.Alerts {
		if a.Type == models.AlertEntryBlock {
			found = true
		}
	}
	if !found {
		t.Errorf("Alerts = %+v, want an ENTRY_BLOCK alert", decision.Alerts)
	}
}

func TestDecideVolumeFloor(t *testing.T) {
	in := bullishInput()
	in.Indicators.Volume.Ratio = 0.4
	in.PriceChangePercent = -1 // not a divergence: price is falling

	decision := New().Decide(in)

	if decision.Signal != models.SignalNeutral || decision.Confidence != 20 {
		t.Errorf("decision = %v/%v, want NEUTRAL/20", decision.Signal, decision.Confidence)
	}
	if decision.OverrideReason == "" {
		t.Error("expected a volume override reason")
	}
}

func TestDecideVolumeDivergencePenalty(t *testing.T) {
	in := bullishInput()
	in.Indicators.Volume.Ratio = 0.6
	in.PriceChangePercent = 2.0

	decision := New().Decide(in)

	// 50 + 30 - 30 divergence penalty = 50 -> HOLD
	if decision.Confidence != 50 {
		t.Errorf("Confidence = %v, want 50", decision.Confidence)
	}
	if decision.Signal != models.SignalHold {
		t.Errorf("Signal = %v, want HOLD", decision.Signal)
	}
	found := false
	for _, a := range decision.Alerts {
		if a.Type == models.AlertVolumeDivergence {
			found = true
		}
	}
	if !found {
		t.Errorf("Alerts = %+v, want a VOLUME_DIVERGENCE alert", decision.Alerts)
	}
}

func TestDecideFinancialHealthBlock(t *testing.T) {
	in := bullishInput()
	in.Fundamentals = &models.Fundamentals{
		FreeCashFlow: floatPtr(-2e9),
		DebtToEquity: floatPtr(250),
	}

	decision := New().Decide(in)

	if decision.Signal != models.SignalLiquidate {
		t.Errorf("Signal = %v, want LIQUIDATE below the FCF threshold", decision.Signal)
	}
	if decision.Confidence != 15 {
		t.Errorf("Confidence = %v, want 15", decision.Confidence)
	}
}

func TestDecideEarningsProximity(t *testing.T) {
	in := bullishInput()
	in.EarningsDays = intPtr(5)

	decision := New().Decide(in)

	if decision.Signal != models.SignalWait || decision.Confidence != 20 {
		t.Errorf("decision = %v/%v, want WAIT/20", decision.Signal, decision.Confidence)
	}
}

func TestDecideDebtEquityNormalization(t *testing.T) {
	// Percentage form (1120) and ratio form (11.2) must both normalize to
	// an 11.2x ratio and take the critical penalty; the percentage form
	// additionally trips the legacy raw-value check.
	tests := []struct {
		name       string
		dte        float64
		confidence int
	}{
		{"ratio form", 11.2, 50},       // 80 - 30
		{"percentage form", 1120, 20},  // 80 - 30 - legacy 30
		{"moderate leverage", 5.0, 60}, // 80 - 20
		{"low leverage", 1.5, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := bullishInput()
			in.Fundamentals = &models.Fundamentals{DebtToEquity: floatPtr(tt.dte)}

			decision := New().Decide(in)
			if decision.Confidence != tt.confidence {
				t.Errorf("Confidence = %v, want %v", decision.Confidence, tt.confidence)
			}
		})
	}
}

func TestDecideDailyDropPenalty(t *testing.T) {
	in := bullishInput()
	in.PriceChangePercent = -10

	decision := New().Decide(in)

	// 80 - min(|−10|*5, 60) = 30
	if decision.Confidence != 30 {
		t.Errorf("Confidence = %v, want 30 after a -10%% day", decision.Confidence)
	}
	foundWarning := false
	for _, w := range decision.Warnings {
		if strings.Contains(w, "Daily drop") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("Warnings = %v, want a daily drop warning", decision.Warnings)
	}
}

func TestDecideHighVolatilityPenalty(t *testing.T) {
	in := bullishInput()
	vix := 32.0
	in.Context = &models.MarketContext{
		VIX: models.VIXReading{Value: &vix, Level: models.VIXExtreme, HighVolatility: true},
	}

	decision := New().Decide(in)

	if decision.Confidence != 65 {
		t.Errorf("Confidence = %v, want 65 (80 - VIX 15)", decision.Confidence)
	}
	if decision.Signal != models.SignalHold {
		t.Errorf("Signal = %v, want HOLD below the BUY bar", decision.Signal)
	}
}

func TestDecideResistanceProximityWarning(t *testing.T) {
	in := bullishInput()
	in.Indicators.Price.Current = 119
	in.Indicators.Pivots.Resistance = 120

	decision := New().Decide(in)

	found := false
	for _, w := range decision.Warnings {
		if strings.Contains(w, "resistance") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want a resistance proximity warning", decision.Warnings)
	}
	// Proximity warns but never changes the score.
	if decision.Confidence != 80 {
		t.Errorf("Confidence = %v, want 80", decision.Confidence)
	}
}
