package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/Alias1177/Advisor/models"
)

func snapshot(price, atr, support, resistance float64) *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{
		Price: models.PriceLevels{Current: price},
		ATR:   models.ATRReading{Value: atr},
		Pivots: models.PivotLevels{
			Support:    support,
			Resistance: resistance,
		},
	}
}

func TestCalculateRiskReward(t *testing.T) {
	profile, err := CalculateRiskReward(nil, snapshot(100, 2, 95, 110))
	if err != nil {
		t.Fatalf("CalculateRiskReward() error = %v", err)
	}

	if profile.StopLoss != 97 {
		t.Errorf("StopLoss = %v, want 97 (ATR-based)", profile.StopLoss)
	}
	if profile.TakeProfit != 109.78 {
		t.Errorf("TakeProfit = %v, want 109.78 (just under resistance)", profile.TakeProfit)
	}
	if profile.StopLossPercent != 3 {
		t.Errorf("StopLossPercent = %v, want 3", profile.StopLossPercent)
	}
	if profile.RiskReward != 3.26 {
		t.Errorf("RiskReward = %v, want 3.26", profile.RiskReward)
	}
	if profile.PositionSizePercent != 33.33 {
		t.Errorf("PositionSizePercent = %v, want 33.33", profile.PositionSizePercent)
	}
	if !profile.Favorable {
		t.Error("expected a favorable profile at R/R > 1.5")
	}
	if profile.Assessment != "LOW - favorable setup" {
		t.Errorf("Assessment = %q", profile.Assessment)
	}
	if profile.StopLoss >= profile.EntryPrice {
		t.Error("stop loss not below entry")
	}
	if profile.TakeProfit <= profile.EntryPrice {
		t.Error("take profit not above entry")
	}
}

func TestCalculateRiskRewardClampsWideStop(t *testing.T) {
	profile, err := CalculateRiskReward(nil, snapshot(100, 10, 50, 110))
	if err != nil {
		t.Fatalf("CalculateRiskReward() error = %v", err)
	}

	if profile.StopLoss != 90 {
		t.Errorf("StopLoss = %v, want clamp to 90", profile.StopLoss)
	}
	if profile.StopLossPercent != 10 {
		t.Errorf("StopLossPercent = %v, want exactly 10", profile.StopLossPercent)
	}
	if profile.Favorable {
		t.Error("sub-1.5 R/R should not be favorable")
	}
	if profile.Assessment != "HIGH - unfavorable R/R ratio, WAIT recommended" {
		t.Errorf("Assessment = %q", profile.Assessment)
	}
}

func TestCalculateRiskRewardCapsDisplayRatio(t *testing.T) {
	profile, err := CalculateRiskReward(nil, snapshot(100, 0.1, 99.8, 150))
	if err != nil {
		t.Fatalf("CalculateRiskReward() error = %v", err)
	}

	if !profile.RRCapped {
		t.Fatal("expected the display ratio to be capped")
	}
	if profile.RiskReward != 10 {
		t.Errorf("RiskReward = %v, want display cap 10", profile.RiskReward)
	}
	if profile.ActualRiskReward <= 10 {
		t.Errorf("ActualRiskReward = %v, want the uncapped value", profile.ActualRiskReward)
	}
	if profile.RRWarning == "" {
		t.Error("expected a cap warning")
	}
	if profile.PositionSizePercent != 100 {
		t.Errorf("PositionSizePercent = %v, want cap at 100", profile.PositionSizePercent)
	}
}

func TestCalculateRiskRewardRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		snap *models.IndicatorSnapshot
	}{
		{"NaN ATR", snapshot(100, math.NaN(), 95, 110)},
		{"infinite resistance", snapshot(100, 2, 95, math.Inf(1))},
		{"zero price", snapshot(0, 2, 95, 110)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateRiskReward(nil, tt.snap)
			var calcErr *models.CalculationError
			if !errors.As(err, &calcErr) {
				t.Errorf("error = %v, want CalculationError", err)
			}
		})
	}
}

func TestCalculatePositionSizing(t *testing.T) {
	profile := &models.RiskProfile{
		EntryPrice:      100,
		StopLossPercent: 5,
	}

	plan := CalculatePositionSizing(profile, 10000, 1.0)
	if plan.RiskAmount != 100 {
		t.Errorf("RiskAmount = %v, want 100", plan.RiskAmount)
	}
	// 100 risk budget / (100 * 5%) = 20 shares
	if plan.Shares != 20 {
		t.Errorf("Shares = %v, want 20", plan.Shares)
	}
	if plan.TotalCost != 2000 {
		t.Errorf("TotalCost = %v, want 2000", plan.TotalCost)
	}
}
