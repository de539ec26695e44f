// Package risk derives stop-loss, take-profit and position sizing from an
// indicator snapshot.
package risk

import (
	"fmt"
	"math"

	"github.com/Alias1177/Advisor/internal/validate"
	"github.com/Alias1177/Advisor/models"
)

// AccountRiskPercent is the assumed per-trade account risk for position
// sizing.
const AccountRiskPercent = 1.0

// CalculateRiskReward builds the full risk profile for an entry at the
// current price. The snapshot must come from calculate.CalculateAllIndicators;
// a snapshot with non-finite levels yields a CalculationError.
func CalculateRiskReward(candles []models.Candle, indicators *models.IndicatorSnapshot) (*models.RiskProfile, error) {
	currentPrice := indicators.Price.Current
	atr := indicators.ATR.Value
	support := indicators.Pivots.Support
	resistance := indicators.Pivots.Resistance

	for _, v := range [...]float64{currentPrice, atr, support, resistance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, models.NewCalculationError("risk_reward",
				fmt.Errorf("non-finite input level (price=%v atr=%v support=%v resistance=%v)",
					currentPrice, atr, support, resistance))
		}
	}
	if currentPrice <= 0 {
		return nil, models.NewCalculationError("risk_reward",
			fmt.Errorf("non-positive current price %v", currentPrice))
	}

	// Stop loss: the higher of ATR-based and support-based levels.
	slATRBased := currentPrice - atr*1.5
	slSupportBased := support - atr*0.5
	stopLoss := validate.StopLoss(math.Max(slATRBased, slSupportBased), currentPrice, atr)

	slPercent := (currentPrice - stopLoss) / currentPrice * 100

	// Cap unrealistically wide stops at 10%.
	if slPercent > 10 {
		stopLoss = currentPrice * 0.90
		slPercent = 10.0
	}

	// Take profit: just below resistance, or ATR-extended when price is
	// already within 2% of it.
	var takeProfit float64
	if currentPrice >= resistance*0.98 {
		takeProfit = currentPrice + atr*3
	} else {
		takeProfit = resistance - resistance*0.002
	}
	takeProfit = validate.TakeProfit(takeProfit, currentPrice, atr)

	riskAmount := currentPrice - stopLoss
	if riskAmount <= 0 {
		riskAmount = atr * 1.5
	}
	reward := takeProfit - currentPrice

	rrRatio := 0.0
	if riskAmount > 0 {
		rrRatio = reward / riskAmount
	}

	capped := validate.CapRiskReward(rrRatio, validate.MaxDisplayRR)

	positionSize := 0.0
	if slPercent > 0 {
		positionSize = AccountRiskPercent / slPercent * 100
	}

	trailingStop := validate.Price(currentPrice - atr*2)

	profile := &models.RiskProfile{
		EntryPrice:          round2(currentPrice),
		StopLoss:            round2(stopLoss),
		TakeProfit:          round2(takeProfit),
		StopLossPercent:     round2(slPercent),
		RiskReward:          capped.Displayed,
		ActualRiskReward:    capped.Actual,
		RRCapped:            capped.Capped,
		PositionSizePercent: round2(math.Min(positionSize, 100)),
		TrailingStop:        round2(trailingStop),
		ATR:                 round2(atr),
		Favorable:           rrRatio >= 1.5,
		Assessment:          assessRisk(rrRatio, slPercent),
		Support:             round2(support),
		Resistance:          round2(resistance),
	}
	if capped.Capped {
		profile.RRWarning = capped.Warning
	}

	return profile, nil
}

// assessRisk maps (R/R, SL width) to a qualitative risk level.
func assessRisk(rrRatio, slPercent float64) string {
	switch {
	case rrRatio >= 2.5 && slPercent <= 5:
		return "LOW - favorable setup"
	case rrRatio >= 1.5 && slPercent <= 7:
		return "MODERATE - acceptable"
	case rrRatio < 1.5:
		return "HIGH - unfavorable R/R ratio, WAIT recommended"
	default:
		return "HIGH - stop loss too wide"
	}
}

// PositionPlan is a share-count position sizing for a concrete account size.
type PositionPlan struct {
	Shares     int     `json:"shares"`
	TotalCost  float64 `json:"total_cost"`
	RiskAmount float64 `json:"risk_amount"`
}

// CalculatePositionSizing converts the stop width into a share count for a
// given account size and per-trade risk percent.
func CalculatePositionSizing(profile *models.RiskProfile, accountSize, riskPercent float64) PositionPlan {
	riskAmount := accountSize * riskPercent / 100

	shares := 0.0
	if profile.EntryPrice > 0 && profile.StopLossPercent > 0 {
		shares = riskAmount / (profile.EntryPrice * profile.StopLossPercent / 100)
	}

	return PositionPlan{
		Shares:     int(shares),
		TotalCost:  round2(shares * profile.EntryPrice),
		RiskAmount: round2(riskAmount),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
