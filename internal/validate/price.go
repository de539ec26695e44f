// Package validate sanitizes prices and risk levels and detects anomalous
// single-session price behavior. All functions are total: they never fail,
// they substitute safe values instead.
package validate

import (
	"fmt"
	"math"

	"github.com/Alias1177/Advisor/models"
)

const (
	// MinPrice is the floor applied to every sanitized price level.
	MinPrice = 0.01

	// MaxDisplayRR caps the risk/reward ratio shown to users.
	MaxDisplayRR = 10.0

	// MassiveDropThreshold is the default single-session decline (in %)
	// treated as a massive drop.
	MassiveDropThreshold = 8.0
)

// Price ensures a price is a finite positive value, substituting MinPrice
// for NaN, Inf, zero or negative inputs.
func Price(price float64) float64 {
	return PriceFloor(price, MinPrice)
}

// PriceFloor is Price with a caller-chosen floor.
func PriceFloor(price, floor float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return floor
	}
	return math.Max(floor, price)
}

// StopLoss guarantees the stop-loss sits below the current price (at least
// 1% below) and is positive. An invalid level is recomputed from 1.5x ATR.
func StopLoss(stopLoss, currentPrice, atr float64) float64 {
	stopLoss = Price(stopLoss)

	if stopLoss >= currentPrice*0.99 {
		stopLoss = currentPrice - atr*1.5
	}

	return Price(stopLoss)
}

// TakeProfit guarantees the take-profit sits above the current price (at
// least 2% above). An invalid level is recomputed from 2x ATR.
func TakeProfit(takeProfit, currentPrice, atr float64) float64 {
	takeProfit = Price(takeProfit)

	if takeProfit <= currentPrice*1.02 {
		takeProfit = currentPrice + atr*2
	}

	return Price(takeProfit)
}

// DetectMassiveDrop compares the last two closes and reports a drop alert
// when the decline exceeds threshold percent. Needs at least 2 bars.
func DetectMassiveDrop(candles []models.Candle, threshold float64) *models.DropAlert {
	if len(candles) < 2 {
		return nil
	}

	lastClose := candles[len(candles)-2].Close
	currentClose := candles[len(candles)-1].Close
	if lastClose == 0 {
		return nil
	}
	dropPercent := (currentClose - lastClose) / lastClose * 100

	if dropPercent >= -threshold {
		return nil
	}

	volumeRatio := trailingVolumeRatio(candles)

	return &models.DropAlert{
		DropPercent:   round2(dropPercent),
		PreviousClose: round2(lastClose),
		CurrentClose:  round2(currentClose),
		VolumeSpike:   volumeRatio > 1.5,
		VolumeRatio:   round2(volumeRatio),
		Warning:       fmt.Sprintf("Massive drop detected: %.1f%% in a single session", math.Abs(dropPercent)),
		Action:        "WAIT 24-48h for stabilization before any entry",
	}
}

// DetectGapReversal flags a gap-down open (>3% below prior close) that
// recovered more than half of the red-candle range on elevated volume.
func DetectGapReversal(candles []models.Candle) *models.GapReversalAlert {
	if len(candles) < 2 {
		return nil
	}

	prevClose := candles[len(candles)-2].Close
	last := candles[len(candles)-1]
	if prevClose == 0 {
		return nil
	}

	gapPercent := (last.Open - prevClose) / prevClose * 100
	if gapPercent >= -3 {
		return nil
	}

	redCandleSize := math.Abs(prevClose - last.Low)
	recoveryPercent := 0.0
	if redCandleSize > 0 {
		recoveryPercent = (last.Close - last.Low) / redCandleSize * 100
	}

	volumeRatio := trailingVolumeRatio(candles)

	if recoveryPercent <= 50 || volumeRatio <= 1.2 {
		return nil
	}

	return &models.GapReversalAlert{
		GapPercent:      round2(gapPercent),
		RecoveryPercent: round2(recoveryPercent),
		VolumeRatio:     round2(volumeRatio),
		Signal:          "POTENTIAL_REVERSAL",
		Message: fmt.Sprintf("Gap reversal detected: %.1f%% gap recovered %.0f%% on heavy volume",
			math.Abs(gapPercent), recoveryPercent),
		Action: "Recovered falling-knife setup. Watch for confirmation before entering.",
	}
}

// CapRiskReward caps an absurdly large R/R ratio for display while keeping
// the true value alongside.
func CapRiskReward(rrRatio, maxRR float64) models.RiskRewardCap {
	if rrRatio > maxRR {
		return models.RiskRewardCap{
			Displayed: maxRR,
			Actual:    round2(rrRatio),
			Capped:    true,
			Message:   fmt.Sprintf("Actual R/R ratio (%.1f:1) is unrealistic. Displayed: %.0f:1", rrRatio, maxRR),
			Warning:   "Take profit is set too aggressively at a distant resistance.",
		}
	}

	return models.RiskRewardCap{
		Displayed: round2(rrRatio),
		Actual:    round2(rrRatio),
		Capped:    false,
	}
}

// trailingVolumeRatio compares the last bar's volume with the 20-bar
// average. Falls back to 1.0 when history is too short.
func trailingVolumeRatio(candles []models.Candle) float64 {
	if len(candles) < 20 {
		return 1.0
	}

	var sum float64
	for i := len(candles) - 20; i < len(candles); i++ {
		sum += candles[i].Volume
	}
	avg := sum / 20
	if avg == 0 {
		return 1.0
	}
	return candles[len(candles)-1].Volume / avg
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
