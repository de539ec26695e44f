package calculate

import (
	"math"

	"github.com/Alias1177/Advisor/models"
)

// CalculateStochRSI normalizes RSI into [0,100] over its own rolling
// min/max window, then smooths it twice into the K and D lines.
func CalculateStochRSI(candles []models.Candle, period, smoothK, smoothD int) (k, d []float64) {
	rsi := CalculateRSI(candles, period)

	lows := rollingMin(rsi, period)
	highs := rollingMax(rsi, period)

	stoch := nanSlice(len(rsi))
	for i := range rsi {
		if math.IsNaN(rsi[i]) || math.IsNaN(lows[i]) || math.IsNaN(highs[i]) {
			continue
		}
		if highs[i] == lows[i] {
			// Flat RSI window: pin the oscillator to its midpoint.
			stoch[i] = 50.0
			continue
		}
		stoch[i] = (rsi[i] - lows[i]) / (highs[i] - lows[i]) * 100
	}

	k = rollingMean(stoch, smoothK)
	d = rollingMean(k, smoothD)
	return k, d
}

func stochZone(k float64) string {
	switch {
	case k > 80:
		return models.ZoneOverbought
	case k < 20:
		return models.ZoneOversold
	default:
		return models.ZoneNeutral
	}
}
