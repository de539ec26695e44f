package calculate

import (
	"math"

	"github.com/Alias1177/Advisor/models"
)

// CalculateRSI returns the RSI series using simple rolling averages of
// gains and losses (not Wilder's recursive smoothing). The first period-1
// positions are NaN.
func CalculateRSI(candles []models.Candle, period int) []float64 {
	n := len(candles)
	gains := make([]float64, n)
	losses := make([]float64, n)

	for i := 1; i < n; i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	rsi := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			continue
		}
		if avgLoss[i] == 0 {
			rsi[i] = 100.0
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		rsi[i] = 100.0 - 100.0/(1.0+rs)
	}
	return rsi
}

func rsiZone(value float64) string {
	switch {
	case value > 70:
		return models.ZoneOverbought
	case value < 30:
		return models.ZoneOversold
	default:
		return models.ZoneNeutral
	}
}
