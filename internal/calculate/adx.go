package calculate

import (
	"math"

	"github.com/Alias1177/Advisor/models"
)

// trueRanges returns the true range for every bar. The first bar has no
// prior close, so its true range is just high-low.
func trueRanges(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		tr := c.High - c.Low
		if i > 0 {
			prevClose := candles[i-1].Close
			tr = math.Max(tr, math.Max(
				math.Abs(c.High-prevClose),
				math.Abs(c.Low-prevClose),
			))
		}
		out[i] = tr
	}
	return out
}

// CalculateATR returns the average true range series (simple rolling mean
// of true ranges).
func CalculateATR(candles []models.Candle, period int) []float64 {
	return rollingMean(trueRanges(candles), period)
}

// CalculateADX returns the ADX, +DI and -DI series. All averaging uses
// simple rolling means rather than Wilder smoothing.
func CalculateADX(candles []models.Candle, period int) (adx, plusDI, minusDI []float64) {
	n := len(candles)
	posDM := make([]float64, n)
	negDM := make([]float64, n)

	for i := 1; i < n; i++ {
		upMove := candles[i].High - candles[i-1].High
		downMove := candles[i-1].Low - candles[i].Low

		if upMove > downMove && upMove > 0 {
			posDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			negDM[i] = downMove
		}
	}

	atr := CalculateATR(candles, period)
	avgPosDM := rollingMean(posDM, period)
	avgNegDM := rollingMean(negDM, period)

	plusDI = nanSlice(n)
	minusDI = nanSlice(n)
	dx := nanSlice(n)

	for i := 0; i < n; i++ {
		if math.IsNaN(atr[i]) || atr[i] == 0 || math.IsNaN(avgPosDM[i]) || math.IsNaN(avgNegDM[i]) {
			continue
		}
		plusDI[i] = 100 * avgPosDM[i] / atr[i]
		minusDI[i] = 100 * avgNegDM[i] / atr[i]

		sum := plusDI[i] + minusDI[i]
		if sum == 0 {
			continue
		}
		dx[i] = 100 * math.Abs(plusDI[i]-minusDI[i]) / sum
	}

	adx = rollingMean(dx, period)
	return adx, plusDI, minusDI
}

func adxRegime(adx float64) string {
	switch {
	case adx > 25:
		return models.RegimeTrending
	case adx < 20:
		return models.RegimeRanging
	default:
		return models.RegimeNeutral
	}
}
