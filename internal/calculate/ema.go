package calculate

import "github.com/Alias1177/Advisor/models"

// CalculateEMA returns the exponential moving average series of closing
// prices for the given period.
func CalculateEMA(candles []models.Candle, period int) []float64 {
	values := closePrices(candles)
	return emaSeries(values, period)
}

// CalculateSMA returns the simple moving average series of closing prices.
func CalculateSMA(candles []models.Candle, period int) []float64 {
	return rollingMean(closePrices(candles), period)
}

func closePrices(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

func volumes(candles []models.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Volume
	}
	return out
}
