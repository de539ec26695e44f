package calculate

import "github.com/Alias1177/Advisor/models"

// CalculateMACD returns the MACD line (EMA fast - EMA slow), its signal
// line (EMA of the MACD line) and the histogram (line - signal).
func CalculateMACD(candles []models.Candle, fast, slow, signal int) (line, signalLine, histogram []float64) {
	emaFast := CalculateEMA(candles, fast)
	emaSlow := CalculateEMA(candles, slow)

	line = make([]float64, len(candles))
	for i := range line {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signalLine = emaSeries(line, signal)

	histogram = make([]float64, len(candles))
	for i := range histogram {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}

func macdCross(histogram float64) string {
	if histogram > 0 {
		return "bullish"
	}
	return "bearish"
}
