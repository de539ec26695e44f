package calculate

import (
	"math"

	"github.com/Alias1177/Advisor/models"
)

// CalculateHeikinAshi derives the last Heikin-Ashi candle. HA close is the
// bar average, HA open is the average of the previous HA open/close seeded
// from the first bar's open/close midpoint.
func CalculateHeikinAshi(candles []models.Candle) models.HeikinAshiReading {
	if len(candles) == 0 {
		return models.HeikinAshiReading{}
	}

	haOpen := (candles[0].Open + candles[0].Close) / 2
	haClose := (candles[0].Open + candles[0].High + candles[0].Low + candles[0].Close) / 4

	for i := 1; i < len(candles); i++ {
		c := candles[i]
		haOpen = (haOpen + haClose) / 2
		haClose = (c.Open + c.High + c.Low + c.Close) / 4
	}

	return models.HeikinAshiReading{
		Bullish:  haClose > haOpen,
		BodySize: round2(math.Abs(haClose - haOpen)),
	}
}
