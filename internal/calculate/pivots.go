package calculate

import "github.com/Alias1177/Advisor/models"

// CalculatePivotPoints computes classic 3-point pivot support/resistance
// levels over the last lookback bars.
func CalculatePivotPoints(candles []models.Candle, lookback int) models.PivotLevels {
	if len(candles) == 0 {
		return models.PivotLevels{}
	}

	start := len(candles) - lookback
	if start < 0 {
		start = 0
	}
	recent := candles[start:]

	high := recent[0].High
	low := recent[0].Low
	for _, c := range recent[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	close := recent[len(recent)-1].Close

	pivot := (high + low + close) / 3

	return models.PivotLevels{
		Pivot:       round2(pivot),
		Support:     round2(2*pivot - high),
		Support2:    round2(pivot - (high - low)),
		Resistance:  round2(2*pivot - low),
		Resistance2: round2(pivot + (high - low)),
	}
}
