package calculate

import "github.com/Alias1177/Advisor/models"

// CalculateWilliamsFractals scans for 5-bar local extrema. A bar is a
// bullish fractal when its low is strictly lower than every other low in
// the centered window, bearish when its high is strictly higher. Only the
// most recent maxFractals are returned.
func CalculateWilliamsFractals(candles []models.Candle, period, maxFractals int) []models.Fractal {
	half := period / 2
	var fractals []models.Fractal

	for i := half; i < len(candles)-half; i++ {
		bullish := true
		bearish := true
		for j := i - half; j <= i+half; j++ {
			if j == i {
				continue
			}
			if candles[j].Low <= candles[i].Low {
				bullish = false
			}
			if candles[j].High >= candles[i].High {
				bearish = false
			}
			if !bullish && !bearish {
				break
			}
		}

		if bullish {
			fractals = append(fractals, models.Fractal{
				Datetime: candles[i].Datetime,
				Type:     "bullish",
				Price:    round2(candles[i].Low),
			})
		} else if bearish {
			fractals = append(fractals, models.Fractal{
				Datetime: candles[i].Datetime,
				Type:     "bearish",
				Price:    round2(candles[i].High),
			})
		}
	}

	if len(fractals) > maxFractals {
		fractals = fractals[len(fractals)-maxFractals:]
	}
	return fractals
}
