package calculate

import (
	"github.com/Alias1177/Advisor/internal/validate"
	"github.com/Alias1177/Advisor/models"
)

// CalculateDonchian computes the rolling high/low envelope over the given
// period. Both bounds pass through the price validator, so the lower band
// can never go below the minimum positive price.
func CalculateDonchian(candles []models.Candle, period int) models.DonchianChannel {
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		highs[i] = c.High
		lows[i] = c.Low
	}

	upper := validate.Price(last(rollingMax(highs, period)))
	lower := validate.Price(last(rollingMin(lows, period)))

	return models.DonchianChannel{
		Upper:  round2(upper),
		Lower:  round2(lower),
		Middle: round2((upper + lower) / 2),
	}
}
