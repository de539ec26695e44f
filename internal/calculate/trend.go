package calculate

import (
	"math"

	"github.com/Alias1177/Advisor/models"
)

// CalculateTrendAlignment reads the daily trend from EMA20 and the weekly
// trend from EMA50, and reports whether the two agree.
func CalculateTrendAlignment(candles []models.Candle) models.TrendAlignment {
	ema20 := last(CalculateEMA(candles, 20))
	ema50 := last(CalculateEMA(candles, 50))
	currentPrice := candles[len(candles)-1].Close

	daily := models.TrendBearish
	if currentPrice > ema20 {
		daily = models.TrendBullish
	}
	weekly := models.TrendBearish
	if currentPrice > ema50 {
		weekly = models.TrendBullish
	}

	aligned := daily == weekly

	var message, strength string
	switch {
	case aligned && daily == models.TrendBullish:
		message = "Trends aligned - stronger signal (bullish confluence)"
		strength = "strong_buy"
	case aligned && daily == models.TrendBearish:
		message = "Bearish confluence - avoid entry (both trends down)"
		strength = "strong_sell"
	default:
		message = "Timeframe divergence - wait for alignment (conflicting trends)"
		strength = "neutral"
	}

	return models.TrendAlignment{
		Daily:    models.TimeframeTrend{Trend: daily, EMAValue: round2(ema20)},
		Weekly:   models.TimeframeTrend{Trend: weekly, EMAValue: round2(ema50)},
		Aligned:  aligned,
		Strength: strength,
		Message:  message,
	}
}

// trendReading determines the overall direction and strength vs EMA50.
func trendReading(currentPrice, ema50 float64) models.TrendReading {
	direction := models.TrendBearish
	if currentPrice > ema50 {
		direction = models.TrendBullish
	}

	strength := "weak"
	if ema50 != 0 && math.Abs(currentPrice-ema50)/ema50 > 0.05 {
		strength = "strong"
	}

	return models.TrendReading{Direction: direction, Strength: strength}
}
