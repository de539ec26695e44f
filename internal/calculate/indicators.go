// Package calculate computes technical indicators over an ordered,
// chronological bar series. All computations are pure and windowed; no
// state survives between calls.
package calculate

import (
	"fmt"
	"math"

	"github.com/Alias1177/Advisor/models"
)

// MinBars is the shortest series accepted for a full indicator snapshot
// (the 20-period windows need it).
const MinBars = 20

// Default indicator parameters
const (
	RSIPeriod      = 14
	StochSmoothK   = 3
	StochSmoothD   = 3
	ADXPeriod      = 14
	ATRPeriod      = 14
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignal     = 9
	PivotLookback  = 20
	DonchianPeriod = 20
	FractalPeriod  = 5
	MaxGaps        = 5
	MaxFractals    = 20
)

// CalculateAllIndicators computes the full indicator snapshot for a bar
// series. The computation is atomic: any failure aborts the snapshot and
// nothing partial is returned.
func CalculateAllIndicators(candles []models.Candle) (*models.IndicatorSnapshot, error) {
	if len(candles) < MinBars {
		return nil, fmt.Errorf("%w: need %d bars, got %d", models.ErrInsufficientData, MinBars, len(candles))
	}
	if err := validateSeries(candles); err != nil {
		return nil, err
	}

	currentPrice := candles[len(candles)-1].Close

	ema20 := last(CalculateEMA(candles, 20))
	ema50 := last(CalculateEMA(candles, 50))
	var ema200 *float64
	if len(candles) >= 200 {
		v := round2(last(CalculateEMA(candles, 200)))
		ema200 = &v
	}

	rsi := lastOr(CalculateRSI(candles, RSIPeriod), 50)

	kSeries, dSeries := CalculateStochRSI(candles, RSIPeriod, StochSmoothK, StochSmoothD)
	stochK := lastOr(kSeries, 50)
	stochD := lastOr(dSeries, 50)

	adxSeries, plusDISeries, minusDISeries := CalculateADX(candles, ADXPeriod)
	adx := lastOr(adxSeries, 0)
	plusDI := lastOr(plusDISeries, 0)
	minusDI := lastOr(minusDISeries, 0)

	atr := lastOr(CalculateATR(candles, ATRPeriod), 0)

	macdLine, macdSignal, macdHist := CalculateMACD(candles, MACDFast, MACDSlow, MACDSignal)
	histogram := last(macdHist)

	if !isFinite(currentPrice) || !isFinite(atr) {
		return nil, models.NewCalculationError("indicators",
			fmt.Errorf("non-finite price or ATR for %d bars", len(candles)))
	}

	atrPercent := 0.0
	if currentPrice > 0 {
		atrPercent = atr / currentPrice * 100
	}

	snapshot := &models.IndicatorSnapshot{
		Price: models.PriceLevels{
			Current: round2(currentPrice),
			EMA20:   round2(ema20),
			EMA50:   round2(ema50),
			EMA200:  ema200,
		},
		RSI: models.RSIReading{
			Value: round2(rsi),
			Zone:  rsiZone(rsi),
		},
		StochRSI: models.StochRSIReading{
			K:    round2(stochK),
			D:    round2(stochD),
			Zone: stochZone(stochK),
		},
		ADX: models.ADXReading{
			Value:   round2(adx),
			PlusDI:  round2(plusDI),
			MinusDI: round2(minusDI),
			Regime:  adxRegime(adx),
		},
		ATR: models.ATRReading{
			Value:   round2(atr),
			Percent: round2(atrPercent),
		},
		MACD: models.MACDReading{
			Line:      round2(last(macdLine)),
			Signal:    round2(last(macdSignal)),
			Histogram: round2(histogram),
			Cross:     macdCross(histogram),
		},
		HeikinAshi:     CalculateHeikinAshi(candles),
		Volume:         AnalyzeVolume(candles),
		Pivots:         CalculatePivotPoints(candles, PivotLookback),
		Gaps:           DetectGaps(candles, MaxGaps),
		Donchian:       CalculateDonchian(candles, DonchianPeriod),
		Fractals:       CalculateWilliamsFractals(candles, FractalPeriod, MaxFractals),
		TrendAlignment: CalculateTrendAlignment(candles),
		Trend:          trendReading(currentPrice, ema50),
	}

	return snapshot, nil
}

// validateSeries rejects series with non-finite or negative OHLCV fields.
func validateSeries(candles []models.Candle) error {
	for i, c := range candles {
		for _, v := range [...]float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: bar %d (%s) has a non-finite or negative field",
					models.ErrInvalidData, i, c.Datetime)
			}
		}
	}
	return nil
}
