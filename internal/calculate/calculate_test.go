package calculate

import (
	"math"
	"testing"

	"github.com/Alias1177/Advisor/models"
)

func TestCalculateEMA(t *testing.T) {
	candles := []models.Candle{
		{Close: 2}, {Close: 4},
	}

	ema := CalculateEMA(candles, 2)
	if len(ema) != 2 {
		t.Fatalf("expected 2 values, got %d", len(ema))
	}
	if ema[0] != 2 {
		t.Errorf("EMA seed = %v, want first close 2", ema[0])
	}
	// alpha = 2/3: 2 + 2/3*(4-2)
	if math.Abs(ema[1]-3.3333) > 0.001 {
		t.Errorf("EMA[1] = %v, want ~3.3333", ema[1])
	}
}

func TestCalculateRSI(t *testing.T) {
	tests := []struct {
		name     string
		closes   func(i int) float64
		expected float64
	}{
		{"monotonic gains saturate at 100", func(i int) float64 { return 100 + float64(i) }, 100},
		{"monotonic losses saturate at 0", func(i int) float64 { return 100 - float64(i) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candles := generateTestCandles(30, func(i int) models.Candle {
				return models.Candle{Close: tt.closes(i)}
			})
			rsi := CalculateRSI(candles, 14)
			got := rsi[len(rsi)-1]
			if got != tt.expected {
				t.Errorf("RSI = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCalculateRSIWindowConvention(t *testing.T) {
	candles := generateTestCandles(30, func(i int) models.Candle {
		return models.Candle{Close: 100 + float64(i%5)}
	})

	rsi := CalculateRSI(candles, 14)
	for i := 0; i < 13; i++ {
		if !math.IsNaN(rsi[i]) {
			t.Errorf("RSI[%d] = %v, want NaN before the window fills", i, rsi[i])
		}
	}
	for i := 13; i < len(rsi); i++ {
		if rsi[i] < 0 || rsi[i] > 100 {
			t.Errorf("RSI[%d] = %v, out of [0,100]", i, rsi[i])
		}
	}
}

func TestCalculateStochRSIFlatSeries(t *testing.T) {
	candles := generateTestCandles(40, func(i int) models.Candle {
		return models.Candle{Close: 100}
	})

	k, d := CalculateStochRSI(candles, 14, 3, 3)
	if got := k[len(k)-1]; got != 50 {
		t.Errorf("K on a flat series = %v, want midpoint 50", got)
	}
	if got := d[len(d)-1]; got != 50 {
		t.Errorf("D on a flat series = %v, want midpoint 50", got)
	}
}

func TestCalculateATRPositive(t *testing.T) {
	candles := generateTestCandles(30, func(i int) models.Candle {
		c := 100 + float64(i)
		return models.Candle{Open: c - 1, High: c + 2, Low: c - 2, Close: c}
	})

	atr := CalculateATR(candles, 14)
	got := atr[len(atr)-1]
	if math.IsNaN(got) || got <= 0 {
		t.Errorf("ATR = %v, want a positive value", got)
	}
}

func TestCalculatePivotPoints(t *testing.T) {
	candles := generateTestCandles(20, func(i int) models.Candle {
		return models.Candle{Open: 100, High: 110, Low: 90, Close: 100}
	})

	pivots := CalculatePivotPoints(candles, 20)

	if pivots.Pivot != 100 {
		t.Errorf("Pivot = %v, want 100", pivots.Pivot)
	}
	if pivots.Support != 90 || pivots.Support2 != 80 {
		t.Errorf("Supports = %v/%v, want 90/80", pivots.Support, pivots.Support2)
	}
	if pivots.Resistance != 110 || pivots.Resistance2 != 120 {
		t.Errorf("Resistances = %v/%v, want 110/120", pivots.Resistance, pivots.Resistance2)
	}
}

func TestCalculateDonchianFloorsNegativeLows(t *testing.T) {
	candles := generateTestCandles(25, func(i int) models.Candle {
		return models.Candle{High: 10, Low: -5, Close: 5}
	})

	donchian := CalculateDonchian(candles, 20)
	if donchian.Lower != 0.01 {
		t.Errorf("Lower = %v, want floor 0.01 for negative raw minimum", donchian.Lower)
	}
	if donchian.Upper != 10 {
		t.Errorf("Upper = %v, want 10", donchian.Upper)
	}
}

func TestCalculateHeikinAshi(t *testing.T) {
	candles := []models.Candle{
		{Open: 10, High: 20, Low: 10, Close: 20},
		{Open: 20, High: 30, Low: 20, Close: 30},
	}

	ha := CalculateHeikinAshi(candles)
	if !ha.Bullish {
		t.Error("expected a bullish Heikin-Ashi candle")
	}
	// haOpen = (15+15)/2 = 15, haClose = (20+30+20+30)/4 = 25
	if ha.BodySize != 10 {
		t.Errorf("BodySize = %v, want 10", ha.BodySize)
	}
}

func TestAnalyzeVolume(t *testing.T) {
	tests := []struct {
		name       string
		lastVolume float64
		trend      string
		exhaustion bool
	}{
		{"volume spike", 200, "increasing", false},
		{"volume exhaustion", 50, "decreasing", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candles := generateTestCandles(25, func(i int) models.Candle {
				return models.Candle{Close: 100, Volume: 100}
			})
			candles[24].Volume = tt.lastVolume

			reading := AnalyzeVolume(candles)
			if reading.Trend != tt.trend {
				t.Errorf("Trend = %v, want %v", reading.Trend, tt.trend)
			}
			if reading.Exhaustion != tt.exhaustion {
				t.Errorf("Exhaustion = %v, want %v", reading.Exhaustion, tt.exhaustion)
			}
		})
	}
}

func TestDetectGaps(t *testing.T) {
	candles := generateTestCandles(10, func(i int) models.Candle {
		return models.Candle{Open: 100, Close: 100}
	})
	candles[5].Open = 103.5 // +3.5% vs prior close
	candles[8].Open = 97    // -3% vs prior close

	gaps := DetectGaps(candles, 5)
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d", len(gaps))
	}
	if gaps[0].Type != "up" || gaps[0].SizePercent != 3.5 {
		t.Errorf("first gap = %+v, want up 3.5%%", gaps[0])
	}
	if gaps[1].Type != "down" || gaps[1].SizePercent != -3 {
		t.Errorf("second gap = %+v, want down -3%%", gaps[1])
	}
}

func TestCalculateWilliamsFractals(t *testing.T) {
	highs := []float64{10, 11, 15, 11, 10}
	lows := []float64{8, 7, 4, 7, 8}

	candles := generateTestCandles(5, func(i int) models.Candle {
		return models.Candle{High: highs[i], Low: lows[i]}
	})

	fractals := CalculateWilliamsFractals(candles, 5, 20)
	if len(fractals) != 1 {
		t.Fatalf("expected 1 fractal, got %d", len(fractals))
	}
	// The center bar is both the strict high and the strict low of the
	// window; the bullish check wins.
	if fractals[0].Type != "bullish" || fractals[0].Price != 4 {
		t.Errorf("fractal = %+v, want bullish at 4", fractals[0])
	}
}

func TestCalculateWilliamsFractalsBearish(t *testing.T) {
	highs := []float64{10, 11, 15, 11, 10}
	lows := []float64{8, 7, 9, 7, 8}

	candles := generateTestCandles(5, func(i int) models.Candle {
		return models.Candle{High: highs[i], Low: lows[i]}
	})

	fractals := CalculateWilliamsFractals(candles, 5, 20)
	if len(fractals) != 1 {
		t.Fatalf("expected 1 fractal, got %d", len(fractals))
	}
	if fractals[0].Type != "bearish" || fractals[0].Price != 15 {
		t.Errorf("fractal = %+v, want bearish at 15", fractals[0])
	}
}

func TestCalculateTrendAlignment(t *testing.T) {
	tests := []struct {
		name     string
		close    func(i int) float64
		aligned  bool
		strength string
	}{
		{"bullish confluence", func(i int) float64 { return 100 + float64(i) }, true, "strong_buy"},
		{"bearish confluence", func(i int) float64 { return 200 - float64(i) }, true, "strong_sell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candles := generateTestCandles(60, func(i int) models.Candle {
				return models.Candle{Close: tt.close(i)}
			})

			alignment := CalculateTrendAlignment(candles)
			if alignment.Aligned != tt.aligned || alignment.Strength != tt.strength {
				t.Errorf("alignment = %+v, want aligned=%v strength=%v",
					alignment, tt.aligned, tt.strength)
			}
		})
	}
}

func TestTrendReading(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		ema50     float64
		direction string
		strength  string
	}{
		{"above EMA within 5 percent", 103, 100, models.TrendBullish, "weak"},
		{"above EMA beyond 5 percent", 110, 100, models.TrendBullish, "strong"},
		{"below EMA", 95, 100, models.TrendBearish, "weak"},
		{"far below EMA", 80, 100, models.TrendBearish, "strong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trendReading(tt.price, tt.ema50)
			if got.Direction != tt.direction || got.Strength != tt.strength {
				t.Errorf("trendReading(%v, %v) = %+v, want %v/%v",
					tt.price, tt.ema50, got, tt.direction, tt.strength)
			}
		})
	}
}

func generateTestCandles(n int, generator func(int) models.Candle) []models.Candle {
	candles := make([]models.Candle, n)
	for i := 0; i < n; i++ {
		candles[i] = generator(i)
	}
	return candles
}
