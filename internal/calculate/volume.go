package calculate

import "github.com/Alias1177/Advisor/models"

// AnalyzeVolume compares the last bar's volume with its 20-bar average and
// classifies the trend of the last 5 volumes.
func AnalyzeVolume(candles []models.Candle) models.VolumeReading {
	vols := volumes(candles)
	avg := lastOr(rollingMean(vols, 20), 0)
	current := last(vols)

	ratio := 1.0
	if avg > 0 {
		ratio = current / avg
	}

	return models.VolumeReading{
		Current:    current,
		Average:    avg,
		Ratio:      round2(ratio),
		Trend:      volumeTrend(vols),
		Exhaustion: ratio < 0.7,
	}
}

// volumeTrend checks the last 5 volumes for monotonic movement.
func volumeTrend(vols []float64) string {
	start := len(vols) - 5
	if start < 0 {
		start = 0
	}
	recent := vols[start:]
	if len(recent) < 2 {
		return "mixed"
	}

	increasing := true
	decreasing := true
	for i := 1; i < len(recent); i++ {
		if recent[i] < recent[i-1] {
			increasing = false
		}
		if recent[i] > recent[i-1] {
			decreasing = false
		}
	}

	switch {
	case increasing:
		return "increasing"
	case decreasing:
		return "decreasing"
	default:
		return "mixed"
	}
}
