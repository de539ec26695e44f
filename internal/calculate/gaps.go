package calculate

import (
	"math"

	"github.com/Alias1177/Advisor/models"
)

// DetectGaps finds opens deviating more than 2% from the prior close.
// Only the most recent maxGaps are returned.
func DetectGaps(candles []models.Candle, maxGaps int) []models.Gap {
	var gaps []models.Gap

	for i := 1; i < len(candles); i++ {
		prevClose := candles[i-1].Close
		if prevClose == 0 {
			continue
		}
		gapSize := (candles[i].Open - prevClose) / prevClose * 100
		if math.Abs(gapSize) <= 2 {
			continue
		}

		gapType := "up"
		if gapSize < 0 {
			gapType = "down"
		}
		gaps = append(gaps, models.Gap{
			Index:       i,
			Datetime:    candles[i].Datetime,
			SizePercent: round2(gapSize),
			Price:       round2(prevClose),
			Type:        gapType,
		})
	}

	if len(gaps) > maxGaps {
		gaps = gaps[len(gaps)-maxGaps:]
	}
	return gaps
}
