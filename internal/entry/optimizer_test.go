package entry

import (
	"strings"
	"testing"
)

func TestOptimizeEntryNoOpWhenFavorable(t *testing.T) {
	o := NewOptimizer()

	result := o.OptimizeEntry(100, 95, 90, 88, 110, 2, 2.5)
	if result.Optimized {
		t.Errorf("result = %+v, want no-op at R/R 2.5", result)
	}
	if result.IdealEntry != 100 {
		t.Errorf("IdealEntry = %v, want current price", result.IdealEntry)
	}
}

func TestOptimizeEntryPicksClosestQualifyingLevel(t *testing.T) {
	o := NewOptimizer()

	// EMA20 at 95 is the closest candidate (5% pullback) and already
	// reaches the target: SL = 95 - 3 = 92, R/R = (110-95)/3 = 5.
	result := o.OptimizeEntry(100, 95, 80, 90, 110, 2, 1.0)

	if !result.Optimized || !result.Success {
		t.Fatalf("result = %+v, want a successful optimization", result)
	}
	if result.EntryLevel != "EMA 20" {
		t.Errorf("EntryLevel = %v, want EMA 20", result.EntryLevel)
	}
	if result.IdealEntry != 95 || result.IdealStopLoss != 92 || result.IdealTakeProfit != 110 {
		t.Errorf("levels = %v/%v/%v, want 95/92/110",
			result.IdealEntry, result.IdealStopLoss, result.IdealTakeProfit)
	}
	if result.IdealRR != 5 {
		t.Errorf("IdealRR = %v, want 5", result.IdealRR)
	}
	if result.PullbackPercent != 5 {
		t.Errorf("PullbackPercent = %v, want 5", result.PullbackPercent)
	}
}

func TestOptimizeEntryFallsThroughToSupport(t *testing.T) {
	o := NewOptimizer()

	// EMA20 at 99 is less than 2% below price, so it is not a candidate;
	// the pivot support at 90 is the closest qualifying level.
	result := o.OptimizeEntry(100, 99, 80, 90, 110, 2, 1.0)

	if result.EntryLevel != "Support Pivot" {
		t.Errorf("EntryLevel = %v, want Support Pivot", result.EntryLevel)
	}
	// SL = 90 - 3 = 87, R/R = (110-90)/3 = 6.67
	if !result.Success {
		t.Errorf("result = %+v, want success", result)
	}
}

func TestOptimizeEntryWarnsWhenTargetUnreachable(t *testing.T) {
	o := NewOptimizer()

	// Support 90, SL 87, reward only 94-90=4 -> R/R 1.33 < 2.
	result := o.OptimizeEntry(100, 99, 99, 90, 94, 2, 0.5)

	if !result.Optimized || result.Success {
		t.Fatalf("result = %+v, want best-effort without success", result)
	}
	if result.Warning == "" || !strings.Contains(result.Warning, "Resistance") {
		t.Errorf("Warning = %q, want a resistance-too-close warning", result.Warning)
	}
	if result.IdealRR != 1.33 {
		t.Errorf("IdealRR = %v, want 1.33", result.IdealRR)
	}
}

func TestOptimizeEntryNoCandidates(t *testing.T) {
	o := NewOptimizer()

	// Price already at/below every support level.
	result := o.OptimizeEntry(100, 99.5, 99, 99, 110, 2, 1.0)

	if result.Optimized {
		t.Fatalf("result = %+v, want unoptimized", result)
	}
	if !strings.Contains(result.Warning, "stabilization") {
		t.Errorf("Warning = %q, want a stabilization warning", result.Warning)
	}
}

func TestOptimizeEntryStopLossFallbackNearZero(t *testing.T) {
	o := NewOptimizer()

	// ATR bigger than the candidate price forces the 3% fallback stop.
	result := o.OptimizeEntry(10, 5, 1, 2, 30, 4, 1.0)

	if result.EntryLevel != "EMA 20" {
		t.Fatalf("EntryLevel = %v, want EMA 20", result.EntryLevel)
	}
	// SL = 5 - 6 <= 0.01 -> fallback 5 * 0.97 = 4.85
	if result.IdealStopLoss != 4.85 {
		t.Errorf("IdealStopLoss = %v, want 4.85", result.IdealStopLoss)
	}
}
