package database

import "testing"

func TestAlertReached(t *testing.T) {
	tests := []struct {
		name         string
		alert        PriceAlert
		currentPrice float64
		expected     bool
	}{
		{"take profit reached", PriceAlert{AlertType: "take_profit", TargetPrice: 110}, 111, true},
		{"take profit at target", PriceAlert{AlertType: "take_profit", TargetPrice: 110}, 110, true},
		{"take profit not reached", PriceAlert{AlertType: "take_profit", TargetPrice: 110}, 109, false},
		{"stop loss reached", PriceAlert{AlertType: "stop_loss", TargetPrice: 90}, 89, true},
		{"stop loss not reached", PriceAlert{AlertType: "stop_loss", TargetPrice: 90}, 91, false},
		{"ideal entry within half a percent", PriceAlert{AlertType: "ideal_entry", TargetPrice: 100}, 100.4, true},
		{"ideal entry below target", PriceAlert{AlertType: "ideal_entry", TargetPrice: 100}, 99.6, true},
		{"ideal entry too far", PriceAlert{AlertType: "ideal_entry", TargetPrice: 100}, 101, false},
		{"ideal entry zero target never fires", PriceAlert{AlertType: "ideal_entry", TargetPrice: 0}, 0, false},
		{"unknown type never fires", PriceAlert{AlertType: "other", TargetPrice: 100}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alertReached(tt.alert, tt.currentPrice); got != tt.expected {
				t.Errorf("alertReached(%+v, %v) = %v, want %v",
					tt.alert, tt.currentPrice, got, tt.expected)
			}
		})
	}
}
