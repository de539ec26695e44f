package models

// Candle represents a single price bar (OHLCV observation)
type Candle struct {
	Datetime string  `json:"datetime"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume,omitempty"`
}

// Signal values emitted by the decision engine
const (
	SignalBuy       = "BUY"
	SignalSell      = "SELL"
	SignalHold      = "HOLD"
	SignalWait      = "WAIT"
	SignalNeutral   = "NEUTRAL"
	SignalLiquidate = "LIQUIDATE"
)

// Oscillator zones
const (
	ZoneOversold   = "oversold"
	ZoneOverbought = "overbought"
	ZoneNeutral    = "neutral"
)

// Market regimes from ADX
const (
	RegimeTrending = "TRENDING"
	RegimeRanging  = "RANGING"
	RegimeNeutral  = "NEUTRAL"
)

// Trend directions
const (
	TrendBullish = "BULLISH"
	TrendBearish = "BEARISH"
)

// PriceLevels holds the current price and its moving averages.
// EMA200 is nil when the series has fewer than 200 bars.
type PriceLevels struct {
	Current float64  `json:"current"`
	EMA20   float64  `json:"ema_20"`
	EMA50   float64  `json:"ema_50"`
	EMA200  *float64 `json:"ema_200,omitempty"`
}

// RSIReading holds RSI value and qualitative zone
type RSIReading struct {
	Value float64 `json:"value"`
	Zone  string  `json:"signal"`
}

// StochRSIReading holds smoothed K/D lines and zone
type StochRSIReading struct {
	K    float64 `json:"k"`
	D    float64 `json:"d"`
	Zone string  `json:"signal"`
}

// ADXReading holds trend strength, directional indices and regime
type ADXReading struct {
	Value   float64 `json:"value"`
	PlusDI  float64 `json:"pos_di"`
	MinusDI float64 `json:"neg_di"`
	Regime  string  `json:"regime"`
}

// ATRReading holds the average true range in price units and as % of price
type ATRReading struct {
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// MACDReading holds MACD line, signal line, histogram and cross direction
type MACDReading struct {
	Line      float64 `json:"macd_line"`
	Signal    float64 `json:"signal_line"`
	Histogram float64 `json:"histogram"`
	Cross     string  `json:"cross"` // "bullish" or "bearish"
}

// HeikinAshiReading describes the last Heikin-Ashi candle
type HeikinAshiReading struct {
	Bullish  bool    `json:"bullish"`
	BodySize float64 `json:"body_size"`
}

// VolumeReading holds volume ratio and trend analysis
type VolumeReading struct {
	Current    float64 `json:"current"`
	Average    float64 `json:"average"`
	Ratio      float64 `json:"ratio"`
	Trend      string  `json:"trend"` // "increasing", "decreasing", "mixed"
	Exhaustion bool    `json:"exhaustion"`
}

// PivotLevels holds classic pivot support/resistance over a lookback window
type PivotLevels struct {
	Pivot       float64 `json:"pivot"`
	Support     float64 `json:"support"`
	Support2    float64 `json:"support2"`
	Resistance  float64 `json:"resistance"`
	Resistance2 float64 `json:"resistance2"`
}

// Gap is a single detected price gap (open vs prior close)
type Gap struct {
	Index       int     `json:"index"`
	Datetime    string  `json:"date"`
	SizePercent float64 `json:"gap_size"`
	Price       float64 `json:"gap_price"`
	Type        string  `json:"type"` // "up" or "down"
}

// DonchianChannel is the 20-period high/low envelope.
// Lower is floor-clamped to a minimum positive price.
type DonchianChannel struct {
	Upper  float64 `json:"upper"`
	Lower  float64 `json:"lower"`
	Middle float64 `json:"middle"`
}

// Fractal is a Williams fractal (5-bar local extremum)
type Fractal struct {
	Datetime string  `json:"time"`
	Type     string  `json:"type"` // "bullish" or "bearish"
	Price    float64 `json:"price"`
}

// TimeframeTrend is the trend read from one EMA timeframe
type TimeframeTrend struct {
	Trend    string  `json:"trend"`
	EMAValue float64 `json:"ema_value"`
}

// TrendAlignment compares the daily (EMA20) and weekly (EMA50) trends
type TrendAlignment struct {
	Daily    TimeframeTrend `json:"daily"`
	Weekly   TimeframeTrend `json:"weekly"`
	Aligned  bool           `json:"aligned"`
	Strength string         `json:"signal_strength"` // "strong_buy", "strong_sell", "neutral"
	Message  string         `json:"message"`
}

// TrendReading is the overall trend direction vs EMA50
type TrendReading struct {
	Direction string `json:"direction"` // BULLISH / BEARISH
	Strength  string `json:"strength"`  // "strong" / "weak"
}

// IndicatorSnapshot is the full set of technical indicators derived from a
// bar series. It is recomputed from scratch on every analysis request.
type IndicatorSnapshot struct {
	Price          PriceLevels       `json:"price"`
	RSI            RSIReading        `json:"rsi"`
	StochRSI       StochRSIReading   `json:"stoch_rsi"`
	ADX            ADXReading        `json:"adx"`
	ATR            ATRReading        `json:"atr"`
	MACD           MACDReading       `json:"macd"`
	HeikinAshi     HeikinAshiReading `json:"heikin_ashi"`
	Volume         VolumeReading     `json:"volume"`
	Pivots         PivotLevels       `json:"pivots"`
	Gaps           []Gap             `json:"gaps"`
	Donchian       DonchianChannel   `json:"donchian"`
	Fractals       []Fractal         `json:"fractals"`
	TrendAlignment TrendAlignment    `json:"trend_alignment"`
	Trend          TrendReading      `json:"trend"`
}

// RiskProfile holds the derived risk/reward plan for an entry at the
// current price.
type RiskProfile struct {
	EntryPrice          float64 `json:"entry_price"`
	StopLoss            float64 `json:"stop_loss"`
	TakeProfit          float64 `json:"take_profit"`
	StopLossPercent     float64 `json:"stop_loss_percent"`
	RiskReward          float64 `json:"risk_reward_ratio"` // display-capped at 10:1
	ActualRiskReward    float64 `json:"actual_rr_ratio"`
	RRCapped            bool    `json:"rr_capped"`
	RRWarning           string  `json:"rr_warning,omitempty"`
	PositionSizePercent float64 `json:"position_size_suggestion"`
	TrailingStop        float64 `json:"trailing_stop"`
	ATR                 float64 `json:"atr_value"`
	Favorable           bool    `json:"favorable"`
	Assessment          string  `json:"risk_assessment"`
	Support             float64 `json:"support"`
	Resistance          float64 `json:"resistance"`
}

// Alert severities
const (
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Protection alert types
const (
	AlertSellTrigger      = "SELL_TRIGGER"
	AlertEntryBlock       = "ENTRY_BLOCK"
	AlertVolumeDivergence = "VOLUME_DIVERGENCE"
	AlertFinancialHealth  = "FINANCIAL_HEALTH_BLOCK"
	AlertEarningsWarning  = "EARNINGS_WARNING"
	AlertEarningsProtect  = "EARNINGS_AUTO_PROTECT"
	AlertSmartExit        = "SMART_EXIT"
	AlertDailyDrop        = "DAILY_DROP_PENALTY"
	AlertDebtEquity       = "DEBT_EQUITY_PENALTY"
)

// ProtectionAlert is a structured result from a protection rule module.
// A module that forces a signal sets ForceOverride; score-only modules set
// ConfidencePenalty instead.
type ProtectionAlert struct {
	Type              string  `json:"type"`
	Severity          string  `json:"severity"`
	Message           string  `json:"message"`
	Action            string  `json:"action,omitempty"`
	ForcedSignal      string  `json:"forced_signal,omitempty"`
	ForcedConfidence  int     `json:"forced_confidence,omitempty"`
	ForceOverride     bool    `json:"force_override,omitempty"`
	ConfidencePenalty int     `json:"confidence_penalty,omitempty"`
	RiskReward        float64 `json:"rr_ratio,omitempty"`
	VolumeRatio       float64 `json:"volume_ratio,omitempty"`
	RSI               float64 `json:"rsi,omitempty"`
	StochRSIK         float64 `json:"stoch_rsi_k,omitempty"`
	PriceChange       float64 `json:"price_change,omitempty"`
	FreeCashFlow      float64 `json:"free_cash_flow,omitempty"`
	DebtToEquity      float64 `json:"debt_to_equity,omitempty"`
	DaysUntil         int     `json:"days_until,omitempty"`
}

// DropAlert describes an anomalous single-session drop
type DropAlert struct {
	DropPercent   float64 `json:"drop_percent"`
	PreviousClose float64 `json:"previous_close"`
	CurrentClose  float64 `json:"current_close"`
	VolumeSpike   bool    `json:"volume_spike"`
	VolumeRatio   float64 `json:"volume_ratio"`
	Warning       string  `json:"warning"`
	Action        string  `json:"action"`
}

// GapReversalAlert describes a gap-down open recovered intraday on volume
type GapReversalAlert struct {
	GapPercent      float64 `json:"gap_percent"`
	RecoveryPercent float64 `json:"recovery_percent"`
	VolumeRatio     float64 `json:"volume_ratio"`
	Signal          string  `json:"signal"`
	Message         string  `json:"message"`
	Action          string  `json:"action"`
}

// RiskRewardCap is the result of capping an R/R ratio for display
type RiskRewardCap struct {
	Displayed float64 `json:"rr_ratio"`
	Actual    float64 `json:"actual_rr"`
	Capped    bool    `json:"capped"`
	Message   string  `json:"message,omitempty"`
	Warning   string  `json:"warning,omitempty"`
}

// SignalDecision is the final output of the decision engine
type SignalDecision struct {
	Signal         string            `json:"signal"`
	Confidence     int               `json:"confidence"`
	Reasons        []string          `json:"reasons"`
	Warnings       []string          `json:"warnings"`
	OverrideReason string            `json:"override_reason,omitempty"`
	Alerts         []ProtectionAlert `json:"advanced_alerts,omitempty"`
	MassiveDrop    *DropAlert        `json:"massive_drop,omitempty"`
}

// Fundamentals is the nullable company fundamentals record supplied by the
// data provider. Nil pointers mean the field is unavailable.
type Fundamentals struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name,omitempty"`
	FreeCashFlow *float64 `json:"free_cash_flow,omitempty"`
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	MarketCap    *float64 `json:"market_cap,omitempty"`
}

// VIX levels
const (
	VIXLow     = "LOW"
	VIXNormal  = "NORMAL"
	VIXHigh    = "HIGH"
	VIXExtreme = "EXTREME"
	VIXUnknown = "unknown"
)

// VIXReading is the volatility index snapshot
type VIXReading struct {
	Value          *float64 `json:"value"`
	Level          string   `json:"level"`
	HighVolatility bool     `json:"high_volatility"`
}

// IndexTrend is the broad-market index snapshot
type IndexTrend struct {
	Trend         string  `json:"trend"` // "UP", "DOWN", "unknown"
	ChangePercent float64 `json:"change_percent"`
}

// MarketContext bundles the market-wide inputs to the decision engine
type MarketContext struct {
	VIX   VIXReading `json:"vix"`
	Index IndexTrend `json:"sp500"`
}

// EntryOptimization is the result of searching for a better entry level
type EntryOptimization struct {
	Optimized       bool    `json:"optimized"`
	CurrentRR       float64 `json:"current_rr"`
	IdealEntry      float64 `json:"ideal_entry"`
	IdealStopLoss   float64 `json:"ideal_sl"`
	IdealTakeProfit float64 `json:"ideal_tp"`
	IdealRR         float64 `json:"ideal_rr"`
	EntryLevel      string  `json:"entry_level,omitempty"`
	PullbackPercent float64 `json:"pullback_distance,omitempty"`
	Message         string  `json:"message"`
	Warning         string  `json:"warning,omitempty"`
	Action          string  `json:"action,omitempty"`
	Success         bool    `json:"success,omitempty"`
}

// TrailingStopPlan is an ATR-based trailing stop suggestion
type TrailingStopPlan struct {
	Stop            float64 `json:"trailing_stop"`
	DistancePercent float64 `json:"distance_percent"`
	Message         string  `json:"message"`
}

// TakeProfitPlan is a dynamically chosen take-profit level
type TakeProfitPlan struct {
	TakeProfit     float64 `json:"take_profit"`
	Type           string  `json:"type"` // "intermediate_resistance" or "historical_resistance"
	ReferenceLevel float64 `json:"reference_level"`
	Adjusted       bool    `json:"adjusted"`
	Reason         string  `json:"reason"`
}

// StopLossPlan is an ATR-based stop with a support-level sanity check
type StopLossPlan struct {
	StopLoss float64 `json:"stop_loss"`
	Adjusted bool    `json:"adjusted"`
	Message  string  `json:"message,omitempty"`
}

// RiskLevel is the final qualitative risk assessment
type RiskLevel struct {
	Level    string `json:"level"`
	Factors  string `json:"factors"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// AfterHoursMover is one symbol flagged by the after-hours scanner
type AfterHoursMover struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	ChangePercent float64 `json:"change_percent"`
	Volume        float64 `json:"volume"`
	VolumeRatio   float64 `json:"volume_ratio"`
	Session       string  `json:"session"` // "post-market" or "pre-market"
}
