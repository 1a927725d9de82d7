package indicators

// Trend classifies the EMA stack alignment.
type Trend string

const (
	Bullish Trend = "bullish"
	Bearish Trend = "bearish"
	Neutral Trend = "neutral"
)

// Strong reports whether the trend is directional (non-neutral).
func (t Trend) Strong() bool {
	return t == Bullish || t == Bearish
}

// TrendDirection classifies trend by EMA alignment: bullish iff
// price > ema20 > ema50 > ema200, bearish iff the exact reverse,
// otherwise neutral.
func TrendDirection(price, ema20, ema50, ema200 float64) Trend {
	switch {
	case price > ema20 && ema20 > ema50 && ema50 > ema200:
		return Bullish
	case price < ema20 && ema20 < ema50 && ema50 < ema200:
		return Bearish
	default:
		return Neutral
	}
}
