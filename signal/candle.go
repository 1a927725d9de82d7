package signal

import "github.com/tradegate/tradegate/market"

// Candle pattern classes, from strongest to weakest evidence.
const (
	patternHammer         = "hammer"
	patternInvertedHammer = "inverted-hammer"
	patternStrong         = "strong"
	patternModerate       = "moderate"
	patternDoji           = "doji"
	patternPlain          = "plain"
)

// scoreCandle classifies the latest closed candle and returns its
// structure score with a note naming the pattern.
//
// Thresholds are fractions of the full candle range: a hammer needs a
// wick over half the range and a body under 30%, a doji a body under
// 10%, and directional candles are graded by body share.
func scoreCandle(c market.Bar) (float64, string) {
	rng := c.Range()
	if rng <= 0 {
		// flat candle carries no structural information
		return 0.5, ""
	}

	body := c.Body() / rng
	upperWick := (c.High - max(c.Open, c.Close)) / rng
	lowerWick := (min(c.Open, c.Close) - c.Low) / rng

	switch pattern := classifyCandle(body, upperWick, lowerWick); pattern {
	case patternHammer, patternInvertedHammer:
		return 0.95, pattern + " candle"
	case patternStrong:
		return 0.9, "strong directional candle"
	case patternModerate:
		return 0.75, ""
	case patternDoji:
		return 0.7, "doji candle"
	default:
		return 0.5, ""
	}
}

// classifyCandle buckets a candle by its body and wick proportions.
// Wick-dominated shapes win over body-size classes: a long lower wick
// with a small body is a hammer even when the body is doji-sized.
func classifyCandle(body, upperWick, lowerWick float64) string {
	switch {
	case lowerWick > 0.5 && body < 0.3:
		return patternHammer
	case upperWick > 0.5 && body < 0.3:
		return patternInvertedHammer
	case body < 0.1:
		return patternDoji
	case body > 0.7:
		return patternStrong
	case body > 0.5:
		return patternModerate
	default:
		return patternPlain
	}
}
