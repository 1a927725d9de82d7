package signal

import (
	"fmt"
	"math"

	"github.com/tradegate/tradegate/indicators"
)

// scoreEMAAlignment scores the price/EMA stacking. A perfect bullish
// (price > ema20 > ema50 > ema200) or bearish stack scores 1.0; partial
// ordering earns partial credit per satisfied link in the chain.
func scoreEMAAlignment(price, ema20, ema50, ema200 float64) float64 {
	bullish := 0
	if price > ema20 {
		bullish++
	}
	if ema20 > ema50 {
		bullish++
	}
	if ema50 > ema200 {
		bullish++
	}

	bearish := 0
	if price < ema20 {
		bearish++
	}
	if ema20 < ema50 {
		bearish++
	}
	if ema50 < ema200 {
		bearish++
	}

	links := bullish
	if bearish > links {
		links = bearish
	}

	switch links {
	case 3:
		return 1.0
	case 2:
		return 0.67
	case 1:
		return 0.33
	default:
		return 0.0
	}
}

// scorePivotConfluence maps the distance from price to the nearest
// pivot level through fixed bands. The central pivot is weighted 1.5x
// against the satellite levels, so a price sitting on PP beats one
// sitting equally close to R1.
func scorePivotConfluence(price float64, pivots indicators.PivotLevels) (float64, string) {
	const ppWeight = 1.5

	best := math.Inf(1)
	bestName := ""
	for _, lvl := range pivots.Levels() {
		if lvl.Price <= 0 {
			continue
		}
		dist := math.Abs(price-lvl.Price) / price * 100
		if lvl.Name == "PP" {
			dist /= ppWeight
		}
		if dist < best {
			best = dist
			bestName = lvl.Name
		}
	}

	var score float64
	switch {
	case best <= 0.1:
		score = 1.0
	case best <= 0.5:
		score = 0.8
	case best <= 1.0:
		score = 0.6
	case best <= 2.0:
		score = 0.4
	default:
		score = 0.2
	}

	note := ""
	if score >= 0.8 && bestName != "" {
		note = fmt.Sprintf("price near %s", bestName)
	}
	return score, note
}

// scoreVolume maps the current/average volume ratio through fixed bands.
// A missing average volume can only earn the floor score.
func scoreVolume(volume, avgVolume float64) float64 {
	if avgVolume <= 0 || volume < 0 {
		return 0.2
	}

	ratio := volume / avgVolume
	switch {
	case ratio >= 2.0:
		return 1.0
	case ratio >= 1.5:
		return 0.9
	case ratio >= 1.2:
		return 0.75
	case ratio >= 1.0:
		return 0.6
	case ratio >= 0.8:
		return 0.4
	default:
		return 0.2
	}
}

// scoreContext starts from a 0.5 base, adds 0.3 for a directional
// trend and 0.2 for volatility in the ideal band (0.10-0.25), with
// partial credit for near-ideal volatility.
func scoreContext(trend indicators.Trend, volatility float64) float64 {
	score := 0.5

	if trend.Strong() {
		score += 0.3
	}

	switch {
	case volatility >= 0.10 && volatility <= 0.25:
		score += 0.2
	case volatility >= 0.05 && volatility < 0.10,
		volatility > 0.25 && volatility <= 0.35:
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
