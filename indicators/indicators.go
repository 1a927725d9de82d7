// Package indicators provides technical analysis indicators for the
// validation pipeline.
//
// Every function is pure and stateless: it derives one value (or value
// group) from the series it is handed and never retains state between
// calls. A series shorter than the minimum window an indicator needs, or
// one containing NaN/Inf, fails with market.ErrInsufficientData — no
// indicator ever returns a partial or estimated value.
package indicators

import (
	"fmt"

	"github.com/tradegate/tradegate/market"
)

// Indicator computes a single streaming value from bars.
// It is deterministic and safe to use in live and replay processing.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)" or "ATR(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* bar and updates internal state.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. If !Ready(), it returns 0;
	// callers should always check Ready().
	Value() float64
}

// Set is the per-symbol indicator snapshot the validator consumes.
// It is recomputed on every validation request and never persisted.
type Set struct {
	EMA20     float64
	EMA50     float64
	EMA200    float64
	RSI       float64
	MACD      MACDValue
	Bollinger Bands
	ATR       float64
	Ichimoku  IchimokuValue
	Pivots    PivotLevels
	Trend     Trend
}

// SnapshotMinBars is the shortest series Snapshot accepts: the EMA200
// window dominates every other indicator's requirement.
const SnapshotMinBars = 200

// Snapshot derives a full indicator Set from an OHLC series using the
// conventional periods (EMA 20/50/200, RSI 14, MACD 12/26/9, Bollinger
// 20/2.0, ATR 14, Ichimoku 9/26/52). Pivot levels come from the
// second-to-last bar, treated as the previous completed period.
func Snapshot(bars market.Series) (Set, error) {
	if err := bars.Validate(); err != nil {
		return Set{}, err
	}
	if len(bars) < SnapshotMinBars {
		return Set{}, fmt.Errorf("%w: snapshot needs %d bars, got %d",
			market.ErrInsufficientData, SnapshotMinBars, len(bars))
	}

	closes := bars.Closes()

	var (
		set Set
		err error
	)
	if set.EMA20, err = EMA(closes, 20); err != nil {
		return Set{}, err
	}
	if set.EMA50, err = EMA(closes, 50); err != nil {
		return Set{}, err
	}
	if set.EMA200, err = EMA(closes, 200); err != nil {
		return Set{}, err
	}
	if set.RSI, err = RSI(closes, 14); err != nil {
		return Set{}, err
	}
	if set.MACD, err = MACD(closes, 12, 26, 9); err != nil {
		return Set{}, err
	}
	if set.Bollinger, err = Bollinger(closes, 20, 2.0); err != nil {
		return Set{}, err
	}
	if set.ATR, err = ATR(bars, 14); err != nil {
		return Set{}, err
	}
	if set.Ichimoku, err = Ichimoku(bars, 9, 26, 52); err != nil {
		return Set{}, err
	}

	prev := bars[len(bars)-2]
	set.Pivots = PivotPoints(prev.High, prev.Low, prev.Close)
	set.Trend = TrendDirection(bars.Last().Close, set.EMA20, set.EMA50, set.EMA200)

	return set, nil
}

// checkSeries rejects short or non-finite input. Every one-shot
// indicator funnels through this before doing arithmetic.
func checkSeries(series []float64, need int) error {
	if len(series) < need {
		return fmt.Errorf("%w: need %d values, got %d",
			market.ErrInsufficientData, need, len(series))
	}
	if !market.Finite(series...) {
		return fmt.Errorf("%w: series contains NaN/Inf", market.ErrInsufficientData)
	}
	return nil
}
