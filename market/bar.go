// Package market defines the price and trade entities shared by the
// validation pipeline: OHLC bars, trade proposals, and account state.
package market

import (
	"fmt"
	"math"
	"time"
)

// Bar represents one OHLC candlestick with its volume.
// Bars are immutable once produced by the data source.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Body returns the absolute open-to-close distance.
func (b Bar) Body() float64 {
	return math.Abs(b.Close - b.Open)
}

// Range returns the high-to-low distance.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// Bullish reports whether the bar closed above its open.
func (b Bar) Bullish() bool {
	return b.Close > b.Open
}

// Series is an ordered sequence of bars for one symbol/timeframe.
type Series []Bar

// Closes returns the close prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high prices in order.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}
	return out
}

// Lows returns the low prices in order.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

// Last returns the most recent bar. It panics on an empty series;
// callers must Validate first.
func (s Series) Last() Bar {
	return s[len(s)-1]
}

// Validate rejects empty series and bars carrying NaN/Inf prices.
func (s Series) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty series", ErrInsufficientData)
	}
	for i, b := range s {
		if !Finite(b.Open, b.High, b.Low, b.Close, b.Volume) {
			return fmt.Errorf("%w: non-finite value in bar %d at %s",
				ErrInsufficientData, i, b.Time.Format(time.RFC3339))
		}
	}
	return nil
}

// CheckFresh rejects a price timestamp older than maxAge relative to now.
func CheckFresh(priceTime, now time.Time, maxAge time.Duration) error {
	age := now.Sub(priceTime)
	if age > maxAge {
		return fmt.Errorf("%w: price is %s old (max %s)",
			ErrStaleData, age.Round(time.Second), maxAge)
	}
	return nil
}

// Finite reports whether every value is a normal float (no NaN/Inf).
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
