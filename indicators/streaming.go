package indicators

import (
	"fmt"

	"github.com/tradegate/tradegate/market"
)

// EMAStream is a streaming Exponential Moving Average indicator for
// callers that consume bars incrementally instead of re-deriving a
// snapshot per request.
type EMAStream struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMAStream creates a streaming EMA with the given period.
func NewEMAStream(period int) *EMAStream {
	return &EMAStream{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *EMAStream) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *EMAStream) Warmup() int {
	return e.period
}

func (e *EMAStream) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *EMAStream) Update(b market.Bar) {
	if e.count < e.period {
		// During warmup, accumulate sum for initial SMA
		e.warmupSum += b.Close
		e.count++
		if e.count == e.period {
			// Initialize EMA with SMA
			e.ema = e.warmupSum / float64(e.period)
		}
	} else {
		e.ema = (b.Close-e.ema)*e.multiplier + e.ema
	}
}

func (e *EMAStream) Ready() bool {
	return e.count >= e.period
}

func (e *EMAStream) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}

// ATRStream is a streaming Average True Range indicator.
type ATRStream struct {
	period      int
	atr         float64
	count       int
	warmupSum   float64
	prevBar     market.Bar
	hasPrevious bool
}

// NewATRStream creates a streaming ATR with the given period.
func NewATRStream(period int) *ATRStream {
	return &ATRStream{period: period}
}

func (a *ATRStream) Name() string {
	return fmt.Sprintf("ATR(%d)", a.period)
}

func (a *ATRStream) Warmup() int {
	// Need period+1 bars because TR requires the previous bar
	return a.period + 1
}

func (a *ATRStream) Reset() {
	a.atr = 0
	a.count = 0
	a.warmupSum = 0
	a.hasPrevious = false
}

func (a *ATRStream) Update(b market.Bar) {
	if !a.hasPrevious {
		a.prevBar = b
		a.hasPrevious = true
		return
	}

	tr := trueRange(b, a.prevBar)

	if a.count < a.period {
		// During warmup, accumulate sum for initial ATR
		a.warmupSum += tr
		a.count++
		if a.count == a.period {
			a.atr = a.warmupSum / float64(a.period)
		}
	} else {
		// Wilder's smoothing
		a.atr = (a.atr*float64(a.period-1) + tr) / float64(a.period)
	}

	a.prevBar = b
}

func (a *ATRStream) Ready() bool {
	return a.count >= a.period
}

func (a *ATRStream) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.atr
}

var (
	_ Indicator = (*EMAStream)(nil)
	_ Indicator = (*ATRStream)(nil)
)
