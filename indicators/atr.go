package indicators

import (
	"fmt"
	"math"

	"github.com/tradegate/tradegate/market"
)

// ATR calculates the Average True Range: the first period true ranges
// seed a simple mean, then Wilder's smoothing carries it forward.
// Needs period+1 bars because the true range uses the previous close.
func ATR(bars market.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(bars) < period+1 {
		return 0, fmt.Errorf("%w: ATR needs %d bars, got %d",
			market.ErrInsufficientData, period+1, len(bars))
	}
	if err := bars.Validate(); err != nil {
		return 0, err
	}

	trs := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		trs = append(trs, trueRange(bars[i], bars[i-1]))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trs[i]
	}
	atr := sum / float64(period)

	for i := period; i < len(trs); i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
	}

	return atr, nil
}

// trueRange calculates the True Range for a bar given the previous bar.
func trueRange(current, previous market.Bar) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - previous.Close)
	lowClose := math.Abs(current.Low - previous.Close)

	return math.Max(highLow, math.Max(highClose, lowClose))
}
