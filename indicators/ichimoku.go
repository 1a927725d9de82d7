package indicators

import (
	"fmt"

	"github.com/tradegate/tradegate/market"
)

// IchimokuValue holds the five Ichimoku components evaluated at the
// latest bar. Senkou A/B are the values that would be projected forward
// and Chikou is the close projected backward; projection offsets are a
// charting concern, so only the values are reported here.
type IchimokuValue struct {
	Tenkan  float64
	Kijun   float64
	SenkouA float64
	SenkouB float64
	Chikou  float64
}

// Ichimoku calculates the Ichimoku components: tenkan and kijun are
// midpoints of the trailing high/low over their windows, senkou A is
// the tenkan/kijun midpoint, senkou B the midpoint over the long
// window, and chikou the latest close.
func Ichimoku(bars market.Series, tenkan, kijun, senkouB int) (IchimokuValue, error) {
	if tenkan <= 0 || kijun <= 0 || senkouB <= 0 {
		return IchimokuValue{}, fmt.Errorf("periods must be positive, got %d/%d/%d", tenkan, kijun, senkouB)
	}
	need := max(tenkan, max(kijun, senkouB))
	if len(bars) < need {
		return IchimokuValue{}, fmt.Errorf("%w: ichimoku needs %d bars, got %d",
			market.ErrInsufficientData, need, len(bars))
	}
	if err := bars.Validate(); err != nil {
		return IchimokuValue{}, err
	}

	t := midpoint(bars, tenkan)
	k := midpoint(bars, kijun)

	return IchimokuValue{
		Tenkan:  t,
		Kijun:   k,
		SenkouA: (t + k) / 2,
		SenkouB: midpoint(bars, senkouB),
		Chikou:  bars.Last().Close,
	}, nil
}

// midpoint returns (highest high + lowest low) / 2 over the trailing
// window. The caller guarantees len(bars) >= period.
func midpoint(bars market.Series, period int) float64 {
	hi := bars[len(bars)-period].High
	lo := bars[len(bars)-period].Low
	for i := len(bars) - period + 1; i < len(bars); i++ {
		if bars[i].High > hi {
			hi = bars[i].High
		}
		if bars[i].Low < lo {
			lo = bars[i].Low
		}
	}
	return (hi + lo) / 2
}
