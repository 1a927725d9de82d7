package indicators

import "fmt"

// MACDValue holds the three MACD outputs.
type MACDValue struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// MACD calculates Moving Average Convergence/Divergence:
// line = EMA(fast) - EMA(slow), signal = EMA(line, signalPeriod),
// histogram = line - signal.
func MACD(series []float64, fast, slow, signal int) (MACDValue, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDValue{}, fmt.Errorf("periods must be positive, got %d/%d/%d", fast, slow, signal)
	}
	if fast >= slow {
		return MACDValue{}, fmt.Errorf("fast period %d must be below slow period %d", fast, slow)
	}
	// The signal line needs signal MACD values, and the first MACD value
	// appears once the slow EMA is seeded.
	if err := checkSeries(series, slow+signal-1); err != nil {
		return MACDValue{}, err
	}

	fastEMA, err := emaSeries(series, fast)
	if err != nil {
		return MACDValue{}, err
	}
	slowEMA, err := emaSeries(series, slow)
	if err != nil {
		return MACDValue{}, err
	}

	// MACD line is defined from the slow seed onward.
	line := make([]float64, 0, len(series)-slow+1)
	for i := slow - 1; i < len(series); i++ {
		line = append(line, fastEMA[i]-slowEMA[i])
	}

	sig, err := EMA(line, signal)
	if err != nil {
		return MACDValue{}, err
	}

	last := line[len(line)-1]
	return MACDValue{
		Line:      last,
		Signal:    sig,
		Histogram: last - sig,
	}, nil
}
