package indicators

import (
	"fmt"
	"math"
)

// SMA calculates the Simple Moving Average of the trailing window.
func SMA(series []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if err := checkSeries(series, period); err != nil {
		return 0, err
	}

	sum := 0.0
	for i := len(series) - period; i < len(series); i++ {
		sum += series[i]
	}
	return sum / float64(period), nil
}

// EMA calculates the Exponential Moving Average for the given period,
// seeded with the SMA of the first period values.
func EMA(series []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if err := checkSeries(series, period); err != nil {
		return 0, err
	}

	multiplier := 2.0 / float64(period+1)

	// Start with SMA for the first value
	sma := 0.0
	for i := 0; i < period; i++ {
		sma += series[i]
	}
	ema := sma / float64(period)

	for i := period; i < len(series); i++ {
		ema = (series[i]-ema)*multiplier + ema
	}

	return ema, nil
}

// emaSeries returns the full EMA sequence aligned with the input: the
// first period-1 slots are NaN, slot period-1 holds the SMA seed, and
// later slots follow the EMA recurrence. MACD needs the whole sequence,
// not just the final value.
func emaSeries(series []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if err := checkSeries(series, period); err != nil {
		return nil, err
	}

	multiplier := 2.0 / float64(period+1)
	out := make([]float64, len(series))

	sum := 0.0
	for i := 0; i < period-1; i++ {
		sum += series[i]
		out[i] = math.NaN()
	}
	sum += series[period-1]
	out[period-1] = sum / float64(period)

	for i := period; i < len(series); i++ {
		out[i] = (series[i]-out[i-1])*multiplier + out[i-1]
	}
	return out, nil
}

// stddev returns the population standard deviation of the trailing
// window. The caller guarantees len(series) >= period.
func stddev(series []float64, period int, mean float64) float64 {
	sum := 0.0
	for i := len(series) - period; i < len(series); i++ {
		d := series[i] - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(period))
}
