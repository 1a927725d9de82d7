package indicators

import "fmt"

// Bands holds Bollinger Band levels.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Bollinger calculates Bollinger Bands: middle = SMA(period),
// upper/lower = middle ± k standard deviations (population σ over the
// trailing window).
func Bollinger(series []float64, period int, k float64) (Bands, error) {
	if period <= 0 {
		return Bands{}, fmt.Errorf("period must be positive, got %d", period)
	}
	if k <= 0 {
		return Bands{}, fmt.Errorf("k must be positive, got %g", k)
	}
	if err := checkSeries(series, period); err != nil {
		return Bands{}, err
	}

	middle, err := SMA(series, period)
	if err != nil {
		return Bands{}, err
	}
	sigma := stddev(series, period, middle)

	return Bands{
		Upper:  middle + k*sigma,
		Middle: middle,
		Lower:  middle - k*sigma,
	}, nil
}
