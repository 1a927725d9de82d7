// Package signal scores a proposed entry against the current indicator
// snapshot and produces a weighted confidence verdict.
package signal

import (
	"fmt"
	"math"

	"github.com/tradegate/tradegate/indicators"
	"github.com/tradegate/tradegate/market"
)

// Breakdown keys, stable for journaling and display.
const (
	MetricEMAAlignment    = "ema_alignment"
	MetricPivotConfluence = "pivot_confluence"
	MetricVolume          = "volume_confirmation"
	MetricCandle          = "candle_structure"
	MetricContext         = "context_flow"
)

// Config holds the metric weights and the validity threshold.
// The five weights must sum to exactly 1.0; Validate enforces that at
// construction so a misconfigured validator can never score a trade.
type Config struct {
	WeightEMA     float64 `json:"weight_ema" yaml:"weight_ema"`
	WeightPivot   float64 `json:"weight_pivot" yaml:"weight_pivot"`
	WeightVolume  float64 `json:"weight_volume" yaml:"weight_volume"`
	WeightCandle  float64 `json:"weight_candle" yaml:"weight_candle"`
	WeightContext float64 `json:"weight_context" yaml:"weight_context"`

	// Threshold is the confidence a signal must exceed to pass.
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// DefaultConfig returns the standard weighting: EMA 0.25, pivot 0.20,
// volume 0.20, candle 0.20, context 0.15, threshold 0.8.
func DefaultConfig() Config {
	return Config{
		WeightEMA:     0.25,
		WeightPivot:   0.20,
		WeightVolume:  0.20,
		WeightCandle:  0.20,
		WeightContext: 0.15,
		Threshold:     0.8,
	}
}

// Validate checks the weight-sum invariant and threshold range.
func (c Config) Validate() error {
	sum := c.WeightEMA + c.WeightPivot + c.WeightVolume + c.WeightCandle + c.WeightContext
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("metric weights must sum to 1.0, got %.6f", sum)
	}
	for _, w := range []float64{c.WeightEMA, c.WeightPivot, c.WeightVolume, c.WeightCandle, c.WeightContext} {
		if w < 0 {
			return fmt.Errorf("metric weights must be non-negative, got %.4f", w)
		}
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0,1), got %.4f", c.Threshold)
	}
	return nil
}

// Input bundles everything the validator scores: the live price, the
// derived indicator snapshot, volume context, the latest closed candle,
// and the market context the signal was generated in.
type Input struct {
	Price      float64
	Set        indicators.Set
	Volume     float64
	AvgVolume  float64
	Candle     market.Bar
	Trend      indicators.Trend
	Volatility float64
	Strategy   market.Strategy
}

// Result is the validator's verdict with the full per-metric breakdown
// for explainability.
type Result struct {
	Confidence       float64            `json:"confidence"`
	IsValid          bool               `json:"is_valid"`
	Breakdown        map[string]float64 `json:"breakdown"`
	PriorityOverride bool               `json:"priority_override"`
	Notes            []string           `json:"notes,omitempty"`
}

// Validator scores proposed entries. It is stateless; one instance may
// serve arbitrarily many concurrent validations.
type Validator struct {
	cfg Config
}

// New creates a Validator, rejecting invalid weight configurations.
func New(cfg Config) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("signal config: %w", err)
	}
	return &Validator{cfg: cfg}, nil
}

// Validate computes the weighted confidence score for the input.
// confidence = Σ weight_i · score_i, all scores in [0,1].
func (v *Validator) Validate(in Input) (Result, error) {
	if !market.Finite(in.Price, in.Volume, in.AvgVolume, in.Volatility) {
		return Result{}, fmt.Errorf("%w: non-finite validation input", market.ErrInsufficientData)
	}
	if in.Price <= 0 {
		return Result{}, fmt.Errorf("%w: non-positive price %.5f", market.ErrInvalidProposal, in.Price)
	}

	res := Result{
		Breakdown:        make(map[string]float64, 5),
		PriorityOverride: in.Strategy.IsPriority(),
	}

	emaScore := scoreEMAAlignment(in.Price, in.Set.EMA20, in.Set.EMA50, in.Set.EMA200)
	pivotScore, pivotNote := scorePivotConfluence(in.Price, in.Set.Pivots)
	volScore := scoreVolume(in.Volume, in.AvgVolume)
	candleScore, candleNote := scoreCandle(in.Candle)
	ctxScore := scoreContext(in.Trend, in.Volatility)

	res.Breakdown[MetricEMAAlignment] = emaScore
	res.Breakdown[MetricPivotConfluence] = pivotScore
	res.Breakdown[MetricVolume] = volScore
	res.Breakdown[MetricCandle] = candleScore
	res.Breakdown[MetricContext] = ctxScore

	if pivotNote != "" {
		res.Notes = append(res.Notes, pivotNote)
	}
	if candleNote != "" {
		res.Notes = append(res.Notes, candleNote)
	}
	if res.PriorityOverride {
		res.Notes = append(res.Notes, fmt.Sprintf("priority strategy %s", in.Strategy))
	}

	res.Confidence = v.cfg.WeightEMA*emaScore +
		v.cfg.WeightPivot*pivotScore +
		v.cfg.WeightVolume*volScore +
		v.cfg.WeightCandle*candleScore +
		v.cfg.WeightContext*ctxScore

	res.IsValid = res.Confidence > v.cfg.Threshold

	return res, nil
}
