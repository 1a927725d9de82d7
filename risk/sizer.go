// Package risk computes position sizing, R-multiple targets, and the
// account-level risk mode that throttles trading.
//
// All monetary arithmetic uses fixed formulas. Division by zero
// (entry == stop) and non-positive balances fail with explicit errors
// rather than producing NaN results.
package risk

import (
	"fmt"
	"math"

	"github.com/tradegate/tradegate/market"
)

// SizerConfig holds the fixed risk parameters. MinRR is the single
// minimum risk/reward knob; every caller that disagrees with it is a
// bug, not a second configuration point.
type SizerConfig struct {
	RiskPerTrade float64 `json:"risk_per_trade" yaml:"risk_per_trade"` // fraction of balance, default 0.01
	MinRR        float64 `json:"min_rr" yaml:"min_rr"`                 // default 2.0
	BreakEvenR   float64 `json:"break_even_r" yaml:"break_even_r"`     // default 0.5
	KOBuffer     float64 `json:"ko_buffer" yaml:"ko_buffer"`           // default 0.005
}

// DefaultSizerConfig returns the standard parameters: 1% risk per
// trade, 2.0 minimum R:R, 0.5R break-even trigger, 0.5% KO buffer.
func DefaultSizerConfig() SizerConfig {
	return SizerConfig{
		RiskPerTrade: 0.01,
		MinRR:        2.0,
		BreakEvenR:   0.5,
		KOBuffer:     0.005,
	}
}

// Validate checks the configuration ranges.
func (c SizerConfig) Validate() error {
	if c.RiskPerTrade <= 0 || c.RiskPerTrade > 0.1 {
		return fmt.Errorf("risk_per_trade must be in (0, 0.1], got %.4f", c.RiskPerTrade)
	}
	if c.MinRR <= 0 {
		return fmt.Errorf("min_rr must be positive, got %.2f", c.MinRR)
	}
	if c.BreakEvenR <= 0 {
		return fmt.Errorf("break_even_r must be positive, got %.2f", c.BreakEvenR)
	}
	if c.KOBuffer <= 0 || c.KOBuffer >= 0.1 {
		return fmt.Errorf("ko_buffer must be in (0, 0.1), got %.4f", c.KOBuffer)
	}
	return nil
}

// Leverage caps per product type.
const (
	MaxLeverageCFD     = 30.0
	MaxLeverageKO      = 10.0
	MaxLeverageFutures = 20.0
)

// LeverageCap returns the maximum allowed leverage for a product.
func LeverageCap(p market.ProductType) float64 {
	switch p {
	case market.KnockOut:
		return MaxLeverageKO
	case market.Futures:
		return MaxLeverageFutures
	default:
		return MaxLeverageCFD
	}
}

// Sizer computes risk plans. It is stateless and safe for concurrent use.
type Sizer struct {
	cfg SizerConfig
}

// NewSizer creates a Sizer, rejecting invalid configurations.
func NewSizer(cfg SizerConfig) (*Sizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sizer config: %w", err)
	}
	return &Sizer{cfg: cfg}, nil
}

// Config returns the sizer's configuration.
func (s *Sizer) Config() SizerConfig {
	return s.cfg
}

// RiskAmount returns the per-trade risk cap for a balance.
func (s *Sizer) RiskAmount(balance float64) float64 {
	return balance * s.cfg.RiskPerTrade
}

// PositionSize computes size = riskAmount / |entry - stop|.
// Fails on entry == stop and on non-positive risk amounts.
func (s *Sizer) PositionSize(entry, stop, riskAmount float64) (float64, error) {
	if !market.Finite(entry, stop, riskAmount) {
		return 0, fmt.Errorf("%w: non-finite sizing input", market.ErrInvalidProposal)
	}
	if entry == stop {
		return 0, fmt.Errorf("%w: entry equals stop (%.5f)", market.ErrInvalidProposal, entry)
	}
	if riskAmount <= 0 {
		return 0, fmt.Errorf("%w: non-positive risk amount %.2f", market.ErrInvalidProposal, riskAmount)
	}
	return riskAmount / math.Abs(entry-stop), nil
}

// TakeProfit computes entry + sign(direction)·rr·1R.
func (s *Sizer) TakeProfit(entry, stop float64, dir market.Direction, rr float64) (float64, error) {
	if entry == stop {
		return 0, fmt.Errorf("%w: entry equals stop (%.5f)", market.ErrInvalidProposal, entry)
	}
	if rr <= 0 {
		return 0, fmt.Errorf("%w: non-positive risk/reward %.2f", market.ErrInvalidProposal, rr)
	}
	oneR := math.Abs(entry - stop)
	return entry + dir.Sign()*rr*oneR, nil
}

// LeverageCheck is the result of a leverage sanity check.
type LeverageCheck struct {
	Leverage float64
	Cap      float64
	IsSafe   bool
}

// Leverage computes positionValue / balance and compares it against the
// product's cap.
func (s *Sizer) Leverage(positionValue, balance float64, product market.ProductType) (LeverageCheck, error) {
	if balance <= 0 {
		return LeverageCheck{}, fmt.Errorf("%w: non-positive balance %.2f", market.ErrInvalidProposal, balance)
	}
	if !product.Valid() {
		return LeverageCheck{}, fmt.Errorf("%w: unknown product type %q", market.ErrInvalidProposal, product)
	}

	lev := positionValue / balance
	cap := LeverageCap(product)
	return LeverageCheck{
		Leverage: lev,
		Cap:      cap,
		IsSafe:   lev <= cap,
	}, nil
}

// KOResult describes a knock-out certificate threshold.
type KOResult struct {
	Threshold float64 `json:"threshold"`
	Leverage  float64 `json:"leverage"`
	Warning   string  `json:"warning,omitempty"`
}

// KOThreshold places the knock-out level a safety buffer beyond the
// stop: long → stop·(1−buffer), short → stop·(1+buffer). The implied
// leverage entry/|entry−KO| is flagged when it exceeds the KO cap.
func (s *Sizer) KOThreshold(entry, stop float64, dir market.Direction) (KOResult, error) {
	if entry <= 0 || stop <= 0 {
		return KOResult{}, fmt.Errorf("%w: non-positive entry/stop", market.ErrInvalidProposal)
	}
	if !dir.Valid() {
		return KOResult{}, fmt.Errorf("%w: unknown direction %q", market.ErrInvalidProposal, dir)
	}

	var threshold float64
	if dir == market.Long {
		threshold = stop * (1 - s.cfg.KOBuffer)
	} else {
		threshold = stop * (1 + s.cfg.KOBuffer)
	}

	dist := math.Abs(entry - threshold)
	if dist == 0 {
		return KOResult{}, fmt.Errorf("%w: knock-out threshold equals entry (%.5f)", market.ErrInvalidProposal, entry)
	}

	res := KOResult{
		Threshold: threshold,
		Leverage:  entry / dist,
	}
	if res.Leverage > MaxLeverageKO {
		res.Warning = fmt.Sprintf("extreme knock-out leverage %.1fx exceeds %.0fx cap", res.Leverage, MaxLeverageKO)
	}
	return res, nil
}

// BreakEvenResult reports whether the stop should move to entry.
type BreakEvenResult struct {
	RMultiple  float64
	ShouldMove bool
	NewStop    float64
}

// BreakEven computes the current R-multiple (sign-adjusted for
// direction) and signals "move stop to entry" once it reaches the
// configured trigger.
func (s *Sizer) BreakEven(entry, current, stop float64, dir market.Direction) (BreakEvenResult, error) {
	if entry == stop {
		return BreakEvenResult{}, fmt.Errorf("%w: entry equals stop (%.5f)", market.ErrInvalidProposal, entry)
	}
	if !dir.Valid() {
		return BreakEvenResult{}, fmt.Errorf("%w: unknown direction %q", market.ErrInvalidProposal, dir)
	}

	oneR := math.Abs(entry - stop)
	r := dir.Sign() * (current - entry) / oneR

	res := BreakEvenResult{RMultiple: r}
	if r >= s.cfg.BreakEvenR {
		res.ShouldMove = true
		res.NewStop = entry
	}
	return res, nil
}
