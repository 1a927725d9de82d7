package risk

import (
	"fmt"
	"math"

	"github.com/tradegate/tradegate/market"
)

// Plan is a complete risk plan for one proposal. A limit violation
// surfaces as warnings plus IsValid=false, not an error: callers may
// want the full plan for display even when it cannot be traded.
type Plan struct {
	PositionSize   float64   `json:"position_size"`
	RiskAmount     float64   `json:"risk_amount"`
	RiskPct        float64   `json:"risk_percentage"`
	OneR           float64   `json:"one_r"`
	TakeProfit     float64   `json:"take_profit"`
	RiskReward     float64   `json:"risk_reward"`
	Leverage       float64   `json:"leverage"`
	KO             *KOResult `json:"ko_data,omitempty"`
	BreakEvenPrice float64   `json:"break_even_price"`
	IsValid        bool      `json:"is_valid"`
	Warnings       []string  `json:"warnings,omitempty"`
}

// warn records a violation and invalidates the plan.
func (p *Plan) warn(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
	p.IsValid = false
}

// Check is the result of re-validating a proposed position size
// against the risk cap.
type Check struct {
	RiskAmount float64
	RiskPct    float64
	IsValid    bool
	Warnings   []string
}

func (c *Check) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
	c.IsValid = false
}

// riskTolerance absorbs float rounding when comparing a recomputed
// risk amount against the cap.
const riskTolerance = 1e-9

// ValidateTradeRisk recomputes risk amount and percentage from a
// proposed position size and checks them against the per-trade cap and
// leverage sanity.
func (s *Sizer) ValidateTradeRisk(entry, stop, size, balance float64, product market.ProductType) (Check, error) {
	if balance <= 0 {
		return Check{}, fmt.Errorf("%w: non-positive balance %.2f", market.ErrInvalidProposal, balance)
	}
	if entry == stop {
		return Check{}, fmt.Errorf("%w: entry equals stop (%.5f)", market.ErrInvalidProposal, entry)
	}

	c := Check{IsValid: true}

	if size <= 0 {
		c.warn("position size %.4f is non-positive", size)
		return c, nil
	}

	c.RiskAmount = size * math.Abs(entry-stop)
	c.RiskPct = c.RiskAmount / balance * 100

	cap := s.RiskAmount(balance)
	if c.RiskAmount > cap*(1+riskTolerance) {
		c.warn("risk %.2f exceeds %.2f%% cap (%.2f)", c.RiskAmount, s.cfg.RiskPerTrade*100, cap)
	}

	lev, err := s.Leverage(size*entry, balance, product)
	if err != nil {
		return Check{}, err
	}
	if !lev.IsSafe {
		c.warn("leverage %.1fx exceeds %.0fx cap for %s", lev.Leverage, lev.Cap, product)
	}

	return c, nil
}

// Plan builds the full risk plan for a proposal: position size, 1R,
// take-profit, leverage, optional knock-out data, and the break-even
// trigger price.
//
// The take-profit hint is honored when present; otherwise the target is
// placed at the configured minimum R:R. Either way the plan's realized
// R:R is checked against MinRR.
func (s *Sizer) Plan(p market.Proposal, balance float64) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	if balance <= 0 {
		return Plan{}, fmt.Errorf("%w: non-positive balance %.2f", market.ErrInvalidProposal, balance)
	}

	plan := Plan{IsValid: true}

	plan.RiskAmount = s.RiskAmount(balance)
	plan.RiskPct = s.cfg.RiskPerTrade * 100
	plan.OneR = math.Abs(p.EntryPrice - p.StopLoss)

	size, err := s.PositionSize(p.EntryPrice, p.StopLoss, plan.RiskAmount)
	if err != nil {
		return Plan{}, err
	}
	plan.PositionSize = size

	if p.TakeProfitHint > 0 {
		plan.TakeProfit = p.TakeProfitHint
		plan.RiskReward = p.Direction.Sign() * (p.TakeProfitHint - p.EntryPrice) / plan.OneR
	} else {
		tp, err := s.TakeProfit(p.EntryPrice, p.StopLoss, p.Direction, s.cfg.MinRR)
		if err != nil {
			return Plan{}, err
		}
		plan.TakeProfit = tp
		plan.RiskReward = s.cfg.MinRR
	}
	if plan.RiskReward < s.cfg.MinRR {
		plan.warn("risk/reward %.2f below minimum %.2f", plan.RiskReward, s.cfg.MinRR)
	}

	lev, err := s.Leverage(size*p.EntryPrice, balance, p.Product)
	if err != nil {
		return Plan{}, err
	}
	plan.Leverage = lev.Leverage
	if !lev.IsSafe {
		plan.warn("leverage %.1fx exceeds %.0fx cap for %s", lev.Leverage, lev.Cap, p.Product)
	}

	if p.Product == market.KnockOut {
		ko, err := s.KOThreshold(p.EntryPrice, p.StopLoss, p.Direction)
		if err != nil {
			return Plan{}, err
		}
		if ko.Warning != "" {
			plan.Warnings = append(plan.Warnings, ko.Warning)
		}
		plan.KO = &ko
	}

	// Stop moves to entry once the trade reaches the break-even trigger.
	plan.BreakEvenPrice = p.EntryPrice

	check, err := s.ValidateTradeRisk(p.EntryPrice, p.StopLoss, size, balance, p.Product)
	if err != nil {
		return Plan{}, err
	}
	if !check.IsValid {
		plan.Warnings = append(plan.Warnings, check.Warnings...)
		plan.IsValid = false
	}

	return plan, nil
}
