// Package engine combines validation, sizing, and account risk state
// into the final trade decision.
package engine

import (
	"time"

	"github.com/tradegate/tradegate/market"
	"github.com/tradegate/tradegate/risk"
	"github.com/tradegate/tradegate/signal"
)

// Action is one of the five terminal decisions.
type Action string

const (
	Execute Action = "EXECUTE"
	Reject  Action = "REJECT"
	Wait    Action = "WAIT"
	Halt    Action = "HALT"
	Reduce  Action = "REDUCE"
)

// Snapshot captures the context a decision was made in, for audit.
type Snapshot struct {
	Symbol           string             `json:"symbol"`
	Strategy         market.Strategy    `json:"strategy"`
	Direction        market.Direction   `json:"direction"`
	Confidence       float64            `json:"confidence"`
	Breakdown        map[string]float64 `json:"breakdown,omitempty"`
	PriorityOverride bool               `json:"priority_override"`
	Mode             risk.Mode          `json:"risk_mode"`
	HighRiskEvent    bool               `json:"high_risk_event"`
	Warnings         []string           `json:"warnings,omitempty"`
}

// Decision is the terminal artifact of one pipeline run. It is handed
// once to the report router and never mutated afterward.
type Decision struct {
	ID         string    `json:"id"`
	Action     Action    `json:"decision"`
	Reason     string    `json:"reason"`
	BiasScore  float64   `json:"bias_score"`
	RiskReward float64   `json:"risk_reward"`
	Time       time.Time `json:"timestamp"`
	Context    Snapshot  `json:"context_snapshot"`
}

// Decision reasons. Fixed strings so journal queries can group on them.
const (
	ReasonValidationFailed = "Validation failed"
	ReasonHighRiskEvent    = "High-impact event ahead"
	ReasonDailyLossLimit   = "Daily loss limit hit"
	ReasonMaxOpenTrades    = "Max concurrent trades reached"
	ReasonRiskLimits       = "Risk limits violated"
	ReasonAllChecksPassed  = "All checks passed"
)

// Decide applies the fixed precedence chain:
//
//	validation failed          → REJECT
//	high-impact event ahead    → WAIT
//	mode STOP_TRADING          → HALT
//	mode LIMITED_MODE          → REDUCE
//	risk plan invalid          → REJECT
//	otherwise                  → EXECUTE
//
// The order is load-bearing. Validation failure wins over everything; a
// pending macro event defers a technically valid trade instead of
// rejecting it; the account-level halt outranks trade-count throttling.
// An invalid risk plan is the final gate before execution so that an
// event or halt is still reported as the controlling cause.
func Decide(v signal.Result, plan risk.Plan, rc risk.Context, highRiskEvent bool, now time.Time) Decision {
	d := Decision{
		BiasScore:  v.Confidence,
		RiskReward: plan.RiskReward,
		Time:       now,
		Context: Snapshot{
			Confidence:       v.Confidence,
			Breakdown:        v.Breakdown,
			PriorityOverride: v.PriorityOverride,
			Mode:             rc.Mode,
			HighRiskEvent:    highRiskEvent,
			Warnings:         append(append([]string{}, rc.Warnings...), plan.Warnings...),
		},
	}

	switch {
	case !v.IsValid:
		d.Action, d.Reason = Reject, ReasonValidationFailed
	case highRiskEvent:
		d.Action, d.Reason = Wait, ReasonHighRiskEvent
	case rc.Mode == risk.ModeStopTrading:
		d.Action, d.Reason = Halt, ReasonDailyLossLimit
	case rc.Mode == risk.ModeLimited:
		d.Action, d.Reason = Reduce, ReasonMaxOpenTrades
	case !plan.IsValid:
		d.Action, d.Reason = Reject, ReasonRiskLimits
	default:
		d.Action, d.Reason = Execute, ReasonAllChecksPassed
	}

	return d
}
