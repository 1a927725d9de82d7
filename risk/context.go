package risk

import (
	"fmt"

	"github.com/tradegate/tradegate/market"
)

// Mode is the account-level throttle state.
type Mode string

const (
	ModeNormal      Mode = "NORMAL"
	ModeLimited     Mode = "LIMITED_MODE"
	ModeStopTrading Mode = "STOP_TRADING"
)

// Limits holds the account-level circuit breaker thresholds.
type Limits struct {
	MaxDailyLossPct float64 `json:"max_daily_loss_pct" yaml:"max_daily_loss_pct"` // default 3.0
	MaxOpenTrades   int     `json:"max_open_trades" yaml:"max_open_trades"`       // default 5
}

// DefaultLimits returns the standard circuit breakers: 3% daily loss,
// 5 concurrent trades.
func DefaultLimits() Limits {
	return Limits{
		MaxDailyLossPct: 3.0,
		MaxOpenTrades:   5,
	}
}

// Validate checks the limit ranges.
func (l Limits) Validate() error {
	if l.MaxDailyLossPct <= 0 {
		return fmt.Errorf("max_daily_loss_pct must be positive, got %.2f", l.MaxDailyLossPct)
	}
	if l.MaxOpenTrades <= 0 {
		return fmt.Errorf("max_open_trades must be positive, got %d", l.MaxOpenTrades)
	}
	return nil
}

// Context is the evaluated risk mode with the limits that produced it,
// so the decision stage and any caller can audit why a mode was
// selected.
type Context struct {
	Mode     Mode     `json:"mode"`
	Allowed  bool     `json:"allowed"`
	Warnings []string `json:"warnings,omitempty"`
	Limits   Limits   `json:"limits"`
}

// Evaluate derives the risk mode from a fresh account snapshot. Each
// call re-derives the mode from the supplied state; nothing is held
// between calls.
//
// Precedence: the daily loss breaker beats the open-trade throttle —
// an account that blew through its loss limit stops trading even when
// it has capacity for more positions.
func (l Limits) Evaluate(state market.AccountState) Context {
	ctx := Context{Mode: ModeNormal, Allowed: true, Limits: l}

	if state.Balance <= 0 {
		// Fail safe: a broken snapshot halts trading, never defaults to NORMAL.
		ctx.Mode = ModeStopTrading
		ctx.Allowed = false
		ctx.Warnings = append(ctx.Warnings,
			fmt.Sprintf("account balance %.2f is non-positive, trading halted", state.Balance))
		return ctx
	}

	dailyPct := state.DailyPnL / state.Balance * 100

	switch {
	case dailyPct <= -l.MaxDailyLossPct:
		ctx.Mode = ModeStopTrading
		ctx.Allowed = false
		ctx.Warnings = append(ctx.Warnings,
			fmt.Sprintf("daily loss %.2f%% breached %.2f%% limit", -dailyPct, l.MaxDailyLossPct))
	case state.OpenTrades >= l.MaxOpenTrades:
		ctx.Mode = ModeLimited
		ctx.Warnings = append(ctx.Warnings,
			fmt.Sprintf("open trades %d at max %d, new positions reduced", state.OpenTrades, l.MaxOpenTrades))
	}

	return ctx
}

// FailSafe returns a STOP_TRADING context for use when the account
// state cannot be read at all. Favoring caution, an unreadable account
// is treated exactly like one that hit its loss limit.
func (l Limits) FailSafe(cause error) Context {
	return Context{
		Mode:    ModeStopTrading,
		Allowed: false,
		Warnings: []string{
			fmt.Sprintf("account state unavailable (%v), trading halted", cause),
		},
		Limits: l,
	}
}
