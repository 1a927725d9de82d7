package market

import (
	"fmt"
	"time"
)

// Direction is the side of a proposed trade.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Sign returns +1 for long and -1 for short.
func (d Direction) Sign() float64 {
	if d == Short {
		return -1
	}
	return 1
}

// Valid reports whether the direction is a known value.
func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// ProductType selects the instrument wrapper a plan is sized for.
// Each product carries its own leverage cap.
type ProductType string

const (
	CFD      ProductType = "CFD"
	KnockOut ProductType = "KO"
	Futures  ProductType = "FUTURES"
)

// Valid reports whether the product type is a known value.
func (p ProductType) Valid() bool {
	switch p {
	case CFD, KnockOut, Futures:
		return true
	}
	return false
}

// Strategy identifies the signal source that produced a proposal.
// The set is closed; unknown identifiers never gain priority.
type Strategy string

const (
	StrategyBreakout    Strategy = "breakout"
	StrategyPullback    Strategy = "pullback"
	StrategyReversal    Strategy = "reversal"
	StrategyMomentum    Strategy = "momentum"
	StrategyNewsSpike   Strategy = "news-spike"
	StrategyRangeBounce Strategy = "range-bounce"
)

// prioritySet lists the strategies allowed to supersede a lower-priority
// pullback signal on the same instrument/timeframe.
var prioritySet = map[Strategy]bool{
	StrategyBreakout:  true,
	StrategyNewsSpike: true,
}

// IsPriority reports whether this strategy class carries the
// priority-override flag.
func (s Strategy) IsPriority() bool {
	return prioritySet[s]
}

// Proposal is a candidate trade produced by an external signal source.
// It is consumed once and read-only inside the pipeline.
type Proposal struct {
	Symbol         string      `json:"symbol" yaml:"symbol"`
	Strategy       Strategy    `json:"strategy_id" yaml:"strategy_id"`
	Direction      Direction   `json:"direction" yaml:"direction"`
	Product        ProductType `json:"product_type" yaml:"product_type"`
	EntryPrice     float64     `json:"entry_price" yaml:"entry_price"`
	StopLoss       float64     `json:"stop_loss" yaml:"stop_loss"`
	TakeProfitHint float64     `json:"take_profit_hint,omitempty" yaml:"take_profit_hint,omitempty"`
	CurrentPrice   float64     `json:"current_price" yaml:"current_price"`
	PriceTime      time.Time   `json:"price_timestamp" yaml:"price_timestamp"`
	DataOrigin     string      `json:"data_origin" yaml:"data_origin"`
}

// Validate performs structural checks on the proposal. Price-level and
// risk checks live in the risk package; this only rejects proposals the
// pipeline cannot interpret at all.
func (p Proposal) Validate() error {
	if p.Symbol == "" {
		return fmt.Errorf("%w: missing symbol", ErrInvalidProposal)
	}
	if !p.Direction.Valid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidProposal, p.Direction)
	}
	if !p.Product.Valid() {
		return fmt.Errorf("%w: unknown product type %q", ErrInvalidProposal, p.Product)
	}
	if !Finite(p.EntryPrice, p.StopLoss, p.CurrentPrice) {
		return fmt.Errorf("%w: non-finite price on %s", ErrInvalidProposal, p.Symbol)
	}
	if p.EntryPrice <= 0 || p.StopLoss <= 0 {
		return fmt.Errorf("%w: non-positive entry/stop on %s", ErrInvalidProposal, p.Symbol)
	}
	if p.EntryPrice == p.StopLoss {
		return fmt.Errorf("%w: entry equals stop (%.5f) on %s", ErrInvalidProposal, p.EntryPrice, p.Symbol)
	}
	if p.CurrentPrice <= 0 {
		return fmt.Errorf("%w: current price unresolved on %s", ErrInvalidProposal, p.Symbol)
	}
	return nil
}

// AccountState is a point-in-time snapshot of the trading account.
// It is read fresh immediately before each decision and never cached.
type AccountState struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	OpenTrades int     `json:"open_trades_count"`
	DailyPnL   float64 `json:"daily_pnl"` // realized, in account currency
}
