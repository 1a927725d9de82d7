package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tradegate/tradegate/indicators"
	"github.com/tradegate/tradegate/market"
	"github.com/tradegate/tradegate/metrics"
	"github.com/tradegate/tradegate/pkg/id"
	"github.com/tradegate/tradegate/risk"
	"github.com/tradegate/tradegate/signal"
)

// DefaultStaleAfter is the price staleness window: data older than this
// is invalid input and fails rather than being estimated around.
const DefaultStaleAfter = 300 * time.Second

// avgVolumeWindow is the trailing window for the validator's average
// volume baseline.
const avgVolumeWindow = 20

// Config assembles the pipeline from its component configurations.
type Config struct {
	Signal     signal.Config    `json:"signal" yaml:"signal"`
	Sizer      risk.SizerConfig `json:"risk" yaml:"risk"`
	Limits     risk.Limits      `json:"limits" yaml:"limits"`
	StaleAfter time.Duration    `json:"stale_after" yaml:"stale_after"`
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Signal:     signal.DefaultConfig(),
		Sizer:      risk.DefaultSizerConfig(),
		Limits:     risk.DefaultLimits(),
		StaleAfter: DefaultStaleAfter,
	}
}

// Pipeline runs the full validation chain: indicator snapshot →
// signal validation → risk plan → risk context → decision. It holds no
// mutable state, so one instance serves arbitrarily many concurrent
// evaluations.
type Pipeline struct {
	validator  *signal.Validator
	sizer      *risk.Sizer
	limits     risk.Limits
	staleAfter time.Duration
	metrics    *metrics.Metrics
}

// New builds a Pipeline, validating every component configuration up
// front so a misconfigured pipeline can never evaluate a trade.
func New(cfg Config) (*Pipeline, error) {
	v, err := signal.New(cfg.Signal)
	if err != nil {
		return nil, err
	}
	s, err := risk.NewSizer(cfg.Sizer)
	if err != nil {
		return nil, err
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, fmt.Errorf("risk limits: %w", err)
	}
	staleAfter := cfg.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}

	return &Pipeline{
		validator:  v,
		sizer:      s,
		limits:     cfg.Limits,
		staleAfter: staleAfter,
	}, nil
}

// WithMetrics attaches decision counters to the pipeline.
func (pl *Pipeline) WithMetrics(m *metrics.Metrics) *Pipeline {
	pl.metrics = m
	return pl
}

// Evaluate runs one proposal through the pipeline and returns the
// decision. now is threaded explicitly to keep the run deterministic;
// the account state must be read fresh by the caller immediately
// before this call.
//
// Evaluate either returns a complete decision or fails with one of the
// typed errors (insufficient data, stale data, invalid proposal). It
// never estimates missing values.
func (pl *Pipeline) Evaluate(p market.Proposal, bars market.Series, state market.AccountState, highRiskEvent bool, now time.Time) (Decision, error) {
	return pl.evaluate(p, bars, pl.limits.Evaluate(state), state.Balance, highRiskEvent, now)
}

// EvaluateFailSafe runs the pipeline with a fail-safe STOP_TRADING
// context, for callers whose account store could not be read. Favoring
// caution, the decision comes out as a halt rather than defaulting the
// account to NORMAL.
func (pl *Pipeline) EvaluateFailSafe(p market.Proposal, bars market.Series, cause error, highRiskEvent bool, now time.Time) (Decision, error) {
	return pl.evaluate(p, bars, pl.limits.FailSafe(cause), 0, highRiskEvent, now)
}

func (pl *Pipeline) evaluate(p market.Proposal, bars market.Series, riskCtx risk.Context, balance float64, highRiskEvent bool, now time.Time) (Decision, error) {
	if err := p.Validate(); err != nil {
		return Decision{}, err
	}
	if err := market.CheckFresh(p.PriceTime, now, pl.staleAfter); err != nil {
		return Decision{}, fmt.Errorf("%s: %w", p.Symbol, err)
	}

	set, err := indicators.Snapshot(bars)
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", p.Symbol, err)
	}

	last := bars.Last()
	vres, err := pl.validator.Validate(signal.Input{
		Price:      p.CurrentPrice,
		Set:        set,
		Volume:     last.Volume,
		AvgVolume:  avgVolume(bars, avgVolumeWindow),
		Candle:     last,
		Trend:      set.Trend,
		Volatility: set.ATR / p.CurrentPrice * 100,
		Strategy:   p.Strategy,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", p.Symbol, err)
	}
	if pl.metrics != nil && !vres.IsValid {
		pl.metrics.ValidationFailures.Inc()
	}

	// An unreadable/halted account skips sizing: the halt already
	// controls the decision and a zero balance cannot size anything.
	var plan risk.Plan
	if balance > 0 {
		plan, err = pl.sizer.Plan(p, balance)
		if err != nil {
			return Decision{}, err
		}
	}

	d := Decide(vres, plan, riskCtx, highRiskEvent, now)
	d.ID = id.New()
	d.Context.Symbol = p.Symbol
	d.Context.Strategy = p.Strategy
	d.Context.Direction = p.Direction

	if pl.metrics != nil {
		pl.metrics.DecisionsTotal.WithLabelValues(string(d.Action)).Inc()
	}

	return d, nil
}

// avgVolume returns the mean volume over the trailing window, using
// the whole series when it is shorter than the window.
func avgVolume(bars market.Series, window int) float64 {
	if len(bars) == 0 {
		return 0
	}
	if window > len(bars) {
		window = len(bars)
	}
	sum := 0.0
	for i := len(bars) - window; i < len(bars); i++ {
		sum += bars[i].Volume
	}
	return sum / float64(window)
}

// AccountReader supplies a fresh account snapshot on demand. The
// pipeline treats it as read-only and never caches across decisions.
type AccountReader interface {
	AccountState(ctx context.Context) (market.AccountState, error)
}

// EventWatcher reports whether a high-impact macro event is pending
// for a symbol. The pipeline never computes this itself.
type EventWatcher interface {
	HighRiskEvent(ctx context.Context, symbol string, at time.Time) (bool, error)
}
