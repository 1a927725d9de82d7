package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/tradegate/market"
	"github.com/tradegate/tradegate/metrics"
)

// trendBars builds a steadily rising series whose final candle carries
// heavy volume and a strong body, so the default validator scores it
// well above the confidence threshold.
func trendBars(start time.Time) market.Series {
	bars := make(market.Series, 210)
	price := 100.0
	for i := range bars {
		open := price
		price += 0.1
		bars[i] = market.Bar{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   open,
			High:   price + 0.05,
			Low:    open - 0.05,
			Close:  price,
			Volume: 1000,
		}
	}

	last := &bars[len(bars)-1]
	last.High = last.Close + 0.01
	last.Low = last.Open - 0.01
	last.Volume = 2500

	return bars
}

func trendProposal(bars market.Series) market.Proposal {
	last := bars.Last()
	return market.Proposal{
		Symbol:       "GER40",
		Strategy:     market.StrategyBreakout,
		Direction:    market.Long,
		Product:      market.CFD,
		EntryPrice:   last.Close,
		StopLoss:     last.Close - 0.5,
		CurrentPrice: last.Close,
		PriceTime:    last.Time,
		DataOrigin:   "test-feed",
	}
}

func healthyAccount() market.AccountState {
	return market.AccountState{Balance: 10000, Equity: 10000, OpenTrades: 1, DailyPnL: 50}
}

func TestPipelineEvaluateExecute(t *testing.T) {
	t.Parallel()

	pl, err := New(DefaultConfig())
	require.NoError(t, err)

	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	bars := trendBars(start)
	p := trendProposal(bars)
	now := p.PriceTime.Add(time.Minute)

	d, err := pl.Evaluate(p, bars, healthyAccount(), false, now)
	require.NoError(t, err)

	assert.Equal(t, Execute, d.Action)
	assert.Equal(t, ReasonAllChecksPassed, d.Reason)
	assert.NotEmpty(t, d.ID)
	assert.Greater(t, d.BiasScore, 0.8)
	assert.InDelta(t, 2.0, d.RiskReward, 1e-9)
	assert.Equal(t, "GER40", d.Context.Symbol)
	assert.Equal(t, market.Long, d.Context.Direction)
	assert.Len(t, d.Context.Breakdown, 5)
}

func TestPipelineEvaluateStaleData(t *testing.T) {
	t.Parallel()

	pl, err := New(DefaultConfig())
	require.NoError(t, err)

	bars := trendBars(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	p := trendProposal(bars)
	now := p.PriceTime.Add(DefaultStaleAfter + time.Second)

	_, err = pl.Evaluate(p, bars, healthyAccount(), false, now)
	assert.ErrorIs(t, err, market.ErrStaleData)
}

func TestPipelineEvaluateInsufficientData(t *testing.T) {
	t.Parallel()

	pl, err := New(DefaultConfig())
	require.NoError(t, err)

	bars := trendBars(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))[:50]
	p := trendProposal(bars)

	_, err = pl.Evaluate(p, bars, healthyAccount(), false, p.PriceTime.Add(time.Minute))
	assert.ErrorIs(t, err, market.ErrInsufficientData)
}

func TestPipelineEvaluateModes(t *testing.T) {
	t.Parallel()

	pl, err := New(DefaultConfig())
	require.NoError(t, err)

	bars := trendBars(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	p := trendProposal(bars)
	now := p.PriceTime.Add(time.Minute)

	t.Run("pending event defers", func(t *testing.T) {
		t.Parallel()
		d, err := pl.Evaluate(p, bars, healthyAccount(), true, now)
		require.NoError(t, err)
		assert.Equal(t, Wait, d.Action)
		assert.Equal(t, ReasonHighRiskEvent, d.Reason)
	})

	t.Run("daily loss halts", func(t *testing.T) {
		t.Parallel()
		state := healthyAccount()
		state.DailyPnL = -400
		d, err := pl.Evaluate(p, bars, state, false, now)
		require.NoError(t, err)
		assert.Equal(t, Halt, d.Action)
	})

	t.Run("max open trades reduces", func(t *testing.T) {
		t.Parallel()
		state := healthyAccount()
		state.OpenTrades = 5
		d, err := pl.Evaluate(p, bars, state, false, now)
		require.NoError(t, err)
		assert.Equal(t, Reduce, d.Action)
		assert.Equal(t, ReasonMaxOpenTrades, d.Reason)
	})
}

func TestPipelineEvaluateFailSafe(t *testing.T) {
	t.Parallel()

	pl, err := New(DefaultConfig())
	require.NoError(t, err)

	bars := trendBars(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	p := trendProposal(bars)

	d, err := pl.EvaluateFailSafe(p, bars, errors.New("account store down"), false, p.PriceTime.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, Halt, d.Action)
	require.NotEmpty(t, d.Context.Warnings)
	assert.Contains(t, d.Context.Warnings[0], "account store down")
	// No balance, no plan.
	assert.InDelta(t, 0.0, d.RiskReward, 1e-12)
}

func TestPipelineMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	pl, err := New(DefaultConfig())
	require.NoError(t, err)
	pl.WithMetrics(m)

	bars := trendBars(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	p := trendProposal(bars)

	_, err = pl.Evaluate(p, bars, healthyAccount(), false, p.PriceTime.Add(time.Minute))
	require.NoError(t, err)

	got := testutil.ToFloat64(m.DecisionsTotal.WithLabelValues(string(Execute)))
	assert.InDelta(t, 1.0, got, 1e-12)
}

type fakeAccounts struct {
	state market.AccountState
	err   error
}

func (f fakeAccounts) AccountState(context.Context) (market.AccountState, error) {
	return f.state, f.err
}

type fakeEvents struct {
	pending bool
	err     error
}

func (f fakeEvents) HighRiskEvent(context.Context, string, time.Time) (bool, error) {
	return f.pending, f.err
}

func TestRunnerRun(t *testing.T) {
	t.Parallel()

	pl, err := New(DefaultConfig())
	require.NoError(t, err)

	bars := trendBars(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	p := trendProposal(bars)
	now := p.PriceTime.Add(time.Minute)

	t.Run("fresh reads feed the pipeline", func(t *testing.T) {
		t.Parallel()
		r := &Runner{Pipeline: pl, Accounts: fakeAccounts{state: healthyAccount()}, Events: fakeEvents{}}
		d, err := r.Run(context.Background(), p, bars, now)
		require.NoError(t, err)
		assert.Equal(t, Execute, d.Action)
	})

	t.Run("account store failure halts", func(t *testing.T) {
		t.Parallel()
		r := &Runner{
			Pipeline: pl,
			Accounts: fakeAccounts{err: errors.New("connection refused")},
			Events:   fakeEvents{},
		}
		d, err := r.Run(context.Background(), p, bars, now)
		require.NoError(t, err)
		assert.Equal(t, Halt, d.Action)
	})

	t.Run("event watcher failure defers", func(t *testing.T) {
		t.Parallel()
		r := &Runner{
			Pipeline: pl,
			Accounts: fakeAccounts{state: healthyAccount()},
			Events:   fakeEvents{err: errors.New("calendar timeout")},
		}
		d, err := r.Run(context.Background(), p, bars, now)
		require.NoError(t, err)
		assert.Equal(t, Wait, d.Action)
	})

	t.Run("pending event defers", func(t *testing.T) {
		t.Parallel()
		r := &Runner{Pipeline: pl, Accounts: fakeAccounts{state: healthyAccount()}, Events: fakeEvents{pending: true}}
		d, err := r.Run(context.Background(), p, bars, now)
		require.NoError(t, err)
		assert.Equal(t, Wait, d.Action)
	})
}
