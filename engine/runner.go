package engine

import (
	"context"
	"log"
	"time"

	"github.com/tradegate/tradegate/market"
)

// Runner threads the pipeline's external reads: a fresh account
// snapshot and the high-risk-event flag. The reads happen immediately
// before each evaluation and are never cached across decisions.
//
// Two concurrent runs for the same account race between read and
// decide; that race is accepted (no per-account serialization here).
// Callers needing stronger consistency must serialize around Run.
type Runner struct {
	Pipeline *Pipeline
	Accounts AccountReader
	Events   EventWatcher
}

// Run evaluates one proposal with fresh external state.
//
// An account-store failure does not abort the run: it degrades to the
// fail-safe STOP_TRADING path, so the caller still gets a (halting)
// decision. An event-watcher failure is treated as a pending event,
// deferring the trade instead of guessing that the calendar is clear.
func (r *Runner) Run(ctx context.Context, p market.Proposal, bars market.Series, now time.Time) (Decision, error) {
	highRisk := false
	if r.Events != nil {
		flag, err := r.Events.HighRiskEvent(ctx, p.Symbol, now)
		if err != nil {
			log.Printf("[engine] event watcher failed for %s, deferring: %v", p.Symbol, err)
			flag = true
		}
		highRisk = flag
	}

	state, err := r.Accounts.AccountState(ctx)
	if err != nil {
		log.Printf("[engine] account state read failed, halting: %v", err)
		return r.Pipeline.EvaluateFailSafe(p, bars, err, highRisk, now)
	}

	return r.Pipeline.Evaluate(p, bars, state, highRisk, now)
}
