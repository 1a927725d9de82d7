package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/tradegate/tradegate/engine"
	"github.com/tradegate/tradegate/journal"
	"github.com/tradegate/tradegate/metrics"
)

// Router forwards a finished decision to two independent sinks: the
// audit journal and the report queue. The writes are best-effort and
// independent — one failing never blocks or rolls back the other, and
// neither failure invalidates a decision already returned to the
// caller.
type Router struct {
	Journal journal.Journal
	Queue   Queue
	Metrics *metrics.Metrics
}

// Result reports each sink's outcome separately so the caller can
// retry exactly the write that failed.
type Result struct {
	JournalErr error
	QueueErr   error
}

// Ok reports whether both sinks accepted the decision.
func (r Result) Ok() bool {
	return r.JournalErr == nil && r.QueueErr == nil
}

// Route writes the decision to both sinks. It never returns an error;
// per-sink failures are logged, counted, and reported in the Result.
func (rt *Router) Route(ctx context.Context, d engine.Decision) Result {
	var res Result

	if rt.Journal != nil {
		res.JournalErr = rt.Journal.Record(toEntry(d))
		if res.JournalErr != nil {
			log.Printf("[report] journal write failed for %s: %v", d.ID, res.JournalErr)
			rt.countError("journal")
		}
	}

	if rt.Queue != nil {
		task, err := toTask(d)
		if err == nil {
			err = rt.Queue.Publish(ctx, task)
		}
		res.QueueErr = err
		if err != nil {
			log.Printf("[report] queue publish failed for %s: %v", d.ID, err)
			rt.countError("queue")
		}
	}

	return res
}

func (rt *Router) countError(sink string) {
	if rt.Metrics != nil {
		rt.Metrics.RouteErrors.WithLabelValues(sink).Inc()
	}
}

// toEntry converts a decision into its audit record. The context
// snapshot is stored as JSON so the journal stays queryable without
// schema churn.
func toEntry(d engine.Decision) journal.Entry {
	snapshot, err := json.Marshal(d.Context)
	if err != nil {
		// Snapshot is plain data; marshal failure would be a programming error.
		snapshot = []byte("{}")
	}
	return journal.Entry{
		ID:         d.ID,
		Symbol:     d.Context.Symbol,
		Decision:   string(d.Action),
		Reason:     d.Reason,
		BiasScore:  d.BiasScore,
		RiskReward: d.RiskReward,
		Context:    string(snapshot),
		CreatedAt:  d.Time,
	}
}

// Queue priority by action: executed trades publish first.
func taskPriority(a engine.Action) int {
	switch a {
	case engine.Execute:
		return 1
	case engine.Halt:
		return 2
	default:
		return 3
	}
}

// toTask builds the queued report-publish job with a formatted summary.
func toTask(d engine.Decision) (Task, error) {
	summary := struct {
		ID       string          `json:"id"`
		Symbol   string          `json:"symbol"`
		Decision engine.Action   `json:"decision"`
		Reason   string          `json:"reason"`
		Bias     float64         `json:"bias_score"`
		RR       float64         `json:"risk_reward"`
		Headline string          `json:"headline"`
		Context  engine.Snapshot `json:"context"`
	}{
		ID:       d.ID,
		Symbol:   d.Context.Symbol,
		Decision: d.Action,
		Reason:   d.Reason,
		Bias:     d.BiasScore,
		RR:       d.RiskReward,
		Headline: fmt.Sprintf("%s %s: %s (confidence %.2f, R:R %.2f)",
			d.Context.Symbol, d.Action, d.Reason, d.BiasScore, d.RiskReward),
		Context: d.Context,
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return Task{}, fmt.Errorf("marshal summary: %w", err)
	}

	return Task{
		Payload:  payload,
		Priority: taskPriority(d.Action),
		Status:   "pending",
	}, nil
}
