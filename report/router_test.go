package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/tradegate/engine"
	"github.com/tradegate/tradegate/journal"
	"github.com/tradegate/tradegate/metrics"
)

type fakeJournal struct {
	entries []journal.Entry
	err     error
}

func (f *fakeJournal) Record(e journal.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeJournal) Close() error { return nil }

type fakeQueue struct {
	tasks []Task
	err   error
}

func (f *fakeQueue) Publish(_ context.Context, t Task) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, t)
	return nil
}

func (f *fakeQueue) Close() error { return nil }

func testDecision() engine.Decision {
	return engine.Decision{
		ID:         "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Action:     engine.Execute,
		Reason:     engine.ReasonAllChecksPassed,
		BiasScore:  0.92,
		RiskReward: 2.0,
		Time:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Context: engine.Snapshot{
			Symbol:     "GER40",
			Confidence: 0.92,
			Mode:       "NORMAL",
		},
	}
}

func TestRouteBothSinks(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	q := &fakeQueue{}
	rt := &Router{Journal: j, Queue: q}

	res := rt.Route(context.Background(), testDecision())
	assert.True(t, res.Ok())

	require.Len(t, j.entries, 1)
	e := j.entries[0]
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", e.ID)
	assert.Equal(t, "GER40", e.Symbol)
	assert.Equal(t, "EXECUTE", e.Decision)
	assert.InDelta(t, 0.92, e.BiasScore, 1e-9)
	assert.JSONEq(t, mustSnapshotJSON(t), e.Context)

	require.Len(t, q.tasks, 1)
	task := q.tasks[0]
	assert.Equal(t, 1, task.Priority)
	assert.Equal(t, "pending", task.Status)

	var payload struct {
		Symbol   string `json:"symbol"`
		Headline string `json:"headline"`
	}
	require.NoError(t, json.Unmarshal(task.Payload, &payload))
	assert.Equal(t, "GER40", payload.Symbol)
	assert.Contains(t, payload.Headline, "GER40 EXECUTE")
}

func mustSnapshotJSON(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(testDecision().Context)
	require.NoError(t, err)
	return string(b)
}

func TestRouteJournalFailureDoesNotBlockQueue(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{err: errors.New("disk full")}
	q := &fakeQueue{}
	rt := &Router{Journal: j, Queue: q}

	res := rt.Route(context.Background(), testDecision())
	assert.False(t, res.Ok())
	assert.Error(t, res.JournalErr)
	assert.NoError(t, res.QueueErr)
	assert.Len(t, q.tasks, 1)
}

func TestRouteQueueFailureDoesNotBlockJournal(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	q := &fakeQueue{err: errors.New("connection refused")}
	rt := &Router{Journal: j, Queue: q}

	res := rt.Route(context.Background(), testDecision())
	assert.False(t, res.Ok())
	assert.NoError(t, res.JournalErr)
	assert.Error(t, res.QueueErr)
	assert.Len(t, j.entries, 1)
}

func TestRouteCountsSinkErrors(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	rt := &Router{
		Journal: &fakeJournal{err: errors.New("disk full")},
		Queue:   &fakeQueue{err: errors.New("connection refused")},
		Metrics: m,
	}

	rt.Route(context.Background(), testDecision())

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RouteErrors.WithLabelValues("journal")), 1e-12)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.RouteErrors.WithLabelValues("queue")), 1e-12)
}

func TestRouteNilSinks(t *testing.T) {
	t.Parallel()

	rt := &Router{}
	res := rt.Route(context.Background(), testDecision())
	assert.True(t, res.Ok())
}

func TestTaskPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action engine.Action
		want   int
	}{
		{engine.Execute, 1},
		{engine.Halt, 2},
		{engine.Reject, 3},
		{engine.Wait, 3},
		{engine.Reduce, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, taskPriority(tt.action), string(tt.action))
	}
}
