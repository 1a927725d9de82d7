// Package journal persists decision audit records.
package journal

import "time"

// Entry is one audit record: what was decided, why, and the scores
// behind it. Context carries the JSON-encoded decision snapshot.
type Entry struct {
	ID         string
	Symbol     string
	Decision   string
	Reason     string
	BiasScore  float64
	RiskReward float64
	Context    string
	CreatedAt  time.Time
}

// Journal is the audit sink. Writes are idempotent on ID so a
// collaborator may retry a failed write without duplicating records.
type Journal interface {
	Record(Entry) error
	Close() error
}
