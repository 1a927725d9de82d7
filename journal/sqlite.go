package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

// Record inserts one decision. INSERT OR IGNORE keeps retries
// idempotent on the ULID primary key.
func (j *SQLiteJournal) Record(e Entry) error {
	_, err := j.db.Exec(`
		INSERT OR IGNORE INTO decisions
		(id, symbol, decision, reason, bias_score, risk_reward, context, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Symbol, e.Decision, e.Reason,
		e.BiasScore, e.RiskReward, e.Context, e.CreatedAt.UTC(),
	)
	return err
}

// BySymbol returns the recorded decisions for a symbol, newest first.
func (j *SQLiteJournal) BySymbol(symbol string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := j.db.Query(`
		SELECT id, symbol, decision, reason, bias_score, risk_reward, context, created_at
		FROM decisions WHERE symbol = ?
		ORDER BY created_at DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created time.Time
		if err := rows.Scan(&e.ID, &e.Symbol, &e.Decision, &e.Reason,
			&e.BiasScore, &e.RiskReward, &e.Context, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = created
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
