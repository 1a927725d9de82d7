package journal

const Schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	decision TEXT NOT NULL,
	reason TEXT NOT NULL,
	bias_score REAL NOT NULL,
	risk_reward REAL NOT NULL,
	context TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_symbol ON decisions(symbol);
CREATE INDEX IF NOT EXISTS idx_decisions_created ON decisions(created_at);
`
