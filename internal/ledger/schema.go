package ledger

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	entry_price REAL NOT NULL,
	size REAL NOT NULL,
	strategy TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'open',
	exit_price REAL,
	pnl REAL
);

CREATE INDEX IF NOT EXISTS idx_trades_symbol_status ON trades(symbol, status);
`
