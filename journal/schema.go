package journal

// Schema matches the upstream trading_history table. Dates are stored as
// text exactly as the pipeline writes them; scenario is a JSON document.
const Schema = `
CREATE TABLE IF NOT EXISTS trading_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ticker TEXT NOT NULL,
	company_name TEXT NOT NULL,
	buy_price REAL NOT NULL,
	sell_price REAL NOT NULL,
	buy_date TEXT NOT NULL,
	sell_date TEXT NOT NULL,
	holding_days INTEGER NOT NULL DEFAULT 0,
	profit_rate REAL NOT NULL DEFAULT 0,
	scenario TEXT
);

CREATE INDEX IF NOT EXISTS idx_trading_history_sell_date ON trading_history(sell_date);
`
