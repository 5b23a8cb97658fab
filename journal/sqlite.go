package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/stockreport/history"
)

// SQLite reads and writes the trading_history table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and if needed creates) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordTrade inserts t and returns the new row ID. A non-zero t.ID is
// kept so imported feeds retain their identifiers.
func (j *SQLite) RecordTrade(ctx context.Context, t history.Trade) (int64, error) {
	scenario, err := encodeScenario(t.Scenario)
	if err != nil {
		return 0, err
	}

	var id any
	if t.ID != 0 {
		id = t.ID
	}

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO trading_history
		(id, ticker, company_name, buy_price, sell_price, buy_date, sell_date, holding_days, profit_rate, scenario)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, t.Ticker, t.CompanyName, t.BuyPrice, t.SellPrice,
		t.BuyDate, t.SellDate, t.HoldingDays, t.ProfitRate, scenario,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Summary derives the trading summary from the stored rows.
func (j *SQLite) Summary(ctx context.Context) (history.Summary, error) {
	trades, err := j.ListTrades(ctx)
	if err != nil {
		return history.Summary{}, err
	}
	return history.ComputeSummary(trades), nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func encodeScenario(s *history.Scenario) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode scenario: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeScenario(raw sql.NullString) (*history.Scenario, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var s history.Scenario
	if err := json.Unmarshal([]byte(raw.String), &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}
