package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/stockreport/history"
)

const selectTrades = `
	SELECT id, ticker, company_name, buy_price, sell_price, buy_date, sell_date, holding_days, profit_rate, scenario
	FROM trading_history`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (history.Trade, error) {
	var (
		t        history.Trade
		scenario sql.NullString
	)
	err := s.Scan(
		&t.ID,
		&t.Ticker,
		&t.CompanyName,
		&t.BuyPrice,
		&t.SellPrice,
		&t.BuyDate,
		&t.SellDate,
		&t.HoldingDays,
		&t.ProfitRate,
		&scenario,
	)
	if err != nil {
		return history.Trade{}, err
	}
	if t.Scenario, err = decodeScenario(scenario); err != nil {
		return history.Trade{}, fmt.Errorf("trade %d: %w", t.ID, err)
	}
	return t, nil
}

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(ctx context.Context, id int64) (history.Trade, error) {
	row := j.db.QueryRowContext(ctx, selectTrades+` WHERE id = ?`, id)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Trade{}, fmt.Errorf("%w: %d", ErrTradeNotFound, id)
	}
	return t, err
}

// ListTrades returns every trade, most recently sold first.
func (j *SQLite) ListTrades(ctx context.Context) ([]history.Trade, error) {
	return j.list(ctx, selectTrades+` ORDER BY sell_date DESC, id DESC`)
}

// ListTradesSoldBetween returns trades whose sell date falls on a day in
// [start, end), most recent first.
func (j *SQLite) ListTradesSoldBetween(ctx context.Context, start, end time.Time) ([]history.Trade, error) {
	return j.list(ctx, selectTrades+`
		WHERE sell_date >= ? AND sell_date < ?
		ORDER BY sell_date DESC, id DESC`,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (j *SQLite) list(ctx context.Context, query string, args ...any) ([]history.Trade, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []history.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
