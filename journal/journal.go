// Package journal reads the trade history produced by the upstream
// analysis pipeline, either straight from its SQLite database or from an
// exported feed file.
package journal

import (
	"context"
	"errors"

	"github.com/rustyeddy/stockreport/history"
)

// ErrTradeNotFound is returned by lookups for an unknown trade ID.
var ErrTradeNotFound = errors.New("trade not found")

// Reader is a source of completed trades and their summary snapshot.
type Reader interface {
	ListTrades(ctx context.Context) ([]history.Trade, error)
	Summary(ctx context.Context) (history.Summary, error)
	Close() error
}

// Writer appends completed trades. Only the import command and tests
// write; the report itself never does.
type Writer interface {
	RecordTrade(ctx context.Context, t history.Trade) (int64, error)
}
