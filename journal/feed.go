package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/stockreport/history"
)

// Feed is the payload the dashboard API serves: the trade list plus the
// summary snapshot. Summary is nil when the export did not include one.
type Feed struct {
	History []history.Trade  `json:"history" yaml:"history"`
	Summary *history.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// LoadFeed reads a feed file. YAML is tried first; JSON is the fallback.
func LoadFeed(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return ParseFeed(data)
}

// ParseFeed decodes a feed document.
func ParseFeed(data []byte) (*Feed, error) {
	feed := &Feed{}
	if err := yaml.Unmarshal(data, feed); err != nil {
		feed = &Feed{}
		if jerr := json.Unmarshal(data, feed); jerr != nil {
			return nil, fmt.Errorf("parse feed (tried YAML and JSON): %w", jerr)
		}
	}
	return feed, nil
}

// SaveFeed writes f as YAML or JSON depending on the path extension.
func SaveFeed(path string, f *Feed) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(f)
	} else {
		data, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal feed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	return nil
}

// FeedFile serves a feed loaded from disk as a Reader.
type FeedFile struct {
	feed *Feed
}

// OpenFeed loads path and returns it as a Reader.
func OpenFeed(path string) (*FeedFile, error) {
	f, err := LoadFeed(path)
	if err != nil {
		return nil, err
	}
	return &FeedFile{feed: f}, nil
}

func (f *FeedFile) ListTrades(ctx context.Context) ([]history.Trade, error) {
	return f.feed.History, nil
}

// Summary returns the exported snapshot, or one derived from the trades
// when the file has none.
func (f *FeedFile) Summary(ctx context.Context) (history.Summary, error) {
	if f.feed.Summary != nil {
		return *f.feed.Summary, nil
	}
	return history.ComputeSummary(f.feed.History), nil
}

func (f *FeedFile) Close() error { return nil }
