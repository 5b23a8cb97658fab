package journal

import (
	"fmt"

	"github.com/rustyeddy/stockreport/config"
)

// Open returns the Reader named by the source configuration.
func Open(src config.SourceConfig) (Reader, error) {
	switch src.Type {
	case config.SourceSQLite:
		j, err := NewSQLite(src.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", src.DBPath, err)
		}
		return j, nil
	case config.SourceFile:
		fr, err := OpenFeed(src.FeedPath)
		if err != nil {
			return nil, fmt.Errorf("open feed %s: %w", src.FeedPath, err)
		}
		return fr, nil
	}
	return nil, fmt.Errorf("unknown source type %q", src.Type)
}
