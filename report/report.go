package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rustyeddy/stockreport/history"
	"github.com/rustyeddy/stockreport/i18n"
	"github.com/rustyeddy/stockreport/internal/logger"
	"github.com/rustyeddy/stockreport/internal/trace"
)

// Format selects an output layout.
type Format string

const (
	FormatText Format = "text"
	FormatOrg  Format = "org"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatOrg, FormatHTML, FormatJSON}
}

// ParseFormat accepts a format name case-insensitively. "txt" and "md"
// map to text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "md":
		return FormatText, nil
	case "org":
		return FormatOrg, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Renderer builds and writes pages. It remembers the last aggregation so an
// unchanged history is not re-aggregated on every request.
type Renderer struct {
	memo history.Memo
}

// NewRenderer returns a Renderer with an empty cache.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Page builds the view for tr's language.
func (r *Renderer) Page(ctx context.Context, tr i18n.Translator, trades []history.Trade, summary history.Summary) Page {
	_, span := trace.StartSpan(ctx, "report.Page")
	defer span.End()

	lang := tr.Language()
	a := r.memo.Analyze(trades)
	span.SetAttributes(
		attribute.Int("trades", len(trades)),
		attribute.String("lang", string(lang)),
	)
	return build(i18n.Static(lang), trades, summary, a)
}

// Render builds the page and writes it in format f.
func (r *Renderer) Render(ctx context.Context, w io.Writer, f Format, tr i18n.Translator, trades []history.Trade, summary history.Summary) error {
	ctx, span := trace.StartSpan(ctx, "report.Render")
	defer span.End()
	span.SetAttributes(attribute.String("format", string(f)))

	p := r.Page(ctx, tr, trades, summary)
	if err := Write(w, f, p); err != nil {
		span.RecordError(err)
		return err
	}

	hits, misses := r.memo.Stats()
	logger.Debug(ctx, "report rendered", "format", f, "lang", p.Lang, "trades", len(trades), "cache_hits", hits, "cache_misses", misses)
	return nil
}

// Write lays out an already built page.
func Write(w io.Writer, f Format, p Page) error {
	var err error
	switch f {
	case FormatText:
		err = RenderText(w, p)
	case FormatOrg:
		err = RenderOrg(w, p)
	case FormatHTML:
		err = RenderHTML(w, p)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(p)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", f, err)
	}
	return nil
}
