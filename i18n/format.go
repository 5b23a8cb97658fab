package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// CurrencySymbol is the display symbol for amounts. Upstream prices are
// always Korean won, whatever the display language.
const CurrencySymbol = "₩"

// Placeholder stands in for values that cannot be computed.
const Placeholder = "-"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"20060102",
}

// Formatter renders numbers and dates for one language.
type Formatter struct {
	lang    Language
	printer *message.Printer
}

// NewFormatter returns a Formatter for lang. Unsupported values format as
// Default.
func NewFormatter(lang Language) Formatter {
	if !lang.Valid() {
		lang = Default
	}
	return Formatter{lang: lang, printer: message.NewPrinter(lang.Tag())}
}

// Currency formats a won amount with locale grouping and no fraction
// digits: 11000 -> "₩11,000", -1234.5 -> "-₩1,235".
func (f Formatter) Currency(amount float64) string {
	n := decimal.NewFromFloat(amount).Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + CurrencySymbol + f.printer.Sprintf("%d", n)
}

// Percent formats a signed percentage with two decimals and an explicit
// plus sign for non-negative values: 5 -> "+5.00%", -3.456 -> "-3.46%".
func (f Formatter) Percent(v float64) string {
	d := decimal.NewFromFloat(v)
	if v >= 0 {
		return "+" + d.StringFixed(2) + "%"
	}
	return "-" + d.Abs().StringFixed(2) + "%"
}

// Ratio formats an unsigned whole percentage: 110 -> "110%".
func (f Formatter) Ratio(v float64) string {
	return decimal.NewFromFloat(v).Round(0).String() + "%"
}

// Decimal formats v with a fixed number of fraction digits.
func (f Formatter) Decimal(v float64, digits int32) string {
	return decimal.NewFromFloat(v).StringFixed(digits)
}

// Date renders an ISO style date as a long calendar date:
// "January 15, 2024" or "2024년 1월 15일". Input that does not parse is
// returned unchanged.
func (f Formatter) Date(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	if f.lang == English {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}

// ParseDate accepts the date shapes the upstream source emits.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Days formats a day count with the localized unit: "14일", "14 days".
func (f Formatter) Days(n int) string {
	return f.daysUnit(strconv.Itoa(n))
}

// AvgDays formats a fractional day count with one decimal.
func (f Formatter) AvgDays(v float64) string {
	return f.daysUnit(f.Decimal(v, 1))
}

func (f Formatter) daysUnit(n string) string {
	if f.lang == English {
		return n + " " + Lookup(English, "summary.days_unit")
	}
	return n + Lookup(Korean, "summary.days_unit")
}
