// Package report turns a trade history into the localized trading history
// view and renders it as plain text, Org-mode or HTML.
package report

import (
	"github.com/rustyeddy/stockreport/history"
	"github.com/rustyeddy/stockreport/i18n"
)

// Page is the fully formatted trading history view. Every display string is
// already localized, so renderers only lay it out.
type Page struct {
	Lang     i18n.Language `json:"lang"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Empty    bool          `json:"empty"`

	Summary SummaryCards `json:"summary"`
	Best    TradeCard    `json:"best"`
	Worst   TradeCard    `json:"worst"`
	Sectors []GroupRow   `json:"sectors"`
	Periods []GroupRow   `json:"periods"`
	Trades  []TradeRow   `json:"trades"`
}

// SummaryCards are the four headline numbers.
type SummaryCards struct {
	TotalTrades    string `json:"total_trades"`
	WinRate        string `json:"win_rate"`
	AvgProfitRate  string `json:"avg_profit_rate"`
	AvgHoldingDays string `json:"avg_holding_days"`
}

// TradeCard is the best or worst trade highlight.
type TradeCard struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	ProfitRate  string `json:"profit_rate"`
	Gain        bool   `json:"gain"`
}

// GroupRow is one sector or period average.
type GroupRow struct {
	Label   string `json:"label"`
	Average string `json:"average"`
	Count   int    `json:"count"`
	Gain    bool   `json:"gain"`
}

// Field is a labeled value in a trade's detail section.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TradeRow is one completed trade with its optional scenario sections.
// Optional values are empty strings when the scenario lacks them.
type TradeRow struct {
	ID          int64  `json:"id"`
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
	BuyPrice    string `json:"buy_price"`
	SellPrice   string `json:"sell_price"`
	BuyDate     string `json:"buy_date"`
	SellDate    string `json:"sell_date"`
	HoldingDays string `json:"holding_days"`
	ProfitRate  string `json:"profit_rate"`
	Gain        bool   `json:"gain"`

	Sector            string `json:"sector,omitempty"`
	InvestmentPeriod  string `json:"investment_period,omitempty"`
	TargetPrice       string `json:"target_price,omitempty"`
	TargetAchievement string `json:"target_achievement"`

	Notes []Field    `json:"notes,omitempty"`
	Plan  *PlanBlock `json:"plan,omitempty"`
}

// PlanBlock is the rendered exit plan.
type PlanBlock struct {
	Levels           []Field  `json:"levels,omitempty"`
	SellTriggers     []string `json:"sell_triggers,omitempty"`
	HoldConditions   []string `json:"hold_conditions,omitempty"`
	PortfolioContext string   `json:"portfolio_context,omitempty"`
}

// Build formats trades and summary for tr's language. The language is read
// once, so a switch during the build cannot mix languages in one page.
func Build(tr i18n.Translator, trades []history.Trade, summary history.Summary) Page {
	return build(i18n.Static(tr.Language()), trades, summary, history.Analyze(trades))
}

// build expects a translator whose language does not change.
func build(tr i18n.Translator, trades []history.Trade, summary history.Summary, a history.Analysis) Page {
	lang := tr.Language()
	f := i18n.NewFormatter(lang)
	s := summary.Trading

	p := Page{
		Lang:     lang,
		Title:    tr.T("history.title"),
		Subtitle: tr.T("history.subtitle"),
		Empty:    a.Empty,
		Summary: SummaryCards{
			TotalTrades:    f.Decimal(float64(s.TotalTrades), 0),
			WinRate:        f.Decimal(s.WinRate, 1) + "%",
			AvgProfitRate:  f.Percent(s.AvgProfitRate),
			AvgHoldingDays: f.AvgDays(s.AvgHoldingDays),
		},
		Best:    card(f, a.Best),
		Worst:   card(f, a.Worst),
		Sectors: groupRows(tr, f, a.Sectors, history.FallbackSector, "sector.other"),
		Periods: groupRows(tr, f, a.Periods, history.FallbackPeriod, "period.unclassified"),
		Trades:  make([]TradeRow, 0, len(trades)),
	}
	for _, t := range trades {
		p.Trades = append(p.Trades, tradeRow(tr, f, t))
	}
	return p
}

func card(f i18n.Formatter, t history.Trade) TradeCard {
	return TradeCard{
		Ticker:      t.Ticker,
		CompanyName: t.CompanyName,
		ProfitRate:  f.Percent(t.ProfitRate),
		Gain:        t.ProfitRate >= 0,
	}
}

func groupRows(tr i18n.Translator, f i18n.Formatter, groups []history.GroupAverage, fallback, fallbackKey string) []GroupRow {
	rows := make([]GroupRow, 0, len(groups))
	for _, g := range groups {
		label := g.Label
		if label == fallback {
			label = tr.T(fallbackKey)
		}
		rows = append(rows, GroupRow{
			Label:   label,
			Average: f.Percent(g.Average),
			Count:   g.Count,
			Gain:    g.Average >= 0,
		})
	}
	return rows
}

func tradeRow(tr i18n.Translator, f i18n.Formatter, t history.Trade) TradeRow {
	row := TradeRow{
		ID:                t.ID,
		Ticker:            t.Ticker,
		CompanyName:       t.CompanyName,
		BuyPrice:          f.Currency(t.BuyPrice),
		SellPrice:         f.Currency(t.SellPrice),
		BuyDate:           f.Date(t.BuyDate),
		SellDate:          f.Date(t.SellDate),
		HoldingDays:       f.Days(t.HoldingDays),
		ProfitRate:        f.Percent(t.ProfitRate),
		Gain:              t.ProfitRate >= 0,
		TargetAchievement: i18n.Placeholder,
	}
	if target, ok := t.TargetPrice(); ok {
		row.TargetPrice = f.Currency(target)
	}
	if pct, ok := history.TargetAchievement(t); ok {
		row.TargetAchievement = f.Ratio(pct)
	}

	sc := t.Scenario
	if sc == nil {
		return row
	}
	row.Sector = sc.Sector
	row.InvestmentPeriod = sc.InvestmentPeriod
	row.Notes = fields(tr,
		"trade.rationale", sc.Rationale,
		"trade.portfolio_analysis", sc.PortfolioAnalysis,
		"trade.valuation_analysis", sc.ValuationAnalysis,
		"trade.sector_outlook", sc.SectorOutlook,
		"trade.market_condition", sc.MarketCondition,
	)
	row.Plan = plan(tr, f, sc.TradingScenario)
	return row
}

// fields pairs keys with values and drops empty values.
func fields(tr i18n.Translator, kv ...string) []Field {
	var out []Field
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		out = append(out, Field{Label: tr.T(kv[i]), Value: kv[i+1]})
	}
	return out
}

func plan(tr i18n.Translator, f i18n.Formatter, ts *history.TradingScenario) *PlanBlock {
	if ts == nil {
		return nil
	}
	b := &PlanBlock{
		SellTriggers:     ts.SellTriggers,
		HoldConditions:   ts.HoldConditions,
		PortfolioContext: ts.PortfolioContext,
	}
	if !ts.KeyLevels.Empty() {
		k := ts.KeyLevels
		b.Levels = fields(tr,
			"trade.primary_support", level(f, k.PrimarySupport),
			"trade.secondary_support", level(f, k.SecondarySupport),
			"trade.primary_resistance", level(f, k.PrimaryResistance),
			"trade.secondary_resistance", level(f, k.SecondaryResistance),
		)
	}
	if len(b.Levels) == 0 && len(b.SellTriggers) == 0 && len(b.HoldConditions) == 0 && b.PortfolioContext == "" {
		return nil
	}
	return b
}

// level shows numeric levels as currency and free text as given.
func level(f i18n.Formatter, l history.Level) string {
	if v, ok := l.Float(); ok {
		return f.Currency(v)
	}
	return string(l)
}
