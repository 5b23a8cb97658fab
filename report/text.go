package report

import (
	"io"
	"strings"
	"text/template"

	"github.com/rustyeddy/stockreport/i18n"
)

var textFuncs = template.FuncMap{
	"t":    i18n.Lookup,
	"rule": func(ch string) string { return strings.Repeat(ch, 60) },
}

var textTemplate = template.Must(template.New("history.txt").Funcs(textFuncs).Parse(TextTemplate))

// TextTemplate lays out a Page for terminals and log files.
const TextTemplate = `{{.Title}}
{{.Subtitle}}
{{rule "="}}
{{- if .Empty}}
{{t .Lang "history.empty"}}
{{- else}}
{{t .Lang "summary.total_trades"}}: {{.Summary.TotalTrades}}
{{t .Lang "summary.win_rate"}}: {{.Summary.WinRate}}
{{t .Lang "summary.avg_profit_rate"}}: {{.Summary.AvgProfitRate}}
{{t .Lang "summary.avg_holding_days"}}: {{.Summary.AvgHoldingDays}}

{{t .Lang "history.best_trade"}}: {{.Best.CompanyName}} ({{.Best.Ticker}}) {{.Best.ProfitRate}}
{{t .Lang "history.worst_trade"}}: {{.Worst.CompanyName}} ({{.Worst.Ticker}}) {{.Worst.ProfitRate}}

{{t .Lang "history.sector_performance"}}
{{rule "-"}}
{{- range .Sectors}}
  {{.Label}}: {{.Average}} ({{.Count}} {{t $.Lang "history.trades_unit"}})
{{- end}}

{{t .Lang "history.period_performance"}}
{{rule "-"}}
{{- range .Periods}}
  {{.Label}}: {{.Average}} ({{.Count}} {{t $.Lang "history.trades_unit"}})
{{- end}}

{{t .Lang "history.trade_details"}}
{{rule "="}}
{{- range .Trades}}

[{{.Ticker}}] {{.CompanyName}} {{.ProfitRate}}
  {{t $.Lang "trade.buy_price"}}: {{.BuyPrice}} ({{.BuyDate}})
  {{t $.Lang "trade.sell_price"}}: {{.SellPrice}} ({{.SellDate}})
  {{t $.Lang "trade.holding_days"}}: {{.HoldingDays}}
{{- if .Sector}}
  {{t $.Lang "trade.sector"}}: {{.Sector}}
{{- end}}
{{- if .InvestmentPeriod}}
  {{t $.Lang "trade.investment_period"}}: {{.InvestmentPeriod}}
{{- end}}
{{- if .TargetPrice}}
  {{t $.Lang "trade.target_price"}}: {{.TargetPrice}}
{{- end}}
  {{t $.Lang "trade.target_achievement"}}: {{.TargetAchievement}}
{{- range .Notes}}
  {{.Label}}:
    {{.Value}}
{{- end}}
{{- with .Plan}}
  {{t $.Lang "trade.trading_scenario"}}:
{{- range .Levels}}
    {{.Label}}: {{.Value}}
{{- end}}
{{- if .SellTriggers}}
    {{t $.Lang "trade.sell_triggers"}}:
{{- range .SellTriggers}}
      - {{.}}
{{- end}}
{{- end}}
{{- if .HoldConditions}}
    {{t $.Lang "trade.hold_conditions"}}:
{{- range .HoldConditions}}
      - {{.}}
{{- end}}
{{- end}}
{{- if .PortfolioContext}}
    {{t $.Lang "trade.portfolio_context"}}: {{.PortfolioContext}}
{{- end}}
{{- end}}
{{- end}}
{{- end}}
`

// RenderText writes p as plain text.
func RenderText(w io.Writer, p Page) error {
	return textTemplate.Execute(w, p)
}
