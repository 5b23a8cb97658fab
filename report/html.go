package report

import (
	"html/template"
	"io"

	"github.com/rustyeddy/stockreport/i18n"
)

var htmlFuncs = template.FuncMap{
	"t":         i18n.Lookup,
	"languages": i18n.Languages,
	"tone": func(gain bool) string {
		if gain {
			return "gain"
		}
		return "loss"
	},
}

var htmlTemplate = template.Must(template.New("history.html").Funcs(htmlFuncs).Parse(HTMLTemplate))

// HTMLTemplate is the dashboard page. Presentation is kept to semantic
// markup and class names.
const HTMLTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<nav class="language">
<span>{{t .Lang "language.label"}}:</span>
{{- range languages}}
<a href="?lang={{.}}"{{if eq . $.Lang}} aria-current="true"{{end}}>{{t $.Lang (printf "language.%s" .)}}</a>
{{- end}}
</nav>
<header>
<h1>{{.Title}}</h1>
<p>{{.Subtitle}}</p>
</header>
{{- if .Empty}}
<p class="empty">{{t .Lang "history.empty"}}</p>
{{- else}}
<section class="summary">
<dl>
<dt>{{t .Lang "summary.total_trades"}}</dt><dd>{{.Summary.TotalTrades}}</dd>
<dt>{{t .Lang "summary.win_rate"}}</dt><dd>{{.Summary.WinRate}}</dd>
<dt>{{t .Lang "summary.avg_profit_rate"}}</dt><dd>{{.Summary.AvgProfitRate}}</dd>
<dt>{{t .Lang "summary.avg_holding_days"}}</dt><dd>{{.Summary.AvgHoldingDays}}</dd>
</dl>
</section>
<section class="highlights">
<div class="card best"><h2>{{t .Lang "history.best_trade"}}</h2><p>{{.Best.CompanyName}} ({{.Best.Ticker}}) <span class="{{tone .Best.Gain}}">{{.Best.ProfitRate}}</span></p></div>
<div class="card worst"><h2>{{t .Lang "history.worst_trade"}}</h2><p>{{.Worst.CompanyName}} ({{.Worst.Ticker}}) <span class="{{tone .Worst.Gain}}">{{.Worst.ProfitRate}}</span></p></div>
</section>
<section class="sectors">
<h2>{{t .Lang "history.sector_performance"}}</h2>
<ol>
{{- range .Sectors}}
<li>{{.Label}} <span class="{{tone .Gain}}">{{.Average}}</span> ({{.Count}} {{t $.Lang "history.trades_unit"}})</li>
{{- end}}
</ol>
</section>
<section class="periods">
<h2>{{t .Lang "history.period_performance"}}</h2>
<ul>
{{- range .Periods}}
<li>{{.Label}} <span class="{{tone .Gain}}">{{.Average}}</span> ({{.Count}} {{t $.Lang "history.trades_unit"}})</li>
{{- end}}
</ul>
</section>
<section class="trades">
<h2>{{t .Lang "history.trade_details"}}</h2>
{{- range .Trades}}
<details class="trade" id="trade-{{.ID}}">
<summary>{{.CompanyName}} ({{.Ticker}}) <span class="{{tone .Gain}}">{{.ProfitRate}}</span></summary>
<dl>
<dt>{{t $.Lang "trade.buy_price"}}</dt><dd>{{.BuyPrice}}</dd>
<dt>{{t $.Lang "trade.sell_price"}}</dt><dd>{{.SellPrice}}</dd>
<dt>{{t $.Lang "trade.buy_date"}}</dt><dd>{{.BuyDate}}</dd>
<dt>{{t $.Lang "trade.sell_date"}}</dt><dd>{{.SellDate}}</dd>
<dt>{{t $.Lang "trade.holding_days"}}</dt><dd>{{.HoldingDays}}</dd>
{{- if .Sector}}
<dt>{{t $.Lang "trade.sector"}}</dt><dd>{{.Sector}}</dd>
{{- end}}
{{- if .InvestmentPeriod}}
<dt>{{t $.Lang "trade.investment_period"}}</dt><dd>{{.InvestmentPeriod}}</dd>
{{- end}}
{{- if .TargetPrice}}
<dt>{{t $.Lang "trade.target_price"}}</dt><dd>{{.TargetPrice}}</dd>
{{- end}}
<dt>{{t $.Lang "trade.target_achievement"}}</dt><dd>{{.TargetAchievement}}</dd>
</dl>
{{- range .Notes}}
<h3>{{.Label}}</h3>
<p>{{.Value}}</p>
{{- end}}
{{- with .Plan}}
<h3>{{t $.Lang "trade.trading_scenario"}}</h3>
{{- if .Levels}}
<dl class="levels">
{{- range .Levels}}
<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{- end}}
</dl>
{{- end}}
{{- if .SellTriggers}}
<h4>{{t $.Lang "trade.sell_triggers"}}</h4>
<ul>{{range .SellTriggers}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- if .HoldConditions}}
<h4>{{t $.Lang "trade.hold_conditions"}}</h4>
<ul>{{range .HoldConditions}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- if .PortfolioContext}}
<h4>{{t $.Lang "trade.portfolio_context"}}</h4>
<p>{{.PortfolioContext}}</p>
{{- end}}
{{- end}}
</details>
{{- end}}
</section>
{{- end}}
</body>
</html>
`

// RenderHTML writes p as a standalone HTML page. Scenario text is escaped.
func RenderHTML(w io.Writer, p Page) error {
	return htmlTemplate.Execute(w, p)
}
