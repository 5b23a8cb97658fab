package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/stockreport/i18n"
)

// OrgString renders a Page as an Org-mode document. Structured facts go in
// PROPERTIES drawers so the file stays searchable from Emacs.
func OrgString(p Page) string {
	t := func(key string) string { return i18n.Lookup(p.Lang, key) }

	var b strings.Builder
	b.WriteString(fmt.Sprintf("* %s\n", p.Title))
	b.WriteString(fmt.Sprintf("%s\n", p.Subtitle))
	if p.Empty {
		b.WriteString(fmt.Sprintf("\n%s\n", t("history.empty")))
		return b.String()
	}

	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TOTAL_TRADES: %s\n", p.Summary.TotalTrades))
	b.WriteString(fmt.Sprintf(":WIN_RATE: %s\n", p.Summary.WinRate))
	b.WriteString(fmt.Sprintf(":AVG_PROFIT_RATE: %s\n", p.Summary.AvgProfitRate))
	b.WriteString(fmt.Sprintf(":AVG_HOLDING_DAYS: %s\n", p.Summary.AvgHoldingDays))
	b.WriteString(":END:\n\n")

	b.WriteString(fmt.Sprintf("- %s :: %s (%s) %s\n", t("history.best_trade"), p.Best.CompanyName, p.Best.Ticker, p.Best.ProfitRate))
	b.WriteString(fmt.Sprintf("- %s :: %s (%s) %s\n", t("history.worst_trade"), p.Worst.CompanyName, p.Worst.Ticker, p.Worst.ProfitRate))

	writeOrgTable(&b, t("history.sector_performance"), p.Sectors, t("history.trades_unit"))
	writeOrgTable(&b, t("history.period_performance"), p.Periods, t("history.trades_unit"))

	b.WriteString(fmt.Sprintf("\n** %s\n", t("history.trade_details")))
	for _, tr := range p.Trades {
		b.WriteString("\n")
		b.WriteString(formatTradeOrg(p.Lang, tr))
	}
	return b.String()
}

func writeOrgTable(b *strings.Builder, title string, rows []GroupRow, unit string) {
	b.WriteString(fmt.Sprintf("\n** %s\n", title))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("| %s | %s | %d %s |\n", r.Label, r.Average, r.Count, unit))
	}
}

func formatTradeOrg(lang i18n.Language, tr TradeRow) string {
	t := func(key string) string { return i18n.Lookup(lang, key) }

	var b strings.Builder
	b.WriteString(fmt.Sprintf("*** %s (%s) %s\n", tr.CompanyName, tr.Ticker, tr.ProfitRate))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %d\n", tr.ID))
	b.WriteString(fmt.Sprintf(":TICKER: %s\n", tr.Ticker))
	b.WriteString(fmt.Sprintf(":BUY_PRICE: %s\n", tr.BuyPrice))
	b.WriteString(fmt.Sprintf(":SELL_PRICE: %s\n", tr.SellPrice))
	b.WriteString(fmt.Sprintf(":BUY_DATE: %s\n", tr.BuyDate))
	b.WriteString(fmt.Sprintf(":SELL_DATE: %s\n", tr.SellDate))
	b.WriteString(fmt.Sprintf(":HOLDING_DAYS: %s\n", tr.HoldingDays))
	if tr.Sector != "" {
		b.WriteString(fmt.Sprintf(":SECTOR: %s\n", tr.Sector))
	}
	if tr.InvestmentPeriod != "" {
		b.WriteString(fmt.Sprintf(":INVESTMENT_PERIOD: %s\n", tr.InvestmentPeriod))
	}
	if tr.TargetPrice != "" {
		b.WriteString(fmt.Sprintf(":TARGET_PRICE: %s\n", tr.TargetPrice))
	}
	b.WriteString(fmt.Sprintf(":TARGET_ACHIEVEMENT: %s\n", tr.TargetAchievement))
	b.WriteString(":END:\n")

	for _, n := range tr.Notes {
		b.WriteString(fmt.Sprintf("**** %s\n%s\n", n.Label, n.Value))
	}
	if pl := tr.Plan; pl != nil {
		b.WriteString(fmt.Sprintf("**** %s\n", t("trade.trading_scenario")))
		for _, l := range pl.Levels {
			b.WriteString(fmt.Sprintf("- %s :: %s\n", l.Label, l.Value))
		}
		writeOrgList(&b, t("trade.sell_triggers"), pl.SellTriggers)
		writeOrgList(&b, t("trade.hold_conditions"), pl.HoldConditions)
		if pl.PortfolioContext != "" {
			b.WriteString(fmt.Sprintf("- %s :: %s\n", t("trade.portfolio_context"), pl.PortfolioContext))
		}
	}
	return b.String()
}

func writeOrgList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("- %s\n", title))
	for _, it := range items {
		b.WriteString(fmt.Sprintf("  - %s\n", it))
	}
}

// RenderOrg writes p as Org-mode.
func RenderOrg(w io.Writer, p Page) error {
	_, err := io.WriteString(w, OrgString(p))
	return err
}
