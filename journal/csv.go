package journal

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rustyeddy/stockreport/history"
)

// CSVHeader is the column order written by WriteCSV.
var CSVHeader = []string{
	"id", "ticker", "company_name", "buy_price", "sell_price",
	"buy_date", "sell_date", "holding_days", "profit_rate",
	"sector", "investment_period", "target_price",
}

// WriteCSV writes trades as CSV with a header row. Scenario text fields
// are left out; sector, period and target are flattened in.
func WriteCSV(w io.Writer, trades []history.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		target := ""
		if v, ok := t.TargetPrice(); ok {
			target = f(v)
		}
		err := cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Ticker,
			t.CompanyName,
			f(t.BuyPrice),
			f(t.SellPrice),
			t.BuyDate,
			t.SellDate,
			strconv.Itoa(t.HoldingDays),
			f(t.ProfitRate),
			t.Sector(),
			t.InvestmentPeriod(),
			target,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
