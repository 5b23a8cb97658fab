package history

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Trade is one completed buy/sell round trip as supplied by the upstream
// trading_history source. Trades are never mutated after they are loaded.
type Trade struct {
	ID          int64     `json:"id" yaml:"id"`
	Ticker      string    `json:"ticker" yaml:"ticker"`
	CompanyName string    `json:"company_name" yaml:"company_name"`
	BuyPrice    float64   `json:"buy_price" yaml:"buy_price"`
	SellPrice   float64   `json:"sell_price" yaml:"sell_price"`
	BuyDate     string    `json:"buy_date" yaml:"buy_date"`
	SellDate    string    `json:"sell_date" yaml:"sell_date"`
	HoldingDays int       `json:"holding_days" yaml:"holding_days"`
	ProfitRate  float64   `json:"profit_rate" yaml:"profit_rate"`
	Scenario    *Scenario `json:"scenario,omitempty" yaml:"scenario,omitempty"`
}

// Scenario is the investment thesis captured when the position was opened.
// Empty strings mean the field was not produced.
type Scenario struct {
	Sector            string           `json:"sector,omitempty" yaml:"sector,omitempty"`
	InvestmentPeriod  string           `json:"investment_period,omitempty" yaml:"investment_period,omitempty"`
	TargetPrice       *float64         `json:"target_price,omitempty" yaml:"target_price,omitempty"`
	Rationale         string           `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	PortfolioAnalysis string           `json:"portfolio_analysis,omitempty" yaml:"portfolio_analysis,omitempty"`
	ValuationAnalysis string           `json:"valuation_analysis,omitempty" yaml:"valuation_analysis,omitempty"`
	SectorOutlook     string           `json:"sector_outlook,omitempty" yaml:"sector_outlook,omitempty"`
	MarketCondition   string           `json:"market_condition,omitempty" yaml:"market_condition,omitempty"`
	TradingScenario   *TradingScenario `json:"trading_scenario,omitempty" yaml:"trading_scenario,omitempty"`
}

// TradingScenario holds the exit plan attached to a scenario.
type TradingScenario struct {
	KeyLevels        *KeyLevels `json:"key_levels,omitempty" yaml:"key_levels,omitempty"`
	SellTriggers     []string   `json:"sell_triggers,omitempty" yaml:"sell_triggers,omitempty"`
	HoldConditions   []string   `json:"hold_conditions,omitempty" yaml:"hold_conditions,omitempty"`
	PortfolioContext string     `json:"portfolio_context,omitempty" yaml:"portfolio_context,omitempty"`
}

// KeyLevels are the support and resistance prices named in the exit plan.
type KeyLevels struct {
	PrimarySupport      Level `json:"primary_support,omitempty" yaml:"primary_support,omitempty"`
	SecondarySupport    Level `json:"secondary_support,omitempty" yaml:"secondary_support,omitempty"`
	PrimaryResistance   Level `json:"primary_resistance,omitempty" yaml:"primary_resistance,omitempty"`
	SecondaryResistance Level `json:"secondary_resistance,omitempty" yaml:"secondary_resistance,omitempty"`
}

// Empty reports whether no level is set.
func (k *KeyLevels) Empty() bool {
	return k == nil ||
		(k.PrimarySupport == "" && k.SecondarySupport == "" &&
			k.PrimaryResistance == "" && k.SecondaryResistance == "")
}

// Level is a price level as written by the analysis model. Upstream emits
// either a bare number (82000) or prose ("82,000원 부근"), so both decode.
type Level string

func (l *Level) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*l = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*l = Level(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = Level(n.String())
	return nil
}

func (l *Level) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("level: expected a scalar, got %q", n.Tag)
	}
	if n.Tag == "!!null" {
		*l = ""
		return nil
	}
	*l = Level(n.Value)
	return nil
}

// Float returns the numeric value of the level when it is a plain number.
func (l Level) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(l)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Sector returns the scenario sector, or "" when there is none.
func (t Trade) Sector() string {
	if t.Scenario == nil {
		return ""
	}
	return t.Scenario.Sector
}

// InvestmentPeriod returns the scenario investment period, or "".
func (t Trade) InvestmentPeriod() string {
	if t.Scenario == nil {
		return ""
	}
	return t.Scenario.InvestmentPeriod
}

// TargetPrice returns the scenario target price when one was set.
func (t Trade) TargetPrice() (float64, bool) {
	if t.Scenario == nil || t.Scenario.TargetPrice == nil {
		return 0, false
	}
	return *t.Scenario.TargetPrice, true
}

// Summary is the upstream aggregate snapshot delivered next to the history.
type Summary struct {
	Trading TradingSummary `json:"trading" yaml:"trading"`
}

// TradingSummary holds the precomputed counters shown in the header cards.
type TradingSummary struct {
	TotalTrades    int     `json:"total_trades" yaml:"total_trades"`
	WinRate        float64 `json:"win_rate" yaml:"win_rate"`
	AvgProfitRate  float64 `json:"avg_profit_rate" yaml:"avg_profit_rate"`
	AvgHoldingDays float64 `json:"avg_holding_days" yaml:"avg_holding_days"`
}
