package i18n

// Dictionary maps dotted keys to display strings.
type Dictionary map[string]string

var dictionaries = map[Language]Dictionary{
	Korean: {
		"language.label": "언어",
		"language.ko":    "한국어",
		"language.en":    "English",

		"history.title":              "매매 이력",
		"history.subtitle":           "AI 시나리오 기반 매매 성과 요약",
		"history.empty":              "아직 완료된 매매 내역이 없습니다.",
		"history.best_trade":         "최고 수익 거래",
		"history.worst_trade":        "최저 수익 거래",
		"history.sector_performance": "섹터별 평균 수익률 (상위 3)",
		"history.period_performance": "투자 기간별 평균 수익률",
		"history.trade_details":      "매매 상세 내역",
		"history.trades_unit":        "건",

		"summary.total_trades":     "총 거래 수",
		"summary.win_rate":         "승률",
		"summary.avg_profit_rate":  "평균 수익률",
		"summary.avg_holding_days": "평균 보유 기간",
		"summary.days_unit":        "일",

		"sector.other":        "기타",
		"period.unclassified": "미분류",

		"trade.sector":               "섹터",
		"trade.investment_period":    "투자 기간",
		"trade.buy_price":            "매수가",
		"trade.sell_price":           "매도가",
		"trade.buy_date":             "매수일",
		"trade.sell_date":            "매도일",
		"trade.holding_days":         "보유 기간",
		"trade.profit_rate":          "수익률",
		"trade.target_price":         "목표가",
		"trade.target_achievement":   "목표 달성률",
		"trade.rationale":            "매수 근거",
		"trade.portfolio_analysis":   "포트폴리오 분석",
		"trade.valuation_analysis":   "밸류에이션 분석",
		"trade.sector_outlook":       "섹터 전망",
		"trade.market_condition":     "시장 상황",
		"trade.trading_scenario":     "매매 시나리오",
		"trade.key_levels":           "주요 가격대",
		"trade.primary_support":      "1차 지지선",
		"trade.secondary_support":    "2차 지지선",
		"trade.primary_resistance":   "1차 저항선",
		"trade.secondary_resistance": "2차 저항선",
		"trade.sell_triggers":        "매도 조건",
		"trade.hold_conditions":      "보유 조건",
		"trade.portfolio_context":    "포트폴리오 맥락",
	},
	English: {
		"language.label": "Language",
		"language.ko":    "한국어",
		"language.en":    "English",

		"history.title":              "Trading History",
		"history.subtitle":           "Performance of AI scenario driven trades",
		"history.empty":              "No completed trades yet.",
		"history.best_trade":         "Best Trade",
		"history.worst_trade":        "Worst Trade",
		"history.sector_performance": "Average Return by Sector (Top 3)",
		"history.period_performance": "Average Return by Investment Period",
		"history.trade_details":      "Trade Details",
		"history.trades_unit":        "trades",

		"summary.total_trades":     "Total Trades",
		"summary.win_rate":         "Win Rate",
		"summary.avg_profit_rate":  "Avg. Return",
		"summary.avg_holding_days": "Avg. Holding Period",
		"summary.days_unit":        "days",

		"sector.other":        "Other",
		"period.unclassified": "Unclassified",

		"trade.sector":               "Sector",
		"trade.investment_period":    "Investment Period",
		"trade.buy_price":            "Buy Price",
		"trade.sell_price":           "Sell Price",
		"trade.buy_date":             "Buy Date",
		"trade.sell_date":            "Sell Date",
		"trade.holding_days":         "Holding Period",
		"trade.profit_rate":          "Return",
		"trade.target_price":         "Target Price",
		"trade.target_achievement":   "Target Achievement",
		"trade.rationale":            "Rationale",
		"trade.portfolio_analysis":   "Portfolio Analysis",
		"trade.valuation_analysis":   "Valuation Analysis",
		"trade.sector_outlook":       "Sector Outlook",
		"trade.market_condition":     "Market Condition",
		"trade.trading_scenario":     "Trading Scenario",
		"trade.key_levels":           "Key Levels",
		"trade.primary_support":      "Primary Support",
		"trade.secondary_support":    "Secondary Support",
		"trade.primary_resistance":   "Primary Resistance",
		"trade.secondary_resistance": "Secondary Resistance",
		"trade.sell_triggers":        "Sell Triggers",
		"trade.hold_conditions":      "Hold Conditions",
		"trade.portfolio_context":    "Portfolio Context",
	},
}

// Lookup returns the string for key in lang, or key itself when missing.
func Lookup(lang Language, key string) string {
	if s, ok := dictionaries[lang][key]; ok {
		return s
	}
	return key
}

// Keys returns the keys defined for lang.
func Keys(lang Language) []string {
	d := dictionaries[lang]
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}
