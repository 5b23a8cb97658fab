package history

import (
	"sort"
)

const (
	// FallbackSector labels trades whose scenario has no sector.
	FallbackSector = "other"
	// FallbackPeriod labels trades whose scenario has no investment period.
	FallbackPeriod = "unclassified"

	// TopSectors is how many sector groups the report keeps.
	TopSectors = 3
)

// GroupAverage is the running profit-rate average of one label.
type GroupAverage struct {
	Label   string  `json:"label"`
	Sum     float64 `json:"sum"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Analysis holds the aggregates derived from a trade list at render time.
type Analysis struct {
	Empty   bool           `json:"empty"`
	Best    Trade          `json:"best"`
	Worst   Trade          `json:"worst"`
	Sectors []GroupAverage `json:"sectors"`
	Periods []GroupAverage `json:"periods"`
}

// Analyze derives every aggregate the report needs. An empty list yields
// placeholder best/worst trades with a zero profit rate and no groups.
func Analyze(trades []Trade) Analysis {
	return Analysis{
		Empty:   len(trades) == 0,
		Best:    BestTrade(trades),
		Worst:   WorstTrade(trades),
		Sectors: SectorAverages(trades),
		Periods: PeriodAverages(trades),
	}
}

// BestTrade returns the trade with the highest profit rate. The first one
// wins on ties.
func BestTrade(trades []Trade) Trade {
	if len(trades) == 0 {
		return Trade{}
	}
	best := trades[0]
	for _, t := range trades[1:] {
		if t.ProfitRate > best.ProfitRate {
			best = t
		}
	}
	return best
}

// WorstTrade returns the trade with the lowest profit rate.
func WorstTrade(trades []Trade) Trade {
	if len(trades) == 0 {
		return Trade{}
	}
	worst := trades[0]
	for _, t := range trades[1:] {
		if t.ProfitRate < worst.ProfitRate {
			worst = t
		}
	}
	return worst
}

// SectorAverages groups by scenario sector and returns at most TopSectors
// groups ordered by descending average. Equal averages keep the order in
// which the sectors first appeared.
func SectorAverages(trades []Trade) []GroupAverage {
	groups := groupAverages(trades, Trade.Sector, FallbackSector)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Average > groups[j].Average
	})
	if len(groups) > TopSectors {
		groups = groups[:TopSectors]
	}
	return groups
}

// PeriodAverages groups by investment period and returns every group in
// first-appearance order.
func PeriodAverages(trades []Trade) []GroupAverage {
	return groupAverages(trades, Trade.InvestmentPeriod, FallbackPeriod)
}

func groupAverages(trades []Trade, key func(Trade) string, fallback string) []GroupAverage {
	index := make(map[string]int)
	var out []GroupAverage
	for _, t := range trades {
		label := key(t)
		if label == "" {
			label = fallback
		}
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, GroupAverage{Label: label})
		}
		g := &out[i]
		g.Sum += t.ProfitRate
		g.Count++
		g.Average = g.Sum / float64(g.Count)
	}
	return out
}

// ComputeSummary derives the trading summary from the list itself. It is used
// when a source only stores trades. A trade counts as a win when its profit
// rate is strictly positive.
func ComputeSummary(trades []Trade) Summary {
	if len(trades) == 0 {
		return Summary{}
	}
	var wins int
	var profit, days float64
	for _, t := range trades {
		if t.ProfitRate > 0 {
			wins++
		}
		profit += t.ProfitRate
		days += float64(t.HoldingDays)
	}
	n := float64(len(trades))
	return Summary{Trading: TradingSummary{
		TotalTrades:    len(trades),
		WinRate:        float64(wins) / n * 100,
		AvgProfitRate:  profit / n,
		AvgHoldingDays: days / n,
	}}
}
