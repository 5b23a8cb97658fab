package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockreport/history"
	"github.com/rustyeddy/stockreport/i18n"
)

func price(v float64) *float64 { return &v }

func sampleTrades() []history.Trade {
	return []history.Trade{
		{
			ID: 1, Ticker: "005930", CompanyName: "삼성전자",
			BuyPrice: 100000, SellPrice: 110000,
			BuyDate: "2024-03-04", SellDate: "2024-03-18",
			HoldingDays: 14, ProfitRate: 10,
			Scenario: &history.Scenario{
				Sector:           "finance",
				InvestmentPeriod: "short",
				TargetPrice:      price(100000),
				Rationale:        "HBM <script>alert(1)</script>",
				MarketCondition:  "risk-on",
				TradingScenario: &history.TradingScenario{
					KeyLevels:    &history.KeyLevels{PrimarySupport: "68000", PrimaryResistance: "170,000원"},
					SellTriggers: []string{"target hit"},
				},
			},
		},
		{
			ID: 2, Ticker: "035420", CompanyName: "NAVER",
			BuyPrice: 200000, SellPrice: 202000,
			BuyDate: "2024-03-05", SellDate: "2024-03-08",
			HoldingDays: 3, ProfitRate: 1,
			Scenario: &history.Scenario{Sector: "tech"},
		},
		{
			ID: 3, Ticker: "000660", CompanyName: "SK하이닉스",
			BuyPrice: 150000, SellPrice: 142500,
			BuyDate: "2024-04-01", SellDate: "2024-04-10",
			HoldingDays: 9, ProfitRate: -5,
		},
	}
}

func sampleSummary() history.Summary {
	return history.Summary{Trading: history.TradingSummary{TotalTrades: 3, WinRate: 66.666, AvgProfitRate: 2, AvgHoldingDays: 8.666}}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	p := Build(i18n.Static(i18n.Korean), nil, history.Summary{})
	assert.True(t, p.Empty)
	assert.Empty(t, p.Sectors)
	assert.Empty(t, p.Periods)
	assert.Empty(t, p.Trades)
	assert.Equal(t, "매매 이력", p.Title)

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, p))
	assert.Contains(t, buf.String(), "아직 완료된 매매 내역이 없습니다.")
	assert.NotContains(t, buf.String(), "최고 수익 거래")
}

func TestBuildAggregates(t *testing.T) {
	t.Parallel()

	p := Build(i18n.Static(i18n.Korean), sampleTrades(), sampleSummary())
	require.False(t, p.Empty)

	assert.Equal(t, "3", p.Summary.TotalTrades)
	assert.Equal(t, "66.7%", p.Summary.WinRate)
	assert.Equal(t, "+2.00%", p.Summary.AvgProfitRate)
	assert.Equal(t, "8.7일", p.Summary.AvgHoldingDays)

	assert.Equal(t, TradeCard{Ticker: "005930", CompanyName: "삼성전자", ProfitRate: "+10.00%", Gain: true}, p.Best)
	assert.Equal(t, TradeCard{Ticker: "000660", CompanyName: "SK하이닉스", ProfitRate: "-5.00%", Gain: false}, p.Worst)

	require.Len(t, p.Sectors, 3)
	assert.Equal(t, GroupRow{Label: "finance", Average: "+10.00%", Count: 1, Gain: true}, p.Sectors[0])
	assert.Equal(t, "tech", p.Sectors[1].Label)
	assert.Equal(t, GroupRow{Label: "기타", Average: "-5.00%", Count: 1, Gain: false}, p.Sectors[2])

	require.Len(t, p.Periods, 2)
	assert.Equal(t, "short", p.Periods[0].Label)
	assert.Equal(t, "미분류", p.Periods[1].Label)
	assert.Equal(t, 2, p.Periods[1].Count)
	assert.Equal(t, "-2.00%", p.Periods[1].Average)
}

func TestBuildFallbackLabelsFollowLanguage(t *testing.T) {
	t.Parallel()

	p := Build(i18n.Static(i18n.English), sampleTrades()[2:], history.Summary{})
	require.Len(t, p.Sectors, 1)
	assert.Equal(t, "Other", p.Sectors[0].Label)
	assert.Equal(t, "Unclassified", p.Periods[0].Label)
}

func TestBuildTradeRows(t *testing.T) {
	t.Parallel()

	p := Build(i18n.Static(i18n.English), sampleTrades(), sampleSummary())
	require.Len(t, p.Trades, 3)

	first := p.Trades[0]
	assert.Equal(t, "₩100,000", first.BuyPrice)
	assert.Equal(t, "₩110,000", first.SellPrice)
	assert.Equal(t, "March 4, 2024", first.BuyDate)
	assert.Equal(t, "14 days", first.HoldingDays)
	assert.Equal(t, "₩100,000", first.TargetPrice)
	assert.Equal(t, "110%", first.TargetAchievement)
	assert.Equal(t, []Field{
		{Label: "Rationale", Value: "HBM <script>alert(1)</script>"},
		{Label: "Market Condition", Value: "risk-on"},
	}, first.Notes)
	require.NotNil(t, first.Plan)
	assert.Equal(t, []Field{
		{Label: "Primary Support", Value: "₩68,000"},
		{Label: "Primary Resistance", Value: "170,000원"},
	}, first.Plan.Levels)
	assert.Equal(t, []string{"target hit"}, first.Plan.SellTriggers)

	second := p.Trades[1]
	assert.Equal(t, "tech", second.Sector)
	assert.Empty(t, second.TargetPrice)
	assert.Equal(t, i18n.Placeholder, second.TargetAchievement)
	assert.Empty(t, second.Notes)
	assert.Nil(t, second.Plan)

	third := p.Trades[2]
	assert.Empty(t, third.Sector)
	assert.Equal(t, "-", third.TargetAchievement)
	assert.False(t, third.Gain)
}

func TestBuildEmptyPlanOmitted(t *testing.T) {
	t.Parallel()

	tr := sampleTrades()[1]
	tr.Scenario.TradingScenario = &history.TradingScenario{KeyLevels: &history.KeyLevels{}}
	p := Build(i18n.Static(i18n.Korean), []history.Trade{tr}, history.Summary{})
	assert.Nil(t, p.Trades[0].Plan)
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, Build(i18n.Static(i18n.English), sampleTrades(), sampleSummary())))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Trading History\n"))
	assert.Contains(t, out, "Best Trade: 삼성전자 (005930) +10.00%")
	assert.Contains(t, out, "Worst Trade: SK하이닉스 (000660) -5.00%")
	assert.Contains(t, out, "  finance: +10.00% (1 trades)")
	assert.Contains(t, out, "  Unclassified: -2.00% (2 trades)")
	assert.Contains(t, out, "  Target Achievement: 110%")
	assert.Contains(t, out, "    Primary Resistance: 170,000원")
	assert.Contains(t, out, "      - target hit")
	assert.NotContains(t, out, "<no value>")
}

func TestRenderTextKorean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderText(&buf, Build(i18n.Static(i18n.Korean), sampleTrades(), sampleSummary())))
	out := buf.String()

	assert.Contains(t, out, "최고 수익 거래: 삼성전자 (005930) +10.00%")
	assert.Contains(t, out, "매수가: ₩100,000 (2024년 3월 4일)")
	assert.Contains(t, out, "  기타: -5.00% (1 건)")
}

func TestRenderHTMLEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, Build(i18n.Static(i18n.English), sampleTrades(), sampleSummary())))
	out := buf.String()

	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "<h1>Trading History</h1>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `href="?lang=ko"`)
	assert.Contains(t, out, `id="trade-3"`)
}

func TestRenderHTMLEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, Build(i18n.Static(i18n.Korean), nil, history.Summary{})))
	assert.Contains(t, buf.String(), `<p class="empty">아직 완료된 매매 내역이 없습니다.</p>`)
	assert.NotContains(t, buf.String(), `class="summary"`)
}

func TestOrgString(t *testing.T) {
	t.Parallel()

	out := OrgString(Build(i18n.Static(i18n.English), sampleTrades(), sampleSummary()))

	assert.True(t, strings.HasPrefix(out, "* Trading History\n"))
	assert.Contains(t, out, ":TOTAL_TRADES: 3\n")
	assert.Contains(t, out, "*** 삼성전자 (005930) +10.00%\n")
	assert.Contains(t, out, ":TARGET_ACHIEVEMENT: 110%\n")
	assert.Contains(t, out, ":SECTOR: finance\n")
	assert.Contains(t, out, "| Other | -5.00% | 1 trades |\n")
	assert.Contains(t, out, "- Primary Support :: ₩68,000\n")
	assert.Contains(t, out, "  - target hit\n")
	assert.Equal(t, 4, strings.Count(out, ":PROPERTIES:"))
}

func TestOrgStringEmpty(t *testing.T) {
	t.Parallel()

	out := OrgString(Build(i18n.Static(i18n.English), nil, history.Summary{}))
	assert.Contains(t, out, "No completed trades yet.")
	assert.NotContains(t, out, ":PROPERTIES:")
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"md", FormatText, false},
		{"org", FormatOrg, false},
		{" html ", FormatHTML, false},
		{"json", FormatJSON, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRendererCachesAnalysis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRenderer()
	trades := sampleTrades()

	for _, f := range Formats() {
		var buf bytes.Buffer
		require.NoError(t, r.Render(ctx, &buf, f, i18n.Static(i18n.Korean), trades, sampleSummary()), f)
		assert.NotEmpty(t, buf.String(), f)
	}

	hits, misses := r.memo.Stats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, len(Formats())-1, hits)

	trades[0].ProfitRate = 11
	r.Page(ctx, i18n.Static(i18n.Korean), trades, sampleSummary())
	_, misses = r.memo.Stats()
	assert.Equal(t, 2, misses)
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(context.Background(), &buf, FormatJSON, i18n.Static(i18n.English), sampleTrades(), sampleSummary()))

	var p Page
	require.NoError(t, json.Unmarshal(buf.Bytes(), &p))
	assert.Equal(t, i18n.English, p.Lang)
	assert.Len(t, p.Trades, 3)
	assert.Equal(t, "110%", p.Trades[0].TargetAchievement)
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()

	err := NewRenderer().Render(context.Background(), &bytes.Buffer{}, Format("pdf"), i18n.Static(i18n.English), nil, history.Summary{})
	assert.Error(t, err)
}

func TestBuildReadsLanguageOnce(t *testing.T) {
	p := i18n.NewProvider(context.Background(), &i18n.MemoryStore{})
	trades, summary := sampleTrades(), sampleSummary()
	want := map[i18n.Language]Page{
		i18n.Korean:  Build(i18n.Static(i18n.Korean), trades, summary),
		i18n.English: Build(i18n.Static(i18n.English), trades, summary),
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		langs := i18n.Languages()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				_ = p.SetLanguage(langs[i%len(langs)])
			}
		}
	}()
	defer func() {
		close(done)
		<-stopped
	}()

	r := NewRenderer()
	for i := 0; i < 2000; i++ {
		pg := Build(p, trades, summary)
		require.Equal(t, want[pg.Lang], pg, "page %d mixes languages", i)

		pg = r.Page(context.Background(), p, trades, summary)
		require.Equal(t, want[pg.Lang], pg, "cached page %d mixes languages", i)
	}
}
