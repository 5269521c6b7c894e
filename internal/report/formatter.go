package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatSummary formats one analysis for terminal display, one labeled
// statistic per line.
func FormatSummary(a *model.Analysis) string {
	var b strings.Builder
	st := a.Stats

	b.WriteString(fmt.Sprintf("Company: %s (%s)\n", a.Symbol, a.Company))
	b.WriteString(fmt.Sprintf("Date Range: %s to %s\n",
		a.ActualStart.Format("2006-01-02"), a.ActualEnd.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Total Trading Days: %s\n", humanize.Comma(int64(st.TradingDays))))
	b.WriteString(fmt.Sprintf("Opening Price: %s\n", money(st.OpeningPrice)))
	b.WriteString(fmt.Sprintf("Closing Price: %s\n", money(st.ClosingPrice)))
	b.WriteString(fmt.Sprintf("Average Closing Price: %s\n", money(st.AvgClose)))
	b.WriteString(fmt.Sprintf("Highest Closing Price: %s\n", money(st.HighClose)))
	b.WriteString(fmt.Sprintf("Highest Intraday Price: %s\n", money(st.HighIntraday)))
	b.WriteString(fmt.Sprintf("Lowest Closing Price: %s\n", money(st.LowClose)))
	b.WriteString(fmt.Sprintf("Lowest Intraday Price: %s\n", money(st.LowIntraday)))
	b.WriteString(fmt.Sprintf("Daily Price Volatility: %.6f\n", st.DailyVolatility))
	b.WriteString(fmt.Sprintf("Annualized Price Volatility: %.6f\n", st.AnnualizedVolatility))
	b.WriteString(fmt.Sprintf("Total Return (%%): %.4f%%\n", st.TotalReturnPct))
	b.WriteString(fmt.Sprintf("Average Daily Volume: %s\n", humanize.Comma(st.AvgDailyVolume)))

	return b.String()
}

// FormatAnalysisList formats all analyses of the current run.
func FormatAnalysisList(analyses []*model.Analysis) string {
	var b strings.Builder
	b.WriteString("\nAll Analyzed Stocks:\n-----****-----\n")
	for _, a := range analyses {
		b.WriteString(FormatSummary(a))
		b.WriteString("--\n\n")
	}
	return b.String()
}

// FormatHistory formats persisted analyses from previous runs as a compact
// one-line-per-analysis table.
func FormatHistory(analyses []model.Analysis) string {
	if len(analyses) == 0 {
		return "No saved analyses yet.\n"
	}
	var b strings.Builder
	b.WriteString("\nSaved Analysis History:\n")
	for _, a := range analyses {
		b.WriteString(fmt.Sprintf("%s  %-6s %s to %s  close %s  return %+.2f%%\n",
			a.AnalyzedAt.Format("2006-01-02 15:04"),
			a.Symbol,
			a.ActualStart.Format("2006-01-02"),
			a.ActualEnd.Format("2006-01-02"),
			money(a.Stats.ClosingPrice),
			a.Stats.TotalReturnPct))
	}
	return b.String()
}
