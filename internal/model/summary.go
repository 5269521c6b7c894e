package model

import "time"

// SummaryStatistics holds all statistics derived from one PriceSeries.
// Opening price follows the first-close convention, so TotalReturnPct is
// exactly the compounded daily-return chain.
type SummaryStatistics struct {
	TradingDays          int
	OpeningPrice         float64
	ClosingPrice         float64
	AvgClose             float64
	HighClose            float64
	LowClose             float64
	HighIntraday         float64
	LowIntraday          float64
	DailyVolatility      float64
	AnnualizedVolatility float64
	TotalReturnPct       float64
	AvgDailyVolume       int64
}

// Analysis is one completed stock analysis: the ticker, the date range the
// data actually covers, and the computed statistics.
type Analysis struct {
	Symbol      string
	Company     string
	ActualStart time.Time
	ActualEnd   time.Time
	Stats       SummaryStatistics
	AnalyzedAt  time.Time
}

// SameRange reports whether two analyses cover the same ticker and the same
// actual date range. Used for duplicate detection.
func (a *Analysis) SameRange(other *Analysis) bool {
	return a.Symbol == other.Symbol &&
		a.ActualStart.Equal(other.ActualStart) &&
		a.ActualEnd.Equal(other.ActualEnd)
}
