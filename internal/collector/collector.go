package collector

import (
	"fmt"
	"time"

	"github.com/Finance-Coder1/stock-data-explorer/internal/calculator"
	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars    []model.Bar
	Company string
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, start, end time.Time) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var bars []model.Bar
	for _, b := range m.Bars {
		if b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func (m *MockFetcher) LookupCompany(symbol string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Company == "" {
		return "", fmt.Errorf("unknown ticker %q", symbol)
	}
	return m.Company, nil
}

// GenerateMockBars produces a deterministic drifting series for development.
func GenerateMockBars(basePrice float64, start time.Time, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates ticker lookup, data fetching and statistics
// computation for one analysis request.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Lookup resolves a ticker to its company name.
func (c *Collector) Lookup(symbol string) (string, error) {
	company, err := c.Fetcher.LookupCompany(symbol)
	if err != nil {
		return "", fmt.Errorf("lookup ticker %s: %w", symbol, err)
	}
	return company, nil
}

// Analyze fetches daily bars for the range and computes summary statistics.
// The returned series carries the raw bars for chart rendering.
func (c *Collector) Analyze(symbol, company string, start, end time.Time) (*model.Analysis, *model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}

	series := &model.PriceSeries{
		Symbol:    symbol,
		Company:   company,
		Start:     start,
		End:       end,
		Bars:      bars,
		FetchedAt: time.Now(),
	}

	stats, err := calculator.Summarize(bars)
	if err != nil {
		return nil, series, fmt.Errorf("summarize %s: %w", symbol, err)
	}

	first, last := series.ActualRange()
	analysis := &model.Analysis{
		Symbol:      symbol,
		Company:     company,
		ActualStart: first,
		ActualEnd:   last,
		Stats:       *stats,
		AnalyzedAt:  time.Now(),
	}
	return analysis, series, nil
}
