package collector

import (
	"time"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns daily bars for [start, end], ordered ascending
	// by date. An empty slice means the provider has no data for the range.
	FetchDailyBars(symbol string, start, end time.Time) ([]model.Bar, error)
	// LookupCompany resolves a ticker symbol to its long company name.
	// An error means the ticker does not exist at the provider.
	LookupCompany(symbol string) (string, error)
	Name() string
}
