package model

import "time"

// Bar represents a single daily OHLCV bar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries holds the raw daily bars fetched for one ticker over a date range.
// Bars are ordered ascending by date and may be empty when the provider has
// no data for the range.
type PriceSeries struct {
	Symbol    string
	Company   string
	Start     time.Time
	End       time.Time
	Bars      []Bar
	FetchedAt time.Time
}

// ActualRange returns the dates of the first and last bar. When the requested
// range starts or ends on a closed market day these differ from Start/End.
func (s *PriceSeries) ActualRange() (first, last time.Time) {
	if len(s.Bars) == 0 {
		return s.Start, s.End
	}
	return s.Bars[0].Date, s.Bars[len(s.Bars)-1].Date
}
