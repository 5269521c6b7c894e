package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

func barsFromCloses(closes []float64, volumes []int64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		var v int64 = 1000000
		if volumes != nil {
			v = volumes[i]
		}
		bars[i] = model.Bar{
			Date:   day.AddDate(0, 0, i),
			Open:   c * 0.995,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: v,
		}
	}
	return bars
}

func TestSummarize_TwoBars(t *testing.T) {
	stats, err := Summarize(barsFromCloses([]float64{100, 110}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TradingDays != 2 {
		t.Errorf("expected 2 trading days, got %d", stats.TradingDays)
	}
	if stats.OpeningPrice != 100 || stats.ClosingPrice != 110 {
		t.Errorf("expected opening 100 closing 110, got %.2f / %.2f", stats.OpeningPrice, stats.ClosingPrice)
	}
	if math.Abs(stats.TotalReturnPct-10.0) > 1e-9 {
		t.Errorf("expected total return 10.0%%, got %.6f", stats.TotalReturnPct)
	}
	// A single return has no sample variance.
	if stats.DailyVolatility != 0 {
		t.Errorf("expected zero volatility for a single return, got %.6f", stats.DailyVolatility)
	}
	if stats.AnnualizedVolatility != 0 {
		t.Errorf("expected zero annualized volatility, got %.6f", stats.AnnualizedVolatility)
	}
}

func TestSummarize_ConstantSeries(t *testing.T) {
	stats, err := Summarize(barsFromCloses([]float64{50, 50, 50, 50, 50}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.DailyVolatility != 0 {
		t.Errorf("expected zero daily volatility, got %.6f", stats.DailyVolatility)
	}
	if stats.AnnualizedVolatility != 0 {
		t.Errorf("expected zero annualized volatility, got %.6f", stats.AnnualizedVolatility)
	}
	if stats.TotalReturnPct != 0 {
		t.Errorf("expected zero total return, got %.6f", stats.TotalReturnPct)
	}
	if stats.AvgClose != 50 || stats.HighClose != 50 || stats.LowClose != 50 {
		t.Errorf("expected all close stats 50, got avg=%.2f high=%.2f low=%.2f",
			stats.AvgClose, stats.HighClose, stats.LowClose)
	}
}

func TestSummarize_CloseOrdering(t *testing.T) {
	series := [][]float64{
		{100, 110},
		{100, 105, 98, 120, 115},
		{3, 2.5, 2.75, 4, 3.3, 3.1},
		{0.5, 0.6, 0.55},
	}
	for _, closes := range series {
		stats, err := Summarize(barsFromCloses(closes, nil))
		if err != nil {
			t.Fatalf("closes %v: unexpected error: %v", closes, err)
		}
		if stats.HighClose < stats.AvgClose || stats.AvgClose < stats.LowClose {
			t.Errorf("closes %v: expected high >= avg >= low, got %.4f / %.4f / %.4f",
				closes, stats.HighClose, stats.AvgClose, stats.LowClose)
		}
	}
}

func TestSummarize_Volatility(t *testing.T) {
	// Returns: +10%, -10% → mean 0, sample variance = (0.01+0.01)/1 = 0.02
	stats, err := Summarize(barsFromCloses([]float64{100, 110, 99}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Sqrt(0.02)
	if math.Abs(stats.DailyVolatility-want) > 1e-9 {
		t.Errorf("expected daily volatility %.6f, got %.6f", want, stats.DailyVolatility)
	}
	wantAnnual := want * math.Sqrt(252)
	if math.Abs(stats.AnnualizedVolatility-wantAnnual) > 1e-9 {
		t.Errorf("expected annualized volatility %.6f, got %.6f", wantAnnual, stats.AnnualizedVolatility)
	}
}

func TestSummarize_AvgDailyVolume(t *testing.T) {
	stats, err := Summarize(barsFromCloses([]float64{10, 11, 12}, []int64{100, 200, 300}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AvgDailyVolume != 200 {
		t.Errorf("expected average volume 200, got %d", stats.AvgDailyVolume)
	}

	// Rounds to nearest integer.
	stats, err = Summarize(barsFromCloses([]float64{10, 11}, []int64{100, 101}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.AvgDailyVolume != 101 {
		t.Errorf("expected average volume 101 (100.5 rounded), got %d", stats.AvgDailyVolume)
	}
}

func TestSummarize_IntradayExtremes(t *testing.T) {
	bars := barsFromCloses([]float64{100, 105, 102}, nil)
	bars[1].High = 120
	bars[2].Low = 90
	stats, err := Summarize(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.HighIntraday != 120 {
		t.Errorf("expected intraday high 120, got %.2f", stats.HighIntraday)
	}
	if stats.LowIntraday != 90 {
		t.Errorf("expected intraday low 90, got %.2f", stats.LowIntraday)
	}
}

func TestSummarize_InsufficientData(t *testing.T) {
	for _, closes := range [][]float64{nil, {100}} {
		_, err := Summarize(barsFromCloses(closes, nil))
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("%d bars: expected ErrInsufficientData, got %v", len(closes), err)
		}
	}
}

func TestSummarize_InvalidData(t *testing.T) {
	for _, closes := range [][]float64{{100, 0}, {100, -5, 110}, {0, 100}} {
		_, err := Summarize(barsFromCloses(closes, nil))
		if !errors.Is(err, ErrInvalidData) {
			t.Errorf("closes %v: expected ErrInvalidData, got %v", closes, err)
		}
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	bars := barsFromCloses([]float64{100, 103, 99.5, 107, 104.25}, []int64{500, 700, 650, 800, 720})
	first, err := Summarize(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Summarize(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *first != *second {
		t.Errorf("expected bit-identical results, got %+v vs %+v", first, second)
	}
}

func TestSummarize_AllFinite(t *testing.T) {
	stats, err := Summarize(barsFromCloses([]float64{0.0001, 1000000, 0.0001}, []int64{0, 0, 0}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, v := range map[string]float64{
		"opening":   stats.OpeningPrice,
		"closing":   stats.ClosingPrice,
		"avg":       stats.AvgClose,
		"dailyVol":  stats.DailyVolatility,
		"annualVol": stats.AnnualizedVolatility,
		"totalRet":  stats.TotalReturnPct,
		"highClose": stats.HighClose,
		"lowClose":  stats.LowClose,
		"highIntra": stats.HighIntraday,
		"lowIntra":  stats.LowIntraday,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %v", name, v)
		}
	}
}

func TestSampleStdDev(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{0.1}, 0},
		{[]float64{2, 4}, math.Sqrt(2)},
		{[]float64{1, 2, 3, 4, 5}, math.Sqrt(2.5)},
	}
	for _, tt := range tests {
		got := sampleStdDev(tt.values)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("sampleStdDev(%v) = %.6f, want %.6f", tt.values, got, tt.want)
		}
	}
}
