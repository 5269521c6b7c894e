package chart

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

func testSeries(n int) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   p - 0.5,
			High:   p + 1,
			Low:    p - 1,
			Close:  p,
			Volume: int64(1000 * (i + 1)),
		}
	}
	return &model.PriceSeries{
		Symbol:  "AAPL",
		Company: "Apple Inc.",
		Start:   start,
		End:     start.AddDate(0, 0, n-1),
		Bars:    bars,
	}
}

func TestRender_AllKinds(t *testing.T) {
	r := NewRenderer(t.TempDir())
	series := testSeries(10)

	for _, kind := range Kinds {
		path, err := r.Render(series, kind)
		if err != nil {
			t.Fatalf("render %s: %v", kind, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("render %s: empty file", kind)
		}
		if !strings.HasSuffix(path, "_"+string(kind)+".html") {
			t.Errorf("render %s: unexpected path %s", kind, path)
		}
	}
}

func TestRender_EmptySeries(t *testing.T) {
	r := NewRenderer(t.TempDir())
	if _, err := r.Render(&model.PriceSeries{Symbol: "AAPL"}, KindClose); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestLineData_PicksColumn(t *testing.T) {
	bars := testSeries(3).Bars
	tests := []struct {
		kind Kind
		want float64
	}{
		{KindOpen, bars[0].Open},
		{KindClose, bars[0].Close},
		{KindHigh, bars[0].High},
		{KindLow, bars[0].Low},
	}
	for _, tt := range tests {
		data := LineData(bars, tt.kind)
		if len(data) != 3 {
			t.Fatalf("%s: expected 3 points, got %d", tt.kind, len(data))
		}
		if data[0].Value != tt.want {
			t.Errorf("%s: first point %v, want %v", tt.kind, data[0].Value, tt.want)
		}
	}
}

func TestKlineData_ValueOrder(t *testing.T) {
	bars := testSeries(1).Bars
	data := KlineData(bars)
	want := [4]float64{bars[0].Open, bars[0].Close, bars[0].Low, bars[0].High}
	if data[0].Value != want {
		t.Errorf("kline value %v, want open/close/low/high %v", data[0].Value, want)
	}
}
