package exporter

import (
	"encoding/csv"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

func testAnalysis(symbol string, startDay int) *model.Analysis {
	start := time.Date(2024, 1, startDay, 0, 0, 0, 0, time.UTC)
	return &model.Analysis{
		Symbol:      symbol,
		Company:     symbol + " Inc.",
		ActualStart: start,
		ActualEnd:   start.AddDate(0, 1, 0),
		Stats: model.SummaryStatistics{
			TradingDays:    21,
			OpeningPrice:   100,
			ClosingPrice:   110,
			AvgClose:       105,
			HighClose:      112,
			LowClose:       99,
			HighIntraday:   113,
			LowIntraday:    98,
			TotalReturnPct: 10,
			AvgDailyVolume: 1000000,
		},
		AnalyzedAt: time.Now(),
	}
}

func readFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestSaveAnalysis(t *testing.T) {
	e := NewCSVExporter(t.TempDir())
	a := testAnalysis("AAPL", 2)

	path, err := e.SaveAnalysis(a)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	records := readFile(t, path)
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "company" || records[0][1] != "date_range" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "AAPL (AAPL Inc.)" {
		t.Errorf("unexpected company cell: %q", records[1][0])
	}
	if records[1][1] != "2024-01-02 to 2024-02-02" {
		t.Errorf("unexpected date range cell: %q", records[1][1])
	}
}

func TestSaveAnalysis_Duplicate(t *testing.T) {
	e := NewCSVExporter(t.TempDir())
	a := testAnalysis("AAPL", 2)

	if _, err := e.SaveAnalysis(a); err != nil {
		t.Fatalf("first save: %v", err)
	}
	_, err := e.SaveAnalysis(a)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	path, err := e.SaveAnalysis(testAnalysis("AAPL", 3))
	if err != nil {
		t.Fatalf("different range save: %v", err)
	}
	// Different range goes to a different file with its own header.
	records := readFile(t, path)
	if len(records) != 2 {
		t.Errorf("expected header + 1 row in new file, got %d", len(records))
	}
}

func TestSaveAll(t *testing.T) {
	e := NewCSVExporter(t.TempDir())
	analyses := []*model.Analysis{testAnalysis("AAPL", 2), testAnalysis("MSFT", 2)}

	path, err := e.SaveAll("my stocks", analyses)
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	if got := readFile(t, path); len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}

	// Appending to the same file must not repeat the header.
	if _, err := e.SaveAll("my stocks", []*model.Analysis{testAnalysis("TSLA", 2)}); err != nil {
		t.Fatalf("second save all: %v", err)
	}
	records := readFile(t, path)
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	for i, rec := range records[1:] {
		if rec[0] == "company" {
			t.Errorf("row %d: header repeated", i+1)
		}
	}
}

func TestNormalizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"my stocks", "my_stocks.csv"},
		{"report.csv", "report.csv"},
		{"  q1 summary  ", "q1_summary.csv"},
	}
	for _, tt := range tests {
		if got := NormalizeFilename(tt.in); got != tt.want {
			t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnalysisFilename(t *testing.T) {
	got := AnalysisFilename(testAnalysis("AAPL", 2))
	want := "AAPL_2024-01-02_to_2024-02-02.csv"
	if got != want {
		t.Errorf("AnalysisFilename = %q, want %q", got, want)
	}
}
