package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

// header lists the CSV column names, one per SummaryStatistics field plus
// identification columns.
var header = []string{
	"company",
	"date_range",
	"total_trading_days",
	"opening_price",
	"closing_price",
	"average_closing_price",
	"highest_closing_price",
	"highest_intraday_price",
	"lowest_closing_price",
	"lowest_intraday_price",
	"daily_price_volatility",
	"annualized_price_volatility",
	"total_return_pct",
	"average_daily_volume",
}

// ErrDuplicate indicates the target file already contains a row for the same
// date range; the row is not written again.
var ErrDuplicate = fmt.Errorf("analysis already saved")

// CSVExporter writes analyses as CSV rows under Dir.
type CSVExporter struct {
	Dir string
}

// NewCSVExporter creates an exporter writing into dir (created on demand).
func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{Dir: dir}
}

// AnalysisFilename derives the per-analysis file name: SYMBOL_start_to_end.csv.
func AnalysisFilename(a *model.Analysis) string {
	return fmt.Sprintf("%s_%s_to_%s.csv",
		a.Symbol,
		a.ActualStart.Format("2006-01-02"),
		a.ActualEnd.Format("2006-01-02"))
}

// NormalizeFilename cleans a user-entered file name: spaces become
// underscores and a .csv suffix is ensured.
func NormalizeFilename(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}
	return name
}

// SaveAnalysis appends one analysis to its own file, writing the header when
// the file is new. Saving the same date range twice returns ErrDuplicate.
func (e *CSVExporter) SaveAnalysis(a *model.Analysis) (string, error) {
	path := filepath.Join(e.Dir, AnalysisFilename(a))

	existing, err := readDateRanges(path)
	if err != nil {
		return "", err
	}
	rng := dateRange(a)
	for _, r := range existing {
		if r == rng {
			return path, fmt.Errorf("%w: %s %s", ErrDuplicate, a.Symbol, rng)
		}
	}

	if err := e.appendRows(path, existing != nil, [][]string{row(a)}); err != nil {
		return "", err
	}
	return path, nil
}

// SaveAll writes every analysis to a single user-named file, header first
// when the file is new.
func (e *CSVExporter) SaveAll(name string, analyses []*model.Analysis) (string, error) {
	path := filepath.Join(e.Dir, NormalizeFilename(name))

	existing, err := readDateRanges(path)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, row(a))
	}
	if err := e.appendRows(path, existing != nil, rows); err != nil {
		return "", err
	}
	return path, nil
}

func dateRange(a *model.Analysis) string {
	return a.ActualStart.Format("2006-01-02") + " to " + a.ActualEnd.Format("2006-01-02")
}

func row(a *model.Analysis) []string {
	st := a.Stats
	return []string{
		fmt.Sprintf("%s (%s)", a.Symbol, a.Company),
		dateRange(a),
		strconv.Itoa(st.TradingDays),
		fmt.Sprintf("%.2f", st.OpeningPrice),
		fmt.Sprintf("%.2f", st.ClosingPrice),
		fmt.Sprintf("%.2f", st.AvgClose),
		fmt.Sprintf("%.2f", st.HighClose),
		fmt.Sprintf("%.2f", st.HighIntraday),
		fmt.Sprintf("%.2f", st.LowClose),
		fmt.Sprintf("%.2f", st.LowIntraday),
		fmt.Sprintf("%.6f", st.DailyVolatility),
		fmt.Sprintf("%.6f", st.AnnualizedVolatility),
		fmt.Sprintf("%.4f", st.TotalReturnPct),
		strconv.FormatInt(st.AvgDailyVolume, 10),
	}
}

// readDateRanges returns the date_range column of an existing file, or nil
// when the file does not exist yet.
func readDateRanges(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	ranges := make([]string, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue // header
		}
		ranges = append(ranges, rec[1])
	}
	return ranges, nil
}

func (e *CSVExporter) appendRows(path string, fileExists bool, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open csv for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !fileExists {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
