package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

// Kind selects which statistic of the series is plotted.
type Kind string

const (
	KindOpen        Kind = "open"
	KindClose       Kind = "close"
	KindHigh        Kind = "high"
	KindLow         Kind = "low"
	KindVolume      Kind = "volume"
	KindCandlestick Kind = "candlestick"
)

// Kinds lists all supported chart kinds in menu order.
var Kinds = []Kind{KindOpen, KindClose, KindHigh, KindLow, KindVolume, KindCandlestick}

// Label returns the human-readable chart title fragment for a kind.
func (k Kind) Label() string {
	switch k {
	case KindOpen:
		return "Opening Price"
	case KindClose:
		return "Closing Price"
	case KindHigh:
		return "High Price"
	case KindLow:
		return "Low Price"
	case KindVolume:
		return "Volume"
	case KindCandlestick:
		return "Candlestick"
	default:
		return string(k)
	}
}

// Renderer writes self-contained HTML charts into Dir.
type Renderer struct {
	Dir string
}

// NewRenderer creates a Renderer writing into dir (created on demand).
func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// Render plots one statistic of the series and returns the written file path.
func (r *Renderer) Render(series *model.PriceSeries, kind Kind) (string, error) {
	if len(series.Bars) == 0 {
		return "", fmt.Errorf("render %s: series has no bars", kind)
	}
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	first, last := series.ActualRange()
	title := fmt.Sprintf("%s (%s) %s", series.Symbol, series.Company, kind.Label())
	subtitle := fmt.Sprintf("%s to %s", first.Format("2006-01-02"), last.Format("2006-01-02"))

	dates := make([]string, len(series.Bars))
	for i, b := range series.Bars {
		dates[i] = b.Date.Format("2006-01-02")
	}

	path := filepath.Join(r.Dir, fmt.Sprintf("%s_%s_%s_%s.html",
		series.Symbol, first.Format("2006-01-02"), last.Format("2006-01-02"),
		strings.ToLower(string(kind))))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	switch kind {
	case KindVolume:
		err = renderVolume(f, title, subtitle, dates, series.Bars)
	case KindCandlestick:
		err = renderKline(f, title, subtitle, dates, series.Bars)
	default:
		err = renderPriceLine(f, title, subtitle, dates, series.Bars, kind)
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", kind, err)
	}
	return path, nil
}

func priceOf(b model.Bar, kind Kind) float64 {
	switch kind {
	case KindOpen:
		return b.Open
	case KindHigh:
		return b.High
	case KindLow:
		return b.Low
	default:
		return b.Close
	}
}

// LineData converts bars into go-echarts line points for the given kind.
func LineData(bars []model.Bar, kind Kind) []opts.LineData {
	data := make([]opts.LineData, len(bars))
	for i, b := range bars {
		data[i] = opts.LineData{Value: priceOf(b, kind)}
	}
	return data
}

// BarData converts bar volumes into go-echarts bar points.
func BarData(bars []model.Bar) []opts.BarData {
	data := make([]opts.BarData, len(bars))
	for i, b := range bars {
		data[i] = opts.BarData{Value: b.Volume}
	}
	return data
}

// KlineData converts bars into go-echarts kline points. Value order follows
// the echarts convention: open, close, low, high.
func KlineData(bars []model.Bar) []opts.KlineData {
	data := make([]opts.KlineData, len(bars))
	for i, b := range bars {
		data[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}
	return data
}

func renderPriceLine(f *os.File, title, subtitle string, dates []string, bars []model.Bar, kind Kind) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price ($)", Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(dates).AddSeries(kind.Label(), LineData(bars, kind))
	return line.Render(f)
}

func renderVolume(f *os.File, title, subtitle string, dates []string, bars []model.Bar) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Volume"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	bar.SetXAxis(dates).AddSeries("Volume", BarData(bars))
	return bar.Render(f)
}

func renderKline(f *os.File, title, subtitle string, dates []string, bars []model.Bar) error {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	kline.SetXAxis(dates).AddSeries("OHLC", KlineData(bars))
	return kline.Render(f)
}
