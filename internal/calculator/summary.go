package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

// TradingDaysPerYear is the conventional number of trading days used to
// annualize daily volatility.
const TradingDaysPerYear = 252

var (
	// ErrInsufficientData indicates the series has fewer than 2 bars, so
	// returns and volatility are undefined.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidData indicates a malformed series, e.g. a non-positive
	// close price.
	ErrInvalidData = errors.New("invalid price data")
)

// Summarize computes summary statistics from daily bars ordered ascending by
// date. It is pure: same input, same output, no side effects.
//
// Opening price is the close of the first bar, so the total return matches
// the compounded daily-return chain.
func Summarize(bars []model.Bar) (*model.SummaryStatistics, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bars, got %d", ErrInsufficientData, len(bars))
	}
	for i, b := range bars {
		if b.Close <= 0 {
			return nil, fmt.Errorf("%w: non-positive close %.4f at bar %d (%s)",
				ErrInvalidData, b.Close, i, b.Date.Format("2006-01-02"))
		}
	}

	closes := extractCloses(bars)
	returns := dailyReturns(closes)
	dailyVol := sampleStdDev(returns)

	var volumeSum float64
	highIntraday := math.Inf(-1)
	lowIntraday := math.Inf(1)
	for _, b := range bars {
		volumeSum += float64(b.Volume)
		if b.High > highIntraday {
			highIntraday = b.High
		}
		if b.Low < lowIntraday {
			lowIntraday = b.Low
		}
	}

	high, low := closes[0], closes[0]
	var closeSum float64
	for _, c := range closes {
		closeSum += c
		if c > high {
			high = c
		}
		if c < low {
			low = c
		}
	}

	opening := closes[0]
	closing := closes[len(closes)-1]

	return &model.SummaryStatistics{
		TradingDays:          len(bars),
		OpeningPrice:         opening,
		ClosingPrice:         closing,
		AvgClose:             closeSum / float64(len(closes)),
		HighClose:            high,
		LowClose:             low,
		HighIntraday:         highIntraday,
		LowIntraday:          lowIntraday,
		DailyVolatility:      dailyVol,
		AnnualizedVolatility: dailyVol * math.Sqrt(TradingDaysPerYear),
		TotalReturnPct:       (closing - opening) / opening * 100,
		AvgDailyVolume:       int64(math.Round(volumeSum / float64(len(bars)))),
	}, nil
}

// dailyReturns computes the day-over-day fractional change of closes.
// Callers must ensure all closes are positive.
func dailyReturns(closes []float64) []float64 {
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

// sampleStdDev computes the sample standard deviation (n-1 denominator).
// A sample of fewer than 2 values has no variance; returns 0.
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	var sqSum float64
	for _, v := range values {
		d := v - mean
		sqSum += d * d
	}
	return math.Sqrt(sqSum / float64(n-1))
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
