package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/Finance-Coder1/stock-data-explorer/internal/calculator"
	"github.com/Finance-Coder1/stock-data-explorer/internal/chart"
	"github.com/Finance-Coder1/stock-data-explorer/internal/collector"
	"github.com/Finance-Coder1/stock-data-explorer/internal/exporter"
	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
	"github.com/Finance-Coder1/stock-data-explorer/internal/recorder"
	"github.com/Finance-Coder1/stock-data-explorer/internal/report"
	"github.com/Finance-Coder1/stock-data-explorer/internal/session"
)

const userGuide = `
----------------------------------
User Guide:
1. Select 'Analyze a Stock' to input a ticker symbol and date range.
2. Dates must be entered in YYYY-MM-DD format and be within valid trading days.
3. After analysis, choose to save data or analyze another stock.
4. Saved CSV files are written to the configured output folder.
5. Select 'Access All Analyzed Stocks' to do the following:
        I. List All Analyzed Stocks
        II. Save All Analyzed Stocks to a CSV
        III. View Charts of Individual Analyzed Stocks
        IV. View Saved Analysis History

*To exit at any point, follow the prompts in any menu*
----------------------------------
`

// Menu drives the interactive dispatch loop. All analysis state lives in the
// session store; the menu only branches and formats.
type Menu struct {
	in           *bufio.Scanner
	out          io.Writer
	collector    *collector.Collector
	session      *session.Store
	recorder     recorder.Recorder
	exporter     *exporter.CSVExporter
	charts       *chart.Renderer
	historyLimit int
}

// New creates a Menu reading commands from in and writing prompts to out.
func New(in io.Reader, out io.Writer, col *collector.Collector, sess *session.Store,
	rec recorder.Recorder, exp *exporter.CSVExporter, charts *chart.Renderer, historyLimit int) *Menu {
	return &Menu{
		in:           bufio.NewScanner(in),
		out:          out,
		collector:    col,
		session:      sess,
		recorder:     rec,
		exporter:     exp,
		charts:       charts,
		historyLimit: historyLimit,
	}
}

// Run executes the main menu loop until the user exits, input ends, or the
// context is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprintln(m.out, "-------------------------")
		fmt.Fprintln(m.out, "Welcome to Stock Data Explorer!")
		fmt.Fprintln(m.out, "\nMenu:\n1. Analyze a Stock\n2. Access All Analyzed Stocks\n3. User Guide\n4. Exit\n---------------")

		choice, err := m.promptInt("What would you like to do? (1, 2, 3, 4): ", 1, 4)
		if err != nil {
			return m.finish(err)
		}
		fmt.Fprintln(m.out, "--------------------------")

		var quit bool
		switch choice {
		case 1:
			quit, err = m.analyzeFlow()
		case 2:
			quit, err = m.accessFlow()
		case 3:
			fmt.Fprint(m.out, userGuide)
		case 4:
			quit, err = m.confirmExit()
		}
		if err != nil {
			return m.finish(err)
		}
		if quit {
			fmt.Fprintln(m.out, "\n.....Exiting.....")
			return nil
		}
	}
}

// finish maps end-of-input to a clean stop.
func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// analyzeFlow runs one or more analyses, then the per-stock follow-up menu.
// Returns quit=true when the user chose to exit the program.
func (m *Menu) analyzeFlow() (bool, error) {
	entry, err := m.runAnalysis()
	if err != nil {
		return false, err
	}

	for {
		fmt.Fprintln(m.out, "\n----------------------------------")
		fmt.Fprintln(m.out, "Stock Analysis Menu:\n1. Save Data to CSV\n2. Analyze Another Stock\n3. Return to Main Menu\n4. Exit")

		choice, err := m.promptInt("What would you like to do? (1, 2, 3, or 4): ", 1, 4)
		if err != nil {
			return false, err
		}
		switch choice {
		case 1:
			m.saveOne(entry)
		case 2:
			fmt.Fprintln(m.out)
			if entry, err = m.runAnalysis(); err != nil {
				return false, err
			}
		case 3:
			return false, nil
		case 4:
			quit, err := m.confirmExit()
			if err != nil || quit {
				return quit, err
			}
		}
	}
}

// runAnalysis prompts for ticker and dates until an analysis succeeds, then
// prints the summary, stores it in the session, and records it.
func (m *Menu) runAnalysis() (session.Entry, error) {
	for {
		symbol, company, err := m.promptTicker()
		if err != nil {
			return session.Entry{}, err
		}
		start, err := m.promptDate("Please enter a start date (YYYY-MM-DD): ")
		if err != nil {
			return session.Entry{}, err
		}
		end, err := m.promptDate("Please enter an end date (YYYY-MM-DD): ")
		if err != nil {
			return session.Entry{}, err
		}

		fmt.Fprintln(m.out, "\n.....Validating.....")
		if err := ValidateRange(start, end, time.Now()); err != nil {
			fmt.Fprintln(m.out, capitalize(err.Error()))
			continue
		}

		fmt.Fprintln(m.out, "-----------------------------")
		analysis, series, err := m.collector.Analyze(symbol, company, start, end)
		if err != nil {
			switch {
			case errors.Is(err, calculator.ErrInsufficientData):
				fmt.Fprintln(m.out, "There is no data available for this date range.\nPlease try again with another set of dates.\n-----------------------------")
			case errors.Is(err, calculator.ErrInvalidData):
				fmt.Fprintln(m.out, "The provider returned invalid price data for this range.\nPlease try again with another set of dates.\n-----------------------------")
			default:
				log.Printf("[ERROR] analyze %s: %v", symbol, err)
				fmt.Fprintln(m.out, "Fetching data failed. Please check your connection and try again.")
			}
			continue
		}

		fmt.Fprintf(m.out, "Company: %s (%s)\n", symbol, company)
		fmt.Fprintf(m.out, "Valid Date Range: %s to %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
		fmt.Fprintln(m.out, "----------------------------------")
		fmt.Fprintln(m.out, "\n--\n**Note**:\nIf either the start or end date occurs on a day when the market was closed, the soonest succeeding day was chosen.\n--")
		fmt.Fprint(m.out, report.FormatSummary(analysis))

		m.session.Add(analysis, series)
		if err := m.recorder.RecordAnalysis(analysis); err != nil {
			log.Printf("[ERROR] record analysis: %v", err)
		}

		return session.Entry{Analysis: analysis, Series: series}, nil
	}
}

// promptTicker keeps prompting until the entered ticker resolves to a company.
func (m *Menu) promptTicker() (symbol, company string, err error) {
	for {
		line, err := m.promptNonEmpty("Please enter a stock ticker: ")
		if err != nil {
			return "", "", err
		}
		symbol = strings.ToUpper(line)
		company, err = m.collector.Lookup(symbol)
		if err != nil {
			log.Printf("[WARN] ticker lookup %s: %v", symbol, err)
			fmt.Fprintln(m.out, "Entered ticker does not exist.")
			continue
		}
		return symbol, company, nil
	}
}

func (m *Menu) saveOne(entry session.Entry) {
	path, err := m.exporter.SaveAnalysis(entry.Analysis)
	if err != nil {
		if errors.Is(err, exporter.ErrDuplicate) {
			fmt.Fprintf(m.out, "\n--\nStock data for %s from %s to %s is already saved in %s.\n--\n",
				entry.Analysis.Symbol,
				entry.Analysis.ActualStart.Format("2006-01-02"),
				entry.Analysis.ActualEnd.Format("2006-01-02"),
				path)
			return
		}
		log.Printf("[ERROR] save analysis csv: %v", err)
		fmt.Fprintln(m.out, "Saving failed, see log for details.")
		return
	}
	fmt.Fprintln(m.out, "\n.....Saving.....")
	fmt.Fprintf(m.out, "Data saved to %s\n", path)
}

// accessFlow handles the analyzed-stocks menu. Returns quit=true when the
// user chose to exit the program.
func (m *Menu) accessFlow() (bool, error) {
	if m.session.Len() == 0 {
		fmt.Fprintln(m.out, "\n**You must first analyze one or more stocks before you can access them.**")
		return false, nil
	}

	for {
		fmt.Fprintln(m.out, "\nStock Access Menu:\n1. List All Analyzed Stocks\n2. Save All Analyzed Stocks to CSV\n3. View Charts of Individual Analyzed Stocks\n4. View Saved Analysis History\n5. Return to Main Menu\n6. Exit\n---------------")

		choice, err := m.promptInt("What would you like to do? (1-6): ", 1, 6)
		if err != nil {
			return false, err
		}
		switch choice {
		case 1:
			fmt.Fprint(m.out, report.FormatAnalysisList(m.analyses()))
		case 2:
			if err := m.saveAll(); err != nil {
				return false, err
			}
		case 3:
			backToMain, err := m.chartFlow()
			if err != nil {
				return false, err
			}
			if backToMain {
				return false, nil
			}
		case 4:
			m.showHistory()
		case 5:
			return false, nil
		case 6:
			quit, err := m.confirmExit()
			if err != nil || quit {
				return quit, err
			}
		}
	}
}

func (m *Menu) analyses() []*model.Analysis {
	entries := m.session.List()
	out := make([]*model.Analysis, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Analysis)
	}
	return out
}

func (m *Menu) saveAll() error {
	name, err := m.promptNonEmpty("Please enter a filename: ")
	if err != nil {
		return err
	}
	path, err := m.exporter.SaveAll(name, m.analyses())
	if err != nil {
		log.Printf("[ERROR] save all csv: %v", err)
		fmt.Fprintln(m.out, "Saving failed, see log for details.")
		return nil
	}
	fmt.Fprintln(m.out, "\n.....Saving.....")
	fmt.Fprintf(m.out, "Data saved to %s\n", path)
	return nil
}

func (m *Menu) showHistory() {
	analyses, err := m.recorder.ListAnalyses(m.historyLimit)
	if err != nil {
		log.Printf("[ERROR] list history: %v", err)
		fmt.Fprintln(m.out, "Loading saved history failed, see log for details.")
		return
	}
	fmt.Fprint(m.out, report.FormatHistory(analyses))
}

// chartFlow lets the user pick an analyzed stock and a statistic to chart.
// Returns true when the user asked to go back to the main menu.
func (m *Menu) chartFlow() (bool, error) {
	entries := m.session.List()

	fmt.Fprintln(m.out, "---------------\nBelow are all of the stocks you have analyzed:")
	for i, e := range entries {
		fmt.Fprintf(m.out, "%d. %s (%s) ~ %s to %s\n", i+1,
			e.Analysis.Symbol, e.Analysis.Company,
			e.Analysis.ActualStart.Format("2006-01-02"),
			e.Analysis.ActualEnd.Format("2006-01-02"))
	}
	n := len(entries)
	fmt.Fprintf(m.out, "%d. Return to Stock Access Menu\n%d. Return to Main Menu\n\n", n+1, n+2)

	choice, err := m.promptInt("Which stock would you like to view? (Enter the Number): ", 1, n+2)
	if err != nil {
		return false, err
	}
	if choice == n+1 {
		return false, nil
	}
	if choice == n+2 {
		return true, nil
	}

	entry, ok := m.session.Get(choice - 1)
	if !ok || entry.Series == nil || len(entry.Series.Bars) == 0 {
		fmt.Fprintln(m.out, "No raw price data is available for this analysis.")
		return false, nil
	}

	fmt.Fprintf(m.out, "\nAvailable Charts for %s from %s to %s\n",
		entry.Analysis.Symbol,
		entry.Analysis.ActualStart.Format("2006-01-02"),
		entry.Analysis.ActualEnd.Format("2006-01-02"))
	for i, k := range chart.Kinds {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, k.Label())
	}

	kindChoice, err := m.promptInt(fmt.Sprintf("Which chart do you want? (1-%d): ", len(chart.Kinds)), 1, len(chart.Kinds))
	if err != nil {
		return false, err
	}

	fmt.Fprintln(m.out, "\n.....Graphing.....")
	path, err := m.charts.Render(entry.Series, chart.Kinds[kindChoice-1])
	if err != nil {
		log.Printf("[ERROR] render chart: %v", err)
		fmt.Fprintln(m.out, "Rendering the chart failed, see log for details.")
		return false, nil
	}
	fmt.Fprintf(m.out, "Chart saved to %s, open it in a browser.\n", path)
	return false, nil
}

// capitalize upper-cases the first byte of a message for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
