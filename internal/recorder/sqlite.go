package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Finance-Coder1/stock-data-explorer/internal/model"
)

// SQLiteRecorder persists analyses to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external tools can read while the explorer writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			analyzed_at           INTEGER NOT NULL,
			symbol                TEXT NOT NULL,
			company               TEXT,
			range_start           TEXT NOT NULL,
			range_end             TEXT NOT NULL,
			trading_days          INTEGER,
			opening_price         REAL,
			closing_price         REAL,
			avg_close             REAL,
			high_close            REAL,
			low_close             REAL,
			high_intraday         REAL,
			low_intraday          REAL,
			daily_volatility      REAL,
			annualized_volatility REAL,
			total_return_pct      REAL,
			avg_daily_volume      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(analyzed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := a.Stats
	_, err := r.db.Exec(`INSERT INTO analyses
		(analyzed_at, symbol, company, range_start, range_end, trading_days,
		 opening_price, closing_price, avg_close, high_close, low_close,
		 high_intraday, low_intraday,
		 daily_volatility, annualized_volatility, total_return_pct, avg_daily_volume)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.AnalyzedAt.Unix(), a.Symbol, a.Company,
		a.ActualStart.Format("2006-01-02"), a.ActualEnd.Format("2006-01-02"),
		st.TradingDays,
		st.OpeningPrice, st.ClosingPrice, st.AvgClose, st.HighClose, st.LowClose,
		st.HighIntraday, st.LowIntraday,
		st.DailyVolatility, st.AnnualizedVolatility, st.TotalReturnPct, st.AvgDailyVolume,
	)
	return err
}

func (r *SQLiteRecorder) ListAnalyses(limit int) ([]model.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `SELECT analyzed_at, symbol, company, range_start, range_end, trading_days,
		opening_price, closing_price, avg_close, high_close, low_close,
		high_intraday, low_intraday,
		daily_volatility, annualized_volatility, total_return_pct, avg_daily_volume
		FROM analyses ORDER BY analyzed_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []model.Analysis
	for rows.Next() {
		var (
			a        model.Analysis
			ts       int64
			startStr string
			endStr   string
		)
		if err := rows.Scan(&ts, &a.Symbol, &a.Company, &startStr, &endStr,
			&a.Stats.TradingDays,
			&a.Stats.OpeningPrice, &a.Stats.ClosingPrice, &a.Stats.AvgClose,
			&a.Stats.HighClose, &a.Stats.LowClose,
			&a.Stats.HighIntraday, &a.Stats.LowIntraday,
			&a.Stats.DailyVolatility, &a.Stats.AnnualizedVolatility,
			&a.Stats.TotalReturnPct, &a.Stats.AvgDailyVolume,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		a.AnalyzedAt = time.Unix(ts, 0)
		if a.ActualStart, err = time.Parse("2006-01-02", startStr); err != nil {
			return nil, fmt.Errorf("parse range_start: %w", err)
		}
		if a.ActualEnd, err = time.Parse("2006-01-02", endStr); err != nil {
			return nil, fmt.Errorf("parse range_end: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
