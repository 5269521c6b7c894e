package recorder

import "github.com/Finance-Coder1/stock-data-explorer/internal/model"

// Recorder persists completed analyses across runs.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	// ListAnalyses returns the most recent analyses, newest first.
	// limit <= 0 means no limit.
	ListAnalyses(limit int) ([]model.Analysis, error)
	Close() error
}
