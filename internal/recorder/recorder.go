package recorder

import "FilingSentinel/internal/model"

// FetchRecord captures the outcome of one filer's data-source call.
type FetchRecord struct {
	CIK     string
	Name    string
	Filings int
	Err     string
}

// Recorder persists run outcomes for later inspection. It stores run and
// fetch summaries only, never the filings themselves.
type Recorder interface {
	RecordRun(result *model.RunResult) error
	RecordFetch(rec *FetchRecord) error
	Close() error
}
