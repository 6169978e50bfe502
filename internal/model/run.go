package model

import "time"

// RunStatus summarizes the outcome of one pipeline run.
type RunStatus string

const (
	RunSuccess RunStatus = "SUCCESS"
	RunPartial RunStatus = "PARTIAL"
)

// RunResult is the run-level outcome of one fetch-format-send cycle.
type RunResult struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	FilersTotal  int
	FilersFailed int
	FilingsTotal int
	ChunksTotal  int
	ChunksFailed int
	Status       RunStatus
}
