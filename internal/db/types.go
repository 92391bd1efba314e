package db

import (
	"context"
	"time"

	"perfexp/internal/harness"
)

// RunRecord is the header of a stored run.
type RunRecord struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Seed       uint64    `json:"seed"`
	Commit     string    `json:"commit,omitempty"`
	Cases      int       `json:"cases"`
	Failed     int       `json:"failed"`
}

// CaseRecord is one case outcome within a run.
type CaseRecord struct {
	RunID   string  `json:"run_id"`
	CaseID  string  `json:"case_id"`
	Group   string  `json:"group"`
	Variant string  `json:"variant"`
	Params  string  `json:"params"`
	Status  string  `json:"status"`
	Error   string  `json:"error,omitempty"`
	Samples int     `json:"samples"`
	MeanNs  float64 `json:"mean_ns"`
}

// SampleRecord is one timed trial.
type SampleRecord struct {
	RunID      string `json:"run_id"`
	CaseID     string `json:"case_id"`
	Trial      int    `json:"trial"`
	DurationNs int64  `json:"duration_ns"`
	AllocBytes uint64 `json:"alloc_bytes"`
}

// Store persists runs, their case outcomes and raw samples.
type Store interface {
	Close() error
	SaveRun(ctx context.Context, id, commit string, report *harness.Report) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Cases(ctx context.Context, runID string) ([]CaseRecord, error)
	Samples(ctx context.Context, runID, caseID string) ([]SampleRecord, error)
}
