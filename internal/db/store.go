package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"perfexp/internal/harness"
)

// sqlStore holds the queries shared by both backends. Queries are written
// with '?' placeholders and rebound per driver.
type sqlStore struct {
	db   *sql.DB
	bind func(string) string
}

func questionMarks(q string) string { return q }

// dollarPlaceholders rewrites '?' placeholders as $1, $2, ... for lib/pq.
func dollarPlaceholders(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// SaveRun writes the run header, every case and every sample of the report
// in one transaction.
func (s *sqlStore) SaveRun(ctx context.Context, id, commit string, report *harness.Report) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	failed := len(report.Results) - report.Count(harness.StatusPassed)
	_, err = tx.ExecContext(ctx, s.bind(`INSERT INTO runs (id, started_at, finished_at, seed, git_commit, cases, failed) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		id, report.Started.UnixNano(), report.Finished.UnixNano(), strconv.FormatUint(report.Seed, 10), commit, len(report.Results), failed)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, res := range report.Results {
		caseID := res.Case.ID()
		var errText string
		if res.Err != nil {
			errText = res.Err.Error()
		}
		var mean float64
		if len(res.Samples) > 0 {
			mean = harness.MeanNanos(res.Samples)
		}
		_, err = tx.ExecContext(ctx, s.bind(`INSERT INTO cases (run_id, case_id, group_name, variant, params, status, error, samples, mean_ns) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			id, caseID, res.Case.Group, res.Case.Variant, res.Case.Params.String(), string(res.Status), errText, len(res.Samples), mean)
		if err != nil {
			return fmt.Errorf("failed to insert case %s: %w", caseID, err)
		}

		for _, m := range res.Samples {
			_, err = tx.ExecContext(ctx, s.bind(`INSERT INTO samples (run_id, case_id, trial, duration_ns, alloc_bytes) VALUES (?, ?, ?, ?, ?)`),
				id, caseID, m.Trial, m.Duration.Nanoseconds(), int64(m.AllocBytes))
			if err != nil {
				return fmt.Errorf("failed to insert sample %s#%d: %w", caseID, m.Trial, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func (s *sqlStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`SELECT id, started_at, finished_at, seed, git_commit, cases, failed FROM runs ORDER BY started_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r                 RunRecord
			started, finished int64
			seed              string
		)
		if err := rows.Scan(&r.ID, &started, &finished, &seed, &r.Commit, &r.Cases, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = time.Unix(0, started).UTC()
		r.FinishedAt = time.Unix(0, finished).UTC()
		if r.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("run %s has invalid seed %q: %w", r.ID, seed, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Cases returns a run's case outcomes in execution order.
func (s *sqlStore) Cases(ctx context.Context, runID string) ([]CaseRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`SELECT case_id, group_name, variant, params, status, error, samples, mean_ns FROM cases WHERE run_id = ? ORDER BY seq`), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer rows.Close()

	var out []CaseRecord
	for rows.Next() {
		c := CaseRecord{RunID: runID}
		if err := rows.Scan(&c.CaseID, &c.Group, &c.Variant, &c.Params, &c.Status, &c.Error, &c.Samples, &c.MeanNs); err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Samples returns a case's timed trials in trial order.
func (s *sqlStore) Samples(ctx context.Context, runID, caseID string) ([]SampleRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`SELECT trial, duration_ns, alloc_bytes FROM samples WHERE run_id = ? AND case_id = ? ORDER BY trial`), runID, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var out []SampleRecord
	for rows.Next() {
		sr := SampleRecord{RunID: runID, CaseID: caseID}
		var alloc int64
		if err := rows.Scan(&sr.Trial, &sr.DurationNs, &alloc); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		sr.AllocBytes = uint64(alloc)
		out = append(out, sr)
	}
	return out, rows.Err()
}
