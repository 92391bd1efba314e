package report

import (
	"encoding/json"
	"io"
	"time"
)

type jsonReport struct {
	Seed         uint64     `json:"seed"`
	Started      time.Time  `json:"started"`
	Finished     time.Time  `json:"finished"`
	Passed       int        `json:"passed"`
	Disqualified int        `json:"disqualified"`
	SetupFailed  int        `json:"setup_failed"`
	Notes        []string   `json:"notes,omitempty"`
	Cases        []jsonCase `json:"cases"`
}

type jsonCase struct {
	ID         string            `json:"id"`
	Group      string            `json:"group"`
	Variant    string            `json:"variant"`
	Baseline   bool              `json:"baseline"`
	Params     map[string]string `json:"params"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Stats      *Stats            `json:"stats,omitempty"`
	Ratio      *float64          `json:"ratio,omitempty"`
	SamplesNs  []int64           `json:"samples_ns"`
	AllocBytes []uint64          `json:"alloc_bytes"`
}

func renderJSON(w io.Writer, s *Summary) error {
	doc := jsonReport{
		Seed:         s.Seed,
		Started:      s.Started,
		Finished:     s.Finished,
		Passed:       s.Passed,
		Disqualified: s.Disqualified,
		SetupFailed:  s.SetupFailed,
		Notes:        s.Notes,
		Cases:        make([]jsonCase, len(s.Rows)),
	}
	for i, row := range s.Rows {
		c := jsonCase{
			ID:         row.Case.ID(),
			Group:      row.Case.Group,
			Variant:    row.Case.Variant,
			Baseline:   row.Case.Baseline,
			Params:     row.Case.Params.Values(),
			Status:     string(row.Status),
			Ratio:      row.Ratio,
			SamplesNs:  make([]int64, len(row.Samples)),
			AllocBytes: make([]uint64, len(row.Samples)),
		}
		if row.Err != nil {
			c.Error = row.Err.Error()
		}
		if row.Stats.N > 0 {
			st := row.Stats
			c.Stats = &st
		}
		for j, m := range row.Samples {
			c.SamplesNs[j] = m.Duration.Nanoseconds()
			c.AllocBytes[j] = m.AllocBytes
		}
		doc.Cases[i] = c
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
