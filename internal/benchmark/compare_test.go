package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	prev := Run{
		Results: []Result{
			{Name: "B1", NsPerOp: 100, BytesPerOp: 50},
			{Name: "B2", NsPerOp: 200},
		},
	}
	curr := Run{
		Results: []Result{
			{Name: "B1", NsPerOp: 110, BytesPerOp: 40},
			{Name: "B3", NsPerOp: 300},
		},
	}

	comps := Compare(prev, curr)
	require.Len(t, comps, 1)

	c := comps[0]
	assert.Equal(t, "B1", c.Name)
	assert.InDelta(t, 10.0, c.NsPerOpDiff, 0.01)
	assert.InDelta(t, -20.0, c.BytesPerOpDiff, 0.01)
	assert.Zero(t, c.AllocsPerOpDiff)
	assert.Equal(t, "B1: +10.00% ns/op", c.String())
}

func TestComparison_Verdict(t *testing.T) {
	tests := []struct {
		name      string
		prev      Result
		curr      Result
		threshold float64
		want      Verdict
	}{
		{"slower beyond threshold", Result{NsPerOp: 100}, Result{NsPerOp: 120}, 10, VerdictRegressed},
		{"slower within threshold", Result{NsPerOp: 100}, Result{NsPerOp: 105}, 10, VerdictSame},
		{"faster beyond threshold", Result{NsPerOp: 100}, Result{NsPerOp: 50}, 10, VerdictImproved},
		{"disqualified now", Result{NsPerOp: 100}, Result{Status: "disqualified"}, 10, VerdictIncomplete},
		{"setup failed before", Result{Status: "setup_failed"}, Result{NsPerOp: 100}, 10, VerdictIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prev.Name, tt.curr.Name = "C", "C"
			comps := Compare(Run{Results: []Result{tt.prev}}, Run{Results: []Result{tt.curr}})
			require.Len(t, comps, 1)
			assert.Equal(t, tt.want, comps[0].Verdict(tt.threshold))
		})
	}
}

func TestRegressions(t *testing.T) {
	prev := Run{Results: []Result{{Name: "A", NsPerOp: 100}, {Name: "B", NsPerOp: 100}}}
	curr := Run{Results: []Result{{Name: "A", NsPerOp: 150}, {Name: "B", NsPerOp: 101}}}

	regs := Regressions(Compare(prev, curr), 10)
	require.Len(t, regs, 1)
	assert.Equal(t, "A", regs[0].Name)
}
