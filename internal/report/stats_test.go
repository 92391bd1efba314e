package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	c := lookupCase("LinearScanArray", true, 10)
	s := Summarize(samples(c, 300, 100, 200))

	assert.Equal(t, 3, s.N)
	assert.InDelta(t, 200, s.Mean, 1e-9)
	assert.InDelta(t, 200, s.Median, 1e-9)
	assert.InDelta(t, 100, s.Min, 1e-9)
	assert.InDelta(t, 300, s.Max, 1e-9)
	assert.InDelta(t, 100, s.StdDev, 1e-9)
	assert.InDelta(t, 290, s.P95, 1e-9)
	assert.InDelta(t, 32, s.AllocBytes, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestSummarize_SingleSample(t *testing.T) {
	s := Summarize(samples(lookupCase("HashedLookup", false, 10), 70))
	assert.InDelta(t, 70, s.P95, 1e-9)
	assert.Zero(t, s.StdDev)
}
