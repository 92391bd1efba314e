package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Build(sampleReport()), Options{Format: FormatText, Profile: termenv.Ascii})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "seed 42")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "KeyedLookup")
	assert.Contains(t, out, "LinearScanArray (baseline)")
	assert.Contains(t, out, "200.0 ns")
	assert.Contains(t, out, "0.25x")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "Failures")
	assert.Contains(t, out, "returned a copy")
	assert.Contains(t, out, "3 passed, 1 disqualified, 0 setup failed")
}

func TestRender_TextDefaultsWhenFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Build(sampleReport()), Options{Profile: termenv.Ascii}))
	assert.Contains(t, buf.String(), "3 passed")
}

func TestMarkdown(t *testing.T) {
	md := Markdown(Build(sampleReport()))

	assert.Contains(t, md, "# perfexp report")
	assert.Contains(t, md, "## KeyedLookup")
	assert.Contains(t, md, "| N=10 | *LinearScanArray* (baseline) | PASS | 200.0 ns | 200.0 ns | 290.0 ns | 32 B | 1.00x |")
	assert.Contains(t, md, "| N=100 | HashedLookup | **DISQUALIFIED** | - | - | - | - | n/a |")
	assert.Contains(t, md, "## Failures")
}

func TestRender_MarkdownPlainForAscii(t *testing.T) {
	s := Build(sampleReport())
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, Options{Format: FormatMarkdown, Profile: termenv.Ascii}))
	assert.Equal(t, Markdown(s), buf.String())
}

func TestGlamourize(t *testing.T) {
	out, err := Glamourize(Markdown(Build(sampleReport())), 120, glamour.WithStandardStyle("notty"))
	require.NoError(t, err)
	assert.Contains(t, out, "KeyedLookup")
	assert.Contains(t, out, "HashedLookup")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Build(sampleReport()), Options{Format: FormatJSON}))

	var doc struct {
		Seed         uint64 `json:"seed"`
		Disqualified int    `json:"disqualified"`
		Cases        []struct {
			ID        string            `json:"id"`
			Params    map[string]string `json:"params"`
			Status    string            `json:"status"`
			Error     string            `json:"error"`
			Ratio     *float64          `json:"ratio"`
			Stats     *Stats            `json:"stats"`
			SamplesNs []int64           `json:"samples_ns"`
		} `json:"cases"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, uint64(42), doc.Seed)
	assert.Equal(t, 1, doc.Disqualified)
	require.Len(t, doc.Cases, 4)

	assert.Equal(t, "KeyedLookup/N=10/LinearScanArray", doc.Cases[0].ID)
	assert.Equal(t, map[string]string{"N": "10"}, doc.Cases[0].Params)
	assert.Equal(t, []int64{100, 200, 300}, doc.Cases[0].SamplesNs)
	require.NotNil(t, doc.Cases[1].Ratio)
	assert.InDelta(t, 0.25, *doc.Cases[1].Ratio, 1e-9)

	failed := doc.Cases[3]
	assert.Equal(t, "disqualified", failed.Status)
	assert.Contains(t, failed.Error, "oracle violation")
	assert.Nil(t, failed.Stats)
	assert.Nil(t, failed.Ratio)
	assert.Empty(t, failed.SamplesNs)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, Build(sampleReport()), Options{Format: "xml"})
	assert.EqualError(t, err, `unknown report format "xml"`)
}

func TestDetectProfile_NonTerminal(t *testing.T) {
	assert.Equal(t, termenv.Ascii, DetectProfile(&bytes.Buffer{}))
}
