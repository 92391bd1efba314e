package benchmark

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutput(t *testing.T) {
	output := `
goos: linux
goarch: amd64
pkg: perfexp/internal/benchmark
cpu: Intel(R) Core(TM) i9-9900K CPU @ 3.60GHz
BenchmarkParseOutput-16    	100000000	        10.5 ns/op	       0 B/op	       0 allocs/op
BenchmarkComplex-16        	 5000000	       250.0 ns/op	      10.0 MB/s	      64 B/op	       2 allocs/op
PASS
ok  	perfexp/internal/benchmark	1.500s
`
	results := ParseOutput(output)
	require.Len(t, results, 2)

	assert.Equal(t, "BenchmarkParseOutput", results[0].Name)
	assert.Equal(t, int64(100000000), results[0].Iterations)
	assert.Equal(t, 10.5, results[0].NsPerOp)
	assert.Equal(t, int64(0), results[0].BytesPerOp)
	assert.Empty(t, results[0].Group)

	assert.Equal(t, "BenchmarkComplex", results[1].Name)
	assert.Equal(t, 10.0, results[1].MBPerSec)
	assert.Equal(t, int64(64), results[1].BytesPerOp)
	assert.Equal(t, int64(2), results[1].AllocsPerOp)
}

func TestParseOutput_HarnessCases(t *testing.T) {
	output := `
BenchmarkKeyedLookup/N=10/Key=GUID/LinearScanArray-8         	 9056712	       131.2 ns/op	       0 B/op	       0 allocs/op
BenchmarkKeyedLookup/N=10/Key=GUID/HashedLookup-8            	18204555	        65.90 ns/op	       0 B/op	       0 allocs/op
BenchmarkDispatch/N=100/Virtual-8                            	 4620540	       259.4 ns/op	       0 B/op	       0 allocs/op
BenchmarkSingle/Const-8                                      	1000000000	         0.31 ns/op
`
	results := ParseOutput(output)
	require.Len(t, results, 4)

	assert.Equal(t, "KeyedLookup/N=10/Key=GUID/LinearScanArray", results[0].Name)
	assert.Equal(t, "KeyedLookup", results[0].Group)
	assert.Equal(t, "N=10/Key=GUID", results[0].Params)
	assert.Equal(t, "LinearScanArray", results[0].Variant)
	assert.True(t, results[0].Passed())

	assert.Equal(t, "HashedLookup", results[1].Variant)
	assert.InDelta(t, 65.90, results[1].NsPerOp, 1e-9)

	assert.Equal(t, "Dispatch/N=100/Virtual", results[2].Name)
	assert.Equal(t, "Single/Const", results[3].Name)
	assert.Empty(t, results[3].Params)
}

func TestParseOutput_Minimal(t *testing.T) {
	results := ParseOutput("\nBenchmarkSimple   100   200 ns/op\n")
	require.Len(t, results, 1)
	assert.Equal(t, "BenchmarkSimple", results[0].Name)
	assert.Equal(t, int64(100), results[0].Iterations)
	assert.Equal(t, 200.0, results[0].NsPerOp)
}

func TestSplitCaseName(t *testing.T) {
	tests := []struct {
		name                    string
		group, params, variant string
		ok                      bool
	}{
		{"BenchmarkKeyedLookup/N=10/Key=Int/HashedLookup", "KeyedLookup", "N=10/Key=Int", "HashedLookup", true},
		{"BenchmarkDispatch/NonVirtual", "Dispatch", "", "NonVirtual", true},
		{"BenchmarkPlain", "", "", "", false},
		{"BenchmarkX/not-a-param/V", "", "", "", false},
		{"Benchmark/V", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p, v, ok := SplitCaseName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.group, g)
			assert.Equal(t, tt.params, p)
			assert.Equal(t, tt.variant, v)
		})
	}
}

func TestGoRunner_Args(t *testing.T) {
	r := &GoRunner{Pattern: "KeyedLookup", Count: 3}
	assert.Equal(t,
		[]string{"test", "-run=^$", "-bench=KeyedLookup", "-benchmem", "-count=3", "./internal/scenarios/..."},
		r.Args([]string{"./internal/scenarios/..."}))

	assert.Equal(t,
		[]string{"test", "-run=^$", "-bench=.", "-benchmem", "./..."},
		NewGoRunner("").Args(nil))
}

// TestHelperProcess stands in for the go binary.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PERFEXP_HELPER_PROCESS") != "1" {
		return
	}
	os.Stdout.WriteString("BenchmarkDispatch/N=100/Virtual-8   	 4620540	       259.4 ns/op\nPASS\n")
	os.Exit(0)
}

func TestGoRunner_Run(t *testing.T) {
	orig := execCommand
	defer func() { execCommand = orig }()

	var gotArgs []string
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotArgs = append([]string{name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=^TestHelperProcess$")
		cmd.Env = append(os.Environ(), "PERFEXP_HELPER_PROCESS=1")
		return cmd
	}

	run, err := NewGoRunner("Dispatch").Run(context.Background(), []string{"./internal/scenarios/dispatch"})
	require.NoError(t, err)
	assert.Equal(t, "go", gotArgs[0])
	assert.Equal(t, SourceGoBench, run.Source)
	assert.NotEmpty(t, run.ID)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "Dispatch/N=100/Virtual", run.Results[0].Name)
}
